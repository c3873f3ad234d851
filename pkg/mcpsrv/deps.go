package mcpsrv

import (
	"github.com/usestring/schemainfer/internal/cache"
	"github.com/usestring/schemainfer/internal/config"
	"github.com/usestring/schemainfer/internal/query"
	"github.com/usestring/schemainfer/pkg/shape"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config *config.Config
	Shape  *shape.Engine
	Query  *query.Engine
	Cache  *cache.Cache[*shape.Result]
}
