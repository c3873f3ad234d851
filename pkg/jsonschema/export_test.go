package jsonschema

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInvopop(t *testing.T) {
	f := Classify(mustParse(t, `{"id":1,"tags":["a",2],"meta":null}`))
	s := ToInvopop(f)

	assert.Equal(t, SchemaURI, s.Version)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"id", "tags", "meta"}, s.Required)

	var keys []string
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"id", "tags", "meta"}, keys)

	tags, ok := s.Properties.Get("tags")
	require.True(t, ok)
	assert.Equal(t, "array", tags.Type)
	require.Len(t, tags.Items.AnyOf, 2)
	assert.Equal(t, "integer", tags.Items.AnyOf[0].Type)
	assert.Equal(t, "string", tags.Items.AnyOf[1].Type)

	meta, _ := s.Properties.Get("meta")
	assert.Equal(t, "null", meta.Type)
}

func TestToInvopop_UnionWithObject(t *testing.T) {
	open := true
	f := Classify(mustParse(t, `[{"a":1},"x"]`))
	s := RenderOptions{AdditionalProperties: &open}.Invopop(f)

	require.NotNil(t, s.Items)
	require.Len(t, s.Items.AnyOf, 2)
	assert.Equal(t, "string", s.Items.AnyOf[0].Type)
	obj := s.Items.AnyOf[1]
	assert.Equal(t, "object", obj.Type)
	assert.Equal(t, []string{"a"}, obj.Required)
	assert.NotNil(t, obj.AdditionalProperties)
}

func TestToOpenAPI(t *testing.T) {
	f := Classify(mustParse(t, `[{"id":1,"name":"x","tags":[]},{"id":2.5,"name":null}]`))
	s := ToOpenAPI(f)

	assert.Equal(t, openapi3.TypeArray, s.Type)
	require.NotNil(t, s.Items)
	item := s.Items.Value
	assert.Equal(t, openapi3.TypeObject, item.Type)
	assert.Equal(t, []string{"id", "name"}, item.Required)

	assert.Equal(t, openapi3.TypeNumber, item.Properties["id"].Value.Type)

	name := item.Properties["name"].Value
	assert.Equal(t, openapi3.TypeString, name.Type)
	assert.True(t, name.Nullable)

	tags := item.Properties["tags"].Value
	assert.Equal(t, openapi3.TypeArray, tags.Type)
	assert.Equal(t, "", tags.Items.Value.Type)
}

func TestToOpenAPI_Unions(t *testing.T) {
	f := Classify(mustParse(t, `[1,"x",null]`))
	items := ToOpenAPI(f).Items.Value
	assert.True(t, items.Nullable)
	require.Len(t, items.AnyOf, 2)
	assert.Equal(t, openapi3.TypeInteger, items.AnyOf[0].Value.Type)
	assert.Equal(t, openapi3.TypeString, items.AnyOf[1].Value.Type)

	onlyNull := ToOpenAPI(Classify(mustParse(t, `null`)))
	assert.True(t, onlyNull.Nullable)
	assert.Equal(t, "", onlyNull.Type)

	closed := false
	obj := RenderOptions{AdditionalProperties: &closed}.OpenAPI(Classify(mustParse(t, `{}`)))
	require.NotNil(t, obj.AdditionalProperties.Has)
	assert.False(t, *obj.AdditionalProperties.Has)
	assert.Empty(t, obj.Required)
}
