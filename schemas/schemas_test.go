package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeSchema_ValidJSONSchema(t *testing.T) {
	data := Resume()

	var schemaObj map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON")

	assert.Equal(t, "object", schemaObj["type"])
	assert.Contains(t, schemaObj, "$schema")
	assert.Contains(t, schemaObj, "properties")
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("missing.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
