package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistrado(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))
	assert.Equal(t, "2.0", spec.Swagger)
	assert.Contains(t, spec.Paths, "/api/production-orders")
	assert.Contains(t, spec.Paths["/api/finished-products/{id}/feasibility"], "get")
	assert.Contains(t, spec.Paths, "/api/migration/run")
}
