package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwagger_RegistraRutasPrincipales(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Contains(t, doc.Paths, "/api/work-orders/{id}/status")
	assert.Contains(t, doc.Paths, "/api/stock-ledger/{productId}")
	assert.Contains(t, doc.Paths["/api/manufacturing-orders"], "post")
}
