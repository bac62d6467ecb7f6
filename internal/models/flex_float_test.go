package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloatUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"número", `{"total_amount": 1234.56}`, 1234.56},
		{"string numérico", `{"total_amount": "1234.56"}`, 1234.56},
		{"string entero", `{"total_amount": "1000"}`, 1000},
		{"null", `{"total_amount": null}`, 0},
		{"string vacío", `{"total_amount": ""}`, 0},
		{"string no numérico", `{"total_amount": "abc"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target struct {
				TotalAmount FlexFloat `json:"total_amount"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.in), &target))
			assert.InDelta(t, tt.want, target.TotalAmount.Float64(), 1e-9)
		})
	}
}

func TestFlexFloatMarshalAsNumber(t *testing.T) {
	out, err := json.Marshal(struct {
		Quantity FlexFloat `json:"quantity"`
	}{Quantity: 0.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"quantity": 0.5}`, string(out))
}

func TestTransactionUnmarshalMixedNumericTypes(t *testing.T) {
	// La API de origen entrega los campos numéricos a veces como número y
	// a veces como string; ambos deben coercionarse en la ingestión
	payload := `{
		"id": "t1",
		"coin_symbol": "BTC",
		"type": "buy",
		"quantity": "0.02",
		"price": 50000,
		"total_amount": "1000",
		"status": "completed",
		"created_at": "2024-01-15T10:00:00Z"
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(payload), &tx))
	assert.InDelta(t, 0.02, tx.Quantity.Float64(), 1e-9)
	assert.InDelta(t, 50000.0, tx.Price.Float64(), 1e-9)
	assert.InDelta(t, 1000.0, tx.TotalAmount.Float64(), 1e-9)
}
