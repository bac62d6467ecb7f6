package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOrderAmounts(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		price    float64
		total    float64
		fee      float64
	}{
		{"compra entera", 2, 50000, 100000, 150},
		{"cantidad fraccionaria", 0.5, 50000, 25000, 37.5},
		{"total con redondeo a centavos", 0.1, 0.3, 0.03, 0},
		{"monto chico con comisión redondeada", 1, 10, 10, 0.02},
		{"cero", 0, 50000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, fee := computeOrderAmounts(tt.quantity, tt.price)
			assert.Equal(t, tt.total, total)
			assert.Equal(t, tt.fee, fee)
		})
	}
}

func TestComputeOrderAmountsNoFloatDrift(t *testing.T) {
	// 0.1 * 3 en float binario da 0.30000000000000004; la aritmética
	// decimal debe devolver exactamente 0.30
	total, _ := computeOrderAmounts(0.1, 3)
	assert.Equal(t, 0.3, total)
}
