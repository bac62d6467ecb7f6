package services

import (
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
)

func TestExportTransactionsJSON(t *testing.T) {
	transactions := []models.Transaction{
		tx("t1", "BTC", "BUY", 1000, 0.02, 50000, "2024-01-15T10:00:00Z"),
	}

	out, err := ExportTransactions(transactions, "json")
	require.NoError(t, err)

	var decoded []models.Transaction
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "t1", decoded[0].ID)
	assert.InDelta(t, 1000.0, decoded[0].TotalAmount.Float64(), 1e-9)

	// Salida con sangría (pretty-printed)
	assert.Contains(t, out, "\n  ")
}

func TestExportTransactionsCSV(t *testing.T) {
	transactions := []models.Transaction{
		tx("t1", "BTC", "BUY", 1000, 0.021234567, 50000.129, "2024-01-15T10:00:00Z"),
		tx("t2", "ETH", "SELL", 300.5, 0.1, 3000, "2024-02-11T10:00:00Z"),
	}
	transactions[0].CoinName = "Bitcoin"

	out, err := ExportTransactions(transactions, "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)

	// Cabecera más una fila por transacción
	require.Len(t, records, len(transactions)+1)
	assert.Equal(t, []string{
		"Transaction ID", "Type", "Coin Name", "Coin Symbol",
		"Quantity", "Price", "Total Amount", "Fee", "Status", "Date",
	}, records[0])

	row := records[1]
	assert.Equal(t, "t1", row[0])
	assert.Equal(t, "Bitcoin", row[2])
	assert.Equal(t, "0.021235", row[4]) // Cantidad a 6 decimales
	assert.Equal(t, "50000.13", row[5]) // Precio a 2 decimales
	assert.Equal(t, "0", row[7])        // Comisión siempre 0 (placeholder)
	assert.Equal(t, "2024-01-15T10:00:00Z", row[9])

	// Round-trip de los campos numéricos al valor redondeado
	quantity, err := strconv.ParseFloat(row[4], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.021235, quantity, 1e-9)

	amount, err := strconv.ParseFloat(records[2][6], 64)
	require.NoError(t, err)
	assert.InDelta(t, 300.5, amount, 1e-9)
}

func TestExportTransactionsCSVEmpty(t *testing.T) {
	out, err := ExportTransactions(nil, "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1) // Solo la cabecera
}

func TestExportTransactionsUnsupportedFormat(t *testing.T) {
	_, err := ExportTransactions(nil, "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no implementada")

	_, err = ExportTransactions(nil, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no soportado")
}
