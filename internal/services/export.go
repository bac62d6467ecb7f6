package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
)

// Formatos de exportación soportados
const (
	ExportFormatJSON = "json"
	ExportFormatCSV  = "csv"
)

// Columnas del CSV, en el orden que espera el frontend
var csvHeaders = []string{
	"Transaction ID",
	"Type",
	"Coin Name",
	"Coin Symbol",
	"Quantity",
	"Price",
	"Total Amount",
	"Fee",
	"Status",
	"Date",
}

// ExportTransactions serializa el historial en el formato pedido. Es la
// única función del motor de análisis que puede fallar: un formato no
// soportado devuelve un error descriptivo en lugar de degradar en silencio.
func ExportTransactions(transactions []models.Transaction, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case ExportFormatJSON:
		data, err := json.MarshalIndent(transactions, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case ExportFormatCSV:
		var buf bytes.Buffer
		writer := csv.NewWriter(&buf)

		if err := writer.Write(csvHeaders); err != nil {
			return "", err
		}

		for _, t := range transactions {
			row := []string{
				t.ID,
				t.Type,
				t.CoinName,
				t.CoinSymbol,
				fmt.Sprintf("%.6f", t.Quantity.Float64()),
				fmt.Sprintf("%.2f", t.Price.Float64()),
				fmt.Sprintf("%.2f", t.TotalAmount.Float64()),
				"0", // La API no expone comisión por transacción todavía
				t.Status,
				t.CreatedAt.UTC().Format(time.RFC3339),
			}
			if err := writer.Write(row); err != nil {
				return "", err
			}
		}

		writer.Flush()
		if err := writer.Error(); err != nil {
			return "", err
		}
		return buf.String(), nil

	case "pdf":
		return "", fmt.Errorf("exportación a PDF no implementada")

	default:
		return "", fmt.Errorf("formato de exportación no soportado: %s", format)
	}
}
