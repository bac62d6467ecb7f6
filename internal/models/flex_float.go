package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strconv"
)

// FlexFloat es un float64 que tolera campos numéricos enviados como número
// o como string en el JSON de origen. Toda la coerción numérica pasa por
// este tipo, en la frontera de ingestión, en lugar de repartirse por los
// cálculos. Un valor no parseable se coerce a 0 (fail-soft).
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	// Quitar comillas si el valor viene como string ("1234.56")
	if data[0] == '"' && data[len(data)-1] == '"' && len(data) >= 2 {
		data = data[1 : len(data)-1]
	}

	if len(data) == 0 {
		*f = 0
		return nil
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*f = 0
		return nil
	}

	*f = FlexFloat(value)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(f), 'f', -1, 64)), nil
}

func (f FlexFloat) Float64() float64 {
	return float64(f)
}

// Scan implementa sql.Scanner para leer columnas numéricas de postgres.
func (f *FlexFloat) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = 0
	case float64:
		*f = FlexFloat(v)
	case int64:
		*f = FlexFloat(v)
	case []byte:
		value, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(value)
	case string:
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(value)
	default:
		return fmt.Errorf("no se puede convertir %T a FlexFloat", src)
	}
	return nil
}

func (f FlexFloat) Value() (driver.Value, error) {
	return float64(f), nil
}
