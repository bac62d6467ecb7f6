package models

import "time"

// Tipos de transacción. Los datos de origen mezclan "buy"/"BUY" según el
// endpoint, por lo que la clasificación siempre se hace sobre el tipo
// normalizado a mayúsculas.
const (
	TransactionTypeBuy  = "BUY"
	TransactionTypeSell = "SELL"
)

// Estados posibles de una transacción
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CoinID      string    `json:"coin_id"`
	CoinName    string    `json:"coin_name"`
	CoinSymbol  string    `json:"coin_symbol"`
	Type        string    `json:"type"`
	Quantity    FlexFloat `json:"quantity"`
	Price       FlexFloat `json:"price"`
	TotalAmount FlexFloat `json:"total_amount"`
	Fee         FlexFloat `json:"fee"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BuyOrderRequest es el cuerpo de POST /transactions/buy. El monto es en
// USD; la cantidad de moneda se calcula con el precio actual.
type BuyOrderRequest struct {
	CoinID string  `json:"coin_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// SellOrderRequest es el cuerpo de POST /transactions/sell
type SellOrderRequest struct {
	CoinID   string  `json:"coin_id" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// OrderEstimate es la vista previa de una orden antes de confirmarla
type OrderEstimate struct {
	CoinID         string  `json:"coin_id"`
	CoinName       string  `json:"coin_name"`
	CoinSymbol     string  `json:"coin_symbol"`
	Type           string  `json:"type"`
	Quantity       float64 `json:"quantity"`
	Price          float64 `json:"price"`
	TotalAmount    float64 `json:"total_amount"`
	Fee            float64 `json:"fee"`
	EstimatedTotal float64 `json:"estimated_total"`
}
