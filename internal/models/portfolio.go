package models

import "time"

// Portfolio es el resumen de las tenencias del usuario valoradas a precio
// actual. El P&L agregado de aquí alimenta las métricas de rendimiento.
type Portfolio struct {
	TotalValue                float64   `json:"total_value"`
	TotalInvested             float64   `json:"total_invested"`
	AvailableBalance          float64   `json:"available_balance"`
	TotalProfitLoss           FlexFloat `json:"total_profit_loss"`
	TotalProfitLossPercentage FlexFloat `json:"total_profit_loss_percentage"`
	Holdings                  []Holding `json:"holdings"`
	LastUpdated               time.Time `json:"last_updated"`
}

// Holding es la posición agregada en una moneda
type Holding struct {
	CoinID               string    `json:"coin_id"`
	CoinName             string    `json:"coin_name"`
	CoinSymbol           string    `json:"coin_symbol"`
	Quantity             float64   `json:"quantity"`
	AverageBuyPrice      float64   `json:"average_buy_price"`
	CurrentPrice         float64   `json:"current_price"`
	CurrentValue         float64   `json:"current_value"`
	ProfitLoss           float64   `json:"profit_loss"`
	ProfitLossPercentage float64   `json:"profit_loss_percentage"`
	TotalInvested        float64   `json:"total_invested"`
	LastTransactionDate  time.Time `json:"last_transaction_date"`
}
