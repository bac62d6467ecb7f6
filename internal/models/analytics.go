package models

// PerformanceMetrics es el resumen agregado del historial de trading de un
// usuario. Todos los campos se derivan de la lista de transacciones (y del
// portafolio opcional); nunca se persisten.
type PerformanceMetrics struct {
	TotalTrades               int               `json:"total_trades"`
	BuyTrades                 int               `json:"buy_trades"`
	SellTrades                int               `json:"sell_trades"`
	TotalVolume               float64           `json:"total_volume"`
	TotalFees                 float64           `json:"total_fees"` // Siempre 0: la API no expone comisión por transacción todavía
	AverageTradeSize          float64           `json:"average_trade_size"`
	WinRate                   float64           `json:"win_rate"`
	TotalProfitLoss           float64           `json:"total_profit_loss"`
	TotalProfitLossPercentage float64           `json:"total_profit_loss_percentage"`
	BestPerformingCoin        string            `json:"best_performing_coin"`
	WorstPerformingCoin       string            `json:"worst_performing_coin"`
	AverageHoldingTime        float64           `json:"average_holding_time"` // En días
	MonthlyReturns            []MonthlyReturn   `json:"monthly_returns"`
	CoinPerformance           []CoinPerformance `json:"coin_performance"`
}

// MonthlyReturn es una fila por mes calendario (clave YYYY-MM, UTC)
type MonthlyReturn struct {
	Month  string  `json:"month"`
	Return float64 `json:"return"` // Flujo neto: ventas menos compras del mes
	Trades int     `json:"trades"`
	Volume float64 `json:"volume"`
}

// CoinPerformance es una fila por símbolo de moneda
type CoinPerformance struct {
	CoinSymbol                string  `json:"coin_symbol"`
	CoinName                  string  `json:"coin_name"`
	TotalTrades               int     `json:"total_trades"`
	TotalVolume               float64 `json:"total_volume"`
	TotalProfitLoss           float64 `json:"total_profit_loss"`
	TotalProfitLossPercentage float64 `json:"total_profit_loss_percentage"`
	AveragePrice              float64 `json:"average_price"`
	BestTrade                 float64 `json:"best_trade"`
	WorstTrade                float64 `json:"worst_trade"`
}

// TransactionFilters son los criterios conjuntivos (AND) para filtrar el
// historial. Un campo vacío no se aplica.
type TransactionFilters struct {
	Type       string  `form:"type" json:"type"`
	CoinSymbol string  `form:"coin_symbol" json:"coin_symbol"`
	DateFrom   string  `form:"date_from" json:"date_from"`
	DateTo     string  `form:"date_to" json:"date_to"`
	MinAmount  float64 `form:"min_amount" json:"min_amount"`
	MaxAmount  float64 `form:"max_amount" json:"max_amount"`
	Status     string  `form:"status" json:"status"`
}

// Pagination son los metadatos de página que acompañan a una lista
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// PaginatedTransactions es el resultado de paginar el historial
type PaginatedTransactions struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}
