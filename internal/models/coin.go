package models

import "time"

// Coin es una moneda simulada del mercado. Los precios no vienen de un
// exchange real: el PriceUpdater los mueve con un paseo aleatorio acotado.
type Coin struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Symbol            string    `json:"symbol"`
	CurrentPrice      float64   `json:"current_price"`
	MarketCap         float64   `json:"market_cap"`
	CirculatingSupply float64   `json:"circulating_supply"`
	PriceChange24h    float64   `json:"price_change_24h"`
	PriceChangePct24h float64   `json:"price_change_percentage_24h"`
	MinPrice          float64   `json:"-"` // Límites del paseo aleatorio
	MaxPrice          float64   `json:"-"`
	UpdatedAt         time.Time `json:"updated_at"`
	CreatedAt         time.Time `json:"created_at"`
}

type PriceHistoryEntry struct {
	CoinID     string    `json:"coin_id"`
	Price      float64   `json:"price"`
	RecordedAt time.Time `json:"recorded_at"`
}

type MarketStatus struct {
	IsOpen      bool      `json:"is_open"`
	Message     string    `json:"message"`
	ServerTime  time.Time `json:"server_time"`
	LastUpdated time.Time `json:"last_updated"`
}
