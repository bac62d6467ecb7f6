package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
)

type CoinRepository struct {
	db *sql.DB
}

func NewCoinRepository(db *sql.DB) *CoinRepository {
	return &CoinRepository{db: db}
}

const coinColumns = `id, name, symbol, current_price, market_cap, circulating_supply, price_change_24h, price_change_pct_24h, min_price, max_price, updated_at, created_at`

func scanCoin(row interface{ Scan(...interface{}) error }) (models.Coin, error) {
	var coin models.Coin
	err := row.Scan(
		&coin.ID,
		&coin.Name,
		&coin.Symbol,
		&coin.CurrentPrice,
		&coin.MarketCap,
		&coin.CirculatingSupply,
		&coin.PriceChange24h,
		&coin.PriceChangePct24h,
		&coin.MinPrice,
		&coin.MaxPrice,
		&coin.UpdatedAt,
		&coin.CreatedAt,
	)
	return coin, err
}

func (r *CoinRepository) queryCoins(query string, args ...interface{}) ([]models.Coin, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coins []models.Coin
	for rows.Next() {
		coin, err := scanCoin(rows)
		if err != nil {
			return nil, err
		}
		coins = append(coins, coin)
	}

	return coins, rows.Err()
}

// GetCoins devuelve todas las monedas del mercado ordenadas por
// capitalización
func (r *CoinRepository) GetCoins() ([]models.Coin, error) {
	return r.queryCoins(`SELECT ` + coinColumns + ` FROM coins ORDER BY market_cap DESC`)
}

func (r *CoinRepository) GetCoin(coinID string) (*models.Coin, error) {
	coin, err := scanCoin(r.db.QueryRow(`SELECT `+coinColumns+` FROM coins WHERE id = $1`, coinID))
	if err == sql.ErrNoRows {
		return nil, errors.New("moneda no encontrada")
	}
	if err != nil {
		return nil, err
	}
	return &coin, nil
}

func (r *CoinRepository) GetCoinBySymbol(symbol string) (*models.Coin, error) {
	coin, err := scanCoin(r.db.QueryRow(`SELECT `+coinColumns+` FROM coins WHERE symbol = $1`, strings.ToUpper(symbol)))
	if err == sql.ErrNoRows {
		return nil, errors.New("moneda no encontrada")
	}
	if err != nil {
		return nil, err
	}
	return &coin, nil
}

// SearchCoins busca por nombre o símbolo (sin distinguir mayúsculas)
func (r *CoinRepository) SearchCoins(term string) ([]models.Coin, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	return r.queryCoins(`
		SELECT `+coinColumns+`
		FROM coins
		WHERE LOWER(name) LIKE $1 OR LOWER(symbol) LIKE $1
		ORDER BY market_cap DESC`, pattern)
}

// GetTopGainers devuelve las monedas con mayor subida en 24h
func (r *CoinRepository) GetTopGainers(limit int) ([]models.Coin, error) {
	return r.queryCoins(`
		SELECT `+coinColumns+`
		FROM coins
		ORDER BY price_change_pct_24h DESC
		LIMIT $1`, limit)
}

// GetTopLosers devuelve las monedas con mayor caída en 24h
func (r *CoinRepository) GetTopLosers(limit int) ([]models.Coin, error) {
	return r.queryCoins(`
		SELECT `+coinColumns+`
		FROM coins
		ORDER BY price_change_pct_24h ASC
		LIMIT $1`, limit)
}

// UpdateCoinPrice guarda el nuevo precio de la moneda, recalcula el cambio
// de 24h contra el historial y agrega la entrada al historial de precios
func (r *CoinRepository) UpdateCoinPrice(coinID string, newPrice float64) error {
	// Precio de hace 24 horas para calcular el cambio
	var oldPrice float64
	err := r.db.QueryRow(`
		SELECT price FROM price_history
		WHERE coin_id = $1 AND recorded_at <= $2
		ORDER BY recorded_at DESC
		LIMIT 1`, coinID, time.Now().Add(-24*time.Hour)).Scan(&oldPrice)
	if err != nil {
		// Sin historial suficiente: usar el precio actual como referencia
		if err := r.db.QueryRow(`SELECT current_price FROM coins WHERE id = $1`, coinID).Scan(&oldPrice); err != nil {
			return err
		}
	}

	change := newPrice - oldPrice
	changePct := 0.0
	if oldPrice > 0 {
		changePct = change / oldPrice * 100
	}

	updateSQL := `
		UPDATE coins
		SET current_price = $1,
			market_cap = $1 * circulating_supply,
			price_change_24h = $2,
			price_change_pct_24h = $3,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $4`

	if _, err := r.db.Exec(updateSQL, newPrice, change, changePct, coinID); err != nil {
		return err
	}

	_, err = r.db.Exec(`INSERT INTO price_history (coin_id, price) VALUES ($1, $2)`, coinID, newPrice)
	return err
}

// GetPriceHistory devuelve el historial de precios de una moneda dentro de
// la ventana pedida, en orden cronológico
func (r *CoinRepository) GetPriceHistory(coinID string, since time.Time) ([]models.PriceHistoryEntry, error) {
	rows, err := r.db.Query(`
		SELECT coin_id, price, recorded_at
		FROM price_history
		WHERE coin_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at ASC`, coinID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.PriceHistoryEntry
	for rows.Next() {
		var entry models.PriceHistoryEntry
		if err := rows.Scan(&entry.CoinID, &entry.Price, &entry.RecordedAt); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

// CreateCoin agrega una moneda al mercado simulado (solo admin)
func (r *CoinRepository) CreateCoin(coin *models.Coin) error {
	query := `
		INSERT INTO coins (id, name, symbol, current_price, market_cap, circulating_supply, min_price, max_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		coin.ID,
		coin.Name,
		strings.ToUpper(coin.Symbol),
		coin.CurrentPrice,
		coin.CurrentPrice*coin.CirculatingSupply,
		coin.CirculatingSupply,
		coin.MinPrice,
		coin.MaxPrice,
	)
	return err
}
