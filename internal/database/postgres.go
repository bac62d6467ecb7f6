package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB() error {
	if DB != nil {
		return nil
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "cts"),
		)
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	if err := DB.Ping(); err != nil {
		return err
	}

	// Crear tabla de usuarios si no existe
	createUsersSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		balance NUMERIC NOT NULL DEFAULT 10000,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err = DB.Exec(createUsersSQL); err != nil {
		return err
	}

	// Crear tabla de monedas del mercado simulado
	createCoinsSQL := `
	CREATE TABLE IF NOT EXISTS coins (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		symbol TEXT UNIQUE NOT NULL,
		current_price NUMERIC NOT NULL,
		market_cap NUMERIC NOT NULL DEFAULT 0,
		circulating_supply NUMERIC NOT NULL DEFAULT 0,
		price_change_24h NUMERIC NOT NULL DEFAULT 0,
		price_change_pct_24h NUMERIC NOT NULL DEFAULT 0,
		min_price NUMERIC NOT NULL DEFAULT 0,
		max_price NUMERIC NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err = DB.Exec(createCoinsSQL); err != nil {
		return err
	}

	// Crear tabla de historial de precios
	createHistorySQL := `
	CREATE TABLE IF NOT EXISTS price_history (
		id SERIAL PRIMARY KEY,
		coin_id TEXT NOT NULL REFERENCES coins(id),
		price NUMERIC NOT NULL,
		recorded_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err = DB.Exec(createHistorySQL); err != nil {
		return err
	}

	// Crear tabla de transacciones
	createTransactionsSQL := `
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		coin_id TEXT NOT NULL REFERENCES coins(id),
		coin_name TEXT NOT NULL,
		coin_symbol TEXT NOT NULL,
		type TEXT NOT NULL,
		quantity NUMERIC NOT NULL,
		price NUMERIC NOT NULL,
		total_amount NUMERIC NOT NULL,
		fee NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'completed',
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err = DB.Exec(createTransactionsSQL); err != nil {
		return err
	}

	if err := seedCoins(); err != nil {
		log.Printf("Error al sembrar las monedas iniciales: %v", err)
	}

	return nil
}

// seedCoins inserta el catálogo inicial de monedas del mercado simulado si
// la tabla está vacía
func seedCoins() error {
	var count int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM coins`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		id     string
		name   string
		symbol string
		price  float64
		supply float64
		min    float64
		max    float64
	}{
		{"bitcoin", "Bitcoin", "BTC", 50000, 19700000, 20000, 120000},
		{"ethereum", "Ethereum", "ETH", 3000, 120000000, 1000, 8000},
		{"litecoin", "Litecoin", "LTC", 80, 74000000, 20, 400},
		{"cardano", "Cardano", "ADA", 0.45, 35000000000, 0.1, 3},
		{"solana", "Solana", "SOL", 140, 460000000, 20, 500},
		{"dogecoin", "Dogecoin", "DOGE", 0.12, 144000000000, 0.01, 1},
		{"polkadot", "Polkadot", "DOT", 6.5, 1400000000, 2, 50},
		{"ripple", "Ripple", "XRP", 0.55, 54000000000, 0.2, 3},
	}

	insertSQL := `
		INSERT INTO coins (id, name, symbol, current_price, market_cap, circulating_supply, min_price, max_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, c := range seed {
		if _, err := DB.Exec(insertSQL, c.id, c.name, c.symbol, c.price, c.price*c.supply, c.supply, c.min, c.max); err != nil {
			return err
		}
	}

	log.Printf("Catálogo inicial de monedas creado: %d monedas", len(seed))
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
