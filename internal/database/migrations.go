package database

import (
	"log"
)

// RunMigrations ejecuta las migraciones necesarias para actualizar el esquema de la base de datos
func RunMigrations() error {
	log.Println("Ejecutando migraciones de la base de datos...")

	migrations := []string{
		// Índices para las consultas de historial por usuario y por moneda
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_created ON transactions (user_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_coin_symbol ON transactions (coin_symbol);`,
		`CREATE INDEX IF NOT EXISTS idx_price_history_coin_recorded ON price_history (coin_id, recorded_at DESC);`,
		// La columna fee no existía en el esquema original
		`ALTER TABLE transactions ADD COLUMN IF NOT EXISTS fee NUMERIC NOT NULL DEFAULT 0;`,
		// Límites del paseo aleatorio para monedas creadas antes de introducirlos
		`ALTER TABLE coins ADD COLUMN IF NOT EXISTS min_price NUMERIC NOT NULL DEFAULT 0;`,
		`ALTER TABLE coins ADD COLUMN IF NOT EXISTS max_price NUMERIC NOT NULL DEFAULT 0;`,
	}

	for _, migration := range migrations {
		if _, err := DB.Exec(migration); err != nil {
			log.Printf("Error al ejecutar migración: %v", err)
			// No retornamos error: las migraciones son aditivas y pueden
			// haberse aplicado ya en un despliegue anterior
		}
	}

	log.Println("Migraciones completadas")
	return nil
}
