package repository

import (
	"database/sql"
	"errors"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, coin_id, coin_name, coin_symbol, type, quantity, price, total_amount, fee, status, created_at, updated_at`

func scanTransaction(row interface{ Scan(...interface{}) error }) (models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.CoinID,
		&tx.CoinName,
		&tx.CoinSymbol,
		&tx.Type,
		&tx.Quantity,
		&tx.Price,
		&tx.TotalAmount,
		&tx.Fee,
		&tx.Status,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	return tx, err
}

func (r *TransactionRepository) CreateTransaction(tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, coin_id, coin_name, coin_symbol, type, quantity, price, total_amount, fee, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(query,
		tx.ID,
		tx.UserID,
		tx.CoinID,
		tx.CoinName,
		tx.CoinSymbol,
		tx.Type,
		tx.Quantity,
		tx.Price,
		tx.TotalAmount,
		tx.Fee,
		tx.Status,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	return err
}

// GetUserTransactions devuelve el historial completo del usuario, de la
// más reciente a la más antigua. El filtrado, la búsqueda y la paginación
// se hacen en memoria con el motor de análisis.
func (r *TransactionRepository) GetUserTransactions(userID string) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// GetTransaction obtiene una transacción por su ID
func (r *TransactionRepository) GetTransaction(transactionID string) (*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1`

	tx, err := scanTransaction(r.db.QueryRow(query, transactionID))
	if err == sql.ErrNoRows {
		return nil, errors.New("transacción no encontrada")
	}
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

// GetRecentTransactions devuelve las últimas N transacciones del usuario
func (r *TransactionRepository) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// UpdateTransactionStatus cambia el estado de una transacción (por ejemplo
// pending -> cancelled) y actualiza updated_at
func (r *TransactionRepository) UpdateTransactionStatus(transactionID, status string) error {
	query := `
		UPDATE transactions
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`

	result, err := r.db.Exec(query, status, transactionID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("transacción no encontrada")
	}

	return nil
}
