package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/services"
)

// Comisión del exchange simulado por operación (0.15% del total)
var tradingFeeRate = decimal.NewFromFloat(0.0015)

type OrderRepository struct {
	db           *sql.DB
	users        *UserRepository
	coins        *CoinRepository
	transactions *TransactionRepository
	portfolio    *PortfolioRepository
	market       *services.MarketService
}

func NewOrderRepository(db *sql.DB, users *UserRepository, coins *CoinRepository, transactions *TransactionRepository, portfolio *PortfolioRepository, market *services.MarketService) *OrderRepository {
	return &OrderRepository{
		db:           db,
		users:        users,
		coins:        coins,
		transactions: transactions,
		portfolio:    portfolio,
		market:       market,
	}
}

// computeOrderAmounts calcula total y comisión con aritmética decimal para
// que los montos en dinero no arrastren errores binarios de float
func computeOrderAmounts(quantity, price float64) (total, fee float64) {
	totalDec := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(price)).Round(2)
	feeDec := totalDec.Mul(tradingFeeRate).Round(2)
	return totalDec.InexactFloat64(), feeDec.InexactFloat64()
}

// EstimateOrder devuelve la vista previa de una orden sin ejecutarla
func (r *OrderRepository) EstimateOrder(coinID, orderType string, quantity, amount float64) (*models.OrderEstimate, error) {
	coin, err := r.coins.GetCoin(coinID)
	if err != nil {
		return nil, err
	}

	price := r.market.GetCurrentPrice(coinID)
	if price <= 0 {
		return nil, errors.New("precio de mercado no disponible")
	}

	normalized := services.NormalizeTransactionType(orderType)

	if normalized == models.TransactionTypeBuy {
		if amount <= 0 {
			return nil, errors.New("el monto debe ser mayor que cero")
		}
		quantity = decimal.NewFromFloat(amount).Div(decimal.NewFromFloat(price)).Round(8).InexactFloat64()
	} else if quantity <= 0 {
		return nil, errors.New("la cantidad debe ser mayor que cero")
	}

	total, fee := computeOrderAmounts(quantity, price)

	estimate := &models.OrderEstimate{
		CoinID:      coin.ID,
		CoinName:    coin.Name,
		CoinSymbol:  coin.Symbol,
		Type:        normalized,
		Quantity:    quantity,
		Price:       price,
		TotalAmount: total,
		Fee:         fee,
	}

	if normalized == models.TransactionTypeBuy {
		estimate.EstimatedTotal = total + fee
	} else {
		estimate.EstimatedTotal = total - fee
	}

	return estimate, nil
}

// ExecuteBuy ejecuta una orden de compra al precio actual de mercado. Con
// el mercado cerrado la orden queda pendiente y no mueve fondos.
func (r *OrderRepository) ExecuteBuy(userID string, req models.BuyOrderRequest) (*models.Transaction, error) {
	coin, err := r.coins.GetCoin(req.CoinID)
	if err != nil {
		return nil, err
	}

	price := r.market.GetCurrentPrice(coin.ID)
	if price <= 0 {
		return nil, errors.New("precio de mercado no disponible")
	}

	quantity := decimal.NewFromFloat(req.Amount).Div(decimal.NewFromFloat(price)).Round(8).InexactFloat64()
	total, fee := computeOrderAmounts(quantity, price)

	status := models.StatusCompleted
	if !r.market.IsOpen() {
		status = models.StatusPending
	}

	if status == models.StatusCompleted {
		if err := r.users.AdjustBalance(userID, -(total + fee)); err != nil {
			return nil, fmt.Errorf("no se pudo ejecutar la compra: %w", err)
		}
	}

	transaction := r.newTransaction(userID, coin, models.TransactionTypeBuy, quantity, price, total, fee, status)
	if err := r.transactions.CreateTransaction(transaction); err != nil {
		// Revertir el débito si la transacción no se pudo registrar
		if status == models.StatusCompleted {
			if rollbackErr := r.users.AdjustBalance(userID, total+fee); rollbackErr != nil {
				return nil, fmt.Errorf("error al registrar la compra y al revertir el débito: %v / %v", err, rollbackErr)
			}
		}
		return nil, err
	}

	return transaction, nil
}

// ExecuteSell ejecuta una orden de venta al precio actual de mercado
func (r *OrderRepository) ExecuteSell(userID string, req models.SellOrderRequest) (*models.Transaction, error) {
	coin, err := r.coins.GetCoin(req.CoinID)
	if err != nil {
		return nil, err
	}

	owned, err := r.portfolio.GetOwnedQuantity(userID, coin.ID)
	if err != nil {
		return nil, err
	}
	if owned+1e-12 < req.Quantity {
		return nil, fmt.Errorf("cantidad insuficiente: tienes %.8f %s y quieres vender %.8f", owned, coin.Symbol, req.Quantity)
	}

	price := r.market.GetCurrentPrice(coin.ID)
	if price <= 0 {
		return nil, errors.New("precio de mercado no disponible")
	}

	total, fee := computeOrderAmounts(req.Quantity, price)

	status := models.StatusCompleted
	if !r.market.IsOpen() {
		status = models.StatusPending
	}

	transaction := r.newTransaction(userID, coin, models.TransactionTypeSell, req.Quantity, price, total, fee, status)
	if err := r.transactions.CreateTransaction(transaction); err != nil {
		return nil, err
	}

	if status == models.StatusCompleted {
		// Acreditar el producto de la venta menos la comisión
		if err := r.users.AdjustBalance(userID, total-fee); err != nil {
			return nil, err
		}
	}

	return transaction, nil
}

// CancelTransaction cancela una orden pendiente del usuario. Las órdenes
// pendientes nunca movieron fondos, así que no hay nada que devolver.
func (r *OrderRepository) CancelTransaction(userID, transactionID string) (*models.Transaction, error) {
	transaction, err := r.transactions.GetTransaction(transactionID)
	if err != nil {
		return nil, err
	}

	if transaction.UserID != userID {
		return nil, errors.New("no tienes permiso para cancelar esta transacción")
	}
	if transaction.Status != models.StatusPending {
		return nil, fmt.Errorf("solo se pueden cancelar órdenes pendientes (estado actual: %s)", transaction.Status)
	}

	if err := r.transactions.UpdateTransactionStatus(transactionID, models.StatusCancelled); err != nil {
		return nil, err
	}

	transaction.Status = models.StatusCancelled
	return transaction, nil
}

func (r *OrderRepository) newTransaction(userID string, coin *models.Coin, txType string, quantity, price, total, fee float64, status string) *models.Transaction {
	now := time.Now().UTC()
	return &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		CoinID:      coin.ID,
		CoinName:    coin.Name,
		CoinSymbol:  coin.Symbol,
		Type:        txType,
		Quantity:    models.FlexFloat(quantity),
		Price:       models.FlexFloat(price),
		TotalAmount: models.FlexFloat(total),
		Fee:         models.FlexFloat(fee),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
