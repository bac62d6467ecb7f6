package repository

import (
	"database/sql"
	"log"
	"time"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/services"
)

type PortfolioRepository struct {
	db     *sql.DB
	users  *UserRepository
	coins  *CoinRepository
	market *services.MarketService
}

func NewPortfolioRepository(db *sql.DB, users *UserRepository, coins *CoinRepository, market *services.MarketService) *PortfolioRepository {
	return &PortfolioRepository{db: db, users: users, coins: coins, market: market}
}

// tempHolding acumula la posición de una moneda mientras se recorre el
// historial
type tempHolding struct {
	coinID     string
	coinName   string
	coinSymbol string
	quantity   float64
	invested   float64
	lastTxDate time.Time
}

// GetPortfolio reconstruye las tenencias del usuario a partir de su
// historial de transacciones completadas y las valora a precio actual. El
// costo base se reduce proporcionalmente en cada venta.
func (r *PortfolioRepository) GetPortfolio(userID string) (*models.Portfolio, error) {
	user, err := r.users.GetUserById(userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT coin_id, coin_name, coin_symbol, type, quantity, total_amount, created_at
		FROM transactions
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at ASC`

	rows, err := r.db.Query(query, userID, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holdingsMap := make(map[string]*tempHolding)
	var order []string

	for rows.Next() {
		var coinID, coinName, coinSymbol, txType string
		var quantity, totalAmount models.FlexFloat
		var createdAt time.Time

		if err := rows.Scan(&coinID, &coinName, &coinSymbol, &txType, &quantity, &totalAmount, &createdAt); err != nil {
			log.Printf("Error al escanear transacción del portafolio: %v", err)
			continue
		}

		holding, exists := holdingsMap[coinID]
		if !exists {
			holding = &tempHolding{coinID: coinID, coinName: coinName, coinSymbol: coinSymbol}
			holdingsMap[coinID] = holding
			order = append(order, coinID)
		}
		holding.lastTxDate = createdAt

		if services.NormalizeTransactionType(txType) == models.TransactionTypeBuy {
			holding.quantity += quantity.Float64()
			holding.invested += totalAmount.Float64()
		} else if holding.quantity > 0 {
			// Reducir la inversión en proporción a la cantidad vendida
			proportion := quantity.Float64() / holding.quantity
			if proportion > 1 {
				proportion = 1
			}
			holding.invested -= holding.invested * proportion
			holding.quantity -= quantity.Float64()
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	portfolio := &models.Portfolio{
		AvailableBalance: user.Balance,
		Holdings:         []models.Holding{},
		LastUpdated:      time.Now(),
	}

	var totalValue, totalInvested float64

	for _, coinID := range order {
		h := holdingsMap[coinID]
		if h.quantity <= 1e-12 {
			continue // Posición cerrada
		}

		currentPrice := r.market.GetCurrentPrice(coinID)
		if currentPrice <= 0 {
			// Sin precio de mercado: valorar al precio promedio de compra
			currentPrice = h.invested / h.quantity
		}

		currentValue := h.quantity * currentPrice
		profit := currentValue - h.invested
		profitPct := 0.0
		if h.invested > 0 {
			profitPct = profit / h.invested * 100
		}

		portfolio.Holdings = append(portfolio.Holdings, models.Holding{
			CoinID:               h.coinID,
			CoinName:             h.coinName,
			CoinSymbol:           h.coinSymbol,
			Quantity:             h.quantity,
			AverageBuyPrice:      h.invested / h.quantity,
			CurrentPrice:         currentPrice,
			CurrentValue:         currentValue,
			ProfitLoss:           profit,
			ProfitLossPercentage: profitPct,
			TotalInvested:        h.invested,
			LastTransactionDate:  h.lastTxDate,
		})

		totalValue += currentValue
		totalInvested += h.invested
	}

	portfolio.TotalValue = totalValue
	portfolio.TotalInvested = totalInvested
	portfolio.TotalProfitLoss = models.FlexFloat(totalValue - totalInvested)
	if totalInvested > 0 {
		portfolio.TotalProfitLossPercentage = models.FlexFloat((totalValue - totalInvested) / totalInvested * 100)
	}

	return portfolio, nil
}

// GetOwnedQuantity devuelve la cantidad de una moneda que el usuario posee
// según sus transacciones completadas
func (r *PortfolioRepository) GetOwnedQuantity(userID, coinID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN UPPER(type) = 'BUY' THEN quantity ELSE -quantity END), 0)
		FROM transactions
		WHERE user_id = $1 AND coin_id = $2 AND status = $3`

	var owned float64
	err := r.db.QueryRow(query, userID, coinID, models.StatusCompleted).Scan(&owned)
	return owned, err
}
