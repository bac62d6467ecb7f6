package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
)

func tx(id, symbol, txType string, totalAmount, quantity, price float64, createdAt string) models.Transaction {
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		ID:          id,
		CoinName:    symbol,
		CoinSymbol:  symbol,
		Type:        txType,
		Quantity:    models.FlexFloat(quantity),
		Price:       models.FlexFloat(price),
		TotalAmount: models.FlexFloat(totalAmount),
		Status:      models.StatusCompleted,
		CreatedAt:   parsed,
	}
}

func assertNoNaN(t *testing.T, metrics models.PerformanceMetrics) {
	t.Helper()
	values := []float64{
		metrics.TotalVolume, metrics.TotalFees, metrics.AverageTradeSize,
		metrics.WinRate, metrics.TotalProfitLoss, metrics.TotalProfitLossPercentage,
		metrics.AverageHoldingTime,
	}
	for _, cp := range metrics.CoinPerformance {
		values = append(values, cp.TotalVolume, cp.TotalProfitLoss,
			cp.TotalProfitLossPercentage, cp.AveragePrice, cp.BestTrade, cp.WorstTrade)
	}
	for _, mr := range metrics.MonthlyReturns {
		values = append(values, mr.Return, mr.Volume)
	}
	for _, v := range values {
		assert.False(t, math.IsNaN(v), "ningún campo debe ser NaN")
		assert.False(t, math.IsInf(v, 0), "ningún campo debe ser Inf")
	}
}

func TestCalculatePerformanceMetricsEmpty(t *testing.T) {
	metrics := CalculatePerformanceMetrics(nil, nil)

	assert.Equal(t, 0, metrics.TotalTrades)
	assert.Equal(t, 0, metrics.BuyTrades)
	assert.Equal(t, 0, metrics.SellTrades)
	assert.Zero(t, metrics.TotalVolume)
	assert.Zero(t, metrics.AverageTradeSize)
	assert.Zero(t, metrics.WinRate)
	assert.Empty(t, metrics.BestPerformingCoin)
	assert.Empty(t, metrics.WorstPerformingCoin)
	assert.Empty(t, metrics.MonthlyReturns)
	assert.Empty(t, metrics.CoinPerformance)
	assertNoNaN(t, metrics)
}

func TestCalculatePerformanceMetricsEmptyWithPortfolio(t *testing.T) {
	portfolio := &models.Portfolio{
		TotalProfitLoss:           500,
		TotalProfitLossPercentage: 5,
	}

	metrics := CalculatePerformanceMetrics(nil, portfolio)

	assert.Equal(t, 0, metrics.TotalTrades)
	assert.Equal(t, 500.0, metrics.TotalProfitLoss)
	assert.Equal(t, 5.0, metrics.TotalProfitLossPercentage)
}

func TestCalculatePerformanceMetricsClassification(t *testing.T) {
	transactions := []models.Transaction{
		tx("t1", "BTC", "BUY", 1000, 0.02, 50000, "2024-01-15T10:00:00Z"),
		tx("t2", "BTC", "buy", 500, 0.01, 50000, "2024-01-16T10:00:00Z"),
		tx("t3", "BTC", "SELL", 1200, 0.02, 60000, "2024-02-10T10:00:00Z"),
		tx("t4", "ETH", "sell", 300, 0.1, 3000, "2024-02-11T10:00:00Z"),
	}

	metrics := CalculatePerformanceMetrics(transactions, nil)

	// La clasificación es binaria sobre el tipo normalizado
	assert.Equal(t, 4, metrics.TotalTrades)
	assert.Equal(t, 2, metrics.BuyTrades)
	assert.Equal(t, 2, metrics.SellTrades)
	assert.Equal(t, metrics.TotalTrades, metrics.BuyTrades+metrics.SellTrades)
	assert.InDelta(t, 3000.0, metrics.TotalVolume, 1e-9)
	assert.InDelta(t, 750.0, metrics.AverageTradeSize, 1e-9)
	assert.InDelta(t, 100.0, metrics.WinRate, 1e-9)
	assertNoNaN(t, metrics)
}

func TestTotalVolumePermutationInvariance(t *testing.T) {
	transactions := []models.Transaction{
		tx("t1", "BTC", "BUY", 100, 1, 100, "2024-01-01T00:00:00Z"),
		tx("t2", "ETH", "SELL", 250, 1, 250, "2024-02-01T00:00:00Z"),
		tx("t3", "ADA", "BUY", 33.5, 1, 33.5, "2024-03-01T00:00:00Z"),
	}
	reversed := []models.Transaction{transactions[2], transactions[1], transactions[0]}

	a := CalculatePerformanceMetrics(transactions, nil)
	b := CalculatePerformanceMetrics(reversed, nil)

	assert.InDelta(t, a.TotalVolume, b.TotalVolume, 1e-9)
	assert.Equal(t, a.TotalTrades, b.TotalTrades)
}

func TestWinRateZeroWithoutSells(t *testing.T) {
	transactions := []models.Transaction{
		tx("t1", "BTC", "BUY", 1000, 0.02, 50000, "2024-01-15T10:00:00Z"),
	}

	metrics := CalculatePerformanceMetrics(transactions, nil)

	assert.Zero(t, metrics.WinRate)
	assertNoNaN(t, metrics)
}

func TestCalculateCoinPerformanceExampleScenario(t *testing.T) {
	transactions := []models.Transaction{
		tx("t1", "BTC", "BUY", 1000, 0.02, 50000, "2024-01-15T10:00:00Z"),
		tx("t2", "BTC", "SELL", 1200, 0.02, 60000, "2024-02-10T10:00:00Z"),
	}

	performance := CalculateCoinPerformance(transactions)
	require.Len(t, performance, 1)

	btc := performance[0]
	assert.Equal(t, "BTC", btc.CoinSymbol)
	assert.Equal(t, 2, btc.TotalTrades)
	assert.InDelta(t, 2200.0, btc.TotalVolume, 1e-9)
	assert.InDelta(t, 200.0, btc.TotalProfitLoss, 1e-9)
	assert.InDelta(t, 20.0, btc.TotalProfitLossPercentage, 1e-9)
	assert.InDelta(t, 1100.0, btc.AveragePrice, 1e-9)
	assert.InDelta(t, 1200.0, btc.BestTrade, 1e-9)
	assert.InDelta(t, 1200.0, btc.WorstTrade, 1e-9)
}

func TestCoinPerformanceZeroBuyAmount(t *testing.T) {
	// Venta sin compra registrada: el porcentaje debe ser 0, no Inf
	transactions := []models.Transaction{
		tx("t1", "DOGE", "SELL", 50, 400, 0.125, "2024-03-01T00:00:00Z"),
	}

	performance := CalculateCoinPerformance(transactions)
	require.Len(t, performance, 1)
	assert.Zero(t, performance[0].TotalProfitLossPercentage)
	assert.InDelta(t, 50.0, performance[0].TotalProfitLoss, 1e-9)
}

func TestCalculateMonthlyReturnsExampleScenario(t *testing.T) {
	transactions := []models.Transaction{
		tx("t2", "BTC", "SELL", 1200, 0.02, 60000, "2024-02-10T10:00:00Z"),
		tx("t1", "BTC", "BUY", 1000, 0.02, 50000, "2024-01-15T10:00:00Z"),
	}

	returns := CalculateMonthlyReturns(transactions)
	require.Len(t, returns, 2)

	// Ordenado ascendente por clave de mes
	assert.Equal(t, "2024-01", returns[0].Month)
	assert.InDelta(t, -1000.0, returns[0].Return, 1e-9)
	assert.Equal(t, 1, returns[0].Trades)

	assert.Equal(t, "2024-02", returns[1].Month)
	assert.InDelta(t, 1200.0, returns[1].Return, 1e-9)
	assert.InDelta(t, 1200.0, returns[1].Volume, 1e-9)
}

func TestMonthlyReturnsBucketsInUTC(t *testing.T) {
	// 31 de enero 23:30 UTC pertenece a enero aunque en otras zonas ya sea febrero
	edge := models.Transaction{
		ID:          "t1",
		CoinSymbol:  "BTC",
		Type:        "BUY",
		TotalAmount: 100,
		CreatedAt:   time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC),
	}

	returns := CalculateMonthlyReturns([]models.Transaction{edge})
	require.Len(t, returns, 1)
	assert.Equal(t, "2024-01", returns[0].Month)
}

func TestCalculateAverageHoldingTimeExampleScenario(t *testing.T) {
	transactions := []models.Transaction{
		tx("t1", "BTC", "BUY", 1000, 0.02, 50000, "2024-01-15T10:00:00Z"),
		tx("t2", "BTC", "SELL", 1200, 0.02, 60000, "2024-02-10T10:00:00Z"),
	}

	days := CalculateAverageHoldingTime(transactions)
	assert.InDelta(t, 26.0, days, 0.01)
}

func TestCalculateAverageHoldingTimeFIFO(t *testing.T) {
	// Dos compras seguidas de dos ventas: la cola FIFO calza la primera
	// venta con la primera compra (10 días) y la segunda con la segunda
	// (12 días)
	transactions := []models.Transaction{
		tx("t1", "BTC", "BUY", 100, 1, 100, "2024-01-01T00:00:00Z"),
		tx("t2", "BTC", "BUY", 100, 1, 100, "2024-01-05T00:00:00Z"),
		tx("t3", "BTC", "SELL", 120, 1, 120, "2024-01-11T00:00:00Z"),
		tx("t4", "BTC", "SELL", 130, 1, 130, "2024-01-17T00:00:00Z"),
	}

	days := CalculateAverageHoldingTime(transactions)
	assert.InDelta(t, 11.0, days, 0.01)
}

func TestCalculateAverageHoldingTimeNoPairs(t *testing.T) {
	transactions := []models.Transaction{
		tx("t1", "BTC", "SELL", 100, 1, 100, "2024-01-01T00:00:00Z"),
		tx("t2", "ETH", "BUY", 100, 1, 100, "2024-01-02T00:00:00Z"),
	}

	assert.Zero(t, CalculateAverageHoldingTime(transactions))
}

func TestBestAndWorstPerformingCoin(t *testing.T) {
	transactions := []models.Transaction{
		tx("t1", "BTC", "BUY", 1000, 0.02, 50000, "2024-01-15T10:00:00Z"),
		tx("t2", "BTC", "SELL", 1500, 0.02, 75000, "2024-02-10T10:00:00Z"),
		tx("t3", "ETH", "BUY", 1000, 0.5, 2000, "2024-01-20T10:00:00Z"),
		tx("t4", "ETH", "SELL", 800, 0.5, 1600, "2024-02-15T10:00:00Z"),
	}

	metrics := CalculatePerformanceMetrics(transactions, nil)

	assert.Equal(t, "BTC", metrics.BestPerformingCoin)
	assert.Equal(t, "ETH", metrics.WorstPerformingCoin)
}

func TestFilterTransactions(t *testing.T) {
	transactions := []models.Transaction{
		tx("t1", "BTC", "BUY", 1000, 0.02, 50000, "2024-01-15T10:00:00Z"),
		tx("t2", "ETH", "SELL", 300, 0.1, 3000, "2024-02-11T10:00:00Z"),
		tx("t3", "BTC", "SELL", 1200, 0.02, 60000, "2024-02-10T10:00:00Z"),
	}

	t.Run("por tipo", func(t *testing.T) {
		filtered := FilterTransactions(transactions, models.TransactionFilters{Type: "sell"})
		assert.Len(t, filtered, 2)
	})

	t.Run("por símbolo parcial", func(t *testing.T) {
		filtered := FilterTransactions(transactions, models.TransactionFilters{CoinSymbol: "bt"})
		assert.Len(t, filtered, 2)
	})

	t.Run("por rango de fechas", func(t *testing.T) {
		filtered := FilterTransactions(transactions, models.TransactionFilters{
			DateFrom: "2024-02-01",
			DateTo:   "2024-02-10T23:59:59Z",
		})
		require.Len(t, filtered, 1)
		assert.Equal(t, "t3", filtered[0].ID)
	})

	t.Run("por rango de monto", func(t *testing.T) {
		filtered := FilterTransactions(transactions, models.TransactionFilters{
			MinAmount: 500,
			MaxAmount: 1100,
		})
		require.Len(t, filtered, 1)
		assert.Equal(t, "t1", filtered[0].ID)
	})

	t.Run("conjuntivo", func(t *testing.T) {
		filtered := FilterTransactions(transactions, models.TransactionFilters{
			Type:       "sell",
			CoinSymbol: "BTC",
		})
		require.Len(t, filtered, 1)
		assert.Equal(t, "t3", filtered[0].ID)
	})

	t.Run("idempotente", func(t *testing.T) {
		filters := models.TransactionFilters{Type: "sell"}
		once := FilterTransactions(transactions, filters)
		twice := FilterTransactions(once, filters)
		assert.Equal(t, once, twice)
	})
}

func TestSearchTransactions(t *testing.T) {
	transactions := []models.Transaction{
		tx("tx-abc-1", "BTC", "BUY", 1000, 0.02, 50000, "2024-01-15T10:00:00Z"),
		tx("tx-def-2", "ETH", "SELL", 300, 0.1, 3000, "2024-02-11T10:00:00Z"),
	}
	transactions[0].CoinName = "Bitcoin"
	transactions[1].CoinName = "Ethereum"

	t.Run("término vacío devuelve la lista intacta", func(t *testing.T) {
		assert.Equal(t, transactions, SearchTransactions(transactions, ""))
		assert.Equal(t, transactions, SearchTransactions(transactions, "   "))
	})

	t.Run("por nombre", func(t *testing.T) {
		result := SearchTransactions(transactions, "bitco")
		require.Len(t, result, 1)
		assert.Equal(t, "tx-abc-1", result[0].ID)
	})

	t.Run("por id", func(t *testing.T) {
		result := SearchTransactions(transactions, "def-2")
		require.Len(t, result, 1)
		assert.Equal(t, "tx-def-2", result[0].ID)
	})

	t.Run("por tipo", func(t *testing.T) {
		result := SearchTransactions(transactions, "sell")
		require.Len(t, result, 1)
	})

	t.Run("sin coincidencias", func(t *testing.T) {
		assert.Empty(t, SearchTransactions(transactions, "cardano"))
	})
}

func TestPaginateTransactions(t *testing.T) {
	var transactions []models.Transaction
	for i := 0; i < 25; i++ {
		transactions = append(transactions, tx(
			string(rune('a'+i)), "BTC", "BUY", 100, 1, 100, "2024-01-01T00:00:00Z",
		))
	}

	t.Run("metadatos", func(t *testing.T) {
		result := PaginateTransactions(transactions, 1, 10)
		assert.Equal(t, 10, len(result.Transactions))
		assert.Equal(t, 25, result.Pagination.Total)
		assert.Equal(t, 3, result.Pagination.TotalPages)
	})

	t.Run("concatenar todas las páginas reproduce la lista", func(t *testing.T) {
		var rebuilt []models.Transaction
		first := PaginateTransactions(transactions, 1, 10)
		for page := 1; page <= first.Pagination.TotalPages; page++ {
			rebuilt = append(rebuilt, PaginateTransactions(transactions, page, 10).Transactions...)
		}
		assert.Equal(t, transactions, rebuilt)
	})

	t.Run("página fuera de rango", func(t *testing.T) {
		result := PaginateTransactions(transactions, 99, 10)
		assert.Empty(t, result.Transactions)
		assert.Equal(t, 99, result.Pagination.Page)
	})

	t.Run("lista vacía", func(t *testing.T) {
		result := PaginateTransactions(nil, 1, 10)
		assert.Empty(t, result.Transactions)
		assert.Zero(t, result.Pagination.TotalPages)
	})
}
