package services

import (
	"sort"
	"strings"
	"time"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
)

// Motor de análisis del historial de transacciones. Todas las funciones de
// este archivo son puras: reciben la lista inmutable de transacciones (y
// opcionalmente el portafolio) y devuelven valores derivados. No hay I/O ni
// estado compartido; el que quiera evitar recálculos debe memoizar afuera.

// NormalizeTransactionType lleva el tipo a mayúsculas. Los datos de origen
// mezclan "buy"/"sell" con "BUY"/"SELL" según el endpoint.
func NormalizeTransactionType(transactionType string) string {
	return strings.ToUpper(strings.TrimSpace(transactionType))
}

// isBuy clasifica la transacción: BUY es compra, cualquier otro tipo cae al
// bucket de ventas (clasificación binaria; ver DESIGN.md)
func isBuy(t models.Transaction) bool {
	return NormalizeTransactionType(t.Type) == models.TransactionTypeBuy
}

// CalculatePerformanceMetrics agrega el historial completo en métricas de
// rendimiento. Con lista vacía devuelve todos los campos en cero; nunca
// produce NaN ni Inf.
func CalculatePerformanceMetrics(transactions []models.Transaction, portfolio *models.Portfolio) models.PerformanceMetrics {
	metrics := models.PerformanceMetrics{
		MonthlyReturns:  []models.MonthlyReturn{},
		CoinPerformance: []models.CoinPerformance{},
	}

	// El P&L agregado viene del portafolio cuando está disponible: las
	// transacciones crudas no conocen el precio actual de mercado
	if portfolio != nil {
		metrics.TotalProfitLoss = portfolio.TotalProfitLoss.Float64()
		metrics.TotalProfitLossPercentage = portfolio.TotalProfitLossPercentage.Float64()
	}

	if len(transactions) == 0 {
		return metrics
	}

	var buyCount, sellCount, profitableSells int
	var totalVolume float64

	for _, t := range transactions {
		totalVolume += t.TotalAmount.Float64()
		if isBuy(t) {
			buyCount++
		} else {
			sellCount++
			// Cálculo simplificado: una venta con monto positivo cuenta
			// como ganadora. No hay enlace de costo base por operación en
			// los datos.
			if t.TotalAmount.Float64() > 0 {
				profitableSells++
			}
		}
	}

	metrics.TotalTrades = len(transactions)
	metrics.BuyTrades = buyCount
	metrics.SellTrades = sellCount
	metrics.TotalVolume = totalVolume
	metrics.TotalFees = 0 // La API no expone comisión por transacción todavía
	metrics.AverageTradeSize = totalVolume / float64(len(transactions))

	if sellCount > 0 {
		metrics.WinRate = float64(profitableSells) / float64(sellCount) * 100
	}

	metrics.MonthlyReturns = CalculateMonthlyReturns(transactions)
	metrics.CoinPerformance = CalculateCoinPerformance(transactions)

	if len(metrics.CoinPerformance) > 0 {
		best := metrics.CoinPerformance[0]
		worst := metrics.CoinPerformance[0]
		for _, cp := range metrics.CoinPerformance[1:] {
			if cp.TotalProfitLossPercentage > best.TotalProfitLossPercentage {
				best = cp
			}
			if cp.TotalProfitLossPercentage < worst.TotalProfitLossPercentage {
				worst = cp
			}
		}
		metrics.BestPerformingCoin = best.CoinSymbol
		metrics.WorstPerformingCoin = worst.CoinSymbol
	}

	metrics.AverageHoldingTime = CalculateAverageHoldingTime(transactions)

	return metrics
}

// CalculateMonthlyReturns agrupa por mes calendario (clave YYYY-MM en UTC
// para que el bucket no dependa de la zona horaria del cliente). El retorno
// mensual es flujo de caja neto del mes: ventas menos compras, sin calce de
// costo base entre meses.
func CalculateMonthlyReturns(transactions []models.Transaction) []models.MonthlyReturn {
	type monthData struct {
		trades int
		volume float64
		netPL  float64
	}

	buckets := make(map[string]*monthData)
	for _, t := range transactions {
		monthKey := t.CreatedAt.UTC().Format("2006-01")
		bucket, exists := buckets[monthKey]
		if !exists {
			bucket = &monthData{}
			buckets[monthKey] = bucket
		}

		amount := t.TotalAmount.Float64()
		bucket.trades++
		bucket.volume += amount
		if isBuy(t) {
			bucket.netPL -= amount
		} else {
			bucket.netPL += amount
		}
	}

	returns := make([]models.MonthlyReturn, 0, len(buckets))
	for month, data := range buckets {
		returns = append(returns, models.MonthlyReturn{
			Month:  month,
			Return: data.netPL,
			Trades: data.trades,
			Volume: data.volume,
		})
	}

	// El orden lexicográfico de YYYY-MM coincide con el cronológico
	sort.Slice(returns, func(i, j int) bool {
		return returns[i].Month < returns[j].Month
	})

	return returns
}

// CalculateCoinPerformance agrega el historial por símbolo de moneda. El
// P&L por moneda es un proxy de flujo de caja (ventas menos compras), no
// valoración a mercado.
func CalculateCoinPerformance(transactions []models.Transaction) []models.CoinPerformance {
	type coinData struct {
		coinName        string
		trades          int
		volume          float64
		totalBuyAmount  float64
		totalSellAmount float64
		bestSell        float64
		worstSell       float64
		sellCount       int
		priceSum        float64
	}

	var order []string
	buckets := make(map[string]*coinData)

	for _, t := range transactions {
		symbol := t.CoinSymbol
		bucket, exists := buckets[symbol]
		if !exists {
			bucket = &coinData{coinName: t.CoinName}
			if bucket.coinName == "" {
				bucket.coinName = symbol
			}
			buckets[symbol] = bucket
			order = append(order, symbol)
		}

		amount := t.TotalAmount.Float64()
		bucket.trades++
		bucket.volume += amount

		if isBuy(t) {
			bucket.totalBuyAmount += amount
		} else {
			bucket.totalSellAmount += amount
			if bucket.sellCount == 0 || amount > bucket.bestSell {
				bucket.bestSell = amount
			}
			if bucket.sellCount == 0 || amount < bucket.worstSell {
				bucket.worstSell = amount
			}
			bucket.sellCount++
		}
	}

	performance := make([]models.CoinPerformance, 0, len(order))
	for _, symbol := range order {
		bucket := buckets[symbol]

		profitLoss := bucket.totalSellAmount - bucket.totalBuyAmount
		profitLossPct := 0.0
		if bucket.totalBuyAmount > 0 {
			profitLossPct = profitLoss / bucket.totalBuyAmount * 100
		}

		performance = append(performance, models.CoinPerformance{
			CoinSymbol:                symbol,
			CoinName:                  bucket.coinName,
			TotalTrades:               bucket.trades,
			TotalVolume:               bucket.volume,
			TotalProfitLoss:           profitLoss,
			TotalProfitLossPercentage: profitLossPct,
			AveragePrice:              bucket.volume / float64(bucket.trades),
			BestTrade:                 bucket.bestSell,
			WorstTrade:                bucket.worstSell,
		})
	}

	return performance
}

// CalculateAverageHoldingTime estima el tiempo promedio de tenencia en
// días. Por cada moneda mantiene una cola FIFO de compras (ordenadas por
// fecha): cada venta descuenta la compra más antigua pendiente y mide el
// tiempo transcurrido. Devuelve 0 si ningún par compra→venta se pudo
// formar.
func CalculateAverageHoldingTime(transactions []models.Transaction) float64 {
	byCoin := make(map[string][]models.Transaction)
	for _, t := range transactions {
		byCoin[t.CoinSymbol] = append(byCoin[t.CoinSymbol], t)
	}

	var totalHolding time.Duration
	var pairCount int

	for _, coinTxs := range byCoin {
		sorted := make([]models.Transaction, len(coinTxs))
		copy(sorted, coinTxs)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})

		var buyQueue []time.Time
		for _, t := range sorted {
			if isBuy(t) {
				buyQueue = append(buyQueue, t.CreatedAt)
				continue
			}
			if len(buyQueue) == 0 {
				continue // Venta sin compra previa registrada
			}
			totalHolding += t.CreatedAt.Sub(buyQueue[0])
			buyQueue = buyQueue[1:]
			pairCount++
		}
	}

	if pairCount == 0 {
		return 0
	}

	return totalHolding.Hours() / 24 / float64(pairCount)
}

// FilterTransactions aplica los filtros de forma conjuntiva (AND). Un campo
// en su valor cero no se aplica.
func FilterTransactions(transactions []models.Transaction, filters models.TransactionFilters) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(transactions))

	var dateFrom, dateTo time.Time
	if filters.DateFrom != "" {
		dateFrom = parseFilterDate(filters.DateFrom)
	}
	if filters.DateTo != "" {
		dateTo = parseFilterDate(filters.DateTo)
	}

	for _, t := range transactions {
		if filters.Type != "" && !strings.EqualFold(t.Type, filters.Type) {
			continue
		}
		if filters.CoinSymbol != "" && !strings.Contains(strings.ToLower(t.CoinSymbol), strings.ToLower(filters.CoinSymbol)) {
			continue
		}
		if !dateFrom.IsZero() && t.CreatedAt.Before(dateFrom) {
			continue
		}
		if !dateTo.IsZero() && t.CreatedAt.After(dateTo) {
			continue
		}
		if filters.MinAmount > 0 && t.TotalAmount.Float64() < filters.MinAmount {
			continue
		}
		if filters.MaxAmount > 0 && t.TotalAmount.Float64() > filters.MaxAmount {
			continue
		}
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		filtered = append(filtered, t)
	}

	return filtered
}

// parseFilterDate acepta RFC3339 o solo fecha (YYYY-MM-DD, en UTC)
func parseFilterDate(value string) time.Time {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed
	}
	return time.Time{}
}

// SearchTransactions busca el término (sin distinguir mayúsculas) en el
// nombre de la moneda, el símbolo, el id de la transacción y el tipo. Un
// término vacío o solo espacios devuelve la lista sin tocar.
func SearchTransactions(transactions []models.Transaction, searchTerm string) []models.Transaction {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" {
		return transactions
	}

	matched := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if strings.Contains(strings.ToLower(t.CoinName), term) ||
			strings.Contains(strings.ToLower(t.CoinSymbol), term) ||
			strings.Contains(strings.ToLower(t.ID), term) ||
			strings.Contains(strings.ToLower(t.Type), term) {
			matched = append(matched, t)
		}
	}

	return matched
}

// PaginateTransactions devuelve la página pedida (1-indexada) junto con los
// metadatos de paginación. Una página fuera de rango devuelve una lista
// vacía sin error.
func PaginateTransactions(transactions []models.Transaction, page, limit int) models.PaginatedTransactions {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total := len(transactions)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return models.PaginatedTransactions{
		Transactions: transactions[start:end],
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
