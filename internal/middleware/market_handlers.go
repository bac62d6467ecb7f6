package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/repository"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/services"
)

var (
	coinRepo      *repository.CoinRepository
	marketService *services.MarketService
)

func InitMarket(coins *repository.CoinRepository, market *services.MarketService) {
	coinRepo = coins
	marketService = market
}

// GetCoins lista todas las monedas ordenadas por capitalización
func GetCoins(c *gin.Context) {
	coins, err := coinRepo.GetCoins()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener monedas"})
		return
	}

	c.JSON(http.StatusOK, coins)
}

// GetCoin obtiene los datos de una moneda por id
func GetCoin(c *gin.Context) {
	coin, err := coinRepo.GetCoin(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Moneda no encontrada"})
		return
	}

	c.JSON(http.StatusOK, coin)
}

// GetPriceHistory devuelve el historial de precios de una moneda en la
// ventana pedida (1h, 24h, 7d o 30d)
func GetPriceHistory(c *gin.Context) {
	coinID := c.Param("id")

	if _, err := coinRepo.GetCoin(coinID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Moneda no encontrada"})
		return
	}

	var since time.Time
	switch c.DefaultQuery("range", "24h") {
	case "1h":
		since = time.Now().Add(-time.Hour)
	case "24h":
		since = time.Now().Add(-24 * time.Hour)
	case "7d":
		since = time.Now().Add(-7 * 24 * time.Hour)
	case "30d":
		since = time.Now().Add(-30 * 24 * time.Hour)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rango inválido: usa 1h, 24h, 7d o 30d"})
		return
	}

	history, err := coinRepo.GetPriceHistory(coinID, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener historial"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// SearchCoins busca monedas por nombre o símbolo
func SearchCoins(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el término de búsqueda"})
		return
	}

	coins, err := coinRepo.SearchCoins(term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al buscar monedas"})
		return
	}

	c.JSON(http.StatusOK, coins)
}

// GetTopGainers lista las monedas con mayor suba en 24h
func GetTopGainers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	coins, err := coinRepo.GetTopGainers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener monedas"})
		return
	}

	c.JSON(http.StatusOK, coins)
}

// GetTopLosers lista las monedas con mayor baja en 24h
func GetTopLosers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	coins, err := coinRepo.GetTopLosers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener monedas"})
		return
	}

	c.JSON(http.StatusOK, coins)
}

// GetMarketStatus informa si el mercado está abierto y el último tick de
// precios del simulador
func GetMarketStatus(c *gin.Context) {
	var lastUpdated time.Time
	if updater := GetPriceUpdater(); updater != nil {
		lastUpdated = updater.GetLastUpdated()
	}

	c.JSON(http.StatusOK, marketService.Status(lastUpdated))
}
