package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/repository"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/services"
)

var portfolioRepo *repository.PortfolioRepository

func InitPortfolio(repo *repository.PortfolioRepository) {
	portfolioRepo = repo
}

// GetPortfolio obtiene las tenencias del usuario valuadas al precio actual
func GetPortfolio(c *gin.Context) {
	userId := c.GetString("userId")

	portfolio, err := portfolioRepo.GetPortfolio(userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener portafolio"})
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// GetPerformance calcula las métricas de rendimiento del historial completo
// del usuario: retornos mensuales, rendimiento por moneda, win rate y
// tiempo promedio de tenencia
func GetPerformance(c *gin.Context) {
	userId := c.GetString("userId")

	transactions, err := txRepo.GetUserTransactions(userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener transacciones"})
		return
	}

	// El portafolio aporta el P&L no realizado; si falla seguimos solo
	// con las transacciones
	portfolio, err := portfolioRepo.GetPortfolio(userId)
	if err != nil {
		portfolio = nil
	}

	c.JSON(http.StatusOK, services.CalculatePerformanceMetrics(transactions, portfolio))
}
