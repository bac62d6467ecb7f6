package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/repository"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/services"
)

var txRepo *repository.TransactionRepository

func InitTransactions(repo *repository.TransactionRepository) {
	txRepo = repo
}

// GetUserTransactions devuelve el historial del usuario con filtros,
// búsqueda y paginación aplicados en ese orden
func GetUserTransactions(c *gin.Context) {
	userId := c.GetString("userId")

	var filters models.TransactionFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transactions, err := txRepo.GetUserTransactions(userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener transacciones"})
		return
	}

	transactions = services.FilterTransactions(transactions, filters)
	transactions = services.SearchTransactions(transactions, c.Query("search"))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	c.JSON(http.StatusOK, services.PaginateTransactions(transactions, page, limit))
}

// GetTransactionDetails obtiene una transacción específica del usuario
func GetTransactionDetails(c *gin.Context) {
	userId := c.GetString("userId")
	transactionID := c.Param("id")

	transaction, err := txRepo.GetTransaction(transactionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transacción no encontrada"})
		return
	}

	if transaction.UserID != userId {
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permiso para ver esta transacción"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// GetRecentTransactions obtiene las transacciones más recientes del usuario
func GetRecentTransactions(c *gin.Context) {
	userId := c.GetString("userId")

	limitStr := c.DefaultQuery("limit", "5")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 5 // Valor predeterminado
	}

	transactions, err := txRepo.GetRecentTransactions(userId, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener transacciones"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// ExportTransactions descarga el historial completo del usuario en el
// formato pedido (csv o json)
func ExportTransactions(c *gin.Context) {
	userId := c.GetString("userId")
	format := c.DefaultQuery("format", "csv")

	transactions, err := txRepo.GetUserTransactions(userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener transacciones"})
		return
	}

	content, err := services.ExportTransactions(transactions, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("transacciones_%s.%s", time.Now().UTC().Format("20060102"), format)
	contentType := "text/csv"
	if format == "json" {
		contentType = "application/json"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, []byte(content))
}
