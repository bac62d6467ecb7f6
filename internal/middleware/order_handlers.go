package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/repository"
)

var orderRepo *repository.OrderRepository

func InitOrders(repo *repository.OrderRepository) {
	orderRepo = repo
}

// BuyCoins ejecuta una orden de compra a precio de mercado. El monto se
// expresa en USD; la cantidad resultante depende del precio actual.
func BuyCoins(c *gin.Context) {
	userId := c.GetString("userId")

	var req models.BuyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El monto debe ser mayor a cero"})
		return
	}

	transaction, err := orderRepo.ExecuteBuy(userId, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusCreated
	message := "Compra ejecutada"
	if transaction.Status == models.StatusPending {
		message = "Mercado cerrado: orden de compra en cola"
	}

	c.JSON(status, gin.H{"message": message, "transaction": transaction})
}

// SellCoins ejecuta una orden de venta a precio de mercado
func SellCoins(c *gin.Context) {
	userId := c.GetString("userId")

	var req models.SellOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La cantidad debe ser mayor a cero"})
		return
	}

	transaction, err := orderRepo.ExecuteSell(userId, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusCreated
	message := "Venta ejecutada"
	if transaction.Status == models.StatusPending {
		message = "Mercado cerrado: orden de venta en cola"
	}

	c.JSON(status, gin.H{"message": message, "transaction": transaction})
}

// EstimateOrder calcula el costo o retorno de una orden sin ejecutarla
func EstimateOrder(c *gin.Context) {
	var req struct {
		CoinID   string  `json:"coin_id" binding:"required"`
		Type     string  `json:"type" binding:"required"`
		Quantity float64 `json:"quantity"`
		Amount   float64 `json:"amount"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate, err := orderRepo.EstimateOrder(req.CoinID, req.Type, req.Quantity, req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, estimate)
}

// CancelTransaction cancela una orden pendiente del usuario
func CancelTransaction(c *gin.Context) {
	userId := c.GetString("userId")
	transactionID := c.Param("id")

	transaction, err := orderRepo.CancelTransaction(userId, transactionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Orden cancelada", "transaction": transaction})
}
