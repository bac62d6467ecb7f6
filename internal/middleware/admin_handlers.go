package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
)

func GetUsers(c *gin.Context) {
	users, err := userRepo.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener usuarios"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}

func GetUser(c *gin.Context) {
	userId := c.Param("id")

	user, err := userRepo.GetUserById(userId)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

func GetUserByEmail(c *gin.Context) {
	email := c.Param("email")

	user, err := userRepo.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

func DeleteUserByAdmin(c *gin.Context) {
	userId := c.Param("id")

	if err := userRepo.DeleteUser(userId); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar usuario"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})
}

// CreateCoin da de alta una moneda nueva en el mercado simulado
func CreateCoin(c *gin.Context) {
	var req struct {
		ID                string  `json:"id" binding:"required"`
		Name              string  `json:"name" binding:"required"`
		Symbol            string  `json:"symbol" binding:"required"`
		CurrentPrice      float64 `json:"current_price" binding:"required,gt=0"`
		CirculatingSupply float64 `json:"circulating_supply" binding:"required,gt=0"`
		MinPrice          float64 `json:"min_price"`
		MaxPrice          float64 `json:"max_price"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Límites por defecto del paseo aleatorio: la mitad y el doble del
	// precio inicial
	if req.MinPrice <= 0 {
		req.MinPrice = req.CurrentPrice / 2
	}
	if req.MaxPrice <= req.MinPrice {
		req.MaxPrice = req.CurrentPrice * 2
	}

	coin := &models.Coin{
		ID:                strings.ToLower(req.ID),
		Name:              req.Name,
		Symbol:            strings.ToUpper(req.Symbol),
		CurrentPrice:      req.CurrentPrice,
		MarketCap:         req.CurrentPrice * req.CirculatingSupply,
		CirculatingSupply: req.CirculatingSupply,
		MinPrice:          req.MinPrice,
		MaxPrice:          req.MaxPrice,
	}

	if err := coinRepo.CreateCoin(coin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear moneda"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Moneda creada", "coin": coin})
}
