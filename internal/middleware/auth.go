package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/database"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/repository"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/services"
)

// Balance inicial en USD con el que arranca cada cuenta del simulador
const initialBalance = 10000.0

var (
	userRepo *repository.UserRepository

	// Limitadores de intentos: login por email, registro por IP
	loginLimiter  = NewAttemptLimiter(5, 15*time.Minute)
	signupLimiter = NewAttemptLimiter(3, time.Hour)
)

func InitAuth() {
	userRepo = repository.NewUserRepository(database.DB)
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token no proporcionado"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		claims := token.Claims.(jwt.MapClaims)
		c.Set("userId", claims["userId"])
		c.Next()
	}
}

func GenerateToken(userId string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userId,
		"exp":    time.Now().Add(time.Hour * 24).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func GenerateResetToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func Login(c *gin.Context) {
	var login struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Limitar intentos por email para frenar fuerza bruta
	allowed, remaining, resetTime := loginLimiter.Allow(strings.ToLower(login.Email))
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "Demasiados intentos de inicio de sesión. Inténtalo más tarde.",
			"reset_time": resetTime.UTC().Format(time.RFC3339),
		})
		return
	}

	// Verificar si el usuario existe
	user, err := userRepo.GetUserByEmail(login.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales incorrectas", "remaining_attempts": remaining})
		return
	}

	// Verificar la contraseña
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(login.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales incorrectas", "remaining_attempts": remaining})
		return
	}

	// Login exitoso: limpiar los intentos acumulados
	loginLimiter.Reset(strings.ToLower(login.Email))

	token, err := GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inicio de sesión exitoso",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"balance":  user.Balance,
		},
	})
}

func Register(c *gin.Context) {
	var signup struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&signup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Limitar registros por IP
	allowed, _, resetTime := signupLimiter.Allow(c.ClientIP())
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "Demasiados registros desde esta dirección. Inténtalo más tarde.",
			"reset_time": resetTime.UTC().Format(time.RFC3339),
		})
		return
	}

	if msg := validateUsername(signup.Username); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if msg := validateEmailDomain(signup.Email); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if msg := validatePassword(signup.Password); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	// Verificar si el email o el usuario ya están registrados
	if _, err := userRepo.GetUserByEmail(signup.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El email ya está registrado"})
		return
	}
	if _, err := userRepo.GetUserByUsername(signup.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El nombre de usuario ya está en uso"})
		return
	}

	// Hash de la contraseña
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al procesar la contraseña"})
		return
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Username: signup.Username,
		Email:    signup.Email,
		Password: string(hashedPassword),
		Balance:  initialBalance,
	}

	if err := userRepo.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear usuario"})
		return
	}

	token, err := GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registro exitoso",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"balance":  user.Balance,
		},
	})
}

// Logout es del lado del cliente con JWT sin estado; el endpoint existe
// para que el frontend tenga a dónde apuntar
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

func RequestResetPassword(c *gin.Context) {
	var request struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Respondemos igual exista o no el usuario, para no filtrar qué
	// emails están registrados
	if _, err := userRepo.GetUserByEmail(request.Email); err == nil {
		token, err := GenerateResetToken(request.Email)
		if err == nil {
			if err := services.SendPasswordResetEmail(request.Email, token); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al enviar el email"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Si el email está registrado, recibirás un token de restablecimiento"})
}

func ResetPassword(c *gin.Context) {
	var request struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg := validatePassword(request.Password); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	token, err := jwt.Parse(request.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token de restablecimiento inválido o expirado"})
		return
	}

	claims := token.Claims.(jwt.MapClaims)
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token de restablecimiento inválido"})
		return
	}

	if err := userRepo.UpdatePassword(email, request.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar la contraseña"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contraseña actualizada"})
}
