package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/database"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/middleware"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/repository"
	routes "github.com/AgusMolinaCode/CTS_Api.git/internal/server"
	"github.com/AgusMolinaCode/CTS_Api.git/internal/services"
)

func main() {
	// Cargar variables de entorno
	if err := godotenv.Load(); err != nil {
		log.Printf("No se pudo cargar el archivo .env: %v", err)
	}

	// Crear el router de Gin
	router := gin.Default()

	// Límite global de requests, además de los límites por cuenta del login
	router.Use(middleware.Throttle(50, 100))

	// Configurar CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Admin-Key"}
	config.AllowCredentials = true
	config.ExposeHeaders = []string{"Content-Length", "Content-Disposition"}
	router.Use(cors.New(config))

	// Inicializar base de datos
	if err := database.InitDB(); err != nil {
		log.Fatalf("Error al inicializar la base de datos: %v", err)
	}
	defer database.DB.Close()

	if err := database.RunMigrations(); err != nil {
		log.Fatalf("Error al ejecutar migraciones: %v", err)
	}

	// Repositorios y servicios
	userRepo := repository.NewUserRepository(database.DB)
	coinRepo := repository.NewCoinRepository(database.DB)
	txRepo := repository.NewTransactionRepository(database.DB)

	marketService := services.NewMarketService(coinRepo)
	portfolioRepo := repository.NewPortfolioRepository(database.DB, userRepo, coinRepo, marketService)
	orderRepo := repository.NewOrderRepository(database.DB, userRepo, coinRepo, txRepo, portfolioRepo, marketService)

	// Conectar los handlers con sus dependencias
	middleware.InitAuth()
	middleware.InitMarket(coinRepo, marketService)
	middleware.InitTransactions(txRepo)
	middleware.InitOrders(orderRepo)
	middleware.InitPortfolio(portfolioRepo)

	// Iniciar el simulador de precios (un tick cada 15 segundos)
	priceUpdater := services.NewPriceUpdater(15*time.Second, coinRepo, marketService)
	priceUpdater.Start()
	defer priceUpdater.Stop()

	middleware.SetPriceUpdater(priceUpdater)

	// Configurar las rutas
	routes.RegisterRoutes(router)

	// Iniciar el servidor
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error al iniciar el servidor: %v", err)
	}
}
