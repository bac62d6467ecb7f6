package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/models"
)

// CoinSource define las operaciones que el mercado necesita del
// repositorio de monedas, sin acoplar este paquete al repositorio concreto
type CoinSource interface {
	GetCoins() ([]models.Coin, error)
	GetCoin(coinID string) (*models.Coin, error)
	UpdateCoinPrice(coinID string, newPrice float64) error
}

// Tiempo de vida de los precios cacheados. El PriceUpdater los refresca en
// cada tick, así que el TTL solo cubre el caso de un updater detenido.
const (
	priceCacheTTL     = 30 * time.Second
	priceCacheCleanup = 5 * time.Minute
)

// MarketService expone el estado del mercado simulado y una caché de
// precios para que el portafolio no golpee la base en cada valoración
type MarketService struct {
	coins      CoinSource
	priceCache *cache.Cache
	openHour   int
	closeHour  int
}

// NewMarketService crea el servicio de mercado. Las horas de apertura se
// leen de MARKET_OPEN_HOUR / MARKET_CLOSE_HOUR (UTC); sin configuración el
// mercado está siempre abierto.
func NewMarketService(coins CoinSource) *MarketService {
	openHour, closeHour := -1, -1
	if raw := os.Getenv("MARKET_OPEN_HOUR"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			openHour = parsed
		}
	}
	if raw := os.Getenv("MARKET_CLOSE_HOUR"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			closeHour = parsed
		}
	}

	return &MarketService{
		coins:      coins,
		priceCache: cache.New(priceCacheTTL, priceCacheCleanup),
		openHour:   openHour,
		closeHour:  closeHour,
	}
}

// IsOpen indica si el mercado simulado acepta órdenes en este momento
func (s *MarketService) IsOpen() bool {
	if s.openHour < 0 || s.closeHour < 0 {
		return true
	}
	hour := time.Now().UTC().Hour()
	if s.openHour <= s.closeHour {
		return hour >= s.openHour && hour < s.closeHour
	}
	// Horario que cruza medianoche
	return hour >= s.openHour || hour < s.closeHour
}

func (s *MarketService) Status(lastUpdated time.Time) models.MarketStatus {
	status := models.MarketStatus{
		IsOpen:      s.IsOpen(),
		ServerTime:  time.Now().UTC(),
		LastUpdated: lastUpdated,
	}
	if status.IsOpen {
		status.Message = "El mercado está abierto"
	} else {
		status.Message = fmt.Sprintf("El mercado está cerrado (horario %02d:00-%02d:00 UTC)", s.openHour, s.closeHour)
	}
	return status
}

// GetCurrentPrice devuelve el precio actual de la moneda, desde la caché
// si está fresca. Devuelve 0 si la moneda no existe.
func (s *MarketService) GetCurrentPrice(coinID string) float64 {
	if cached, found := s.priceCache.Get(coinID); found {
		if price, ok := cached.(float64); ok {
			return price
		}
	}

	coin, err := s.coins.GetCoin(coinID)
	if err != nil {
		log.Printf("Error al obtener precio de %s: %v", coinID, err)
		return 0
	}

	s.priceCache.Set(coinID, coin.CurrentPrice, cache.DefaultExpiration)
	return coin.CurrentPrice
}

// SetCachedPrice actualiza la caché tras un tick del actualizador
func (s *MarketService) SetCachedPrice(coinID string, price float64) {
	s.priceCache.Set(coinID, price, cache.DefaultExpiration)
}
