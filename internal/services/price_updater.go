package services

import (
	"log"
	"math/rand"
	"sync"
	"time"
)

// Volatilidad máxima por tick del paseo aleatorio (±0.75%)
const tickVolatility = 0.0075

// PriceUpdater es el servicio que mueve los precios del mercado simulado
// periódicamente. No hay feed de un exchange real: cada tick aplica un
// paseo aleatorio acotado entre min_price y max_price de cada moneda.
type PriceUpdater struct {
	interval    time.Duration
	coins       CoinSource
	market      *MarketService
	rng         *rand.Rand
	isRunning   bool
	stopChan    chan struct{}
	mutex       sync.Mutex
	lastUpdated time.Time
}

// NewPriceUpdater crea un nuevo actualizador de precios
func NewPriceUpdater(interval time.Duration, coins CoinSource, market *MarketService) *PriceUpdater {
	return &PriceUpdater{
		interval: interval,
		coins:    coins,
		market:   market,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		stopChan: make(chan struct{}),
	}
}

// Start inicia el servicio de actualización de precios
func (p *PriceUpdater) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.isRunning {
		return
	}

	p.isRunning = true
	p.stopChan = make(chan struct{})

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		// Actualizar inmediatamente al iniciar
		p.updateAllPrices()

		for {
			select {
			case <-ticker.C:
				p.updateAllPrices()
			case <-p.stopChan:
				return
			}
		}
	}()

	log.Printf("Servicio de actualización de precios iniciado con intervalo de %v", p.interval)
}

// Stop detiene el servicio de actualización de precios
func (p *PriceUpdater) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.isRunning {
		return
	}

	p.isRunning = false
	close(p.stopChan)
	log.Printf("Servicio de actualización de precios detenido")
}

// updateAllPrices aplica un tick del paseo aleatorio a todas las monedas
func (p *PriceUpdater) updateAllPrices() {
	coins, err := p.coins.GetCoins()
	if err != nil {
		log.Printf("Error al obtener monedas para actualizar precios: %v", err)
		return
	}

	for _, coin := range coins {
		newPrice := p.nextPrice(coin.CurrentPrice, coin.MinPrice, coin.MaxPrice)

		if err := p.coins.UpdateCoinPrice(coin.ID, newPrice); err != nil {
			log.Printf("Error al actualizar precio de %s: %v", coin.Symbol, err)
			continue
		}

		p.market.SetCachedPrice(coin.ID, newPrice)
	}

	p.mutex.Lock()
	p.lastUpdated = time.Now()
	p.mutex.Unlock()
}

// nextPrice calcula el siguiente precio del paseo aleatorio, acotado a los
// límites de la moneda
func (p *PriceUpdater) nextPrice(current, min, max float64) float64 {
	if current <= 0 {
		return current
	}

	// Variación uniforme en [-tickVolatility, +tickVolatility]
	delta := (p.rng.Float64()*2 - 1) * tickVolatility
	next := current * (1 + delta)

	if min > 0 && next < min {
		next = min
	}
	if max > 0 && next > max {
		next = max
	}

	return next
}

// GetLastUpdated obtiene la última vez que se actualizaron los precios
func (p *PriceUpdater) GetLastUpdated() time.Time {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.lastUpdated
}
