package middleware

import (
	"github.com/AgusMolinaCode/CTS_Api.git/internal/services"
)

// Instancia compartida del simulador de precios, usada por los handlers
// de mercado para reportar el último tick
var priceUpdaterInstance *services.PriceUpdater

func SetPriceUpdater(updater *services.PriceUpdater) {
	priceUpdaterInstance = updater
}

func GetPriceUpdater() *services.PriceUpdater {
	return priceUpdaterInstance
}
