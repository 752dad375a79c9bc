package market

import "github.com/borsazengini/trading-terminal/internal/models"

// defaultUniverse is the fixed set of instruments the terminal tracks,
// with their opening prices.
func defaultUniverse() []models.Stock {
	return []models.Stock{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 185.42, Category: models.CategoryTech},
		{Symbol: "TSLA", Name: "Tesla Motors", Price: 242.11, Category: models.CategoryTech},
		{Symbol: "BTC", Name: "Bitcoin", Price: 64200.00, Category: models.CategoryCrypto},
		{Symbol: "NVDA", Name: "NVIDIA Corp.", Price: 822.45, Category: models.CategoryTech},
		{Symbol: "GOLD", Name: "Gold Spot", Price: 2150.50, Category: models.CategoryFinance},
		{Symbol: "LVMH", Name: "LVMH Moet Hennessy", Price: 780.20, Category: models.CategoryLuxury},
		{Symbol: "XOM", Name: "Exxon Mobil", Price: 112.15, Category: models.CategoryEnergy},
		{Symbol: "JPM", Name: "JPMorgan Chase", Price: 188.32, Category: models.CategoryFinance},
	}
}
