package models

// Category groups instruments by how aggressively the simulator moves them.
type Category string

const (
	CategoryTech    Category = "Tech"
	CategoryEnergy  Category = "Energy"
	CategoryFinance Category = "Finance"
	CategoryCrypto  Category = "Crypto"
	CategoryLuxury  Category = "Luxury"
)

// Volatility returns the per-tick volatility constant for the category.
// Crypto swings 4x harder than everything else.
func (c Category) Volatility() float64 {
	if c == CategoryCrypto {
		return 0.04
	}
	return 0.01
}

// PricePoint is one sample in a stock's bounded price history window.
type PricePoint struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

// Stock represents one tradable instrument with its live simulated price.
// Change and ChangePercent describe the move of the most recent tick.
type Stock struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Category      Category     `json:"category"`
	Price         float64      `json:"price"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"change_percent"`
	History       []PricePoint `json:"history"`
}
