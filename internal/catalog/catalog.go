package catalog

import "time"

// RewardType classifies what a spin-wheel reward grants.
type RewardType string

const (
	RewardPoints       RewardType = "points"
	RewardDiscount     RewardType = "discount"
	RewardFreeShipping RewardType = "free-shipping"
	RewardGiftCard     RewardType = "gift-card"
)

// Product is a storefront catalog entry.
type Product struct {
	ID            string  `yaml:"id" json:"id"`
	Name          string  `yaml:"name" json:"name"`
	Price         float64 `yaml:"price" json:"price"`
	OriginalPrice float64 `yaml:"original_price" json:"original_price,omitempty"`
	Description   string  `yaml:"description" json:"description"`
	Category      string  `yaml:"category" json:"category"`
	Rollback      bool    `yaml:"rollback" json:"rollback"`
	QuickDelivery bool    `yaml:"quick_delivery" json:"quick_delivery"`
}

// QuizQuestion is a trivia catalog entry. CorrectAnswer indexes Options.
type QuizQuestion struct {
	ID            string   `yaml:"id" json:"id"`
	Question      string   `yaml:"question" json:"question"`
	Options       []string `yaml:"options" json:"options"`
	CorrectAnswer int      `yaml:"correct_answer" json:"-"`
	Points        int      `yaml:"points" json:"points"`
	Category      string   `yaml:"category" json:"category"`
}

// SpinReward is a wheel segment. Probability is a weight out of 100;
// the weights of a wheel should sum to 100 but the engine tolerates
// catalogs where they do not.
type SpinReward struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Value       string     `yaml:"value" json:"value"`
	Type        RewardType `yaml:"type" json:"type"`
	Probability int        `yaml:"probability" json:"probability"`
	Icon        string     `yaml:"icon" json:"icon"`
}

// Badge is an achievement definition. Points is informational and is
// not credited on unlock.
type Badge struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Requirement string `yaml:"requirement" json:"requirement"`
	Points      int    `yaml:"points" json:"points"`
}

// FlashSale is a limited-time, limited-quantity offer.
type FlashSale struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	OriginalPrice   float64   `json:"original_price"`
	SalePrice       float64   `json:"sale_price"`
	DiscountPercent int       `json:"discount_percent"`
	EndTime         time.Time `json:"end_time"`
	Total           int       `json:"total"`
	Claimed         int       `json:"claimed"`
}

// Catalog bundles the static read-only data the service consumes.
type Catalog struct {
	Products   []Product
	Questions  []QuizQuestion
	Rewards    []SpinReward
	Badges     []Badge
	FlashSales []FlashSale
}

// Product returns the product with the given id, searching the
// storefront and quick-delivery lists.
func (c *Catalog) Product(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FlashSale returns the flash-sale item with the given id.
func (c *Catalog) FlashSale(id string) (FlashSale, bool) {
	for _, fs := range c.FlashSales {
		if fs.ID == id {
			return fs, true
		}
	}
	return FlashSale{}, false
}
