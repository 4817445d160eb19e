package catalog

import "time"

// Default returns the built-in catalogs. Flash-sale end times are
// offset from the provided reference time.
func Default(now time.Time) *Catalog {
	return &Catalog{
		Products:   defaultProducts(),
		Questions:  defaultQuestions(),
		Rewards:    defaultRewards(),
		Badges:     defaultBadges(),
		FlashSales: defaultFlashSales(now),
	}
}

func defaultProducts() []Product {
	return []Product{
		{ID: "1", Name: `Samsung 65" Class 4K UHD Smart TV`, Price: 548.00, OriginalPrice: 698.00, Description: "65-inch smart TV with 4K UHD picture, built-in streaming apps and HDR.", Category: "Electronics", Rollback: true},
		{ID: "2", Name: "HP 15.6\" Laptop, Intel Core i5", Price: 449.00, OriginalPrice: 549.00, Description: "Everyday laptop with Intel Core i5, 8GB RAM and 256GB SSD.", Category: "Electronics", Rollback: true},
		{ID: "3", Name: "Wireless Bluetooth Earbuds", Price: 24.88, Description: "True wireless earbuds with charging case and touch controls.", Category: "Electronics"},
		{ID: "4", Name: "Smartphone 128GB, Black", Price: 199.00, OriginalPrice: 249.00, Description: "Unlocked smartphone with 128GB storage and dual camera.", Category: "Electronics"},
		{ID: "5", Name: "12-Cup Programmable Coffee Maker", Price: 34.96, Description: "Programmable drip coffee maker with auto shut-off.", Category: "Home & Kitchen"},
		{ID: "q1", Name: "Milk - Whole, 1 Gallon", Price: 3.98, Description: "Fresh whole milk, perfect for daily needs.", Category: "Grocery", QuickDelivery: true},
		{ID: "q2", Name: "Bread - White Loaf", Price: 2.48, Description: "Fresh white bread loaf for everyday meals.", Category: "Grocery", QuickDelivery: true},
		{ID: "q3", Name: "Eggs - Grade A Large, 12 Count", Price: 2.78, Description: "Fresh grade A large eggs, dozen pack.", Category: "Grocery", QuickDelivery: true},
		{ID: "q4", Name: "Bananas - Fresh, 3 lbs", Price: 1.98, Description: "Fresh ripe bananas, perfect for snacking.", Category: "Grocery", QuickDelivery: true},
		{ID: "q5", Name: "Toilet Paper - 12 Pack", Price: 8.98, Description: "Essential bathroom tissue, 12-roll pack.", Category: "Home & Kitchen", QuickDelivery: true},
		{ID: "q6", Name: "Hand Sanitizer - 8 oz", Price: 3.47, Description: "Antibacterial hand sanitizer gel.", Category: "Health & Personal Care", QuickDelivery: true},
	}
}

func defaultQuestions() []QuizQuestion {
	return []QuizQuestion{
		{ID: "q1", Question: "What year was Walmart founded?", Options: []string{"1962", "1960", "1965", "1970"}, CorrectAnswer: 0, Points: 15, Category: "history"},
		{ID: "q2", Question: "Which of these is a Walmart private label brand?", Options: []string{"Great Value", "Kirkland", "Market Pantry", "Simple Truth"}, CorrectAnswer: 0, Points: 10, Category: "products"},
		{ID: "q3", Question: "What is Walmart's slogan?", Options: []string{"Save Money. Live Better.", "Always Low Prices", "Expect More. Pay Less.", "The Happiest Place on Earth"}, CorrectAnswer: 0, Points: 10, Category: "branding"},
		{ID: "q4", Question: "Walmart is headquartered in which state?", Options: []string{"Texas", "Arkansas", "California", "New York"}, CorrectAnswer: 1, Points: 15, Category: "company"},
		{ID: "q5", Question: "What service does Walmart+ provide?", Options: []string{"Free shipping", "Grocery delivery", "Gas discounts", "All of the above"}, CorrectAnswer: 3, Points: 20, Category: "services"},
	}
}

func defaultRewards() []SpinReward {
	return []SpinReward{
		{ID: "r1", Title: "10 Points", Description: "Earn 10 reward points", Value: "10", Type: RewardPoints, Probability: 40, Icon: "🎯"},
		{ID: "r2", Title: "5% Off", Description: "Get 5% off your next purchase", Value: "5", Type: RewardDiscount, Probability: 30, Icon: "💰"},
		{ID: "r3", Title: "Free Shipping", Description: "Free shipping on your next order", Value: "free", Type: RewardFreeShipping, Probability: 20, Icon: "🚚"},
		{ID: "r4", Title: "$5 Gift Card", Description: "Receive a $5 gift card", Value: "5", Type: RewardGiftCard, Probability: 10, Icon: "🎁"},
	}
}

func defaultBadges() []Badge {
	return []Badge{
		{ID: "quiz_master", Name: "Quiz Master", Description: "Complete 10 daily quizzes", Icon: "🧠", Requirement: "Complete 10 quizzes", Points: 100},
		{ID: "spin_champion", Name: "Spin Champion", Description: "Use the spin wheel 5 times", Icon: "🎰", Requirement: "Spin 5 times", Points: 50},
		{ID: "streak_master", Name: "Streak Master", Description: "Complete quizzes for 7 days in a row", Icon: "🔥", Requirement: "7-day streak", Points: 200},
		{ID: "loyal_shopper", Name: "Loyal Shopper", Description: "Complete 5 orders", Icon: "🛍️", Requirement: "5 orders", Points: 150},
		{ID: "first_order", Name: "First Order", Description: "Complete your first order", Icon: "🎉", Requirement: "1 order", Points: 25},
		{ID: "big_spender", Name: "Big Spender", Description: "Spend over $500 total", Icon: "💎", Requirement: "Spend $500+", Points: 300},
	}
}

func defaultFlashSales(now time.Time) []FlashSale {
	return []FlashSale{
		{ID: "fs1", Name: "Wireless Bluetooth Headphones", OriginalPrice: 79.99, SalePrice: 39.99, DiscountPercent: 50, EndTime: now.Add(2 * time.Hour), Total: 100, Claimed: 23},
		{ID: "fs2", Name: "Smart Fitness Watch", OriginalPrice: 199.99, SalePrice: 99.99, DiscountPercent: 50, EndTime: now.Add(4 * time.Hour), Total: 50, Claimed: 12},
		{ID: "fs3", Name: "Portable Phone Charger", OriginalPrice: 29.99, SalePrice: 14.99, DiscountPercent: 50, EndTime: now.Add(6 * time.Hour), Total: 200, Claimed: 67},
	}
}
