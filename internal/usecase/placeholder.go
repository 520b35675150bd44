package usecase

import "github.com/zhivlux/storefront/internal/domain"

// PlaceholderSnapshot — минимальный каталог, подставляемый когда ни кэш,
// ни backend не дали данных. UI всегда получает что рендерить.
func PlaceholderSnapshot() *domain.CatalogSnapshot {
	products := []domain.Product{
		{
			ID:        "demo-mlbb",
			Name:      "Mobile Legends",
			Slug:      "mobile-legends",
			Category:  domain.CategoryGame,
			IsPopular: true,
			Variants: domain.FlatVariants([]domain.Variant{
				{Name: "86 Diamonds", Price: 20000},
				{Name: "172 Diamonds", Price: 40000},
				{Name: "257 Diamonds", Price: 60000},
			}),
			CurrencyName: "Diamonds",
			UserFields:   zoneUserFields(),
			Rating:       4.8,
			TotalReviews: 1200,
			Status:       domain.StatusActive,
		},
		{
			ID:        "demo-ff",
			Name:      "Free Fire",
			Slug:      "free-fire",
			Category:  domain.CategoryGame,
			IsPopular: true,
			Variants: domain.FlatVariants([]domain.Variant{
				{Name: "100 Diamonds", Price: 15000},
				{Name: "310 Diamonds", Price: 45000},
			}),
			CurrencyName: "Diamonds",
			UserFields:   domain.DefaultUserFields(),
			Rating:       4.7,
			TotalReviews: 980,
			Status:       domain.StatusActive,
		},
		{
			ID:        "demo-pubg",
			Name:      "PUBG Mobile",
			Slug:      "pubg-mobile",
			Category:  domain.CategoryGame,
			IsPopular: true,
			Variants: domain.FlatVariants([]domain.Variant{
				{Name: "60 UC", Price: 15000},
				{Name: "325 UC", Price: 75000},
			}),
			CurrencyName: "UC",
			UserFields:   domain.DefaultUserFields(),
			Rating:       4.6,
			TotalReviews: 860,
			Status:       domain.StatusActive,
		},
		{
			ID:       "demo-genshin",
			Name:     "Genshin Impact",
			Slug:     "genshin-impact",
			Category: domain.CategoryGame,
			Variants: domain.FlatVariants([]domain.Variant{
				{Name: "60 Genesis Crystals", Price: 16000},
				{Name: "330 Genesis Crystals", Price: 79000},
			}),
			CurrencyName: "Genesis Crystals",
			UserFields:   zoneUserFields(),
			Rating:       4.5,
			TotalReviews: 540,
			Status:       domain.StatusActive,
		},
		{
			ID:       "demo-roblox",
			Name:     "Roblox",
			Slug:     "roblox",
			Category: domain.CategoryGame,
			Variants: domain.MethodVariants([]domain.MethodGroup{
				{
					Method: "gamepass",
					Name:   "Via Gamepass",
					Packages: []domain.Variant{
						{Name: "100 Robux", Price: 15000},
						{Name: "500 Robux", Price: 70000},
					},
				},
				{
					Method: "login",
					Name:   "Via Login",
					Packages: []domain.Variant{
						{Name: "100 Robux", Price: 12000},
						{Name: "500 Robux", Price: 58000},
					},
				},
			}),
			CurrencyName: "Robux",
			UserFields:   domain.DefaultUserFields(),
			Rating:       4.4,
			TotalReviews: 410,
			Status:       domain.StatusActive,
		},
		{
			ID:       "demo-steam",
			Name:     "Steam Wallet",
			Slug:     "steam-wallet",
			Category: domain.CategoryVoucher,
			Variants: domain.FlatVariants([]domain.Variant{
				{Name: "IDR 12.000", Price: 15000},
				{Name: "IDR 60.000", Price: 68000},
			}),
			UserFields:   domain.DefaultUserFields(),
			Rating:       4.9,
			TotalReviews: 300,
			Status:       domain.StatusActive,
		},
	}
	return buildSnapshot(products, nil)
}

func zoneUserFields() domain.UserFields {
	uf := domain.DefaultUserFields()
	uf.ZoneID = &domain.UserField{Label: "Zone ID", Placeholder: "Enter Zone ID", Required: true}
	return uf
}
