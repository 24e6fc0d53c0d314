package catalog

// Default returns the storefront's seeded catalog.
func Default() *Catalog {
	return New([]Product{
		{
			ID:              "sw-win11",
			Title:           "Windows 11 Professional Retail Key",
			Price:           6.99,
			Category:        CategorySoftware,
			Image:           "https://images.unsplash.com/photo-1633419461186-7d40a38105ec?w=800",
			OldPrice:        199.00,
			Discount:        96,
			Badge:           "BESTSELLER",
			InstantDelivery: true,
		},
		{
			ID:              "sw-off21",
			Title:           "Office 2021 Professional Plus Key",
			Price:           14.50,
			Category:        CategorySoftware,
			Image:           "https://images.unsplash.com/photo-1611162617474-5b21e879e113?w=800",
			OldPrice:        439.00,
			Discount:        97,
			InstantDelivery: true,
		},
		{
			ID:              "sw-vs22",
			Title:           "Visual Studio 2022 Enterprise License",
			Price:           29.99,
			Category:        CategorySoftware,
			Image:           "https://images.unsplash.com/photo-1587620962725-abab7fe55159?w=800",
			OldPrice:        199.99,
			Discount:        85,
			InstantDelivery: true,
		},
		{
			ID:              "tr-canva",
			Title:           "Canva Pro Lifetime - Private Account",
			Price:           12.99,
			Category:        CategoryTrending,
			Image:           "https://images.unsplash.com/photo-1611162616305-c69b3fa7fbe0?w=800",
			OldPrice:        24.99,
			Discount:        48,
			Badge:           "HOT",
			InstantDelivery: true,
		},
		{
			ID:              "tr-adobe",
			Title:           "Adobe Creative Cloud All Apps (1 Year)",
			Price:           89.00,
			Category:        CategoryTrending,
			Image:           "https://images.unsplash.com/photo-1626785774573-4b799315345d?w=800",
			OldPrice:        599.00,
			Discount:        85,
			InstantDelivery: true,
		},
		{
			ID:              "sub-xbox",
			Title:           "Xbox Game Pass Ultimate - 3 Months",
			Price:           24.99,
			Category:        CategorySubscriptions,
			Image:           "https://images.unsplash.com/photo-1605902711622-cfb43c4437b5?w=800",
			OldPrice:        44.99,
			Discount:        44,
			InstantDelivery: true,
		},
		{
			ID:              "sub-psn",
			Title:           "PlayStation Plus Deluxe - 12 Months",
			Price:           55.00,
			Category:        CategorySubscriptions,
			Image:           "https://images.unsplash.com/photo-1606144042614-b2417e99c4e3?w=800",
			OldPrice:        79.99,
			Discount:        31,
			InstantDelivery: true,
		},
		{
			ID:              "sub-gpt",
			Title:           "ChatGPT Plus Premium - 1 Month",
			Price:           18.00,
			Category:        CategorySubscriptions,
			Image:           "https://images.unsplash.com/photo-1673174719234-73410503126d?w=800",
			OldPrice:        20.00,
			Discount:        10,
			InstantDelivery: true,
		},
		{
			ID:              "gm-elden",
			Title:           "Elden Ring - Steam Key Global",
			Price:           27.50,
			Category:        CategoryGames,
			Image:           "https://images.unsplash.com/photo-1552820728-8b83bb6b773f?w=800",
			OldPrice:        59.99,
			Discount:        54,
			Badge:           "HOT",
			InstantDelivery: true,
		},
		{
			ID:              "gm-cyber",
			Title:           "Cyberpunk 2077 Ultimate - GOG Key",
			Price:           19.99,
			Category:        CategoryGames,
			Image:           "https://images.unsplash.com/photo-1542751371-adc38448a05e?w=800",
			OldPrice:        69.99,
			Discount:        71,
			InstantDelivery: true,
		},
		{
			ID:              "av-kasp",
			Title:           "Kaspersky Plus - 1 Device 1 Year",
			Price:           9.99,
			Category:        CategoryAntivirus,
			Image:           "https://images.unsplash.com/photo-1563013544-824ae1b704d3?w=800",
			OldPrice:        39.99,
			Discount:        75,
			InstantDelivery: true,
		},
		{
			ID:              "av-norton",
			Title:           "Norton 360 Deluxe - 5 Devices 1 Year",
			Price:           13.49,
			Category:        CategoryAntivirus,
			Image:           "https://images.unsplash.com/photo-1510511459019-5dda7724fd87?w=800",
			OldPrice:        49.99,
			Discount:        73,
			InstantDelivery: true,
		},
	})
}
