package catalog

// Default returns the built-in building set. A YAML catalog file can
// replace it wholesale; the balance numbers here are the shipped baseline.
func Default() *Catalog {
	c, err := New(defaultDefs)
	if err != nil {
		// The built-in table is validated by tests; a bad entry is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return c
}

var defaultDefs = []Definition{
	// Residential: positive population supplies housing.
	{ID: "res_capsule", Name: "Capsule Home", Category: Residential, Price: 100, Width: 1, Height: 1, Population: 5, XP: 10},
	{ID: "res_cabin", Name: "Forest Cabin", Category: Residential, Price: 350, Width: 1, Height: 1, Population: 8, XP: 20},
	{ID: "res_modern", Name: "Modern House", Category: Residential, Price: 800, Width: 2, Height: 1, Population: 12, XP: 35},
	{ID: "res_cottage", Name: "Cottage", Category: Residential, Price: 500, Width: 2, Height: 2, Population: 15, XP: 50},
	{ID: "res_duplex", Name: "Duplex", Category: Residential, Price: 1200, Width: 2, Height: 2, Population: 25, XP: 100},
	{ID: "res_villa", Name: "Villa", Category: Residential, Price: 3000, Width: 3, Height: 3, Population: 30, XP: 150, LightRadius: 3, LightColor: "#fecdd3"},
	{ID: "res_townhouse", Name: "Townhouse", Category: Residential, Price: 2500, Width: 2, Height: 2, Population: 40, XP: 200},
	{ID: "res_condo", Name: "City Condo", Category: Residential, Price: 5000, Width: 3, Height: 2, Population: 80, XP: 400},
	{ID: "res_tower", Name: "Skyscraper", Category: Residential, Price: 12000, Width: 3, Height: 3, Population: 150, XP: 1000, LightRadius: 5, LightColor: "#fff1f2"},
	{ID: "res_arcology", Name: "Arcology", Category: Residential, Price: 45000, Width: 4, Height: 4, Population: 500, XP: 3000},

	// Commercial: negative population consumes workers, earns income.
	{ID: "com_kiosk", Name: "Kiosk", Category: Commercial, Price: 300, Width: 1, Height: 1, Population: -2, Income: 25, XP: 25},
	{ID: "com_florist", Name: "Flower Shop", Category: Commercial, Price: 600, Width: 1, Height: 1, Population: -3, Income: 40, XP: 40},
	{ID: "com_bakery", Name: "Bakery", Category: Commercial, Price: 900, Width: 2, Height: 1, Population: -5, Income: 60, XP: 60},
	{ID: "com_market", Name: "Market", Category: Commercial, Price: 1200, Width: 2, Height: 2, Population: -10, Income: 120, XP: 150},
	{ID: "com_diner", Name: "Diner", Category: Commercial, Price: 2000, Width: 2, Height: 2, Population: -12, Income: 180, XP: 200, LightRadius: 3, LightColor: "#bfdbfe"},
	{ID: "com_mall", Name: "Plaza Mall", Category: Commercial, Price: 8000, Width: 4, Height: 3, Population: -60, Income: 600, XP: 800, LightRadius: 4, LightColor: "#ffffff"},
	{ID: "com_office", Name: "Office Tower", Category: Commercial, Price: 5000, Width: 3, Height: 3, Population: -45, Income: 450, XP: 600},
	{ID: "com_bank", Name: "Bank", Category: Commercial, Price: 10000, Width: 3, Height: 3, Population: -30, Income: 700, XP: 900},

	// Industrial.
	{ID: "ind_garage", Name: "Garage", Category: Industrial, Price: 800, Width: 2, Height: 2, Population: -8, Income: 90, XP: 100},
	{ID: "ind_sawmill", Name: "Sawmill", Category: Industrial, Price: 1200, Width: 3, Height: 2, Population: -10, Income: 130, XP: 150},
	{ID: "ind_warehouse", Name: "Warehouse", Category: Industrial, Price: 1500, Width: 3, Height: 2, Population: -15, Income: 150, XP: 200},
	{ID: "ind_factory", Name: "Factory", Category: Industrial, Price: 4500, Width: 3, Height: 3, Population: -40, Income: 500, XP: 550},
	{ID: "ind_power", Name: "Power Plant", Category: Industrial, Price: 8000, Width: 4, Height: 3, Population: -30, Income: 800, XP: 1000, LightRadius: 6, LightColor: "#fef3c7"},
	{ID: "ind_techpark", Name: "Tech Park", Category: Industrial, Price: 15000, Width: 4, Height: 4, Population: -100, Income: 1600, XP: 2000, LightRadius: 4, LightColor: "#60a5fa"},

	// Entertainment.
	{ID: "ent_cafe", Name: "Café", Category: Entertainment, Price: 2000, Width: 2, Height: 2, Population: -15, Income: 220, XP: 250},
	{ID: "ent_club", Name: "Neon Club", Category: Entertainment, Price: 4000, Width: 2, Height: 2, Population: -20, Income: 450, XP: 500, LightRadius: 4, LightColor: "#ff00ff"},
	{ID: "ent_circus", Name: "Circus", Category: Entertainment, Price: 6000, Width: 3, Height: 3, Population: -30, Income: 600, XP: 700, LightRadius: 4, LightColor: "#f472b6"},
	{ID: "ent_cinema", Name: "Cinema", Category: Entertainment, Price: 8000, Width: 3, Height: 3, Population: -50, Income: 900, XP: 1200, LightRadius: 5, LightColor: "#e879f9"},
	{ID: "ent_casino", Name: "Casino", Category: Entertainment, Price: 15000, Width: 3, Height: 3, Population: -40, Income: 1800, XP: 2000, LightRadius: 5, LightColor: "#fbbf24"},
	{ID: "ent_arena", Name: "Arena", Category: Entertainment, Price: 25000, Width: 4, Height: 4, Population: -150, Income: 2500, XP: 3000, LightRadius: 8, LightColor: "#ffffff"},

	// Decoration: neutral population.
	{ID: "dec_oak", Name: "Oak Tree", Category: Decoration, Price: 100, Width: 1, Height: 1, XP: 10},
	{ID: "dec_palm", Name: "Palm Tree", Category: Decoration, Price: 150, Width: 1, Height: 1, XP: 15},
	{ID: "dec_bench", Name: "Park Bench", Category: Decoration, Price: 50, Width: 1, Height: 1, XP: 5},
	{ID: "dec_lamp", Name: "Street Lamp", Category: Decoration, Price: 200, Width: 1, Height: 1, XP: 20, LightRadius: 4, LightColor: "#fbbf24"},
	{ID: "dec_fountain", Name: "Fountain", Category: Decoration, Price: 2500, Width: 2, Height: 2, Income: 10, XP: 300, LightRadius: 3, LightColor: "#67e8f9"},
	{ID: "dec_statue", Name: "Founder Statue", Category: Decoration, Price: 5000, Width: 2, Height: 2, Income: 20, XP: 500},
}
