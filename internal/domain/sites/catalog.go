package sites

// catalog holds the monitored Oahu sites. Observation data is keyed by site
// name upstream, so names must match the warehouse rows exactly.
var catalog = []Site{
	{
		ID:             "hanauma-bay",
		Name:           "Hanauma Bay",
		Coordinates:    Coordinates{Latitude: 21.2693, Longitude: -157.6943},
		Type:           TypeBay,
		Description:    "Marine life conservation area, famous snorkeling spot",
		Facilities:     []string{"restrooms", "parking", "rentals", "lifeguards"},
		BestConditions: "Morning, calm days",
		Difficulty:     DifficultyBeginner,
	},
	{
		ID:             "sharks-cove",
		Name:           "Sharks Cove",
		Coordinates:    Coordinates{Latitude: 21.6447, Longitude: -158.0631},
		Type:           TypeCove,
		Description:    "Rocky tide pools, excellent snorkeling in summer",
		Facilities:     []string{"parking", "food_trucks"},
		BestConditions: "Summer months, flat surf",
		Difficulty:     DifficultyIntermediate,
	},
	{
		ID:             "three-tables",
		Name:           "Three Tables",
		Coordinates:    Coordinates{Latitude: 21.6439, Longitude: -158.0678},
		Type:           TypeReef,
		Description:    "Three flat reef formations, great for beginners",
		Facilities:     []string{"parking"},
		BestConditions: "Summer, low swell",
		Difficulty:     DifficultyBeginner,
	},
	{
		ID:             "electric-beach",
		Name:           "Electric Beach",
		Coordinates:    Coordinates{Latitude: 21.3558, Longitude: -158.1467},
		Type:           TypeBeach,
		Description:    "Warm water from power plant attracts marine life",
		Facilities:     []string{"parking"},
		BestConditions: "Year-round, calmer in summer",
		Difficulty:     DifficultyIntermediate,
	},
	{
		ID:             "waikiki-beach",
		Name:           "Waikiki Beach",
		Coordinates:    Coordinates{Latitude: 21.2793, Longitude: -157.8294},
		Type:           TypeBeach,
		Description:    "Urban beach with accessible reef snorkeling",
		Facilities:     []string{"restrooms", "parking", "rentals", "lifeguards", "showers"},
		BestConditions: "Year-round, morning best",
		Difficulty:     DifficultyBeginner,
	},
	{
		ID:             "makaha-beach",
		Name:           "Makaha Beach",
		Coordinates:    Coordinates{Latitude: 21.4694, Longitude: -158.2192},
		Type:           TypeBeach,
		Description:    "West side beach with sea turtles",
		Facilities:     []string{"parking", "restrooms", "lifeguards"},
		BestConditions: "Summer, calm surf",
		Difficulty:     DifficultyIntermediate,
	},
	{
		ID:             "lanikai-beach",
		Name:           "Lanikai Beach",
		Coordinates:    Coordinates{Latitude: 21.3950, Longitude: -157.7181},
		Type:           TypeBeach,
		Description:    "Windward side, crystal clear waters",
		Facilities:     []string{"street_parking"},
		BestConditions: "Morning, trade winds calm",
		Difficulty:     DifficultyBeginner,
	},
	{
		ID:             "haleiwa",
		Name:           "Haleiwa",
		Coordinates:    Coordinates{Latitude: 21.5933, Longitude: -158.1053},
		Type:           TypeHarbor,
		Description:    "North shore harbor, boat diving access",
		Facilities:     []string{"harbor", "dive_shops", "parking"},
		BestConditions: "Summer months",
		Difficulty:     DifficultyAllLevels,
	},
	{
		ID:             "pupukea",
		Name:           "Pupukea",
		Coordinates:    Coordinates{Latitude: 21.6592, Longitude: -158.0556},
		Type:           TypeReef,
		Description:    "Marine life conservation district",
		Facilities:     []string{"parking"},
		BestConditions: "Summer, flat conditions",
		Difficulty:     DifficultyIntermediate,
	},
	{
		ID:             "ko-olina-lagoons",
		Name:           "Ko Olina Lagoons",
		Coordinates:    Coordinates{Latitude: 21.3394, Longitude: -158.1247},
		Type:           TypeLagoon,
		Description:    "Protected lagoons, calm waters",
		Facilities:     []string{"restrooms", "parking", "rentals", "showers"},
		BestConditions: "Year-round",
		Difficulty:     DifficultyBeginner,
	},
	{
		ID:             "kahe-point",
		Name:           "Kahe Point",
		Coordinates:    Coordinates{Latitude: 21.3542, Longitude: -158.1308},
		Type:           TypeReef,
		Description:    "Adjacent to Electric Beach, diverse coral",
		Facilities:     []string{"parking"},
		BestConditions: "Calm days, morning",
		Difficulty:     DifficultyAdvanced,
	},
	{
		ID:             "sans-souci",
		Name:           "Sans Souci Beach",
		Coordinates:    Coordinates{Latitude: 21.2647, Longitude: -157.8211},
		Type:           TypeBeach,
		Description:    "Kaimana Beach, calm protected waters",
		Facilities:     []string{"restrooms", "parking", "showers"},
		BestConditions: "Year-round",
		Difficulty:     DifficultyBeginner,
	},
	{
		ID:             "ala-moana",
		Name:           "Ala Moana Beach",
		Coordinates:    Coordinates{Latitude: 21.2897, Longitude: -157.8489},
		Type:           TypeBeach,
		Description:    "Urban reef, easy access",
		Facilities:     []string{"restrooms", "parking", "lifeguards", "showers"},
		BestConditions: "Morning, calm days",
		Difficulty:     DifficultyBeginner,
	},
	{
		ID:             "kuilima-cove",
		Name:           "Kuilima Cove",
		Coordinates:    Coordinates{Latitude: 21.7069, Longitude: -157.9922},
		Type:           TypeCove,
		Description:    "Turtle Bay area, sheltered cove",
		Facilities:     []string{"resort_access", "parking"},
		BestConditions: "Year-round, morning",
		Difficulty:     DifficultyBeginner,
	},
	{
		ID:             "waimea-bay",
		Name:           "Waimea Bay",
		Coordinates:    Coordinates{Latitude: 21.6419, Longitude: -158.0656},
		Type:           TypeBay,
		Description:    "North shore icon, summer snorkeling",
		Facilities:     []string{"restrooms", "parking", "lifeguards", "showers"},
		BestConditions: "Summer only, flat conditions",
		Difficulty:     DifficultyIntermediate,
	},
}
