package species

const bambooLogo = "assets/images/bamboo-logo.png"

// builtin is the catalog shipped with the binary. Use Default to access it.
var builtin = []Record{
	{
		ID:             "1",
		Name:           "Giant Bamboo",
		ScientificName: "Dendrocalamus giganteus",
		Image:          bambooLogo,
		Gallery:        []string{bambooLogo},
		Height:         "25-35m",
		Category:       Timber,
		Rarity:         Common,
		Origin:         "Southeast Asia",
		GrowthRate:     "Very Fast (up to 30cm/day)",
		Sunlight:       "Full Sun to Partial Shade",
		Water:          "High water requirements",
		Temperature:    "20-35°C (68-95°F)",
		Description:    "Giant Bamboo is the largest bamboo species in the world, known for its impressive height and thick culms. It's highly valued for construction and commercial purposes due to its strength and rapid growth.",
		Uses: []string{
			"Construction",
			"Paper production",
			"Furniture",
			"Scaffolding",
			"Handicrafts",
		},
		Characteristics: []string{
			"Extremely tall with thick culms (15-20cm diameter)",
			"Rapid growth rate",
			"Strong and durable wood",
			"Large leaves with prominent veins",
			"Clumping growth habit",
		},
		CareInstructions: "Requires well-drained, fertile soil with consistent moisture. Plant in sunny to partially shaded locations with protection from strong winds. Regular fertilization promotes optimal growth.",
		BloomingPeriod:   "Once every 40-80 years",
		Propagation:      "Rhizome division, culm cuttings, or tissue culture",
	},
	{
		ID:             "2",
		Name:           "Golden Bamboo",
		ScientificName: "Phyllostachys aurea",
		Image:          bambooLogo,
		Gallery:        []string{bambooLogo},
		Height:         "6-10m",
		Category:       Running,
		Rarity:         Common,
		Origin:         "China",
		GrowthRate:     "Fast (10-15cm/day)",
		Sunlight:       "Full Sun to Partial Shade",
		Water:          "Moderate water requirements",
		Temperature:    "10-30°C (50-86°F)",
		Description:    "Golden Bamboo is a popular ornamental species known for its distinctive golden-yellow culms and dense foliage. It's widely cultivated as a privacy screen and decorative plant.",
		Uses: []string{
			"Ornamental landscaping",
			"Privacy screens",
			"Fishing poles",
			"Garden stakes",
			"Small crafts",
		},
		Characteristics: []string{
			"Golden-yellow culms that intensify with age",
			"Dense, running growth habit",
			"Cold tolerant",
			"Distinctive shortened internodes at base",
			"Fine, delicate leaves",
		},
		CareInstructions: "Adaptable to various soil types but prefers well-drained conditions. Contains spread with root barriers for running varieties. Prune regularly to maintain desired shape.",
		BloomingPeriod:   "Once every 65-120 years",
		Propagation:      "Rhizome division or culm cuttings",
	},
	{
		ID:             "3",
		Name:           "Black Bamboo",
		ScientificName: "Phyllostachys nigra",
		Image:          bambooLogo,
		Gallery:        []string{bambooLogo},
		Height:         "4-8m",
		Category:       Running,
		Rarity:         Uncommon,
		Origin:         "China",
		GrowthRate:     "Moderate (5-10cm/day)",
		Sunlight:       "Full Sun to Partial Shade",
		Water:          "Moderate water requirements",
		Temperature:    "5-25°C (41-77°F)",
		Description:    "Black Bamboo is prized for its striking ebony-black culms that develop their color over 2-3 years. It's a highly sought-after ornamental species for Asian-inspired gardens.",
		Uses: []string{
			"Ornamental landscaping",
			"Interior decoration",
			"Floral arrangements",
			"Traditional crafts",
			"Garden accents",
		},
		Characteristics: []string{
			"Culms turn from green to jet black with age",
			"Moderate running growth",
			"Excellent cold tolerance",
			"Graceful, arching form",
			"Small, refined leaves",
		},
		CareInstructions: "Prefers slightly acidic, well-drained soil. Benefits from mulching and regular watering during dry periods. Best black coloration develops in full sun.",
		BloomingPeriod:   "Once every 120+ years",
		Propagation:      "Rhizome division (best method for maintaining black coloration)",
	},
	{
		ID:             "4",
		Name:           "Buddha Belly",
		ScientificName: "Bambusa ventricosa",
		Image:          bambooLogo,
		Gallery:        []string{bambooLogo},
		Height:         "3-6m",
		Category:       Clumping,
		Rarity:         Uncommon,
		Origin:         "Southern China",
		GrowthRate:     "Moderate (8-12cm/day)",
		Sunlight:       "Full Sun to Partial Shade",
		Water:          "Moderate water requirements",
		Temperature:    "15-30°C (59-86°F)",
		Description:    "Buddha Belly Bamboo is famous for its distinctive swollen internodes that create a unique \"belly\" appearance. This ornamental bamboo is popular in bonsai and container growing.",
		Uses: []string{
			"Ornamental landscaping",
			"Bonsai cultivation",
			"Container gardening",
			"Indoor decoration",
			"Artistic displays",
		},
		Characteristics: []string{
			"Distinctive swollen internodes (belly shape)",
			"Compact clumping growth",
			"Excellent for containers",
			"Drought tolerant once established",
			"Unique architectural form",
		},
		CareInstructions: "Thrives in well-draining soil with regular watering. Perfect for containers and can be grown indoors with adequate light. Prune to maintain desired shape and size.",
		BloomingPeriod:   "Once every 30-65 years",
		Propagation:      "Division of clumps or culm cuttings",
	},
	{
		ID:             "5",
		Name:           "Moso Bamboo",
		ScientificName: "Phyllostachys edulis",
		Image:          bambooLogo,
		Gallery:        []string{bambooLogo},
		Height:         "15-25m",
		Category:       Timber,
		Rarity:         Common,
		Origin:         "China and Japan",
		GrowthRate:     "Very Fast (up to 35cm/day)",
		Sunlight:       "Full Sun to Partial Shade",
		Water:          "Moderate to high water requirements",
		Temperature:    "5-35°C (41-95°F)",
		Description:    "Moso Bamboo is one of the most economically important bamboo species, widely cultivated for timber, food (bamboo shoots), and paper production. It's known for its exceptional growth rate and versatility.",
		Uses: []string{
			"Timber production",
			"Bamboo shoots (food)",
			"Paper manufacturing",
			"Flooring",
			"Construction materials",
		},
		Characteristics: []string{
			"Large diameter culms (up to 20cm)",
			"Exceptional growth rate",
			"High-quality timber",
			"Edible young shoots",
			"Running growth pattern",
		},
		CareInstructions: "Requires fertile, well-drained soil with consistent moisture. Benefits from regular fertilization. Control spread with barriers for running varieties. Harvest shoots in spring for best flavor.",
		BloomingPeriod:   "Once every 67-120 years",
		Propagation:      "Rhizome division, culm cuttings, or seed (rare)",
	},
}
