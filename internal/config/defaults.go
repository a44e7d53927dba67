package config

const defaultDescription = "This completion report is updated weekly via automated full verification. It contains the most recent completion status."

// Default returns configuration of the standard collection layout
func Default() Configuration {
	return Configuration{
		Root:        ".",
		Description: defaultDescription,
		Include:     []string{"*.png"},
		Ignore:      []string{"* alt*", ".*", "Thumbs.db", "desktop.ini"},
		Layout:      DefaultLayout(),
		Dimensions: Dimensions{
			AspectTolerance:   0.03,
			PortraitTolerance: 0,
			Workers:           4,
		},
		Access: Access{
			Timeout: 30,
			Retries: 2,
		},
		Workers:      8,
		CheckTimeout: 600,
	}
}

// DefaultLayout returns folders of the standard collection
func DefaultLayout() []Category {
	library := func(name, kind string, landscape bool, sizes ...Size) Category {
		return Category{
			Name:      name,
			Kind:      kind,
			Required:  true,
			Landscape: landscape,
			Sizes:     sizes,
			Tiers: []Tier{
				{Kind: "primary", Dir: "library/" + name},
				{Kind: "lq", Dir: "library/" + name + "-lq"},
				{Kind: "missing", Dir: "library/" + name + "-missing"},
			},
		}
	}

	return []Category{
		library("2dbox", "primary-cover", true, Size{1200, 1200}),
		library("3dbox", "volumetric-render", false, Size{1325, 1200}, Size{1227, 1200}, Size{1273, 1200}),
		library("disc", "disc-image", false, Size{696, 694}),
		{
			Name:     "psp-icon0",
			Kind:     "derived-icon",
			Required: true,
			Sizes:    []Size{{144, 80}},
			Tiers: []Tier{
				{Kind: "primary", Dir: "composites/psp-icon0/psp-icon0-generated"},
				{Kind: "bespoke", Dir: "composites/psp-icon0/psp-icon0-bespoke"},
			},
		},
	}
}
