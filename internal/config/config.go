package config

import (
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/RacoonMediaServer/rms-packages/pkg/configuration"
)

// Tier is a folder of a category
type Tier struct {
	// Kind is one of primary, lq, missing, bespoke
	Kind string

	// Dir is a folder path relative to the collection root
	Dir string

	// Suffix is stripped from file names before the title is extracted
	Suffix string
}

// Size is an image size in pixels
type Size struct {
	Width  int
	Height int
}

// Category describes an asset category and all of its folders
type Category struct {
	Name string

	// Kind is one of primary-cover, volumetric-render, disc-image, derived-icon
	Kind string

	// Required means every title must have an image of the category
	Required bool

	// Landscape means images must not be taller than wide
	Landscape bool

	// Standard sizes of the category
	Sizes []Size

	Tiers []Tier
}

// Dimensions are settings of image size analysis
type Dimensions struct {
	// AspectTolerance is a relative aspect ratio deviation still considered acceptable
	AspectTolerance float64 `json:"aspect-tolerance"`

	// PortraitTolerance is how much taller than wide (fraction of width) an image may be before flagged
	PortraitTolerance float64 `json:"portrait-tolerance"`

	// Workers limits concurrent folder scans
	Workers int
}

// Access are settings of file system access
type Access struct {
	// Timeout of a single file system operation in seconds
	Timeout int

	// Retries of a failed file system operation
	Retries int
}

// Configuration represents entire tool configuration
type Configuration struct {
	// Root is a collection root directory
	Root string

	// Catalog is a path to the filtered DAT file
	Catalog string

	// ExclusionReport is a path to the filter tool report
	ExclusionReport string `json:"exclusion-report"`

	// Output is a path where the report is written
	Output string

	// Markdown wraps written report to the completion page format
	Markdown bool

	// Description is the first line of the completion page
	Description string

	// MongoDB connection string for run history, history is not stored when empty
	Database string

	// HistoryDays is how long run records are kept, forever when zero
	HistoryDays int `json:"history-days"`

	// Include are glob patterns of image files
	Include []string

	// Ignore are glob patterns of files skipped silently
	Ignore []string

	// Layout lists categories and their folders
	Layout []Category

	Dimensions Dimensions

	Access Access

	// Workers limits concurrent content hashing
	Workers int

	// CheckTimeout limits a single check in seconds
	CheckTimeout int `json:"check-timeout"`
}

var config = Default()

// Load open and parses configuration file
func Load(configFilePath string) error {
	cfg := Default()
	if err := configuration.Load(configFilePath, &cfg); err != nil {
		return err
	}
	config = cfg
	return nil
}

// Config returns loaded configuration
func Config() Configuration {
	return config
}

// Set replaces current configuration
func Set(cfg Configuration) {
	config = cfg
}

// TierKind converts tier name to the model value
func TierKind(kind string) (model.Tier, bool) {
	switch kind {
	case "primary", "generated", "normal", "":
		return model.TierPrimary, true
	case "lq":
		return model.TierLowQuality, true
	case "missing":
		return model.TierMissing, true
	case "bespoke":
		return model.TierBespoke, true
	}
	return 0, false
}

// CategoryKind converts category kind name to the model value
func CategoryKind(kind string) (model.CategoryKind, bool) {
	switch kind {
	case "primary-cover", "":
		return model.KindPrimaryCover, true
	case "volumetric-render":
		return model.KindVolumetricRender, true
	case "disc-image":
		return model.KindDiscImage, true
	case "derived-icon":
		return model.KindDerivedIcon, true
	}
	return 0, false
}
