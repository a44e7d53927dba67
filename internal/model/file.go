package model

// Tier is a quality or fallback level of an asset folder
type Tier int

const (
	// TierPrimary is the high quality folder (or the generated folder for derived assets)
	TierPrimary Tier = iota

	// TierLowQuality holds images that are waiting for a better scan
	TierLowQuality

	// TierMissing holds blank templates for assets that are known to be unobtainable
	TierMissing

	// TierBespoke holds hand-made replacements
	TierBespoke
)

// ResolutionOrder is the order tiers are consulted when looking for an asset
var ResolutionOrder = []Tier{TierPrimary, TierLowQuality, TierBespoke, TierMissing}

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierLowQuality:
		return "lq"
	case TierMissing:
		return "missing"
	case TierBespoke:
		return "bespoke"
	}
	return "unknown"
}

// IsPlaceholder reports whether files in the tier are blank templates
func (t Tier) IsPlaceholder() bool {
	return t == TierMissing
}

// Asset is a single image file found in the collection
type Asset struct {
	Title    Title
	Category Category
	Tier     Tier

	// Path is an absolute path of the file
	Path string

	// Rel is a path relative to the collection root, used in reports
	Rel string

	Size int64
}
