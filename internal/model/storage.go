package model

// Category is an asset category of the collection
type Category string

const (
	Category2DBox Category = "2dbox"
	Category3DBox Category = "3dbox"
	CategoryDisc  Category = "disc"
	CategoryIcon  Category = "psp-icon0"
)

// CategoryKind describes what sort of image a category holds
type CategoryKind int

const (
	// KindPrimaryCover is a flat front cover scan
	KindPrimaryCover CategoryKind = iota

	// KindVolumetricRender is a rendered 3D box
	KindVolumetricRender

	// KindDiscImage is a disc label scan
	KindDiscImage

	// KindDerivedIcon is a composite generated from the primary assets
	KindDerivedIcon
)

func (k CategoryKind) String() string {
	switch k {
	case KindPrimaryCover:
		return "primary-cover"
	case KindVolumetricRender:
		return "volumetric-render"
	case KindDiscImage:
		return "disc-image"
	case KindDerivedIcon:
		return "derived-icon"
	}
	return "unknown"
}

func (c Category) String() string {
	return string(c)
}
