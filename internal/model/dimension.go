package model

import "fmt"

// Size is an image size in pixels
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// IsSquare reports whether width equals height
func (s Size) IsSquare() bool {
	return s.Width == s.Height
}

// IsPortrait reports whether the height exceeds width more than by the tolerance (fraction of width)
func (s Size) IsPortrait(tolerance float64) bool {
	if s.Width <= 0 {
		return s.Height > 0
	}
	return float64(s.Height-s.Width)/float64(s.Width) > tolerance
}

// BucketClass describes how a dimension bucket fits the folder standard
type BucketClass int

const (
	BucketCanonical BucketClass = iota
	BucketAcceptable
	BucketUnexpected
)

func (c BucketClass) String() string {
	switch c {
	case BucketCanonical:
		return "canonical"
	case BucketAcceptable:
		return "acceptable"
	case BucketUnexpected:
		return "unexpected"
	}
	return "unknown"
}

// DimensionBucket counts files of the folder sharing the same size
type DimensionBucket struct {
	Size
	Count int
	Class BucketClass
}
