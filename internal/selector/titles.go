// Package selector picks the catalog title most similar to a name found in the collection
package selector

import (
	"strings"

	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/antzucaro/matchr"
	"go-micro.dev/v4/logger"
)

// DefaultMinSimilarity is a lowest rank still considered a naming typo
const DefaultMinSimilarity = 0.8

// TitleSelector looks for the closest title by edit distance
type TitleSelector struct {
	MinSimilarity float32

	titles []model.Title
	names  []string
}

// New creates selector over candidate titles
func New(titles []model.Title) *TitleSelector {
	s := &TitleSelector{MinSimilarity: DefaultMinSimilarity}
	s.titles = make([]model.Title, len(titles))
	copy(s.titles, titles)
	model.SortTitles(s.titles)

	s.names = make([]string, len(s.titles))
	for i, t := range s.titles {
		s.names[i] = strings.ToLower(t.String())
	}
	return s
}

// Closest returns candidate most similar to the name. Nothing is returned when
// even the best candidate is ranked below MinSimilarity.
func (s *TitleSelector) Closest(name model.Title) (model.Title, bool) {
	if len(s.titles) == 0 {
		return "", false
	}

	ranks := s.rankByDistance(strings.ToLower(name.String()))
	_, max, best := findMax(ranks, func(elem float32) float32 {
		return elem
	})
	if max < s.MinSimilarity {
		logger.Tracef("No close title for '%s' (best rank %.4f)", name, max)
		return "", false
	}

	logger.Tracef("Closest title for '%s' is '%s' (rank %.4f)", name, s.titles[best], max)
	return s.titles[best], true
}

func (s *TitleSelector) rankByDistance(target string) []float32 {
	ranks := make([]float32, len(s.names))
	targetLen := len([]rune(target))

	for i, name := range s.names {
		nameLen := len([]rune(name))
		longest := nameLen
		if targetLen > longest {
			longest = targetLen
		}
		if longest == 0 {
			ranks[i] = 1
			continue
		}

		// при большой разнице длин расстояние заведомо велико
		if diff := float32(abs(nameLen-targetLen)) / float32(longest); 1-diff < s.MinSimilarity {
			continue
		}

		distance := matchr.Levenshtein(name, target)
		ranks[i] = 1 - float32(distance)/float32(longest)
	}

	return ranks
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
