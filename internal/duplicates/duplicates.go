// Package duplicates finds byte-identical images stored under different paths
package duplicates

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"

	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"go-micro.dev/v4/logger"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// Reader gives access to content of collection files
type Reader interface {
	Stream(ctx context.Context, path string, fn func(r io.Reader) error) error
}

// Group is a set of files with identical content
type Group struct {
	Digest string
	Size   int64
	Assets []model.Asset
}

// Result is an outcome of duplicates detection
type Result struct {
	// Files is a number of files considered
	Files int

	// Hashed is a number of files which content was hashed
	Hashed int

	Groups []Group
}

// Passed reports whether no duplicates were found
func (r *Result) Passed() bool {
	return len(r.Groups) == 0
}

// Detect groups files by size and then by SHA-256 of content. Only files sharing a size are read.
// Placeholder tiers are skipped since blank templates are identical by construction.
func Detect(ctx context.Context, reader Reader, assets []model.Asset, workers int) (*Result, error) {
	if workers <= 0 {
		workers = defaultWorkers
	}

	bySize := map[int64][]model.Asset{}
	result := &Result{}
	for _, a := range assets {
		if a.Tier.IsPlaceholder() {
			continue
		}
		result.Files++
		bySize[a.Size] = append(bySize[a.Size], a)
	}

	var candidates []model.Asset
	for _, list := range bySize {
		if len(list) > 1 {
			candidates = append(candidates, list...)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Path < candidates[j].Path
	})
	result.Hashed = len(candidates)

	digests := make([]string, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range candidates {
		i := i
		g.Go(func() error {
			digest, err := hashFile(gctx, reader, candidates[i].Path)
			if err != nil {
				return err
			}
			digests[i] = digest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byDigest := map[string][]model.Asset{}
	var order []string
	for i, a := range candidates {
		d := digests[i]
		if _, ok := byDigest[d]; !ok {
			order = append(order, d)
		}
		byDigest[d] = append(byDigest[d], a)
	}

	for _, d := range order {
		list := byDigest[d]
		if len(list) < 2 {
			continue
		}
		logger.Debugf("Duplicate content %s: %d files", d[:12], len(list))
		result.Groups = append(result.Groups, Group{Digest: d, Size: list[0].Size, Assets: list})
	}

	return result, nil
}

func hashFile(ctx context.Context, reader Reader, path string) (string, error) {
	var digest string
	err := reader.Stream(ctx, path, func(r io.Reader) error {
		h := sha256.New()
		if _, err := io.Copy(h, r); err != nil {
			return err
		}
		digest = hex.EncodeToString(h.Sum(nil))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}
	return digest, nil
}
