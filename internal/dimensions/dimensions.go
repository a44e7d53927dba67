// Package dimensions builds per folder histograms of image sizes and flags orientation anomalies
package dimensions

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"sort"

	"github.com/RacoonMediaServer/rms-covers/internal/config"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/RacoonMediaServer/rms-covers/internal/storage"
	"github.com/sourcegraph/conc/pool"
	"go-micro.dev/v4/logger"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const defaultWorkers = 4

// Reader gives access to content of collection files
type Reader interface {
	Stream(ctx context.Context, path string, fn func(r io.Reader) error) error
}

// Anomaly is an image with a wrong orientation
type Anomaly struct {
	Path string
	Size model.Size
}

// Undecodable is a file which header cannot be read as an image
type Undecodable struct {
	Path   string
	Reason string
}

// FolderResult is an analysis outcome of a single tier folder
type FolderResult struct {
	Category model.Category
	Tier     model.Tier
	Dir      string
	Files    int

	// Buckets are sorted by descending count
	Buckets     []model.DimensionBucket
	Anomalies   []Anomaly
	Undecodable []Undecodable

	// Err is set when the folder could not be read
	Err error
}

// Passed reports whether the folder has no anomalies and was fully read
func (r *FolderResult) Passed() bool {
	return r.Err == nil && len(r.Anomalies) == 0 && len(r.Undecodable) == 0
}

// Analyzer reads image headers of the collection
type Analyzer struct {
	reader            Reader
	aspectTolerance   float64
	portraitTolerance float64
	workers           int
}

// New creates an analyzer
func New(reader Reader, cfg config.Dimensions) *Analyzer {
	a := &Analyzer{
		reader:            reader,
		aspectTolerance:   cfg.AspectTolerance,
		portraitTolerance: cfg.PortraitTolerance,
		workers:           cfg.Workers,
	}
	if a.workers <= 0 {
		a.workers = defaultWorkers
	}
	return a
}

type folderTask struct {
	category storage.CategoryLayout
	folder   storage.Folder
	scan     model.FolderScan
	assets   []model.Asset
}

// Analyze processes every existing non-placeholder folder of the layout concurrently.
// Results follow the layout order.
func (a *Analyzer) Analyze(ctx context.Context, layout *storage.Layout, inv *model.Inventory) []FolderResult {
	var tasks []folderTask
	for _, c := range layout.Categories {
		for _, f := range c.Folders {
			if f.Tier.IsPlaceholder() {
				continue
			}
			scan, ok := findScan(inv, f)
			if !ok || !scan.Exists {
				continue
			}
			tasks = append(tasks, folderTask{category: c, folder: f, scan: scan})
		}
	}

	for i := range tasks {
		for _, asset := range inv.Assets {
			if asset.Category == tasks[i].folder.Category && asset.Tier == tasks[i].folder.Tier {
				tasks[i].assets = append(tasks[i].assets, asset)
			}
		}
	}

	results := make([]FolderResult, len(tasks))
	p := pool.New().WithMaxGoroutines(a.workers)
	for i := range tasks {
		i := i
		p.Go(func() {
			results[i] = a.analyzeFolder(ctx, tasks[i])
		})
	}
	p.Wait()

	return results
}

func findScan(inv *model.Inventory, f storage.Folder) (model.FolderScan, bool) {
	for _, s := range inv.Folders {
		if s.Category == f.Category && s.Tier == f.Tier {
			return s, true
		}
	}
	return model.FolderScan{}, false
}

func (a *Analyzer) analyzeFolder(ctx context.Context, task folderTask) FolderResult {
	result := FolderResult{
		Category: task.folder.Category,
		Tier:     task.folder.Tier,
		Dir:      task.folder.Rel,
	}
	if task.scan.Err != nil {
		result.Err = task.scan.Err
		return result
	}

	assets := task.assets
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].Rel < assets[j].Rel
	})

	counts := map[model.Size]int{}
	for _, asset := range assets {
		size, err := a.readSize(ctx, asset.Path)
		if err != nil {
			var fsErr *storage.FilesystemError
			if errors.As(err, &fsErr) {
				result.Err = err
				return result
			}
			result.Undecodable = append(result.Undecodable, Undecodable{Path: asset.Rel, Reason: err.Error()})
			continue
		}

		result.Files++
		counts[size]++
		if task.category.Landscape && size.IsPortrait(a.portraitTolerance) {
			result.Anomalies = append(result.Anomalies, Anomaly{Path: asset.Rel, Size: size})
		}
	}

	result.Buckets = a.classify(task, counts)
	logger.Debugf("Dimensions of '%s': %d files, %d sizes, %d anomalies", result.Dir, result.Files, len(result.Buckets), len(result.Anomalies))
	return result
}

func (a *Analyzer) readSize(ctx context.Context, path string) (model.Size, error) {
	var size model.Size
	err := a.reader.Stream(ctx, path, func(r io.Reader) error {
		cfg, _, err := image.DecodeConfig(r)
		if err != nil {
			return fmt.Errorf("decode header: %w", err)
		}
		size = model.Size{Width: cfg.Width, Height: cfg.Height}
		return nil
	})
	return size, err
}

func (a *Analyzer) classify(task folderTask, counts map[model.Size]int) []model.DimensionBucket {
	buckets := make([]model.DimensionBucket, 0, len(counts))
	for s, n := range counts {
		buckets = append(buckets, model.DimensionBucket{Size: s, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		if buckets[i].Width != buckets[j].Width {
			return buckets[i].Width < buckets[j].Width
		}
		return buckets[i].Height < buckets[j].Height
	})

	canonical := make([]model.Size, 0, len(task.category.Sizes)+1)
	canonical = append(canonical, task.category.Sizes...)
	if task.folder.Tier == model.TierPrimary && len(buckets) != 0 {
		canonical = append(canonical, buckets[0].Size)
	}

	for i := range buckets {
		buckets[i].Class = a.classifySize(buckets[i].Size, canonical, task.category.Landscape)
	}
	return buckets
}

func (a *Analyzer) classifySize(s model.Size, canonical []model.Size, landscape bool) model.BucketClass {
	if landscape && s.IsPortrait(a.portraitTolerance) {
		return model.BucketUnexpected
	}
	for _, c := range canonical {
		if c == s {
			return model.BucketCanonical
		}
	}
	if s.IsSquare() {
		return model.BucketAcceptable
	}
	for _, c := range canonical {
		if aspectClose(s, c, a.aspectTolerance) {
			return model.BucketAcceptable
		}
	}
	return model.BucketUnexpected
}

func aspectClose(s, c model.Size, tolerance float64) bool {
	if s.Height == 0 || c.Height == 0 || c.Width == 0 {
		return false
	}
	expected := float64(c.Width) / float64(c.Height)
	actual := float64(s.Width) / float64(s.Height)
	return math.Abs(actual-expected)/expected <= tolerance
}
