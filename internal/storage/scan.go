package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/RacoonMediaServer/rms-covers/internal/analysis"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"go-micro.dev/v4/logger"
)

// Scan lists every folder of the layout and builds the collection inventory. Names of known
// titles are accepted as is, other names must follow the naming policy. Result does not depend
// on the order in which the file system lists entries.
func (m *Manager) Scan(ctx context.Context, known model.TitleSet) *model.Inventory {
	inv := model.NewInventory()
	for _, f := range m.layout.Folders() {
		scan := m.scanFolder(ctx, f, known, inv)
		if scan.Err != nil {
			logger.Errorf("Scan '%s' failed: %s", f.Rel, scan.Err)
		} else if !scan.Exists {
			logger.Debugf("Folder '%s' does not exist, skip", f.Rel)
		} else {
			logger.Debugf("Folder '%s': %d files", f.Rel, scan.Files)
		}
		inv.Folders = append(inv.Folders, scan)
	}

	sort.SliceStable(inv.Warnings, func(i, j int) bool {
		return inv.Warnings[i].Path < inv.Warnings[j].Path
	})
	sort.SliceStable(inv.Assets, func(i, j int) bool {
		return inv.Assets[i].Rel < inv.Assets[j].Rel
	})

	return inv
}

func (m *Manager) scanFolder(ctx context.Context, f Folder, known model.TitleSet, inv *model.Inventory) model.FolderScan {
	result := model.FolderScan{Category: f.Category, Tier: f.Tier, Dir: f.Rel}

	entries, err := call(ctx, m.access, "list", f.Dir, func() ([]os.DirEntry, error) {
		return readDir(f.Dir)
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result
		}
		result.Exists = true
		result.Err = err
		return result
	}
	result.Exists = true

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var assets []model.Asset
	var warnings []model.ScanWarning
	for _, e := range entries {
		name := e.Name()
		path := filepath.Join(f.Dir, name)
		rel := relative(m.layout.Root, path)

		if m.isIgnored(name) {
			continue
		}
		if e.IsDir() {
			warnings = append(warnings, model.ScanWarning{Kind: model.WarningDirectory, Path: rel})
			continue
		}
		if !m.isIncluded(name) {
			w := model.ScanWarning{Kind: model.WarningUnexpectedFile, Path: rel}
			if analysis.IsImage(name) {
				w.Details = "image format is not accepted"
			}
			warnings = append(warnings, w)
			continue
		}

		stem := analysis.Stem(name, f.Suffix)
		title := model.MakeTitle(stem)
		// каталог сам задает правила именования
		if !known.Has(title) || strings.TrimSpace(stem) != stem {
			if violations := analysis.Validate(stem); len(violations) != 0 {
				warnings = append(warnings, model.ScanWarning{
					Kind:    model.WarningNamingPolicy,
					Path:    rel,
					Details: strings.Join(violations, ", "),
				})
				continue
			}
		}

		info, err := call(ctx, m.access, "stat", path, func() (fs.FileInfo, error) {
			return e.Info()
		})
		if err != nil {
			result.Err = err
			return result
		}

		assets = append(assets, model.Asset{
			Title:    title,
			Category: f.Category,
			Tier:     f.Tier,
			Path:     path,
			Rel:      rel,
			Size:     info.Size(),
		})
	}

	for _, a := range assets {
		inv.Add(a)
	}
	inv.Warnings = append(inv.Warnings, warnings...)
	result.Files = len(assets)
	return result
}
