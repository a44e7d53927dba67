// Package verification runs every check of the collection against the catalog and merges the results
package verification

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/RacoonMediaServer/rms-covers/internal/catalog"
	"github.com/RacoonMediaServer/rms-covers/internal/completeness"
	"github.com/RacoonMediaServer/rms-covers/internal/config"
	"github.com/RacoonMediaServer/rms-covers/internal/dimensions"
	"github.com/RacoonMediaServer/rms-covers/internal/duplicates"
	"github.com/RacoonMediaServer/rms-covers/internal/exclusion"
	"github.com/RacoonMediaServer/rms-covers/internal/iconsync"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/RacoonMediaServer/rms-covers/internal/reconcile"
	"github.com/RacoonMediaServer/rms-covers/internal/revisions"
	"github.com/RacoonMediaServer/rms-covers/internal/schedule"
	"github.com/RacoonMediaServer/rms-covers/internal/storage"
	"github.com/google/uuid"
	"go-micro.dev/v4/logger"
)

// ErrInterrupted means the run was canceled before all checks completed
var ErrInterrupted = errors.New("verification interrupted")

// Verifier runs verification of the collection
type Verifier struct {
	cfg     config.Configuration
	manager *storage.Manager
	runner  *schedule.Runner
}

type check struct {
	name     string
	sections []string
	fn       func(log logger.Logger, ctx context.Context) error
}

// New creates Verifier, configuration errors are returned immediately
func New(cfg config.Configuration) (*Verifier, error) {
	if cfg.Catalog == "" {
		return nil, errors.New("catalog file is not specified")
	}

	manager, err := storage.NewManager(cfg)
	if err != nil {
		return nil, err
	}

	return &Verifier{
		cfg:     cfg,
		manager: manager,
		runner:  schedule.New(cfg.Workers, time.Duration(cfg.CheckTimeout)*time.Second),
	}, nil
}

// Run parses inputs, scans the collection and runs all checks. Error is returned only
// when inputs are invalid or the run was interrupted, findings never cause an error.
func (v *Verifier) Run(ctx context.Context) (*Result, error) {
	result := newResult()
	result.ID = uuid.NewString()
	result.StartedAt = time.Now().UTC()
	result.CatalogFile = filepath.Base(v.cfg.Catalog)
	result.Layout = v.manager.Layout()

	var err error
	result.Catalog, err = catalog.Load(ctx, v.manager, v.cfg.Catalog)
	if err != nil {
		return nil, interrupted(ctx, err)
	}
	logger.Infof("Catalog '%s' loaded: %d titles", result.CatalogFile, result.Catalog.Len())

	if v.cfg.ExclusionReport != "" {
		result.ExclusionFile = filepath.Base(v.cfg.ExclusionReport)
		result.Exclusions, err = exclusion.Load(ctx, v.manager, v.cfg.ExclusionReport)
		if err != nil {
			return nil, interrupted(ctx, err)
		}
		logger.Infof("Exclusion report '%s' loaded: %d removals", result.ExclusionFile, len(result.Exclusions.Entries))
	}

	result.Inventory = v.manager.Scan(ctx, result.Catalog.Set())
	if ctx.Err() != nil {
		return nil, interrupted(ctx, nil)
	}
	logger.Infof("Collection scanned: %d titles, %d files, %d warnings",
		len(result.Inventory.Entries), len(result.Inventory.Assets), len(result.Inventory.Warnings))

	result.Progress = completeness.Measure(result.Inventory, result.Catalog.Set(), result.Layout.Primary())

	checks := v.checks(result)
	tasks := make([]*schedule.Task, 0, len(checks))
	for _, c := range checks {
		l := logger.Fields(map[string]interface{}{"check": c.name})
		tasks = append(tasks, schedule.NewTask(c.name, schedule.GetLoggingWrapper(l, c.fn)))
	}

	outcomes := v.runner.Run(ctx, tasks...)
	if ctx.Err() != nil {
		return nil, interrupted(ctx, nil)
	}

	for i, o := range outcomes {
		logger.Debugf("Check '%s' finished in %s", o.Name, o.Duration)
		if o.Err != nil {
			result.skip(o.Err, checks[i].sections...)
		}
	}

	return result, nil
}

func (v *Verifier) checks(result *Result) []check {
	inv := result.Inventory
	layout := result.Layout
	scanErr := scanError(inv)

	var exclusions model.Exclusions
	if result.Exclusions != nil {
		exclusions = result.Exclusions.Exclusions()
	}

	var required, all []model.Category
	for _, c := range layout.Categories {
		all = append(all, c.Name)
		if c.Required {
			required = append(required, c.Name)
		}
	}

	return []check{
		{
			name:     "reconcile",
			sections: []string{SectionMissing, SectionOrphans},
			fn: func(log logger.Logger, ctx context.Context) error {
				if scanErr != nil {
					return scanErr
				}
				r := reconcile.Reconcile(result.Catalog.Set(), inv.Titles(), exclusions)
				log.Logf(logger.InfoLevel, "%d matched, %d missing, %d orphans", len(r.Matched), len(r.Missing), len(r.Orphans))
				result.Reconciliation = r
				return nil
			},
		},
		{
			name:     "completeness",
			sections: []string{SectionCompleteness, SectionConflicts},
			fn: func(log logger.Logger, ctx context.Context) error {
				if scanErr != nil {
					return scanErr
				}
				result.Completeness = completeness.Check(inv, inv.Titles().Sorted(), required)
				result.Conflicts = completeness.Conflicts(inv, all)
				log.Logf(logger.InfoLevel, "%d incomplete titles, %d acknowledged gaps, %d tier conflicts",
					len(result.Completeness.Failures), len(result.Completeness.Gaps), len(result.Conflicts))
				return nil
			},
		},
		{
			name:     "duplicates",
			sections: []string{SectionDuplicates},
			fn: func(log logger.Logger, ctx context.Context) error {
				r, err := duplicates.Detect(ctx, v.manager, inv.Assets, v.cfg.Workers)
				if err != nil {
					return fmt.Errorf("filesystem error: %w", err)
				}
				log.Logf(logger.InfoLevel, "%d files hashed, %d duplicate groups", r.Hashed, len(r.Groups))
				result.Duplicates = r
				return nil
			},
		},
		{
			name:     "sync",
			sections: []string{SectionSync},
			fn: func(log logger.Logger, ctx context.Context) error {
				if scanErr != nil {
					return scanErr
				}
				for _, c := range layout.Derived() {
					result.Sync = append(result.Sync, iconsync.Check(inv, c.Name, layout.Primary()))
				}
				return nil
			},
		},
		{
			name:     "dimensions",
			sections: []string{SectionDimensions},
			fn: func(log logger.Logger, ctx context.Context) error {
				result.Dimensions = dimensions.New(v.manager, v.cfg.Dimensions).Analyze(ctx, layout, inv)
				return nil
			},
		},
		{
			name:     "revisions",
			sections: []string{SectionRevisions},
			fn: func(log logger.Logger, ctx context.Context) error {
				result.Revisions = revisions.Check(result.Catalog.Titles(), inv.Titles())
				return nil
			},
		},
	}
}

// interrupted replaces err with ErrInterrupted when the run context is done
func interrupted(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %s", ErrInterrupted, ctx.Err())
	}
	return err
}

func scanError(inv *model.Inventory) error {
	failed := inv.Failed()
	if len(failed) == 0 {
		return nil
	}
	if len(failed) == 1 {
		return fmt.Errorf("filesystem error: %w", failed[0].Err)
	}
	return fmt.Errorf("filesystem error: %w (and %d more folders)", failed[0].Err, len(failed)-1)
}
