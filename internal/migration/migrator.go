package migration

import (
	"context"
	"fmt"

	"github.com/RacoonMediaServer/rms-covers/internal/db"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"go-micro.dev/v4/logger"
)

// Storage is a history database with schema meta information
type Storage interface {
	GetMetaInfo(ctx context.Context) (*model.MetaInfo, error)
	SetMetaInfo(ctx context.Context, mi model.MetaInfo) error
	CreateIndexes(ctx context.Context) error
}

type Migrator struct {
	CurrentVersion string
	Database       Storage

	// SchemaVersion is a target version, db.Version when zero
	SchemaVersion uint

	mi *model.MetaInfo
}

func (m *Migrator) Run(ctx context.Context) error {
	var err error

	m.mi, err = m.Database.GetMetaInfo(ctx)
	if err != nil {
		return fmt.Errorf("get metainformation failed: %w", err)
	}

	target := m.target()
	if target != m.mi.DatabaseVersion {
		logger.Warnf("Database schema version changed, migrate")
		if m.mi.DatabaseVersion > target {
			return fmt.Errorf("cannot migrate database from future version: %d", m.mi.DatabaseVersion)
		}

		if err = m.migrateDatabase(ctx, target); err != nil {
			return fmt.Errorf("migrate database failed: %w", err)
		}
	}

	if m.CurrentVersion != m.mi.Version {
		m.mi.Version = m.CurrentVersion
		if err = m.Database.SetMetaInfo(ctx, *m.mi); err != nil {
			return fmt.Errorf("update meta information failed: %w", err)
		}
	}

	return nil
}

func (m *Migrator) target() uint {
	if m.SchemaVersion != 0 {
		return m.SchemaVersion
	}
	return db.Version
}

func (m *Migrator) migrateDatabase(ctx context.Context, target uint) error {
	migrations := m.getMigrations()
	if int(target) > len(migrations) {
		return fmt.Errorf("no migration to version %d", target)
	}
	for cur := m.mi.DatabaseVersion; cur < target; cur++ {
		if err := migrations[cur](ctx); err != nil {
			return fmt.Errorf("from %d to %d: %w", cur, cur+1, err)
		}
		m.mi.DatabaseVersion = cur + 1
		if err := m.Database.SetMetaInfo(ctx, *m.mi); err != nil {
			return fmt.Errorf("update meta information failed: %w", err)
		}
	}
	return nil
}

func (m *Migrator) getMigrations() []migratorFn {
	return []migratorFn{
		m.migrateDatabaseV0ToV1,
	}
}
