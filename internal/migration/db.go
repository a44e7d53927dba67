package migration

import (
	"context"
	"fmt"
)

type migratorFn func(ctx context.Context) error

func (m *Migrator) migrateDatabaseV0ToV1(ctx context.Context) error {
	if err := m.Database.CreateIndexes(ctx); err != nil {
		return fmt.Errorf("create indexes failed: %w", err)
	}
	return nil
}
