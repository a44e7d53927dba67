package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const reportPerms = 0644

// WriteFile atomically replaces the file with data: content is written to a temporary file
// in the same directory, synced and renamed. On any failure the target is left untouched.
func WriteFile(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	if err := ctx.Err(); err != nil {
		return &FilesystemError{Op: "write", Path: path, Err: err}
	}

	if err := writeSynced(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return &FilesystemError{Op: "write", Path: path, Err: err}
	}

	// прерывание до переименования не должно оставить половину отчета
	if err := ctx.Err(); err != nil {
		_ = os.Remove(tmp)
		return &FilesystemError{Op: "write", Path: path, Err: err}
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &FilesystemError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, reportPerms)
	if err != nil {
		return err
	}
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write content: %w", err)
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync: %w", err)
	}
	return f.Close()
}
