package fsutil

import (
	"context"
	"errors"
	"fmt"
)

// BackupSuffix is appended to a file's path to name its backup.
const BackupSuffix = ".bak"

// BackupPath returns the backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies path to its backup path, preserving the file mode.
// It returns false without error when path does not exist.
func CreateBackup(ctx context.Context, path string) (bool, error) {
	content, info, err := ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("backup %s: %w", path, err)
	}

	if err := WriteAtomic(ctx, BackupPath(path), content, info.Mode.Perm()); err != nil {
		return false, fmt.Errorf("backup %s: %w", path, err)
	}
	return true, nil
}
