package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// stagingSuffix is appended to the target dir while the new tree is built.
	stagingSuffix = ".tmp"
	// backupSuffix holds the previous tree during the swap.
	backupSuffix = ".old"
)

// ReplaceDir rebuilds target as a snapshot: build populates a staging
// directory next to target, and only on success is the staging tree renamed
// into place. The previous tree stays visible until the swap, and a failed
// build leaves it untouched.
func ReplaceDir(target string, build func(staging string) error) error {
	staging := target + stagingSuffix
	backup := target + backupSuffix

	// Clean up leftovers from a previous interrupted run.
	_ = os.RemoveAll(staging)
	_ = os.RemoveAll(backup)

	if err := os.MkdirAll(filepath.Dir(target), DirPerm); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	if err := os.MkdirAll(staging, DirPerm); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}

	if err := build(staging); err != nil {
		_ = os.RemoveAll(staging)
		return err
	}

	hadPrevious := false
	if _, err := os.Stat(target); err == nil {
		if err := os.Rename(target, backup); err != nil {
			_ = os.RemoveAll(staging)
			return fmt.Errorf("moving previous tree aside: %w", err)
		}
		hadPrevious = true
	}

	if err := os.Rename(staging, target); err != nil {
		if hadPrevious {
			_ = os.Rename(backup, target)
		}
		_ = os.RemoveAll(staging)
		return fmt.Errorf("finalizing %s: %w", target, err)
	}

	if hadPrevious {
		if err := os.RemoveAll(backup); err != nil {
			return fmt.Errorf("removing previous tree: %w", err)
		}
	}
	return nil
}
