package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"subforge/internal/config"
	"subforge/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps reports the external binaries the configured engine needs.
// Available binaries carry their version line when one can be read.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		deps.FFmpegRequirement(cfg.Transcription.FFmpegBinary),
		deps.RecognizerRequirement(cfg.Transcription.Engine, cfg.RecognizerBinary()),
	}
	statuses := deps.CheckBinaries(requirements)
	if statuses[0].Available {
		if version := deps.Version(ctx, statuses[0].Path); version != "" {
			statuses[0].Detail = version
		}
	}
	return statuses
}
