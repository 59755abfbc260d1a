package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CacheDirCheckerConfig configures the artifact cache directory checker.
type CacheDirCheckerConfig struct {
	// Dir is the cache directory holding chart artifacts.
	Dir string

	// WarnBytes is the total artifact size that triggers degraded status.
	// Default: 1 GiB.
	WarnBytes int64

	// CriticalBytes is the total artifact size that triggers unhealthy
	// status. Default: 4 GiB.
	CriticalBytes int64
}

// CacheDirChecker verifies that the artifact cache directory exists, is
// writable, and has not grown past its size thresholds. The sweep keeps
// the directory bounded in steady state; the checker catches a sweep
// that stopped working.
type CacheDirChecker struct {
	config CacheDirCheckerConfig
}

// NewCacheDirChecker creates a cache directory checker.
func NewCacheDirChecker(config CacheDirCheckerConfig) *CacheDirChecker {
	if config.WarnBytes <= 0 {
		config.WarnBytes = 1 << 30
	}
	if config.CriticalBytes <= config.WarnBytes {
		config.CriticalBytes = 4 << 30
	}
	return &CacheDirChecker{config: config}
}

// Name returns the name of this checker.
func (c *CacheDirChecker) Name() string {
	return "cache"
}

// Check inspects the cache directory.
func (c *CacheDirChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	info, err := os.Stat(c.config.Dir)
	if err != nil {
		return Unhealthy("cache directory missing", err)
	}
	if !info.IsDir() {
		return Unhealthy("cache path is not a directory", ErrCheckFailed)
	}

	probe, err := os.CreateTemp(c.config.Dir, ".health-*")
	if err != nil {
		return Unhealthy("cache directory not writable", err)
	}
	probe.Close()
	os.Remove(probe.Name())

	var totalBytes int64
	var jsonCount, imageCount int
	entries, err := os.ReadDir(c.config.Dir)
	if err != nil {
		return Unhealthy("cache directory unreadable", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		totalBytes += fi.Size()
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json":
			jsonCount++
		case ".png":
			imageCount++
		}
	}

	details := map[string]any{
		"dir":         c.config.Dir,
		"total_bytes": totalBytes,
		"json_files":  jsonCount,
		"png_files":   imageCount,
	}

	if totalBytes >= c.config.CriticalBytes {
		return Unhealthy(
			fmt.Sprintf("cache size critical: %d bytes", totalBytes),
			ErrCheckFailed,
		).WithDetails(details)
	}
	if totalBytes >= c.config.WarnBytes {
		return Degraded(
			fmt.Sprintf("cache size high: %d bytes", totalBytes),
		).WithDetails(details)
	}

	return Healthy(
		fmt.Sprintf("cache holds %d charts", jsonCount),
	).WithDetails(details)
}

// Info reports directory statistics without judging health, for the
// detailed endpoint and operator tooling.
func (c *CacheDirChecker) Info(ctx context.Context) (map[string]any, error) {
	result := c.Check(ctx)
	if result.Error != nil {
		return nil, result.Error
	}
	return result.Details, nil
}

var _ Checker = (*CacheDirChecker)(nil)

var _ InfoChecker = (*CacheDirChecker)(nil)
