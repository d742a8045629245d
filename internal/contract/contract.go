// Package contract provides interfaces, configuration and shared utilities for internal architecture.
package contract

import (
	"context"
	"io"

	"github.com/huangsam/gitimpact/schema"
)

// GitClient defines the few Git lookups used for presentation.
// Statistics themselves are always produced upstream and read from stdin.
type GitClient interface {
	// Run executes a git command and returns its output.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)
}

// ChartRenderer draws a prepared summary into a chart artifact.
// This allows the report flow to be tested without producing real images.
type ChartRenderer interface {
	// Render writes the charts for summary to w.
	Render(w io.Writer, summary *schema.Summary, title string) error

	// Extension returns the file extension of the artifact, without the dot.
	Extension() string
}

// AliasLoader loads the author alias mapping.
type AliasLoader interface {
	// Load returns the mapping and whether an alias source was found.
	Load(path string) (map[string]string, bool, error)
}
