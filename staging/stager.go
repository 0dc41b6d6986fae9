package staging

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/c360/flowplan/errors"
)

// archiveExtensions are the packaged archive suffixes eligible for
// shipping to a remote cluster.
var archiveExtensions = []string{".jar", ".zip"}

// IsArchive reports whether a path names a packaged archive file
func IsArchive(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range archiveExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// ArtifactLister enumerates the runtime's shippable artifacts.
// Enumeration must be deterministic for a fixed process so staging
// resolution is idempotent.
type ArtifactLister interface {
	ListArtifacts() ([]string, error)
}

// DirLister enumerates archive files under a fixed set of directories.
// Results are sorted; directories that do not exist are skipped.
type DirLister struct {
	dirs []string
}

// NewDirLister creates a lister over the given artifact directories
func NewDirLister(dirs ...string) *DirLister {
	return &DirLister{dirs: dirs}
}

// ListArtifacts implements ArtifactLister
func (l *DirLister) ListArtifacts() ([]string, error) {
	var artifacts []string
	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("stat artifact dir %s: %w", dir, err)
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsArchive(path) {
				artifacts = append(artifacts, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk artifact dir %s: %w", dir, err)
		}
	}
	sort.Strings(artifacts)
	return artifacts, nil
}

// executableLister enumerates archives next to the running executable,
// the default artifact location for packaged deployments.
type executableLister struct{}

// ExecutableLister returns the default artifact lister
func ExecutableLister() ArtifactLister {
	return executableLister{}
}

// ListArtifacts implements ArtifactLister
func (executableLister) ListArtifacts() ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	return NewDirLister(filepath.Dir(exe)).ListArtifacts()
}

// Stager computes the authoritative artifact set for cluster submission
type Stager struct {
	lister ArtifactLister
	logger *slog.Logger
}

// NewStager creates a new Stager
func NewStager(lister ArtifactLister, logger *slog.Logger) *Stager {
	return &Stager{lister: lister, logger: logger}
}

// Resolve computes the staging set for an endpoint. Local endpoints keep
// the caller's list untouched, with no existence check or filtering,
// because nothing is shipped. Remote endpoints discard the caller's list
// entirely and replace it with the discovered archive artifacts, since
// remote submission requires shippable archives rather than arbitrary
// caller paths.
func (s *Stager) Resolve(endpoint Endpoint, current []string) ([]string, error) {
	if endpoint.IsLocal() {
		s.logger.Debug("Local master endpoint, keeping caller staging list",
			"endpoint", endpoint.Raw,
			"paths", len(current))
		return current, nil
	}

	artifacts, err := s.lister.ListArtifacts()
	if err != nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %w", errors.ErrStagingResolution, err),
			"Stager", "Resolve", "artifact enumeration")
	}
	if len(artifacts) == 0 {
		s.logger.Warn("No archive artifacts discovered for remote submission",
			"endpoint", endpoint.Address())
	}

	s.logger.Info("Replaced staging list with discovered artifacts",
		"endpoint", endpoint.Address(),
		"count", len(artifacts))
	return artifacts, nil
}
