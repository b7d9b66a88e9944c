package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const tempPrefix = ".shotpair-"

// Manager owns the output directory of comparison images
type Manager struct {
	outputDir string
	existing  map[string]bool
	mu        sync.RWMutex
}

// NewManager creates outputDir if needed and indexes the PNG files already
// in it. An existing directory is not an error. Temp files left in the
// directory are deleted, so the caller must hold the record log lock.
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manager := &Manager{
		outputDir: outputDir,
		existing:  make(map[string]bool),
	}

	if err := manager.scanExistingFiles(); err != nil {
		return nil, fmt.Errorf("failed to scan existing files: %w", err)
	}

	return manager, nil
}

// scanExistingFiles indexes *.png files and removes temp files left by an
// interrupted write
func (m *Manager) scanExistingFiles() error {
	entries, err := os.ReadDir(m.outputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasPrefix(name, tempPrefix):
			if err := os.Remove(filepath.Join(m.outputDir, name)); err != nil {
				return fmt.Errorf("failed to remove stale temp file: %w", err)
			}
		case strings.EqualFold(filepath.Ext(name), ".png"):
			m.existing[name] = true
		}
	}

	return nil
}

// WriteImage atomically writes data as name inside the output directory.
// Readers see either the previous file or the complete new one.
func (m *Manager) WriteImage(name string, data []byte) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("invalid image name %q", name)
	}
	target := filepath.Join(m.outputDir, name)

	tmp, err := os.CreateTemp(m.outputDir, tempPrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write image data: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set image permissions: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.existing[name] = true
	m.mu.Unlock()

	return nil
}

// Orphans returns, sorted, the images present on disk for which recorded
// reports false. They are left by a run interrupted between writing an
// image and recording it.
func (m *Manager) Orphans(recorded func(name string) bool) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var orphans []string
	for name := range m.existing {
		if !recorded(name) {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	return orphans
}

// GetOutputDir returns the output directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}
