package prerender

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestFile is the build manifest name inside dist.
const ManifestFile = ".sitegen-manifest.json"

// BuildManifest records the content hash of every file written by a build.
type BuildManifest struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Files       map[string]string `json:"files"`
}

func newManifest() *BuildManifest {
	return &BuildManifest{Files: make(map[string]string)}
}

// ReadManifest loads the manifest of distDir. A missing or unreadable
// manifest yields an empty one so the next build rewrites everything.
func ReadManifest(distDir string) *BuildManifest {
	data, err := os.ReadFile(filepath.Join(distDir, ManifestFile))
	if err != nil {
		return newManifest()
	}
	m := newManifest()
	if err := json.Unmarshal(data, m); err != nil || m.Files == nil {
		return newManifest()
	}
	return m
}

// Unchanged reports whether rel was written with hash and the file on disk
// still carries that content.
func (m *BuildManifest) Unchanged(distDir, rel, hash string) bool {
	if hash == "" || m.Files[rel] != hash {
		return false
	}
	data, err := os.ReadFile(filepath.Join(distDir, filepath.FromSlash(rel)))
	if err != nil {
		return false
	}
	return hashContent(data) == hash
}

// Intact reports whether every recorded file is still present with its
// recorded content. An empty manifest is never intact.
func (m *BuildManifest) Intact(distDir string) bool {
	if len(m.Files) == 0 {
		return false
	}
	for rel, hash := range m.Files {
		if !m.Unchanged(distDir, rel, hash) {
			return false
		}
	}
	return true
}

func (m *BuildManifest) write(distDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return writeAtomic(filepath.Join(distDir, ManifestFile), data)
}

func hashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// writeAtomic writes data to a temp file beside path and renames it in place.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { //nolint:gosec // published web content
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
