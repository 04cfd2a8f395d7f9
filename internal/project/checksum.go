package project

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Checksum returns the digest recorded for saved data, "sha256:<hex>".
func Checksum(data []byte) string {
	h := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(h[:])
}

// Short is the saved file's checksum cut down for status lines.
func (s SavedFile) Short() string {
	if len(s.Checksum) > 20 {
		return s.Checksum[:20] + "..."
	}
	return s.Checksum
}

// CheckSaved re-hashes a recorded file as it is now on disk. It returns the
// current checksum; a missing file surfaces as an os.ErrNotExist error.
func (p *Project) CheckSaved(s SavedFile) (string, error) {
	data, err := os.ReadFile(filepath.Join(p.Path, s.File))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", s.File, err)
	}
	return Checksum(data), nil
}
