package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mugstore/backoffice/internal/core/ports"
)

const fileMode = 0o644

// DiskStore keeps uploaded files under a root directory, mirroring the
// media-path prefixes exposed in API responses.
type DiskStore struct {
	root   string
	logger zerolog.Logger
}

func NewDiskStore(root string, logger zerolog.Logger) *DiskStore {
	return &DiskStore{root: root, logger: logger}
}

// Save normalizes the upload and writes it under prefix, returning the
// relative media path to persist on the owning entity. File names are
// prefixed with a random id so repeated uploads never collide.
func (s *DiskStore) Save(_ context.Context, prefix string, upload ports.Upload) (string, error) {
	normalized, err := Normalize(upload.Data)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + "-" + sanitizeName(upload.Filename)
	rel := path.Join(prefix, name)

	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("media: create dir: %w", err)
	}
	if err := os.WriteFile(abs, normalized, fileMode); err != nil {
		return "", fmt.Errorf("media: write %s: %w", rel, err)
	}

	s.logger.Debug().Str("path", rel).Int("bytes", len(normalized)).Msg("media stored")
	return rel, nil
}

// Remove deletes a previously stored file. Missing files are not an error:
// the entity reference is already gone or was never written.
func (s *DiskStore) Remove(_ context.Context, mediaPath string) error {
	rel := filepath.FromSlash(path.Clean("/" + mediaPath))[1:]
	if rel == "" {
		return nil
	}
	abs := filepath.Join(s.root, rel)
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("media: remove %s: %w", mediaPath, err)
	}
	return nil
}

// sanitizeName strips directories and replaces anything outside a safe
// character set so uploaded names cannot escape the prefix.
func sanitizeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "upload"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
