package fonts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/certavo/certavo-backend/internal/apperrors"
)

// Resolver maps an opaque font family identifier to a font file inside a
// fixed directory.
type Resolver struct {
	Dir string
}

// Resolve lists the fonts directory and returns the path of the first file
// whose name contains family as a substring. os.ReadDir returns entries
// sorted by filename, so ties break deterministically on the first name in
// lexical order.
func (r Resolver) Resolve(family string) (string, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewFontsDirMissing(r.Dir)
		}
		return "", err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.Contains(entry.Name(), family) {
			return filepath.Join(r.Dir, entry.Name()), nil
		}
	}
	return "", apperrors.NewFontNotFound(family)
}
