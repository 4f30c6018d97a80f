package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/certavo/certavo-backend/internal/apperrors"
)

func writeFont(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644))
}

func TestResolveMatchesSubstring(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Lato-Regular.ttf")
	writeFont(t, dir, "Roboto-Bold.ttf")

	path, err := Resolver{Dir: dir}.Resolve("Roboto")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Roboto-Bold.ttf"), path)
}

func TestResolveFirstMatchInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Roboto-Regular.ttf")
	writeFont(t, dir, "Roboto-Bold.ttf")

	path, err := Resolver{Dir: dir}.Resolve("Roboto")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Roboto-Bold.ttf"), path)
}

func TestResolveUnknownFamily(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Lato-Regular.ttf")

	_, err := Resolver{Dir: dir}.Resolve("ComicSans")
	var notFound *apperrors.ErrFontNotFound
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "ComicSans", notFound.Family)
}

func TestResolveMissingDirectory(t *testing.T) {
	_, err := Resolver{Dir: filepath.Join(t.TempDir(), "nope")}.Resolve("Lato")
	var missing *apperrors.ErrFontsDirMissing
	require.ErrorAs(t, err, &missing)
}
