package styles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStyle(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeStyle(t, dir, "modern.css", "/* Modern Blue $ https://github.com/alice */\nbody { color: navy; }\n")
	writeStyle(t, dir, "clean.css", "/* Clean $ https://github.com/bob */\nbody { font-family: serif; }\n")
	writeStyle(t, dir, "nobanner.css", "body { margin: 0; }\n")
	writeStyle(t, dir, "nodollar.css", "/* just a comment */\nbody {}\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	reg, err := Discover(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"Clean", "Modern Blue"}, reg.Names())
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	var derr *DiscoverError
	assert.True(t, errors.As(err, &derr))
}

func TestChoicesCreditAuthors(t *testing.T) {
	dir := t.TempDir()
	writeStyle(t, dir, "modern.css", "/* Modern Blue $ https://github.com/alice */\n")

	reg, err := Discover(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Modern Blue (style author -> https://github.com/alice)"}, reg.Choices())
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	writeStyle(t, dir, "modern.css", "/* Modern Blue $ https://github.com/alice */\n")

	reg, err := Discover(dir)
	require.NoError(t, err)

	path, err := reg.Path("Modern Blue")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "modern.css"), path)

	_, err = reg.Path("Missing")
	var uerr *UnknownStyleError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "Missing", uerr.Name)
}

func TestCSS(t *testing.T) {
	dir := t.TempDir()
	writeStyle(t, dir, "modern.css", "/* Modern Blue $ https://github.com/alice */\nbody { color: navy; }\n")

	reg, err := Discover(dir)
	require.NoError(t, err)

	css, err := reg.CSS("Modern Blue")
	require.NoError(t, err)
	assert.Contains(t, string(css), "color: navy")
}
