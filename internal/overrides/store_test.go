package overrides

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hyprFixture struct {
	home     string
	primary  string
	override string
}

func newHyprFixture(t *testing.T, primaryContent string) hyprFixture {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "hypr")
	require.NoError(t, os.MkdirAll(dir, 0755))

	fx := hyprFixture{
		home:     home,
		primary:  filepath.Join(dir, "hyprland.conf"),
		override: filepath.Join(dir, "conf-overrides.conf"),
	}
	if primaryContent != "" {
		require.NoError(t, os.WriteFile(fx.primary, []byte(primaryContent), 0644))
	}
	return fx
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEnsureExists_MissingPrimaryIsNotConfigured(t *testing.T) {
	fx := newHyprFixture(t, "")
	store := NewStore(fx.primary, fx.override, nil)

	created, err := store.EnsureExists()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.False(t, created)

	_, statErr := os.Stat(fx.override)
	assert.True(t, os.IsNotExist(statErr), "override file must not be created")
}

func TestEnsureExists_CreatesOverrideAndSourcesItOnce(t *testing.T) {
	fx := newHyprFixture(t, "monitor=,preferred,auto,1\n")
	store := NewStore(fx.primary, fx.override, nil)

	created, err := store.EnsureExists()
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, Header+"\n", readFile(t, fx.override))
	assert.Equal(t,
		"monitor=,preferred,auto,1\n\n# Include overrides configuration\nsource = ~/.config/hypr/conf-overrides.conf\n",
		readFile(t, fx.primary))

	created, err = store.EnsureExists()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, strings.Count(readFile(t, fx.primary), "source = "))
}

func TestEnsureExists_RecreatesDeletedOverrideFile(t *testing.T) {
	fx := newHyprFixture(t, "# main\n")
	store := NewStore(fx.primary, fx.override, nil)

	_, err := store.EnsureExists()
	require.NoError(t, err)
	require.NoError(t, os.Remove(fx.override))

	created, err := store.EnsureExists()
	require.NoError(t, err)
	assert.True(t, created)
	// The gate is the override file alone, so the directive is appended again.
	assert.Equal(t, 2, strings.Count(readFile(t, fx.primary), "source = "))
}

func TestEnsureExists_OverrideOutsideHomeUsesAbsolutePath(t *testing.T) {
	fx := newHyprFixture(t, "# main\n")
	outside := filepath.Join(t.TempDir(), "overrides.conf")
	store := NewStore(fx.primary, outside, nil)

	_, err := store.EnsureExists()
	require.NoError(t, err)
	assert.Contains(t, readFile(t, fx.primary), "source = "+outside+"\n")
}

func TestUpsert_ExampleFromFile(t *testing.T) {
	fx := newHyprFixture(t, "# main\n")
	require.NoError(t, os.WriteFile(fx.override,
		[]byte("monitor=DP-3,2560x1440@155,0x0,1\ninput:sensitivity=0.2\n"), 0644))
	store := NewStore(fx.primary, fx.override, nil)

	outcome, err := store.Upsert("monitor=DP-3,1920x1080@60,0x0,1")
	require.NoError(t, err)
	assert.True(t, outcome.Replaced)

	lines, err := store.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"monitor=DP-3,1920x1080@60,0x0,1", "input:sensitivity=0.2"}, lines)
	assert.Equal(t, "monitor=DP-3,1920x1080@60,0x0,1\ninput:sensitivity=0.2\n", readFile(t, fx.override))
}

func TestUpsert_IdempotentOnDisk(t *testing.T) {
	fx := newHyprFixture(t, "# main\n")
	store := NewStore(fx.primary, fx.override, nil)
	_, err := store.EnsureExists()
	require.NoError(t, err)

	_, err = store.Upsert("input:kb_layout=us,fi")
	require.NoError(t, err)
	once := readFile(t, fx.override)

	_, err = store.Upsert("input:kb_layout=us,fi")
	require.NoError(t, err)
	assert.Equal(t, once, readFile(t, fx.override))
	assert.Equal(t, Header+"\ninput:kb_layout=us,fi\n", once)
}

func TestUpsert_NormalizesMissingTrailingNewlineAndCRLF(t *testing.T) {
	fx := newHyprFixture(t, "# main\n")
	require.NoError(t, os.WriteFile(fx.override, []byte("# header\r\ninput:sensitivity=0.1"), 0644))
	store := NewStore(fx.primary, fx.override, nil)

	_, err := store.Upsert("input:sensitivity=0.4")
	require.NoError(t, err)
	assert.Equal(t, "# header\ninput:sensitivity=0.4\n", readFile(t, fx.override))
}

func TestUpsert_MissingOverrideFileFails(t *testing.T) {
	fx := newHyprFixture(t, "# main\n")
	store := NewStore(fx.primary, fx.override, nil)

	_, err := store.Upsert("input:sensitivity=0.4")
	assert.Error(t, err)
}

func TestUpsertDevice(t *testing.T) {
	fx := newHyprFixture(t, "# main\n")
	store := NewStore(fx.primary, fx.override, nil)
	_, err := store.EnsureExists()
	require.NoError(t, err)

	_, err = store.UpsertDevice("corne", []string{"us"})
	require.NoError(t, err)
	outcome, err := store.UpsertDevice("corne", []string{"fi"})
	require.NoError(t, err)
	assert.True(t, outcome.Replaced)

	assert.Equal(t, Header+"\ndevice {\n    name = corne\n    kb_layout = fi\n}\n", readFile(t, fx.override))
}

func TestEnsureExists_RemovesOverrideWhenSourceAppendFails(t *testing.T) {
	fx := newHyprFixture(t, "")
	// A directory passes the existence check but cannot be opened for append.
	require.NoError(t, os.Mkdir(fx.primary, 0755))
	store := NewStore(fx.primary, fx.override, nil)

	created, err := store.EnsureExists()
	require.Error(t, err)
	assert.False(t, created)
	_, statErr := os.Stat(fx.override)
	assert.True(t, os.IsNotExist(statErr), "override file must not survive a failed bootstrap")

	require.NoError(t, os.Remove(fx.primary))
	require.NoError(t, os.WriteFile(fx.primary, []byte("# main\n"), 0644))

	created, err = store.EnsureExists()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, strings.Count(readFile(t, fx.primary), "source = "))
}

func TestUpsert_RejectsLineBreaks(t *testing.T) {
	fx := newHyprFixture(t, "# main\n")
	require.NoError(t, os.WriteFile(fx.override, []byte("input:sensitivity=0.2\n"), 0644))
	store := NewStore(fx.primary, fx.override, nil)

	_, err := store.Upsert("input:kb_layout=us\ninput:sensitivity=1")
	assert.ErrorIs(t, err, ErrMultiline)
	assert.Equal(t, "input:sensitivity=0.2\n", readFile(t, fx.override))
}

func TestUpsertDevice_RejectsLineBreaks(t *testing.T) {
	fx := newHyprFixture(t, "# main\n")
	store := NewStore(fx.primary, fx.override, nil)
	_, err := store.EnsureExists()
	require.NoError(t, err)

	_, err = store.UpsertDevice("corne\n}\ninput:sensitivity=1", []string{"us"})
	assert.ErrorIs(t, err, ErrMultiline)
	_, err = store.UpsertDevice("corne", []string{"us\r"})
	assert.ErrorIs(t, err, ErrMultiline)

	assert.Equal(t, Header+"\n", readFile(t, fx.override))
}

func TestUpsert_UnclassifiedLineIsNotLoggedWithAFamily(t *testing.T) {
	fx := newHyprFixture(t, "# main\n")
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := NewStore(fx.primary, fx.override, logger)
	_, err := store.EnsureExists()
	require.NoError(t, err)

	outcome, err := store.Upsert("general:gaps_in=5")
	require.NoError(t, err)
	assert.False(t, outcome.Classified)
	assert.Contains(t, logs.String(), "unclassified override appended")
	assert.NotContains(t, logs.String(), "family=")

	logs.Reset()
	_, err = store.Upsert("monitor=DP-3,2560x1440@155,0x0,1")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "family=monitor")
	assert.Contains(t, logs.String(), "key=DP-3")
}
