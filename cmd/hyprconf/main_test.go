package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/1broseidon/hyprconf/internal/catalog"
	"github.com/1broseidon/hyprconf/internal/config"
	"github.com/1broseidon/hyprconf/internal/overrides"
	"github.com/1broseidon/hyprconf/internal/topology"
)

type env struct {
	dir      string
	config   string
	primary  string
	override string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	e := env{
		dir:      dir,
		config:   filepath.Join(dir, "config.yaml"),
		primary:  filepath.Join(dir, "hyprland.conf"),
		override: filepath.Join(dir, "conf-overrides.conf"),
	}
	require.NoError(t, os.WriteFile(e.primary, []byte("# hyprland\n"), 0644))
	cfg := "hypr_config: " + e.primary + "\n" +
		"overrides_file: " + e.override + "\n" +
		"log_level: error\n" +
		"canvas:\n  padding: 80\n"
	require.NoError(t, os.WriteFile(e.config, []byte(cfg), 0644))
	return e
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.config}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestInit_BootstrapsOnce(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "created "+e.override)

	out, err = e.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	primary, err := os.ReadFile(e.primary)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(primary), "source = "))
}

func TestOverridesUpsert_ReplacesByKey(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "overrides", "upsert", "input:kb_layout=fi,us")
	require.NoError(t, err)
	assert.Contains(t, out, "appended")

	out, err = e.run(t, "overrides", "upsert", "input:kb_layout=us")
	require.NoError(t, err)
	assert.Contains(t, out, "replaced")

	out, err = e.run(t, "overrides", "list")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "input:kb_layout="))
	assert.Contains(t, out, "input:kb_layout=us\n")
}

func TestInit_ReloadReportsHyprctlFailure(t *testing.T) {
	e := newEnv(t)
	cfg, err := os.ReadFile(e.config)
	require.NoError(t, err)
	missing := filepath.Join(e.dir, "no-such-hyprctl")
	require.NoError(t, os.WriteFile(e.config, append(cfg, []byte("hyprctl: "+missing+"\n")...), 0644))

	out, err := e.run(t, "init", "--reload")
	assert.ErrorContains(t, err, "reload hyprland")
	assert.Contains(t, out, "created "+e.override)
}

func TestOverridesUpsert_RejectsLineBreaks(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "overrides", "upsert", "input:kb_layout=us\ninput:sensitivity=1")
	assert.ErrorIs(t, err, overrides.ErrMultiline)

	out, err := e.run(t, "overrides", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "input:sensitivity")
}

func TestOverridesList_MissingPrimary(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.Remove(e.primary))

	_, err := e.run(t, "overrides", "upsert", "input:sensitivity=0.5")
	assert.Error(t, err)
}

func TestMouseSet_RequiresAFlag(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "mouse", "set")
	assert.ErrorContains(t, err, "nothing to change")
}

func TestMonitorSet_RequiresAChange(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "monitor", "set", "DP-3")
	assert.ErrorContains(t, err, "nothing to change")

	_, err = e.run(t, "monitor", "set", "DP-3", "--pos", "left")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "config", "validate")
	require.NoError(t, err)
	assert.Equal(t, "config: ok\n", out)

	out, err = e.run(t, "config", "explain", "canvas.padding")
	require.NoError(t, err)
	assert.Contains(t, out, "source: file:")
	assert.Contains(t, out, "config.yaml")
	assert.Contains(t, out, "80")

	out, err = e.run(t, "config", "print", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "overrides_file: ~/.config/hypr/conf-overrides.conf")
}

func TestConfigValidate_RejectsBadFile(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.WriteFile(e.config, []byte("canvas:\n  overall_scale: -1\n"), 0644))

	_, err := e.run(t, "config", "validate")
	assert.Error(t, err)
}

func TestMonitorsJSON(t *testing.T) {
	monitors := []topology.Monitor{
		{ID: 0, Name: "DP-3", Resolution: "2560x1440", RefreshRate: 143.91,
			Modes: []catalog.Mode{{Resolution: "2560x1440", RefreshRate: 143.91}}},
		{ID: 1, Name: "HDMI-A-1", Resolution: "1920x1080", RefreshRate: 60, X: 2560},
	}

	doc, err := monitorsJSON(monitors)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(doc))

	assert.Equal(t, int64(2), gjson.GetBytes(doc, "monitors.#").Int())
	assert.Equal(t, "DP-3", gjson.GetBytes(doc, "monitors.0.name").String())
	assert.True(t, gjson.GetBytes(doc, "monitors.0.primary").Bool())
	assert.Equal(t, "2560x1440@143.91Hz", gjson.GetBytes(doc, "monitors.0.modes.0").String())
	assert.Equal(t, int64(2560), gjson.GetBytes(doc, "monitors.1.x").Int())
	assert.False(t, gjson.GetBytes(doc, "monitors.1.primary").Bool())
	assert.Equal(t, int64(0), gjson.GetBytes(doc, "monitors.1.modes.#").Int())
}

func TestFormatSource(t *testing.T) {
	assert.Equal(t, "default", formatSource(config.Source{Kind: config.SourceDefault}))
	assert.Equal(t, "file:/a.yaml:3:5", formatSource(config.Source{Kind: config.SourceFile, File: "/a.yaml", Line: 3, Column: 5}))
	assert.Equal(t, "file:/a.yaml", formatSource(config.Source{Kind: config.SourceFile, File: "/a.yaml"}))
}
