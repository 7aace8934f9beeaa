package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/hyprconf/internal/hyprctl"
	"github.com/1broseidon/hyprconf/internal/overrides"
	"github.com/1broseidon/hyprconf/internal/settings"
)

type fakeRunner struct {
	outputs map[string]string
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	out, ok := f.outputs[key]
	if !ok {
		return nil, &hyprctl.CommandError{Args: args, Err: errors.New("exit status 1")}
	}
	return []byte(out), nil
}

const monitorsText = `Monitor DP-3 (ID 0):
	2560x1440@143.91200 at 0x0
	availableModes: 2560x1440@143.91Hz 2560x1440@59.95Hz 1920x1080@60.00Hz
Monitor HDMI-A-1 (ID 1):
	1920x1080@60.00000 at 2560x0
	availableModes: 1920x1080@60.00Hz
`

func newTestServer(t *testing.T) (*Server, *fakeRunner) {
	t.Helper()
	dir := t.TempDir()
	primary := filepath.Join(dir, "hyprland.conf")
	require.NoError(t, os.WriteFile(primary, []byte("# hyprland\n"), 0644))

	runner := &fakeRunner{outputs: map[string]string{
		"monitors all":                                    monitorsText,
		"devices -j":                                      `{"keyboards": [{"name": "foostan-corne", "layout": "us"}]}`,
		"getoption input:sensitivity":                     "float: 0.200000\nset: true\n",
		"getoption input:force_no_accel":                  "int: 0\nset: true\n",
		"keyword monitor HDMI-A-1,1920x1080@60,-1920x0,1": "ok",
	}}
	svc := settings.New(settings.Options{
		Store:          overrides.NewStore(primary, filepath.Join(dir, "overrides.conf"), nil),
		Hyprctl:        hyprctl.NewClient("", runner, nil),
		DefaultLocales: []string{"us"},
	})
	_, err := svc.Bootstrap()
	require.NoError(t, err)
	return NewServer(svc, nil), runner
}

func TestListMonitors(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{IncludeModes: true})
	require.NoError(t, err)
	require.Len(t, out.Monitors, 2)

	assert.Equal(t, "DP-3", out.Monitors[0].Name)
	assert.True(t, out.Monitors[0].Primary)
	assert.Len(t, out.Monitors[0].Modes, 3)
	assert.Equal(t, 2560, out.Monitors[1].X)
	assert.False(t, out.Monitors[1].Primary)
}

func TestSetMonitor_WritesAndApplies(t *testing.T) {
	s, runner := newTestServer(t)

	_, out, err := s.handleSetMonitor(context.Background(), nil, SetMonitorInput{
		Name:     "HDMI-A-1",
		Position: "-1920x0",
	})
	require.NoError(t, err)
	assert.Equal(t, -1920, out.Monitor.X)
	assert.Equal(t, "monitor=HDMI-A-1,1920x1080@60,-1920x0,1", out.Line)

	lines, err := s.svc.Overrides()
	require.NoError(t, err)
	assert.Contains(t, lines, out.Line)
	assert.Contains(t, runner.calls, "keyword monitor HDMI-A-1,1920x1080@60,-1920x0,1")
}

func TestSetMonitor_Rejects(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, _, err := s.handleSetMonitor(ctx, nil, SetMonitorInput{Name: "HDMI-A-1"})
	assert.Error(t, err)

	_, _, err = s.handleSetMonitor(ctx, nil, SetMonitorInput{Name: "DP-9", Position: "0x0"})
	assert.Error(t, err)

	_, _, err = s.handleSetMonitor(ctx, nil, SetMonitorInput{Name: "DP-3", Mode: "fast"})
	assert.Error(t, err)
}

func TestSetKeyboardLayout_Global(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleSetKeyboardLayout(context.Background(), nil, SetKeyboardLayoutInput{Layouts: []string{"fi", "us"}})
	require.NoError(t, err)
	assert.Empty(t, out.Devices)

	_, listed, err := s.handleListOverrides(context.Background(), nil, ListOverridesInput{})
	require.NoError(t, err)
	var found bool
	for _, l := range listed.Lines {
		if l.Family == overrides.FamilyKeyboardLayout.String() {
			found = true
		}
	}
	assert.True(t, found, "kb_layout line not classified: %+v", listed.Lines)
}

func TestSetKeyboardLayout_RequiresLayouts(t *testing.T) {
	s, _ := newTestServer(t)
	_, _, err := s.handleSetKeyboardLayout(context.Background(), nil, SetKeyboardLayoutInput{})
	assert.Error(t, err)
}

func TestSetMouse_KeepsOmittedFields(t *testing.T) {
	s, _ := newTestServer(t)

	noAccel := true
	_, out, err := s.handleSetMouse(context.Background(), nil, SetMouseInput{ForceNoAccel: &noAccel})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, out.Sensitivity, 1e-9)
	assert.True(t, out.ForceNoAccel)

	tooFast := 2.0
	_, _, err = s.handleSetMouse(context.Background(), nil, SetMouseInput{Sensitivity: &tooFast})
	assert.Error(t, err)

	_, _, err = s.handleSetMouse(context.Background(), nil, SetMouseInput{})
	assert.Error(t, err)
}

func TestServer_ListsTools(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()
	ss, err := s.mcpServer.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_monitors", "set_monitor", "set_keyboard_layout", "set_mouse", "list_overrides"}, names)
}
