package hyprctl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/1broseidon/hyprconf/internal/topology"
)

// DefaultBinary is the hyprctl executable looked up on PATH.
const DefaultBinary = "hyprctl"

// Keyboard is one entry of `hyprctl devices -j`.
type Keyboard struct {
	Name   string `json:"name"`
	Layout string `json:"layout"`
}

// Layouts splits the comma separated layout field.
func (k Keyboard) Layouts() []string {
	return splitLocales(k.Layout)
}

// Client talks to the running compositor through hyprctl.
type Client struct {
	bin    string
	runner Runner
	logger *slog.Logger
}

// NewClient returns a client invoking bin (DefaultBinary when empty) through
// runner. A nil runner uses ExecRunner without a timeout.
func NewClient(bin string, runner Runner, logger *slog.Logger) *Client {
	if bin == "" {
		bin = DefaultBinary
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{bin: bin, runner: runner, logger: logger}
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	c.logger.Debug("hyprctl", "args", args)
	out, err := c.runner.Run(ctx, c.bin, args...)
	if err != nil {
		c.logger.Warn("hyprctl failed", "args", args, "error", err)
		return nil, err
	}
	return out, nil
}

// MonitorsText returns the raw `hyprctl monitors all` report.
func (c *Client) MonitorsText(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "monitors", "all")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// MonitorsJSON returns the raw `hyprctl monitors all -j` report.
func (c *Client) MonitorsJSON(ctx context.Context) ([]byte, error) {
	return c.run(ctx, "monitors", "all", "-j")
}

// Monitors reads the text report and parses it.
func (c *Client) Monitors(ctx context.Context) ([]topology.Monitor, error) {
	text, err := c.MonitorsText(ctx)
	if err != nil {
		return nil, err
	}
	return topology.Parse(text), nil
}

// Keyboards lists every keyboard hyprctl knows about, unfiltered.
func (c *Client) Keyboards(ctx context.Context) ([]Keyboard, error) {
	out, err := c.run(ctx, "devices", "-j")
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(out) {
		return nil, fmt.Errorf("devices: %w", ErrUnexpectedOutput)
	}
	list := gjson.GetBytes(out, "keyboards")
	if !list.IsArray() {
		return nil, fmt.Errorf("devices: missing keyboards: %w", ErrUnexpectedOutput)
	}

	var keyboards []Keyboard
	list.ForEach(func(_, kb gjson.Result) bool {
		keyboards = append(keyboards, Keyboard{
			Name:   kb.Get("name").String(),
			Layout: kb.Get("layout").String(),
		})
		return true
	})
	return keyboards, nil
}

// CurrentLocales returns the layouts of the first keyboard. All keyboards are
// assumed to share them. An empty result means no keyboard was reported.
func (c *Client) CurrentLocales(ctx context.Context) ([]string, error) {
	keyboards, err := c.Keyboards(ctx)
	if err != nil {
		return nil, err
	}
	if len(keyboards) == 0 {
		return nil, nil
	}
	return keyboards[0].Layouts(), nil
}

// Sensitivity returns input:sensitivity.
func (c *Client) Sensitivity(ctx context.Context) (float64, error) {
	value, err := c.option(ctx, "input:sensitivity")
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("sensitivity %q: %w", value, ErrUnexpectedOutput)
	}
	return f, nil
}

// ForceNoAccel returns input:force_no_accel.
func (c *Client) ForceNoAccel(ctx context.Context) (bool, error) {
	value, err := c.option(ctx, "input:force_no_accel")
	if err != nil {
		return false, err
	}
	switch value {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("force_no_accel %q: %w", value, ErrUnexpectedOutput)
	}
}

// option returns the second whitespace separated field of `hyprctl getoption`,
// which carries the value ("float: 0.200000", "int: 1").
func (c *Client) option(ctx context.Context, name string) (string, error) {
	out, err := c.run(ctx, "getoption", name)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(out))
	if len(fields) < 2 {
		return "", fmt.Errorf("getoption %s: %w", name, ErrUnexpectedOutput)
	}
	return fields[1], nil
}

// ApplyMonitor asks the compositor to apply a monitor rule immediately.
// value is the right-hand side of a monitor= line.
func (c *Client) ApplyMonitor(ctx context.Context, value string) error {
	_, err := c.run(ctx, "keyword", "monitor", value)
	return err
}

// Reload asks the compositor to re-read its configuration.
func (c *Client) Reload(ctx context.Context) error {
	_, err := c.run(ctx, "reload")
	return err
}

func splitLocales(layout string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(layout, ",") {
		code := strings.TrimSpace(part)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
