package palette

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrCancelled is returned when the user closes the launcher without
// selecting an entry.
var ErrCancelled = errors.New("palette cancelled")

// Entry is one row in a launcher menu.
type Entry struct {
	Label  string
	Value  string
	Active bool // current setting, highlighted where the launcher can
}

// Launcher shows a list of entries and returns the chosen one.
type Launcher interface {
	Pick(ctx context.Context, prompt string, entries []Entry) (Entry, error)
}

// runFunc runs name with args and stdin, returning stdout and the exit code.
type runFunc func(ctx context.Context, name string, args []string, stdin string) (string, int, error)

func execRun(ctx context.Context, name string, args []string, stdin string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), nil
		}
		return "", -1, err
	}
	return string(out), 0, nil
}

type launcherKind int

const (
	kindFuzzel launcherKind = iota
	kindWofi
	kindRofi
)

// Launchers in detection order. Wayland-native ones come first.
var launcherNames = []string{"fuzzel", "wofi", "rofi"}

// dmenuLauncher drives any launcher with a dmenu mode: entries on stdin,
// the selection on stdout.
type dmenuLauncher struct {
	command string
	kind    launcherKind
	run     runFunc
}

// New returns the launcher called name, or the first one found in PATH when
// name is empty or "auto".
func New(name string) (Launcher, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		for _, candidate := range launcherNames {
			if _, err := exec.LookPath(candidate); err == nil {
				return New(candidate)
			}
		}
		return nil, fmt.Errorf("no launcher found in PATH (looked for: %s)", strings.Join(launcherNames, ", "))
	}

	var kind launcherKind
	switch name {
	case "fuzzel":
		kind = kindFuzzel
	case "wofi":
		kind = kindWofi
	case "rofi":
		kind = kindRofi
	default:
		return nil, fmt.Errorf("unknown launcher: %q (expected: auto, %s)", name, strings.Join(launcherNames, ", "))
	}
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("launcher %q not found in PATH", name)
	}
	return &dmenuLauncher{command: name, kind: kind, run: execRun}, nil
}

// indexOutput reports whether the launcher can print the selected row index.
func (l *dmenuLauncher) indexOutput() bool {
	return l.kind != kindWofi
}

func (l *dmenuLauncher) Pick(ctx context.Context, prompt string, entries []Entry) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("palette: no entries to show")
	}

	labels := l.labels(entries)
	out, code, err := l.run(ctx, l.command, l.args(prompt, entries), strings.Join(labels, "\n"))
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", l.command, err)
	}
	selection := strings.TrimSpace(out)

	// 1 is "no selection" for all three, 130 is Ctrl+C.
	if selection == "" && (code == 1 || code == 130 || code == 0) {
		return Entry{}, ErrCancelled
	}
	if code != 0 {
		return Entry{}, fmt.Errorf("%s exited with status %d", l.command, code)
	}

	if l.indexOutput() {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(entries) {
				return Entry{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return entries[idx], nil
		}
	}
	for i, label := range labels {
		if label == selection {
			return entries[i], nil
		}
	}
	return Entry{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func (l *dmenuLauncher) args(prompt string, entries []Entry) []string {
	var args []string
	switch l.kind {
	case kindFuzzel:
		args = []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt+" ")
		}
	case kindWofi:
		args = []string{"--dmenu", "--insensitive"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
	case kindRofi:
		args = []string{"-dmenu", "-i", "-format", "i", "-no-custom"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		var active []string
		for i, e := range entries {
			if e.Active {
				active = append(active, strconv.Itoa(i))
			}
		}
		if len(active) > 0 {
			args = append(args, "-a", strings.Join(active, ","), "-selected-row", active[0])
		}
	}
	return args
}

// labels renders entries one per line. Launchers that answer with text need
// unique labels, so repeats get a counter.
func (l *dmenuLauncher) labels(entries []Entry) []string {
	labels := make([]string, len(entries))
	seen := make(map[string]int)
	for i, e := range entries {
		label := sanitizeLabel(e.Label)
		if e.Active && l.kind != kindRofi {
			label = "● " + label
		}
		if !l.indexOutput() {
			if n := seen[label]; n > 0 {
				seen[label]++
				label = fmt.Sprintf("%s (%d)", label, n+1)
			} else {
				seen[label] = 1
			}
		}
		labels[i] = label
	}
	return labels
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}
