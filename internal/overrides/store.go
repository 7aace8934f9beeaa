package overrides

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Header is the first line of a freshly created override file.
const Header = "# Hyprland configuration overrides"

const includeComment = "# Include overrides configuration"

// ErrNotConfigured is returned when the primary Hyprland config is missing.
var ErrNotConfigured = errors.New("hyprland configuration file not found")

// Store owns the override file that the primary config sources.
//
// Every mutation reads the whole file, edits it in memory and rewrites it.
// There is no locking; concurrent external edits between read and write are
// lost.
type Store struct {
	primaryPath string
	path        string
	logger      *slog.Logger
}

// NewStore creates a store for the override file at path, sourced from the
// primary config at primaryPath.
func NewStore(primaryPath, path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		primaryPath: primaryPath,
		path:        path,
		logger:      logger,
	}
}

// Path returns the override file path.
func (s *Store) Path() string {
	return s.path
}

// PrimaryPath returns the primary config path.
func (s *Store) PrimaryPath() string {
	return s.primaryPath
}

// EnsureExists creates the override file and wires it into the primary
// config. The include directive is appended only when the override file is
// being created; the primary config is never scanned for an existing one.
func (s *Store) EnsureExists() (bool, error) {
	if exists, err := pathExists(s.primaryPath); err != nil {
		return false, err
	} else if !exists {
		return false, fmt.Errorf("%w at %s: Hyprland is either not installed or not configured", ErrNotConfigured, s.primaryPath)
	}

	if exists, err := pathExists(s.path); err != nil {
		return false, err
	} else if exists {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return false, fmt.Errorf("failed to create override directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(Header+"\n"), 0644); err != nil {
		return false, fmt.Errorf("failed to create override file: %w", err)
	}

	// The override file's existence gates the include directive, so it must
	// not outlive a failed append.
	if err := s.appendSource(); err != nil {
		if rmErr := os.Remove(s.path); rmErr != nil {
			s.logger.Warn("failed to remove override file after bootstrap error", "path", s.path, "error", rmErr)
		}
		return false, err
	}

	s.logger.Info("created override file", "path", s.path, "primary", s.primaryPath)
	return true, nil
}

func (s *Store) appendSource() error {
	f, err := os.OpenFile(s.primaryPath, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.primaryPath, err)
	}
	defer f.Close()

	directive := fmt.Sprintf("\n%s\nsource = %s\n", includeComment, sourcePath(s.path))
	if _, err := f.WriteString(directive); err != nil {
		return fmt.Errorf("failed to append source directive to %s: %w", s.primaryPath, err)
	}
	return nil
}

// Lines reads the override file. The trailing newline does not produce an
// empty final line.
func (s *Store) Lines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read override file: %w", err)
	}
	return splitLines(string(data)), nil
}

// Upsert writes line into the override file, replacing the existing line with
// the same family and key if there is one.
func (s *Store) Upsert(line string) (Outcome, error) {
	lines, err := s.Lines()
	if err != nil {
		return Outcome{}, err
	}

	merged, outcome, err := Merge(lines, line)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.write(merged); err != nil {
		return Outcome{}, err
	}

	if outcome.Classified {
		s.logger.Debug("override upserted",
			"line", line,
			"family", outcome.Family.String(),
			"key", outcome.Key,
			"replaced", outcome.Replaced)
	} else {
		s.logger.Debug("unclassified override appended", "line", line)
	}
	return outcome, nil
}

// UpsertDevice writes a per-device keyboard layout block.
func (s *Store) UpsertDevice(name string, layouts []string) (Outcome, error) {
	for _, text := range append([]string{name}, layouts...) {
		if err := ValidateLine(text); err != nil {
			return Outcome{}, err
		}
	}
	lines, err := s.Lines()
	if err != nil {
		return Outcome{}, err
	}

	merged, outcome := MergeDevice(lines, name, DeviceBlock(name, layouts))
	if err := s.write(merged); err != nil {
		return Outcome{}, err
	}

	s.logger.Debug("device override upserted", "device", name, "replaced", outcome.Replaced)
	return outcome, nil
}

func (s *Store) write(lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write override file: %w", err)
	}
	return nil
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	parts := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// sourcePath renders path for a `source =` directive, abbreviating the home
// directory to "~" the way hand-written Hyprland configs do.
func sourcePath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return path
	}
	return "~/" + filepath.ToSlash(rel)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
