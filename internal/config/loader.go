package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source records where an effective setting came from.
type Source struct {
	Kind   SourceKind
	Name   string // for default
	File   string
	Line   int
	Column int
}

func (s Source) position() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// LoadResult is the effective config plus where each key was set.
type LoadResult struct {
	Config  *Config
	Sources map[string]Source // dotted key -> last file that set it
	Files   []string          // loaded files, in merge order
}

// DefaultConfigPath returns ~/.config/hyprconf/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "hyprconf", "config.yaml"), nil
}

// LoadWithSources loads the config at the default location.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and its includes onto the defaults. A missing file
// yields defaults, since hyprconf runs fine without a config of its own.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{
		seen:    make(map[string]bool),
		sources: make(map[string]Source),
	}

	if exists, err := pathExists(path); err != nil {
		return nil, err
	} else if exists {
		if err := l.load(path, nil); err != nil {
			return nil, err
		}
	}

	cfg := BuildEffectiveConfig(l.raw)
	if err := cfg.Validate(); err != nil {
		return nil, attachSourceContext(err, l.sources)
	}
	return &LoadResult{Config: cfg, Sources: l.sources, Files: l.files}, nil
}

// loader merges a config file and its includes depth-first: includes first,
// in the order listed, then the including file on top.
type loader struct {
	raw     RawConfig
	sources map[string]Source
	files   []string
	seen    map[string]bool
}

type includeRef struct {
	path   string
	source Source
}

func (l *loader) load(path string, chain []string) error {
	canon := canonicalPath(path)
	if slices.Contains(chain, canon) {
		return fmt.Errorf("hyprconf config include cycle detected: %s -> %s", strings.Join(chain, " -> "), canon)
	}
	// A fragment reached through two includes is merged once.
	if l.seen[canon] {
		return nil
	}
	l.seen[canon] = true

	data, err := os.ReadFile(canon)
	if err != nil {
		return fmt.Errorf("%s: failed to read hyprconf config: %w", canon, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: failed to parse yaml: %w", canon, err)
	}
	var raw RawConfig
	if err := decodeStrictYAML(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", canon, err)
	}

	sources, includes := scanDocument(&doc, canon)
	for _, inc := range includes {
		paths, err := expandInclude(canon, inc.path)
		if err != nil {
			return fmt.Errorf("%s: include %q: %w", inc.source.position(), inc.path, err)
		}
		for _, p := range paths {
			if err := l.load(p, append(chain, canon)); err != nil {
				return err
			}
		}
	}

	l.raw = l.raw.merge(raw)
	for key, src := range sources {
		l.sources[key] = src
	}
	l.files = append(l.files, canon)
	return nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// canonicalPath resolves symlinks where possible so cycles are detected
// across links.
func canonicalPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real
	}
	return path
}

// expandInclude resolves an include relative to the including file. A
// directory contributes its *.yaml and *.yml files in name order.
func expandInclude(baseFile, include string) ([]string, error) {
	if include == "" {
		return nil, fmt.Errorf("path is empty")
	}
	path, err := ExpandHome(include)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(baseFile), path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		ext := strings.ToLower(filepath.Ext(ent.Name()))
		if ent.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		files = append(files, filepath.Join(path, ent.Name()))
	}
	slices.Sort(files)
	return files, nil
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

// scanDocument walks a parsed config once, recording the position of every
// key (dotted, e.g. "canvas.max_zoom") and collecting top-level include
// entries.
func scanDocument(doc *yaml.Node, file string) (map[string]Source, []includeRef) {
	sources := make(map[string]Source)
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return sources, nil
	}

	at := func(n *yaml.Node) Source {
		return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
	}

	var walk func(n *yaml.Node, prefix string)
	walk = func(n *yaml.Node, prefix string) {
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i].Value, n.Content[i+1]
			if prefix != "" {
				key = prefix + "." + key
			}
			sources[key] = at(val)
			if val.Kind == yaml.MappingNode {
				walk(val, key)
			}
		}
	}
	walk(node, "")

	var includes []includeRef
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "include" {
			continue
		}
		val := node.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			includes = append(includes, includeRef{path: val.Value, source: at(val)})
		case yaml.SequenceNode:
			for _, item := range val.Content {
				if item.Kind == yaml.ScalarNode {
					includes = append(includes, includeRef{path: item.Value, source: at(item)})
				}
			}
		}
	}
	return sources, includes
}

// attachSourceContext points a validation error at the file and line that
// set the offending key.
func attachSourceContext(err error, sources map[string]Source) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return verr
}
