package widget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a dump file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the dump format from a file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Dump is a snapshot of a laid-out screen: the host plus its widget tree.
type Dump struct {
	Host Host    `json:"host" yaml:"host"`
	Root *Widget `json:"root" yaml:"root"`
}

// NewDump wraps an in-memory widget tree and links its parent references.
func NewDump(host Host, root *Widget) *Dump {
	if root != nil {
		root.link()
	}
	return &Dump{Host: host, Root: root}
}

// Load reads and decodes a dump file.
func Load(path string) (*Dump, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("unsupported dump extension: %s", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes dump bytes in the given format.
func Parse(data []byte, format Format) (*Dump, error) {
	return Decode(bytes.NewReader(data), format)
}

// Decode reads a dump from r and links the widget tree.
func Decode(r io.Reader, format Format) (*Dump, error) {
	var d Dump
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return nil, fmt.Errorf("decode json dump: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml dump: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dump format: %s", format)
	}
	if d.Root != nil {
		if err := checkIDs(d.Root); err != nil {
			return nil, fmt.Errorf("invalid dump: %w", err)
		}
		d.Root.link()
	}
	return &d, nil
}

// checkIDs requires every widget below root to carry a unique id. Widgets
// are named by position in the error, e.g. "root.subviews[1]".
func checkIDs(root *Widget) error {
	type item struct {
		w    *Widget
		path string
	}
	seen := map[string]string{}
	stack := []item{{root, "root"}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.w.ID == "" {
			return fmt.Errorf("widget %s (%s) has no id", it.path, it.w.TypeName())
		}
		if prev, dup := seen[it.w.ID]; dup {
			return fmt.Errorf("duplicate id %q at %s and %s", it.w.ID, prev, it.path)
		}
		seen[it.w.ID] = it.path
		for i := len(it.w.Children) - 1; i >= 0; i-- {
			if c := it.w.Children[i]; c != nil {
				stack = append(stack, item{c, fmt.Sprintf("%s.subviews[%d]", it.path, i)})
			}
		}
	}
	return nil
}

// Target returns the widget to generate code for: the widget with the given
// identity, or the dump root when id is empty. It returns nil when nothing
// matches, which callers treat as a no-op.
func (d *Dump) Target(id string) Source {
	if d == nil || d.Root == nil {
		return nil
	}
	if id == "" {
		return d.Root
	}
	if w := d.Find(id); w != nil {
		return w
	}
	return nil
}

// Find looks a widget up by identity.
func (d *Dump) Find(id string) *Widget {
	if d == nil || d.Root == nil {
		return nil
	}
	seen := map[*Widget]bool{}
	stack := []*Widget{d.Root}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w == nil || seen[w] {
			continue
		}
		seen[w] = true
		if w.ID == id {
			return w
		}
		stack = append(stack, w.Children...)
	}
	return nil
}
