package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/DeusData/viewcode/internal/emit"
	"github.com/DeusData/viewcode/internal/hierarchy"
	"github.com/DeusData/viewcode/internal/widget"
)

// FileName is the config file looked up next to dump files.
const FileName = ".viewcode.yaml"

var (
	validate *validator.Validate

	swiftIdentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("swiftident", func(fl validator.FieldLevel) bool {
		return swiftIdentPattern.MatchString(fl.Field().String())
	})
}

// Config holds generation settings. Pointer fields distinguish "unset" from
// the zero value; read them through the Effective accessors.
type Config struct {
	// SortPolicy reorders siblings before naming. Default: none.
	SortPolicy string `yaml:"sort_policy" validate:"omitempty,oneof=none top-to-bottom left-to-right distance"`

	// OutputSyntax selects the constraint style. Default: nslayoutconstraint.
	OutputSyntax string `yaml:"output_syntax" validate:"omitempty,oneof=snapkit anchors nslayoutconstraint"`

	// SkipConstraintless leaves out nodes that own no constraints and are not
	// needed by other emitted code. Default: true.
	SkipConstraintless *bool `yaml:"skip_constraintless_nodes"`

	// EmitHierarchySummary prints the tree summary before the code.
	// Default: true.
	EmitHierarchySummary *bool `yaml:"emit_hierarchy_summary"`

	// ContainerName is the symbol the root is attached to. Default: view.
	ContainerName string `yaml:"container_name" validate:"omitempty,swiftident"`

	// ViewControllerRef is the expression owning the layout guides.
	// Overrides the dump's host ref when set.
	ViewControllerRef string `yaml:"view_controller_ref" validate:"omitempty,swiftident"`

	// RootID picks a widget inside the dump as the generation root.
	RootID string `yaml:"root_id"`

	// MaxDepth bounds the tree walk. Default: 64.
	MaxDepth *int `yaml:"max_depth" validate:"omitempty,min=1,max=4096"`

	// ContainerTypes are the widget types whose subviews are visited.
	// Replaces the built-in list when set.
	ContainerTypes []string `yaml:"container_types" validate:"omitempty,dive,required"`

	// Verify parses generated code and reports syntax issues. Default: false.
	Verify *bool `yaml:"verify"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{}
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir reads .viewcode.yaml from dir. A missing file yields defaults; an
// unreadable or invalid one is reported.
func LoadDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Clone returns a deep copy so callers can apply overrides without touching
// a shared value.
func (c *Config) Clone() *Config {
	out := *c
	if c.ContainerTypes != nil {
		out.ContainerTypes = append([]string(nil), c.ContainerTypes...)
	}
	out.SkipConstraintless = clonePtr(c.SkipConstraintless)
	out.EmitHierarchySummary = clonePtr(c.EmitHierarchySummary)
	out.MaxDepth = clonePtr(c.MaxDepth)
	out.Verify = clonePtr(c.Verify)
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// EffectiveSortPolicy returns the configured policy, or none.
func (c *Config) EffectiveSortPolicy() hierarchy.SortPolicy {
	p, err := hierarchy.ParseSortPolicy(c.SortPolicy)
	if err != nil {
		return hierarchy.SortNone
	}
	return p
}

// EffectiveSyntax returns the configured output syntax, or the default.
func (c *Config) EffectiveSyntax() emit.Syntax {
	s, err := emit.ParseSyntax(c.OutputSyntax)
	if err != nil {
		return emit.DefaultSyntax
	}
	return s
}

// EffectiveSkipConstraintless returns the configured setting, or true.
func (c *Config) EffectiveSkipConstraintless() bool {
	if c.SkipConstraintless != nil {
		return *c.SkipConstraintless
	}
	return true
}

// EffectiveEmitHierarchySummary returns the configured setting, or true.
func (c *Config) EffectiveEmitHierarchySummary() bool {
	if c.EmitHierarchySummary != nil {
		return *c.EmitHierarchySummary
	}
	return true
}

// EffectiveContainerName returns the configured container, or "view".
func (c *Config) EffectiveContainerName() string {
	if c.ContainerName != "" {
		return c.ContainerName
	}
	return emit.DefaultContainer
}

// EffectiveMaxDepth returns the configured depth bound, or the default.
func (c *Config) EffectiveMaxDepth() int {
	if c.MaxDepth != nil {
		return *c.MaxDepth
	}
	return hierarchy.DefaultMaxDepth
}

// EffectiveVerify returns the configured setting, or false.
func (c *Config) EffectiveVerify() bool {
	if c.Verify != nil {
		return *c.Verify
	}
	return false
}

// HierarchyOptions maps the config onto tree construction options.
func (c *Config) HierarchyOptions() hierarchy.Options {
	return hierarchy.Options{
		Sort:           c.EffectiveSortPolicy(),
		ContainerTypes: c.ContainerTypes,
		MaxDepth:       c.EffectiveMaxDepth(),
	}
}

// EmitOptions maps the config onto rendering options for a dump's host.
func (c *Config) EmitOptions(host widget.Host) emit.Options {
	if c.ViewControllerRef != "" {
		host.Ref = c.ViewControllerRef
	}
	return emit.Options{
		Syntax:             c.EffectiveSyntax(),
		SkipConstraintless: c.EffectiveSkipConstraintless(),
		Container:          c.EffectiveContainerName(),
		Host:               host,
	}
}

// formatValidationError flattens validator errors into one readable message.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %q", field, e.Param(), e.Value())
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		case "swiftident":
			return fmt.Errorf("%s: %q is not a Swift identifier", field, e.Value())
		case "required":
			return fmt.Errorf("%s: empty entry", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}

// Overrides are per-invocation settings from CLI flags or tool arguments.
// Empty strings and nil pointers leave the file value in place.
type Overrides struct {
	SortPolicy           string
	OutputSyntax         string
	ContainerName        string
	ViewControllerRef    string
	RootID               string
	SkipConstraintless   *bool
	EmitHierarchySummary *bool
	Verify               *bool
}

// With returns a validated copy of c with o applied.
func (c *Config) With(o Overrides) (*Config, error) {
	out := c.Clone()
	setString(&out.SortPolicy, o.SortPolicy)
	setString(&out.OutputSyntax, o.OutputSyntax)
	setString(&out.ContainerName, o.ContainerName)
	setString(&out.ViewControllerRef, o.ViewControllerRef)
	setString(&out.RootID, o.RootID)
	if o.SkipConstraintless != nil {
		out.SkipConstraintless = clonePtr(o.SkipConstraintless)
	}
	if o.EmitHierarchySummary != nil {
		out.EmitHierarchySummary = clonePtr(o.EmitHierarchySummary)
	}
	if o.Verify != nil {
		out.Verify = clonePtr(o.Verify)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
