package theme

import (
	"image"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/cursor/internal/logx"
)

// ErrParse is matched by every error returned for a structurally invalid descriptor.
var ErrParse = errors.New("theme: invalid descriptor")

// ParseError reports a descriptor problem, naming the offending field when known.
type ParseError struct {
	// Field is a dotted path such as "cursors.wait.format"; empty for
	// document-level syntax errors.
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return "theme: " + e.Err.Error()
	}
	return "theme: " + e.Field + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes every ParseError match [ErrParse].
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// DocumentKind selects the descriptor syntax.
type DocumentKind uint8

const (
	TOML DocumentKind = iota
	YAML
)

// Descriptor file names, in lookup order.
var descriptorFiles = []struct {
	name string
	kind DocumentKind
}{
	{"theme.toml", TOML},
	{"theme.yaml", YAML},
	{"theme.yml", YAML},
}

// Config is the parsed, immutable description of a vector cursor theme.
type Config struct {
	cursors     map[string]CursorDefinition
	transitions map[string]TransitionConfig
}

type document struct {
	Cursors     map[string]cursorDocument     `toml:"cursors" yaml:"cursors"`
	Transitions map[string]transitionDocument `toml:"transitions" yaml:"transitions"`
}

type cursorDocument struct {
	Format   string `toml:"format" yaml:"format"`
	File     string `toml:"file" yaml:"file"`
	Hotspot  []int  `toml:"hotspot" yaml:"hotspot"`
	LoopMode string `toml:"loop_mode" yaml:"loop_mode"`
}

type transitionDocument struct {
	Type       string `toml:"type" yaml:"type"`
	DurationMs *int64 `toml:"duration_ms" yaml:"duration_ms"`
	Easing     string `toml:"easing" yaml:"easing"`
	File       string `toml:"file" yaml:"file"`
}

// Load reads the descriptor of the theme in dir: theme.toml, falling back
// to theme.yaml and theme.yml.
func Load(dir string) (*Config, error) {
	for _, f := range descriptorFiles {
		path := filepath.Join(dir, f.name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		logx.Logger().Debug("theme: parsing descriptor", "path", path)
		return Parse(data, f.kind)
	}
	return nil, errors.Wrapf(os.ErrNotExist, "theme: no descriptor in %s", dir)
}

// Parse decodes a descriptor document.
func Parse(data []byte, kind DocumentKind) (*Config, error) {
	var doc document
	var err error
	switch kind {
	case TOML:
		err = toml.Unmarshal(data, &doc)
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = errors.Errorf("unknown document kind %d", kind)
	}
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.Cursors == nil {
		return nil, &ParseError{Field: "cursors", Err: errors.New("missing table")}
	}

	cfg := &Config{
		cursors:     make(map[string]CursorDefinition, len(doc.Cursors)),
		transitions: make(map[string]TransitionConfig, len(doc.Transitions)),
	}

	for id, c := range doc.Cursors {
		def, err := c.definition()
		if err != nil {
			return nil, &ParseError{Field: "cursors." + id + err.field, Err: err.err}
		}
		cfg.cursors[id] = def
	}
	for key, tr := range doc.Transitions {
		tc, err := tr.config()
		if err != nil {
			return nil, &ParseError{Field: "transitions." + key + err.field, Err: err.err}
		}
		cfg.transitions[key] = tc
	}

	logx.Logger().Debug("theme: descriptor parsed",
		"cursors", len(cfg.cursors), "transitions", len(cfg.transitions))
	return cfg, nil
}

type fieldError struct {
	field string
	err   error
}

func (c cursorDocument) definition() (CursorDefinition, *fieldError) {
	format, err := ParseFormat(c.Format)
	if err != nil {
		return CursorDefinition{}, &fieldError{".format", err}
	}
	if c.File == "" {
		return CursorDefinition{}, &fieldError{".file", errors.New("required")}
	}
	def := CursorDefinition{
		Format:   format,
		File:     c.File,
		LoopMode: c.LoopMode,
	}
	if c.Hotspot != nil {
		if len(c.Hotspot) != 2 {
			return CursorDefinition{}, &fieldError{".hotspot", errors.Errorf("want [x, y], got %d values", len(c.Hotspot))}
		}
		def.Hotspot = &image.Point{X: c.Hotspot[0], Y: c.Hotspot[1]}
	}
	return def, nil
}

func (t transitionDocument) config() (TransitionConfig, *fieldError) {
	kind, err := ParseTransitionKind(t.Type)
	if err != nil {
		return TransitionConfig{}, &fieldError{".type", err}
	}
	easing, err := ParseEasing(t.Easing)
	if err != nil {
		return TransitionConfig{}, &fieldError{".easing", err}
	}
	tc := TransitionConfig{
		Kind:       kind,
		DurationMs: DefaultTransitionDuration,
		Easing:     easing,
		File:       t.File,
	}
	if t.DurationMs != nil {
		if *t.DurationMs < 0 || *t.DurationMs > int64(^uint32(0)) {
			return TransitionConfig{}, &fieldError{".duration_ms", errors.Errorf("out of range: %d", *t.DurationMs)}
		}
		tc.DurationMs = uint32(*t.DurationMs)
	}
	return tc, nil
}

// TransitionKey returns the descriptor key of the transition from one cursor to another.
func TransitionKey(from, to string) string {
	return from + "->" + to
}

// Cursor returns the definition of the cursor id.
func (c *Config) Cursor(id string) (CursorDefinition, bool) {
	def, ok := c.cursors[id]
	return def, ok
}

// Transition returns the transition from one cursor to another.
func (c *Config) Transition(from, to string) (TransitionConfig, bool) {
	tc, ok := c.transitions[TransitionKey(from, to)]
	return tc, ok
}

// IDs returns the defined cursor ids in sorted order.
func (c *Config) IDs() []string {
	return slices.Sorted(maps.Keys(c.cursors))
}

// TransitionKeys returns the defined transition keys in sorted order.
func (c *Config) TransitionKeys() []string {
	return slices.Sorted(maps.Keys(c.transitions))
}

// Len returns the number of defined cursors.
func (c *Config) Len() int {
	return len(c.cursors)
}
