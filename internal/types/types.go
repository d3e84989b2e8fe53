package types

import "fmt"

// Span is a half-open byte range [Start, End) into the source buffer.
// Offsets are stable for the lifetime of a parse snapshot.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

// Encloses reports whether o lies entirely within s.
func (s Span) Encloses(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Intersects reports whether the two spans share at least one byte.
func (s Span) Intersects(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Classification is a renderer-agnostic tag attached to a span by the
// highlight annotator. Mapping a classification to a visual style is the
// caller's concern.
type Classification string

const (
	ClassKeyword     Classification = "keyword"
	ClassString      Classification = "string"
	ClassRegexp      Classification = "regexp"
	ClassComment     Classification = "comment"
	ClassEscape      Classification = "escape"
	ClassNumber      Classification = "number"
	ClassConstant    Classification = "constant"
	ClassBuiltinFunc Classification = "builtin-function"
	ClassBuiltinVar  Classification = "builtin-variable"
	ClassOperator    Classification = "operator"
	ClassBracket     Classification = "bracket"
	ClassDelimiter   Classification = "delimiter"
	ClassFuncDef     Classification = "function-definition"
	ClassFuncCall    Classification = "function-call"
	ClassVariable    Classification = "variable-use"
	ClassNamespace   Classification = "namespace"
	ClassError       Classification = "error"
)

// Styled is one entry of the final assignment table: a span plus the
// classification that won it.
type Styled struct {
	Span  Span           `json:"span"`
	Class Classification `json:"class"`
}

// Config is the explicit per-query configuration record. There is no
// process-wide mutable state in the engine; every query call receives one
// of these.
type Config struct {
	Name           string          `yaml:"name"`
	IndentUnit     int             `yaml:"indent_unit"`
	TabWidth       int             `yaml:"tab_width"`
	Features       map[string]bool `yaml:"features"`
	PreferTopLevel bool            `yaml:"prefer_top_level"`
}

const (
	DefaultIndentUnit = 4
	DefaultTabWidth   = 8
)

// Default returns the configuration used when no config file is present:
// every feature group enabled, 4-column indent unit.
func Default() Config {
	return Config{
		Name:       "treelight",
		IndentUnit: DefaultIndentUnit,
		TabWidth:   DefaultTabWidth,
		Features:   map[string]bool{},
	}
}

// FeatureEnabled reports whether a feature group is active. Groups are on
// unless the configuration disables them explicitly.
func (c Config) FeatureEnabled(name string) bool {
	if c.Features == nil {
		return true
	}
	enabled, ok := c.Features[name]
	if !ok {
		return true
	}
	return enabled
}

// Normalize fills zero-valued knobs with their defaults so that a partially
// populated configuration record is still usable.
func (c Config) Normalize() Config {
	if c.IndentUnit <= 0 {
		c.IndentUnit = DefaultIndentUnit
	}
	if c.TabWidth <= 0 {
		c.TabWidth = DefaultTabWidth
	}
	return c
}
