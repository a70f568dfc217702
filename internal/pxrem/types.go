package pxrem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RemBase is the fixed px-per-rem ratio used for every conversion.
const RemBase = 16

// EscapeFunc escapes a raw class name into a CSS identifier.
type EscapeFunc func(className string) string

// PropertyAlias maps a short class prefix to a CSS property name
type PropertyAlias struct {
	Prefix   string // "min-w"
	Property string // "minWidth"
}

// PropertyAliases is an insertion-ordered prefix → property table
type PropertyAliases []PropertyAlias

// Merge returns a copy of a with overrides applied on top.
// Existing prefixes keep their position, new prefixes are appended.
func (a PropertyAliases) Merge(overrides PropertyAliases) PropertyAliases {
	merged := make(PropertyAliases, len(a), len(a)+len(overrides))
	copy(merged, a)

	index := make(map[string]int, len(merged))
	for i, alias := range merged {
		index[alias.Prefix] = i
	}

	for _, o := range overrides {
		if i, ok := index[o.Prefix]; ok {
			merged[i].Property = o.Property
			continue
		}
		index[o.Prefix] = len(merged)
		merged = append(merged, o)
	}
	return merged
}

// Lookup returns the property registered for prefix
func (a PropertyAliases) Lookup(prefix string) (string, bool) {
	for _, alias := range a {
		if alias.Prefix == prefix {
			return alias.Property, true
		}
	}
	return "", false
}

// Breakpoint is a named viewport width threshold
type Breakpoint struct {
	Name  string // "sm"
	Width int    // 640
}

// Breakpoints is an insertion-ordered name → width table
type Breakpoints []Breakpoint

// Merge returns a copy of b with overrides applied on top, same rules as PropertyAliases.Merge.
func (b Breakpoints) Merge(overrides Breakpoints) Breakpoints {
	merged := make(Breakpoints, len(b), len(b)+len(overrides))
	copy(merged, b)

	index := make(map[string]int, len(merged))
	for i, bp := range merged {
		index[bp.Name] = i
	}

	for _, o := range overrides {
		if i, ok := index[o.Name]; ok {
			merged[i].Width = o.Width
			continue
		}
		index[o.Name] = len(merged)
		merged = append(merged, o)
	}
	return merged
}

// MediaQuery returns the conditional block key for this breakpoint
func (bp Breakpoint) MediaQuery() string {
	return fmt.Sprintf("@media not all and (min-width: %dpx)", bp.Width)
}

// Config is the resolved generator configuration
type Config struct {
	MaxPxValue      int
	PropertyAliases PropertyAliases
	Breakpoints     Breakpoints

	// ResponsiveShorthands also emits breakpoint variants for the m/p axis
	// and rounded direction rules.
	ResponsiveShorthands bool
}

// PluginOptions are the caller-supplied partial options.
// Zero values mean "not supplied".
type PluginOptions struct {
	MaxPxValue      int
	PropertyAliases PropertyAliases
	Breakpoints     Breakpoints
	Full            bool

	ResponsiveShorthands bool
}

// Declaration is a single property: value pair
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered declaration block, encoded as a JSON object
type Declarations []Declaration

// Get returns the value set for property
func (d Declarations) Get(property string) (string, bool) {
	for _, decl := range d {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the block as an object preserving declaration order
func (d Declarations) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, string]()
	for _, decl := range d {
		om.Set(decl.Property, decl.Value)
	}
	return om.MarshalJSON()
}

// UnmarshalJSON decodes an object of string values, keeping key order
func (d *Declarations) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, string]()
	if err := om.UnmarshalJSON(data); err != nil {
		return err
	}

	decls := make(Declarations, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		decls = append(decls, Declaration{Property: pair.Key, Value: pair.Value})
	}
	*d = decls
	return nil
}

// Rule is the body registered for one selector: either a flat declaration
// block or a declaration block nested under a media condition.
type Rule struct {
	Media        string // "" for flat rules
	Declarations Declarations
}

// Equal reports whether two rules carry the same condition and declarations
func (r Rule) Equal(other Rule) bool {
	if r.Media != other.Media || len(r.Declarations) != len(other.Declarations) {
		return false
	}
	for i := range r.Declarations {
		if r.Declarations[i] != other.Declarations[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes {"prop": "value"} or {"@media ...": {"prop": "value"}}
func (r Rule) MarshalJSON() ([]byte, error) {
	if r.Media == "" {
		return r.Declarations.MarshalJSON()
	}

	om := orderedmap.New[string, Declarations]()
	om.Set(r.Media, r.Declarations)
	return om.MarshalJSON()
}

// UnmarshalJSON accepts both rule shapes
func (r *Rule) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, json.RawMessage]()
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}

	if raw.Len() == 1 {
		pair := raw.Oldest()
		body := bytes.TrimSpace(pair.Value)
		if strings.HasPrefix(pair.Key, "@") && len(body) > 0 && body[0] == '{' {
			var decls Declarations
			if err := decls.UnmarshalJSON(body); err != nil {
				return fmt.Errorf("media block %q: %w", pair.Key, err)
			}
			r.Media = pair.Key
			r.Declarations = decls
			return nil
		}
	}

	var decls Declarations
	if err := decls.UnmarshalJSON(data); err != nil {
		return err
	}
	r.Media = ""
	r.Declarations = decls
	return nil
}

// UtilityMap is an insertion-ordered selector → rule mapping
type UtilityMap struct {
	rules *orderedmap.OrderedMap[string, Rule]
}

// NewUtilityMap creates an empty map
func NewUtilityMap() *UtilityMap {
	return &UtilityMap{rules: orderedmap.New[string, Rule]()}
}

func (m *UtilityMap) init() {
	if m.rules == nil {
		m.rules = orderedmap.New[string, Rule]()
	}
}

// Set registers rule under selector, replacing any previous rule in place
func (m *UtilityMap) Set(selector string, rule Rule) {
	m.init()
	m.rules.Set(selector, rule)
}

// Get returns the rule registered under selector
func (m *UtilityMap) Get(selector string) (Rule, bool) {
	if m == nil || m.rules == nil {
		return Rule{}, false
	}
	return m.rules.Get(selector)
}

// Len returns the number of selectors
func (m *UtilityMap) Len() int {
	if m == nil || m.rules == nil {
		return 0
	}
	return m.rules.Len()
}

// Each calls fn for every selector in insertion order
func (m *UtilityMap) Each(fn func(selector string, rule Rule)) {
	if m == nil || m.rules == nil {
		return
	}
	for pair := m.rules.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Selectors returns every selector in insertion order
func (m *UtilityMap) Selectors() []string {
	selectors := make([]string, 0, m.Len())
	m.Each(func(selector string, _ Rule) {
		selectors = append(selectors, selector)
	})
	return selectors
}

// Filter returns a new map holding only the selectors keep accepts
func (m *UtilityMap) Filter(keep func(selector string) bool) *UtilityMap {
	filtered := NewUtilityMap()
	m.Each(func(selector string, rule Rule) {
		if keep(selector) {
			filtered.Set(selector, rule)
		}
	})
	return filtered
}

// Equal reports whether both maps hold the same selectors with the same rules.
// Insertion order is not compared.
func (m *UtilityMap) Equal(other *UtilityMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	equal := true
	m.Each(func(selector string, rule Rule) {
		if !equal {
			return
		}
		o, ok := other.Get(selector)
		equal = ok && rule.Equal(o)
	})
	return equal
}

// MarshalJSON encodes the map as a JSON object in insertion order
func (m *UtilityMap) MarshalJSON() ([]byte, error) {
	if m == nil || m.rules == nil {
		return []byte("{}"), nil
	}
	return m.rules.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object of rules, keeping selector order
func (m *UtilityMap) UnmarshalJSON(data []byte) error {
	rules := orderedmap.New[string, Rule]()
	if err := rules.UnmarshalJSON(data); err != nil {
		return err
	}
	m.rules = rules
	return nil
}

// CacheEntry maps a revision key to the utilities generated for it
type CacheEntry map[string]*UtilityMap

// Generation describes the outcome of one generator run
type Generation struct {
	Key       string // Revision key the utilities are stored under
	Source    string // Name of the key source that produced Key
	CacheHit  bool
	Utilities *UtilityMap
}

// GenerateResult contains pipeline stats
type GenerateResult struct {
	RevisionKey        string
	KeySource          string
	CacheHit           bool
	CachePath          string
	UtilitiesGenerated int // Size of the full utility map
	UtilitiesWritten   int // Size after content filtering
	FilesScanned       int // Content files scanned (0 when no filter is configured)
	OutputPath         string
	Format             OutputFormat
	Warnings           []string
}

// OutputFormat represents the generated artifact format
type OutputFormat string

const (
	// OutputCSS writes a plain stylesheet
	OutputCSS OutputFormat = "css"
	// OutputJSON writes the utility map in the host registration format
	OutputJSON OutputFormat = "json"
)
