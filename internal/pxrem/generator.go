package pxrem

import (
	"log/slog"
	"strconv"
)

// roundedDirections lists the border-radius corners set by each rounded-{dir} utility
var roundedDirections = []struct {
	suffix  string
	corners []string
}{
	{"t", []string{"borderTopLeftRadius", "borderTopRightRadius"}},
	{"r", []string{"borderTopRightRadius", "borderBottomRightRadius"}},
	{"b", []string{"borderBottomLeftRadius", "borderBottomRightRadius"}},
	{"l", []string{"borderTopLeftRadius", "borderBottomLeftRadius"}},
	{"tl", []string{"borderTopLeftRadius"}},
	{"tr", []string{"borderTopRightRadius"}},
	{"br", []string{"borderBottomRightRadius"}},
	{"bl", []string{"borderBottomLeftRadius"}},
}

// FormatRem converts a pixel value to its rem string, e.g. 1 → "0.0625rem"
func FormatRem(px int) string {
	rem := float64(px) / RemBase
	return strconv.FormatFloat(rem, 'f', -1, 64) + "rem"
}

// ClassName returns the unescaped arbitrary-value class name, e.g. "w-[12px]"
func ClassName(prefix string, px int) string {
	return prefix + "-[" + strconv.Itoa(px) + "px]"
}

// BuildUtilities generates every utility for config. It never touches the cache.
//
// For each prefix and each px in 1..MaxPxValue it emits the base rule, one
// responsive rule per breakpoint, the x/y axis rules for m and p, and the eight
// directional rules for rounded. Axis and directional rules only get responsive
// counterparts when config.ResponsiveShorthands is set.
func BuildUtilities(escape EscapeFunc, config Config) *UtilityMap {
	if escape == nil {
		escape = EscapeClassName
	}

	utilities := NewUtilityMap()
	emit := func(className string, decls Declarations, responsive bool) {
		utilities.Set("."+escape(className), Rule{Declarations: decls})
		if !responsive {
			return
		}
		for _, bp := range config.Breakpoints {
			utilities.Set("."+escape(bp.Name+":"+className), Rule{
				Media:        bp.MediaQuery(),
				Declarations: decls,
			})
		}
	}

	for _, alias := range config.PropertyAliases {
		prefix, property := alias.Prefix, alias.Property

		for px := 1; px <= config.MaxPxValue; px++ {
			value := FormatRem(px)

			emit(ClassName(prefix, px), Declarations{{property, value}}, true)

			if prefix == "m" || prefix == "p" {
				base := "padding"
				if prefix == "m" {
					base = "margin"
				}

				emit(ClassName(prefix+"x", px), Declarations{
					{base + "Left", value},
					{base + "Right", value},
				}, config.ResponsiveShorthands)
				emit(ClassName(prefix+"y", px), Declarations{
					{base + "Top", value},
					{base + "Bottom", value},
				}, config.ResponsiveShorthands)
			}

			if prefix == "rounded" {
				for _, dir := range roundedDirections {
					decls := make(Declarations, 0, len(dir.corners))
					for _, corner := range dir.corners {
						decls = append(decls, Declaration{corner, value})
					}
					emit(ClassName(prefix+"-"+dir.suffix, px), decls, config.ResponsiveShorthands)
				}
			}
		}
	}

	return utilities
}

// GeneratorOptions tunes cache interaction
type GeneratorOptions struct {
	// DisableCache skips both the cache lookup and the write-back.
	DisableCache bool
	// ConfigAwareKey suffixes the revision key with Fingerprint(config), so a
	// configuration change within one revision is no longer served from cache.
	ConfigAwareKey bool
}

// Generator produces utility maps through a revision-keyed cache
type Generator struct {
	cache   *Cache
	keys    *KeyResolver
	options GeneratorOptions
	logger  *slog.Logger
}

// NewGenerator creates a generator. A nil logger discards log output.
func NewGenerator(cache *Cache, keys *KeyResolver, options GeneratorOptions, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = discardLogger()
	}
	return &Generator{
		cache:   cache,
		keys:    keys,
		options: options,
		logger:  logger,
	}
}

// Generate returns the utilities for config.
//
// A map cached under the current revision key is returned as-is, whatever
// config says; staleness within one revision is accepted unless ConfigAwareKey
// is set. On a miss the utilities are built and written back best-effort,
// replacing every other revision in the cache. The only error is a revision
// key that no source could produce.
func (g *Generator) Generate(escape EscapeFunc, config Config) (*Generation, error) {
	key, source, err := g.keys.Resolve()
	if err != nil {
		return nil, err
	}
	if g.options.ConfigAwareKey {
		key += "-" + Fingerprint(config)
	}

	if !g.options.DisableCache && g.cache != nil {
		if utilities, ok := g.cache.Lookup(key); ok {
			g.logger.Debug("cache hit", "key", key, "utilities", utilities.Len())
			return &Generation{Key: key, Source: source, CacheHit: true, Utilities: utilities}, nil
		}
	}

	g.logger.Debug("cache miss, generating", "key", key,
		"max_px", config.MaxPxValue,
		"prefixes", len(config.PropertyAliases),
		"breakpoints", len(config.Breakpoints))

	utilities := BuildUtilities(escape, config)

	if !g.options.DisableCache && g.cache != nil {
		_ = g.cache.Write(CacheEntry{key: utilities})
	}

	return &Generation{Key: key, Source: source, Utilities: utilities}, nil
}
