package pxrem

import (
	"log/slog"
	"path/filepath"

	core "github.com/yacobolo/pxrem/internal/pxrem"
)

// PluginConfig controls where the plugin keeps its cache and how it derives
// the revision key. The zero value uses the working directory.
type PluginConfig struct {
	Dir          string // Directory used to locate the repository and manifest
	CachePath    string // Cache document, defaults to Dir/.pxrem-cache.json
	ManifestPath string // Version manifest, defaults to Dir/package.json

	// CacheKey replaces revision detection with a fixed key
	CacheKey string

	DisableCache   bool
	ConfigAwareKey bool

	Logger *slog.Logger
}

// PluginAPI is the registration surface a host hands to the plugin
type PluginAPI interface {
	AddUtilities(utilities *UtilityMap)
	Escape(className string) string
}

// Plugin is a configured utility generator ready to be registered with a host
type Plugin struct {
	config    Config
	cache     *core.Cache
	keys      *core.KeyResolver
	generator *core.Generator
	logger    *slog.Logger
}

// New resolves options and wires the cache and revision key sources.
// Nothing touches the disk until the plugin is registered or generated.
func New(options Options, config PluginConfig) *Plugin {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dir := config.Dir
	if dir == "" {
		dir = "."
	}

	cachePath := config.CachePath
	if cachePath == "" {
		cachePath = filepath.Join(dir, core.DefaultCacheFile)
	}

	var sources []core.KeySource
	if config.CacheKey != "" {
		sources = []core.KeySource{core.StaticSource{Value: config.CacheKey}}
	} else {
		sources = core.DefaultKeySources(dir, config.ManifestPath)
	}

	cache := core.NewCache(cachePath, logger)
	keys := core.NewKeyResolver(logger, sources...)
	generator := core.NewGenerator(cache, keys, core.GeneratorOptions{
		DisableCache:   config.DisableCache,
		ConfigAwareKey: config.ConfigAwareKey,
	}, logger)

	return &Plugin{
		config:    core.ResolveConfig(options),
		cache:     cache,
		keys:      keys,
		generator: generator,
		logger:    logger,
	}
}

// Config returns the resolved configuration
func (p *Plugin) Config() Config {
	return p.config
}

// Cache returns the cache backing this plugin
func (p *Plugin) Cache() *core.Cache {
	return p.cache
}

// Keys returns the revision key resolver
func (p *Plugin) Keys() *core.KeyResolver {
	return p.keys
}

// Generate produces the utilities using escape, going through the cache.
func (p *Plugin) Generate(escape EscapeFunc) (*core.Generation, error) {
	return p.generator.Generate(escape, p.config)
}

// Register generates the utilities with the host's escape function and hands
// them to the host. The only error is a revision key no source could produce.
func (p *Plugin) Register(api PluginAPI) error {
	generation, err := p.Generate(api.Escape)
	if err != nil {
		return err
	}

	p.logger.Debug("registering utilities",
		"utilities", generation.Utilities.Len(),
		"key", generation.Key,
		"cache_hit", generation.CacheHit)
	api.AddUtilities(generation.Utilities)
	return nil
}
