package pxrem

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-git/go-git/v5"
	"github.com/sugawarayuuta/sonnet"
	"go.trai.ch/zerr"
)

// DefaultManifestFile is the manifest consulted when no revision is available
const DefaultManifestFile = "package.json"

// ShortHashLength is the length of abbreviated revision hashes
const ShortHashLength = 7

// KeySource produces a revision key identifying the current source state.
type KeySource interface {
	Name() string
	Key() (string, error)
}

// KeyFunc adapts a function into a KeySource
type KeyFunc func() (string, error)

// Name implements KeySource
func (f KeyFunc) Name() string { return "func" }

// Key implements KeySource
func (f KeyFunc) Key() (string, error) { return f() }

// StaticSource returns a fixed, explicitly configured key
type StaticSource struct {
	Value string
}

// Name implements KeySource
func (s StaticSource) Name() string { return "static" }

// Key implements KeySource
func (s StaticSource) Key() (string, error) {
	if s.Value == "" {
		return "", ErrEmptyKey
	}
	return s.Value, nil
}

// GitRepoSource reads HEAD from the repository enclosing Dir using go-git.
// No git binary is required.
type GitRepoSource struct {
	Dir string
}

// Name implements KeySource
func (s GitRepoSource) Name() string { return "git" }

// Key implements KeySource
func (s GitRepoSource) Key() (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, ErrNotARepository.Error()), "dir", dir)
	}

	head, err := repo.Head()
	if err != nil {
		return "", zerr.Wrap(err, ErrRevisionUnavailable.Error())
	}

	return shortHash(head.Hash().String()), nil
}

// GitCommandSource asks the git binary for the short HEAD revision.
type GitCommandSource struct {
	Dir string
}

// Name implements KeySource
func (s GitCommandSource) Name() string { return "git-command" }

// Key implements KeySource
func (s GitCommandSource) Key() (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	cmd := exec.Command("git", "-C", dir, "rev-parse", "--short="+strconv.Itoa(ShortHashLength), "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "", zerr.Wrap(err, ErrRevisionUnavailable.Error())
	}

	key := strings.TrimSpace(string(output))
	if key == "" {
		return "", ErrRevisionUnavailable
	}
	return key, nil
}

// ManifestSource reads the "version" field of a JSON manifest.
type ManifestSource struct {
	Path string
}

// Name implements KeySource
func (s ManifestSource) Name() string { return "manifest" }

// Key implements KeySource
func (s ManifestSource) Key() (string, error) {
	path := s.Path
	if path == "" {
		path = DefaultManifestFile
	}

	//nolint:gosec // Path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, ErrManifestRead.Error()), "path", path)
	}

	var manifest struct {
		Version string `json:"version"`
	}
	if err := sonnet.NewDecoder(bytes.NewReader(data)).Decode(&manifest); err != nil {
		return "", zerr.With(zerr.Wrap(err, ErrManifestRead.Error()), "path", path)
	}
	if manifest.Version == "" {
		return "", zerr.With(ErrManifestVersionMissing, "path", path)
	}

	return manifest.Version, nil
}

// KeyResolver tries each source in order; the first success wins.
type KeyResolver struct {
	sources []KeySource
	logger  *slog.Logger
}

// NewKeyResolver creates a resolver over sources
func NewKeyResolver(logger *slog.Logger, sources ...KeySource) *KeyResolver {
	if logger == nil {
		logger = discardLogger()
	}
	return &KeyResolver{sources: sources, logger: logger}
}

// DefaultKeySources returns the standard chain: repository HEAD via go-git,
// then the git binary, then the manifest version next to the repository.
func DefaultKeySources(dir, manifestPath string) []KeySource {
	if manifestPath == "" {
		manifestPath = filepath.Join(dir, DefaultManifestFile)
	}
	return []KeySource{
		GitRepoSource{Dir: dir},
		GitCommandSource{Dir: dir},
		ManifestSource{Path: manifestPath},
	}
}

// Sources returns the configured sources in resolution order
func (r *KeyResolver) Sources() []KeySource {
	return r.sources
}

// Resolve returns the first key produced by a source along with the source name.
// An error is returned only when every source failed.
func (r *KeyResolver) Resolve() (key, source string, err error) {
	var errs error
	for _, src := range r.sources {
		k, srcErr := src.Key()
		if srcErr == nil {
			r.logger.Debug("revision key resolved", "source", src.Name(), "key", k)
			return k, src.Name(), nil
		}
		r.logger.Debug("revision key source failed", "source", src.Name(), "error", srcErr)
		errs = errors.Join(errs, fmt.Errorf("%s: %w", src.Name(), srcErr))
	}

	if errs == nil {
		return "", "", zerr.With(ErrRevisionKeyUnavailable, "sources", "none")
	}
	return "", "", zerr.Wrap(errs, ErrRevisionKeyUnavailable.Error())
}

// Fingerprint returns a short hash of the resolved configuration.
func Fingerprint(config Config) string {
	h := xxhash.New()
	_, _ = h.WriteString("max=" + strconv.Itoa(config.MaxPxValue) + "\n")
	for _, alias := range config.PropertyAliases {
		_, _ = h.WriteString("alias=" + alias.Prefix + "\x00" + alias.Property + "\n")
	}
	for _, bp := range config.Breakpoints {
		_, _ = h.WriteString("bp=" + bp.Name + "\x00" + strconv.Itoa(bp.Width) + "\n")
	}
	if config.ResponsiveShorthands {
		_, _ = h.WriteString("responsive-shorthands\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func shortHash(hash string) string {
	if len(hash) <= ShortHashLength {
		return hash
	}
	return hash[:ShortHashLength]
}
