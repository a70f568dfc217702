package pxrem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failingSource(msg string) KeySource {
	return KeyFunc(func() (string, error) { return "", errors.New(msg) })
}

func TestKeyResolver_FirstSuccessWins(t *testing.T) {
	resolver := NewKeyResolver(nil,
		failingSource("not a repository"),
		StaticSource{Value: "1.2.3"},
		StaticSource{Value: "never"},
	)

	key, source, err := resolver.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", key)
	assert.Equal(t, "static", source)
}

func TestKeyResolver_AllFail(t *testing.T) {
	resolver := NewKeyResolver(nil, failingSource("first"), failingSource("second"))

	_, _, err := resolver.Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}

func TestKeyResolver_NoSources(t *testing.T) {
	_, _, err := NewKeyResolver(nil).Resolve()
	require.Error(t, err)
}

func TestStaticSource_Empty(t *testing.T) {
	_, err := StaticSource{}.Key()
	require.Error(t, err)
}

func TestManifestSource(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "version field",
			content: `{"name": "site", "version": "2.4.1", "private": true}`,
			want:    "2.4.1",
		},
		{
			name:    "missing version",
			content: `{"name": "site"}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			content: `{"version": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "package.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := ManifestSource{Path: path}.Key()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManifestSource_MissingFile(t *testing.T) {
	_, err := ManifestSource{Path: filepath.Join(t.TempDir(), "package.json")}.Key()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGitRepoSource(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tailwind.config.js"), []byte("module.exports = {}\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("tailwind.config.js")
	require.NoError(t, err)

	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	// Resolve from a nested directory to exercise .git discovery
	nested := filepath.Join(dir, "src", "styles")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	key, err := GitRepoSource{Dir: nested}.Key()
	require.NoError(t, err)
	assert.Equal(t, hash.String()[:ShortHashLength], key)
}

func TestGitRepoSource_EmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	// No commits: HEAD does not resolve
	_, err = GitRepoSource{Dir: dir}.Key()
	require.Error(t, err)
}

func TestDefaultKeySources_FallsBackToManifest(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"version": "0.9.0"}`), 0o644))

	// An unborn HEAD fails both git strategies
	resolver := NewKeyResolver(nil, DefaultKeySources(dir, "")...)
	key, source, err := resolver.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "0.9.0", key)
	assert.Equal(t, "manifest", source)
}

func TestFingerprint(t *testing.T) {
	base := Config{MaxPxValue: 10, PropertyAliases: PropertyAliases{{"w", "width"}}}

	assert.Equal(t, Fingerprint(base), Fingerprint(base))
	assert.Len(t, Fingerprint(base), 16)

	changed := base
	changed.MaxPxValue = 11
	assert.NotEqual(t, Fingerprint(base), Fingerprint(changed))

	withBreakpoint := base
	withBreakpoint.Breakpoints = Breakpoints{{"sm", 640}}
	assert.NotEqual(t, Fingerprint(base), Fingerprint(withBreakpoint))
}
