package pxrem

import "go.trai.ch/zerr"

var (
	// ErrCacheRead is returned when the cache document cannot be read.
	ErrCacheRead = zerr.New("failed to read utility cache")

	// ErrCacheDecode is returned when the cache document is not valid JSON.
	ErrCacheDecode = zerr.New("failed to decode utility cache")

	// ErrCacheEncode is returned when a cache entry cannot be serialized.
	ErrCacheEncode = zerr.New("failed to encode utility cache")

	// ErrCacheWrite is returned when the cache document cannot be replaced.
	ErrCacheWrite = zerr.New("failed to write utility cache")

	// ErrCacheRemove is returned when the cache document cannot be deleted.
	ErrCacheRemove = zerr.New("failed to remove utility cache")

	// ErrNotARepository is returned when no git repository encloses the directory.
	ErrNotARepository = zerr.New("not a git repository")

	// ErrRevisionUnavailable is returned when HEAD cannot be resolved.
	ErrRevisionUnavailable = zerr.New("revision unavailable")

	// ErrManifestRead is returned when the version manifest cannot be read.
	ErrManifestRead = zerr.New("failed to read version manifest")

	// ErrManifestVersionMissing is returned when the manifest has no version field.
	ErrManifestVersionMissing = zerr.New("manifest declares no version")

	// ErrRevisionKeyUnavailable is returned when every key source failed.
	ErrRevisionKeyUnavailable = zerr.New("no revision key source succeeded")

	// ErrEmptyKey is returned by a static key source with no key configured.
	ErrEmptyKey = zerr.New("empty revision key")

	// ErrStylesheetParse is returned when a stylesheet cannot be parsed.
	ErrStylesheetParse = zerr.New("failed to parse stylesheet")
)
