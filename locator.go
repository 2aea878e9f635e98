package obfx

import (
	"strings"

	"github.com/hengadev/obfx/internal/obfxerr"
)

// Locator identifies the single location one request reads from and
// overwrites: either a local filesystem path or an object-store URI of the
// form scheme://bucket/key.
type Locator struct {
	// Raw is the locator exactly as the caller supplied it.
	Raw string

	// Scheme is the URI scheme for object locations ("s3"), empty for
	// local paths.
	Scheme string

	// Bucket and Key are set only for object locations.
	Bucket string
	Key    string
}

// IsObject reports whether the locator names an object-store location.
func (l Locator) IsObject() bool { return l.Scheme != "" }

// Path returns the part of the locator the format detector inspects: the
// object key for object locations, the raw path otherwise.
func (l Locator) Path() string {
	if l.IsObject() {
		return l.Key
	}
	return l.Raw
}

// ParseLocator classifies a raw locator. Anything containing "://" is
// treated as an object URI and must carry both a bucket and a key; anything
// else is a local path.
func ParseLocator(raw string) (Locator, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		if raw == "" {
			return Locator{}, obfxerr.NewSourceNotFoundError(raw)
		}
		return Locator{Raw: raw}, nil
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if scheme == "" || bucket == "" || key == "" {
		return Locator{}, obfxerr.NewSourceNotFoundError(raw)
	}
	return Locator{Raw: raw, Scheme: scheme, Bucket: bucket, Key: key}, nil
}
