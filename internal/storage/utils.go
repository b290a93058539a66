package storage

import "strings"

const publicURLMarker = "/storage/v1/object/public/"

// ParsePublicURL extracts the bucket and object path from a hosted-store
// public URL. Returns ok=false for URLs that do not match the pattern.
func ParsePublicURL(rawURL string) (bucket, path string, ok bool) {
	idx := strings.Index(rawURL, publicURLMarker)
	if idx < 0 {
		return "", "", false
	}

	rest := rawURL[idx+len(publicURLMarker):]
	// Drop any query string (signed-URL tokens, cache busters)
	if q := strings.Index(rest, "?"); q >= 0 {
		rest = rest[:q]
	}

	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], parts[1], true
}

// IsImagePath reports whether a storage path looks like an image file
func IsImagePath(path string) bool {
	s := strings.ToLower(strings.TrimSpace(path))
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg"} {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}
	return false
}
