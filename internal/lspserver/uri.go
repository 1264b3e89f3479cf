package lspserver

import (
	"net/url"
	"path/filepath"
)

// uriToPath converts a file:// URI (or a bare path, tolerated for tests and
// for CLI callers that pass plain paths) to a filesystem path.
func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return filepath.FromSlash(path)
}
