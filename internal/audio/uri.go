package audio

import (
	"net/url"
	"strings"

	"github.com/djherbis/times"
)

// isLocalURI reports whether uri points at a local file.
func isLocalURI(uri string) bool {
	return strings.HasPrefix(uri, "file:")
}

// URIToPath converts a file: URI to a filesystem path.
func URIToPath(uri string) (string, bool) {
	if !isLocalURI(uri) {
		return "", false
	}
	u, err := url.Parse(uri)
	if err != nil || u.Path == "" {
		return "", false
	}
	return u.Path, true
}

// PathToURI converts a filesystem path to a file: URI.
func PathToURI(path string) string {
	u := url.URL{Scheme: "file", Path: path}
	return u.String()
}

// queryMtime returns the modification time of a local resource in seconds
// since epoch. Non-local URIs and stat failures degrade to absent.
func queryMtime(uri string) (int64, bool) {
	path, ok := URIToPath(uri)
	if !ok {
		return 0, false
	}
	ts, err := times.Stat(path)
	if err != nil {
		return 0, false
	}
	return ts.ModTime().Unix(), true
}
