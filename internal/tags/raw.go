package tags

// Reserved keys set by the scanner after collection. They never come from
// decoded tags; Merge refuses to write them.
const (
	KeyURI      = "uri"
	KeyMtime    = "mtime"    // seconds since epoch, local files only
	KeyDuration = "duration" // milliseconds
)

// Raw is the flat bag of tags collected for one resource.
type Raw map[string]Value

// Merge copies every pair from ev into r, skipping the reserved keys so a
// tag event can never masquerade as uri, mtime or duration.
func (r Raw) Merge(ev map[string]Value) {
	for k, v := range ev {
		switch k {
		case KeyURI, KeyMtime, KeyDuration:
			continue
		}
		r[k] = v
	}
}

// GetString returns the value for key if it is a single string.
func (r Raw) GetString(key string) (string, bool) {
	s, ok := r[key].(String)
	return string(s), ok
}

// GetInt returns the value for key if it is an integer.
func (r Raw) GetInt(key string) (int64, bool) {
	n, ok := r[key].(Int)
	return int64(n), ok
}
