// Package models defines the immutable track, album and artist records
// produced from scanned metadata. Records are plain value types built once
// by the translator and never mutated afterwards.
package models

// Artist is a named artist, optionally carrying a MusicBrainz id.
type Artist struct {
	Name          string
	MusicbrainzID string
}

// Album groups tracks. Artists holds at most one entry, promoted from an
// album-artist tag when one was collected.
type Album struct {
	Name          string
	NumTracks     int
	NumDiscs      int
	MusicbrainzID string
	Artists       []Artist
}

// Track is one scanned track. Zero values mean the field was not collected:
// Length and LastModified of 0 stand for "unknown", Date is empty when no
// valid date was found.
type Track struct {
	URI           string
	Name          string
	TrackNo       int
	DiscNo        int
	Genre         string
	Bitrate       int
	Comment       string
	MusicbrainzID string
	Date          string // ISO-8601 (YYYY-MM-DD)
	Length        int64  // milliseconds
	LastModified  int64  // seconds since epoch
	Album         Album
	Artists       []Artist
	Composers     []Artist
	Performers    []Artist
}
