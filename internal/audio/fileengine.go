package audio

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	dhowden "github.com/dhowden/tag"
	"go.senan.xyz/taglib"

	"github.com/henningko/mopidy/internal/tags"
)

// FileEngine is an Engine for local file: URIs. Instead of a real decode
// graph it reads tags up front during pre-roll and replays them as the
// event stream a pipeline would produce: tag events followed by a
// pipeline-origin settle event, or an error event for unreadable files.
//
// Tag reading layers dhowden/tag first and falls back to TagLib, which
// also supplies stream properties (duration, bitrate).
type FileEngine struct {
	state    State
	uri      string
	caps     string
	flushing bool
	events   []Event

	duration     time.Duration
	haveDuration bool
}

func NewFileEngine() *FileEngine {
	return &FileEngine{}
}

func (e *FileEngine) Reset() error {
	e.state = StateReady
	e.events = nil
	e.duration = 0
	e.haveDuration = false
	return nil
}

func (e *FileEngine) SetURI(uri string) error {
	e.uri = uri
	return nil
}

func (e *FileEngine) SetCaps(caps string) {
	e.caps = caps
}

func (e *FileEngine) SetState(target State) (StateChange, error) {
	if target >= StatePaused && e.state < StatePaused {
		e.preroll()
	}
	e.state = target
	return StateChangeSuccess, nil
}

func (e *FileEngine) PollEvent() (Event, bool) {
	if e.flushing || len(e.events) == 0 {
		return nil, false
	}
	ev := e.events[0]
	e.events = e.events[1:]
	return ev, true
}

func (e *FileEngine) QueryDuration() (time.Duration, bool) {
	return e.duration, e.haveDuration
}

func (e *FileEngine) SetFlushing(flushing bool) {
	e.flushing = flushing
	if flushing {
		e.events = nil
	}
}

// preroll reads the bound file and queues the resulting events.
func (e *FileEngine) preroll() {
	path, ok := URIToPath(e.uri)
	if !ok {
		e.events = append(e.events, ErrorEvent{
			Message: fmt.Sprintf("unsupported uri: %s", e.uri),
		})
		return
	}

	collected, err := readFileTags(path)
	if err != nil {
		e.events = append(e.events, ErrorEvent{
			Message: fmt.Sprintf("could not read %s: %v", path, err),
		})
		return
	}
	if len(collected) > 0 {
		e.events = append(e.events, TagEvent{Tags: collected})
	}

	// Stream properties come from TagLib regardless of which reader
	// supplied the tags. Failures degrade to an unknown duration.
	if props, err := taglib.ReadProperties(path); err == nil {
		e.duration = props.Length
		e.haveDuration = true
		if props.Bitrate > 0 {
			e.events = append(e.events, TagEvent{Tags: map[string]tags.Value{
				tags.TagBitrate: tags.Int(int64(props.Bitrate) * 1000),
			}})
		}
	}

	e.events = append(e.events, StateSettledEvent{FromPipeline: true})
}

// readFileTags reads tags with dhowden/tag, falling back to TagLib for
// files it cannot parse.
func readFileTags(path string) (map[string]tags.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := dhowden.ReadFrom(f)
	if err != nil {
		return readTaglibTags(path)
	}

	collected := make(map[string]tags.Value)
	putString := func(key, value string) {
		if value != "" {
			collected[key] = tags.String(value)
		}
	}
	putString(tags.TagTitle, m.Title())
	putString(tags.TagArtist, m.Artist())
	putString(tags.TagAlbum, m.Album())
	putString(tags.TagAlbumArtist, m.AlbumArtist())
	putString(tags.TagComposer, m.Composer())
	putString(tags.TagGenre, m.Genre())
	putString(tags.TagComment, m.Comment())

	if n, total := m.Track(); n > 0 {
		collected[tags.TagTrackNumber] = tags.Int(int64(n))
		if total > 0 {
			collected[tags.TagTrackCount] = tags.Int(int64(total))
		}
	}
	if n, total := m.Disc(); n > 0 {
		collected[tags.TagDiscNumber] = tags.Int(int64(n))
		if total > 0 {
			collected[tags.TagAlbumDiscCount] = tags.Int(int64(total))
		}
	}
	if year := m.Year(); year > 0 {
		collected[tags.TagDate] = tags.Date{Year: year, Month: 1, Day: 1}
	}

	if raw, ok := m.Raw()["musicbrainz_trackid"]; ok {
		if s, ok := raw.(string); ok {
			putString(tags.TagMusicbrainzTrackID, s)
		}
	}

	return collected, nil
}

// readTaglibTags is the TagLib fallback reader.
func readTaglibTags(path string) (map[string]tags.Value, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}

	collected := make(map[string]tags.Value)
	put := func(target, source string) {
		values := raw[source]
		switch {
		case len(values) == 1:
			collected[target] = tags.String(values[0])
		case len(values) > 1:
			collected[target] = tags.Strings(values)
		}
	}
	put(tags.TagTitle, taglib.Title)
	put(tags.TagArtist, taglib.Artist)
	put(tags.TagAlbum, taglib.Album)
	put(tags.TagAlbumArtist, taglib.AlbumArtist)
	put(tags.TagComposer, taglib.Composer)
	put(tags.TagGenre, taglib.Genre)
	put(tags.TagComment, taglib.Comment)
	put(tags.TagMusicbrainzTrackID, "MUSICBRAINZ_TRACKID")
	put(tags.TagMusicbrainzArtistID, "MUSICBRAINZ_ARTISTID")
	put(tags.TagMusicbrainzAlbumID, "MUSICBRAINZ_ALBUMID")
	put(tags.TagMusicbrainzAlbumArtistID, "MUSICBRAINZ_ALBUMARTISTID")

	if n, total := parseNumberPair(raw[taglib.TrackNumber]); n > 0 {
		collected[tags.TagTrackNumber] = tags.Int(int64(n))
		if total == 0 {
			total, _ = strconv.Atoi(first(raw["TOTALTRACKS"]))
		}
		if total > 0 {
			collected[tags.TagTrackCount] = tags.Int(int64(total))
		}
	}
	if n, total := parseNumberPair(raw[taglib.DiscNumber]); n > 0 {
		collected[tags.TagDiscNumber] = tags.Int(int64(n))
		if total == 0 {
			total, _ = strconv.Atoi(first(raw["TOTALDISCS"]))
		}
		if total > 0 {
			collected[tags.TagAlbumDiscCount] = tags.Int(int64(total))
		}
	}
	if d, ok := parseDate(first(raw[taglib.Date])); ok {
		collected[tags.TagDate] = d
	}

	return collected, nil
}

func first(values []string) string {
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

// parseNumberPair parses a track/disc number that may be "N" or "N/M".
func parseNumberPair(values []string) (num, total int) {
	s := first(values)
	if s == "" {
		return 0, 0
	}
	if idx := strings.Index(s, "/"); idx > 0 {
		num, _ = strconv.Atoi(s[:idx])
		total, _ = strconv.Atoi(s[idx+1:])
		return num, total
	}
	num, _ = strconv.Atoi(s)
	return num, 0
}

// parseDate parses "YYYY", "YYYY-MM" or "YYYY-MM-DD" into a Date, filling
// missing month/day with 1.
func parseDate(s string) (tags.Date, bool) {
	if s == "" {
		return tags.Date{}, false
	}
	parts := strings.SplitN(s, "-", 3)
	d := tags.Date{Month: 1, Day: 1}
	var err error
	if d.Year, err = strconv.Atoi(parts[0]); err != nil || d.Year == 0 {
		return tags.Date{}, false
	}
	if len(parts) > 1 {
		if d.Month, err = strconv.Atoi(parts[1]); err != nil {
			return tags.Date{}, false
		}
	}
	if len(parts) > 2 {
		if d.Day, err = strconv.Atoi(parts[2]); err != nil {
			return tags.Date{}, false
		}
	}
	return d, true
}

// Verify FileEngine implements Engine at compile time.
var _ Engine = (*FileEngine)(nil)
