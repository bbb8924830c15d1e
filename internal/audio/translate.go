package audio

import (
	"github.com/henningko/mopidy/internal/models"
	"github.com/henningko/mopidy/internal/tags"
)

// attrs accumulates fields for one record under construction. retrieve is
// first-writer-wins: a later source key mapping to an already-set field is
// ignored, which makes the fallback chains (title then organization,
// comment then location then copyright) plain ordered retrievals.
type attrs map[string]tags.Value

func (a attrs) retrieve(data tags.Raw, sourceKey, field string) {
	v, ok := data[sourceKey]
	if !ok {
		return
	}
	if _, set := a[field]; set {
		return
	}
	a[field] = v
}

func (a attrs) str(field string) string {
	switch v := a[field].(type) {
	case tags.String:
		return string(v)
	case tags.Strings:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func (a attrs) num(field string) int64 {
	if v, ok := a[field].(tags.Int); ok {
		return int64(v)
	}
	return 0
}

// ToTrack converts a collected tag bag to a track record. It never fails:
// malformed values degrade to absent fields.
func ToTrack(data tags.Raw) models.Track {
	albumArtist := attrs{}
	album := attrs{}
	artist := attrs{}
	composer := attrs{}
	performer := attrs{}
	track := attrs{}

	album.retrieve(data, tags.TagAlbum, "name")
	album.retrieve(data, tags.TagTrackCount, "num_tracks")
	album.retrieve(data, tags.TagAlbumDiscCount, "num_discs")
	artist.retrieve(data, tags.TagArtist, "name")
	composer.retrieve(data, tags.TagComposer, "name")
	performer.retrieve(data, tags.TagPerformer, "name")
	albumArtist.retrieve(data, tags.TagAlbumArtist, "name")
	track.retrieve(data, tags.TagTitle, "name")
	track.retrieve(data, tags.TagTrackNumber, "track_no")
	track.retrieve(data, tags.TagDiscNumber, "disc_no")
	track.retrieve(data, tags.TagGenre, "genre")
	track.retrieve(data, tags.TagBitrate, "bitrate")
	track.retrieve(data, tags.TagComment, "comment")
	track.retrieve(data, tags.TagMusicbrainzTrackID, "musicbrainz_id")
	artist.retrieve(data, tags.TagMusicbrainzArtistID, "musicbrainz_id")
	album.retrieve(data, tags.TagMusicbrainzAlbumID, "musicbrainz_id")
	albumArtist.retrieve(data, tags.TagMusicbrainzAlbumArtistID, "musicbrainz_id")

	// Stream fallbacks: only fill fields still unset after the primary
	// tags above.
	track.retrieve(data, tags.TagOrganization, "name")
	track.retrieve(data, tags.TagLocation, "comment")
	track.retrieve(data, tags.TagCopyright, "comment")

	uri, _ := data.GetString(tags.KeyURI)
	result := models.Track{
		URI:           uri,
		Name:          track.str("name"),
		TrackNo:       int(track.num("track_no")),
		DiscNo:        int(track.num("disc_no")),
		Genre:         track.str("genre"),
		Bitrate:       int(track.num("bitrate")),
		Comment:       track.str("comment"),
		MusicbrainzID: track.str("musicbrainz_id"),
	}

	if date, ok := data[tags.TagDate].(tags.Date); ok && date.Valid() {
		result.Date = date.ISO()
	}
	if mtime, ok := data.GetInt(tags.KeyMtime); ok && mtime != 0 {
		result.LastModified = mtime
	}
	if duration, ok := data.GetInt(tags.KeyDuration); ok && duration != 0 {
		result.Length = duration
	}

	result.Album = models.Album{
		Name:          album.str("name"),
		NumTracks:     int(album.num("num_tracks")),
		NumDiscs:      int(album.num("num_discs")),
		MusicbrainzID: album.str("musicbrainz_id"),
	}
	if len(albumArtist) > 0 {
		result.Album.Artists = []models.Artist{{
			Name:          albumArtist.str("name"),
			MusicbrainzID: albumArtist.str("musicbrainz_id"),
		}}
	}

	result.Artists = expandArtists(artist, true)
	result.Composers = expandArtists(composer, false)
	result.Performers = expandArtists(performer, false)

	return result
}

// expandArtists builds artist records for one group. A multi-valued name
// expands to one record per element; group attributes like the MusicBrainz
// id only apply in the single-name case. When the group collected nothing,
// defaultOne decides between one empty record (track artists) and none
// (composers, performers).
func expandArtists(a attrs, defaultOne bool) []models.Artist {
	if names, ok := a["name"].(tags.Strings); ok {
		artists := make([]models.Artist, 0, len(names))
		for _, name := range names {
			artists = append(artists, models.Artist{Name: name})
		}
		return artists
	}
	if len(a) == 0 && !defaultOne {
		return nil
	}
	return []models.Artist{{
		Name:          a.str("name"),
		MusicbrainzID: a.str("musicbrainz_id"),
	}}
}
