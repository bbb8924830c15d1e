package tags

// Tag keys delivered by decode backends. The names follow the GStreamer
// tag vocabulary so backends and the translator agree on spelling.
const (
	TagAlbum          = "album"
	TagTrackCount     = "track-count"
	TagAlbumDiscCount = "album-disc-count"
	TagArtist         = "artist"
	TagComposer       = "composer"
	TagPerformer      = "performer"
	TagAlbumArtist    = "album-artist"
	TagTitle          = "title"
	TagTrackNumber    = "track-number"
	TagDiscNumber     = "disc-number"
	TagGenre          = "genre"
	TagBitrate        = "bitrate"
	TagComment        = "comment"
	TagDate           = "date"
	TagOrganization   = "organization"
	TagLocation       = "location"
	TagCopyright      = "copyright"

	TagMusicbrainzTrackID       = "musicbrainz-trackid"
	TagMusicbrainzArtistID      = "musicbrainz-artistid"
	TagMusicbrainzAlbumID       = "musicbrainz-albumid"
	TagMusicbrainzAlbumArtistID = "musicbrainz-albumartistid"
)
