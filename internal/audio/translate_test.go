package audio

import (
	"testing"

	"github.com/henningko/mopidy/internal/models"
	"github.com/henningko/mopidy/internal/tags"
)

func TestToTrack_BasicFields(t *testing.T) {
	data := tags.Raw{
		tags.KeyURI:                 tags.String("file:///music/a.flac"),
		tags.KeyMtime:               tags.Int(1164528000),
		tags.KeyDuration:            tags.Int(215000),
		tags.TagTitle:               tags.String("Nightswimming"),
		tags.TagArtist:              tags.String("R.E.M."),
		tags.TagAlbum:               tags.String("Automatic for the People"),
		tags.TagTrackNumber:         tags.Int(11),
		tags.TagDiscNumber:          tags.Int(1),
		tags.TagTrackCount:          tags.Int(12),
		tags.TagAlbumDiscCount:      tags.Int(1),
		tags.TagGenre:               tags.String("Rock"),
		tags.TagBitrate:             tags.Int(320000),
		tags.TagComment:             tags.String("a comment"),
		tags.TagMusicbrainzTrackID:  tags.String("track-mbid"),
		tags.TagMusicbrainzArtistID: tags.String("artist-mbid"),
		tags.TagMusicbrainzAlbumID:  tags.String("album-mbid"),
	}

	track := ToTrack(data)

	if track.URI != "file:///music/a.flac" {
		t.Errorf("URI = %q", track.URI)
	}
	if track.Name != "Nightswimming" {
		t.Errorf("Name = %q", track.Name)
	}
	if track.TrackNo != 11 || track.DiscNo != 1 {
		t.Errorf("TrackNo/DiscNo = %d/%d", track.TrackNo, track.DiscNo)
	}
	if track.Genre != "Rock" || track.Bitrate != 320000 || track.Comment != "a comment" {
		t.Errorf("Genre/Bitrate/Comment = %q/%d/%q", track.Genre, track.Bitrate, track.Comment)
	}
	if track.MusicbrainzID != "track-mbid" {
		t.Errorf("MusicbrainzID = %q", track.MusicbrainzID)
	}
	if track.Length != 215000 {
		t.Errorf("Length = %d", track.Length)
	}
	if track.LastModified != 1164528000 {
		t.Errorf("LastModified = %d", track.LastModified)
	}
	if track.Album.Name != "Automatic for the People" ||
		track.Album.NumTracks != 12 || track.Album.NumDiscs != 1 ||
		track.Album.MusicbrainzID != "album-mbid" {
		t.Errorf("Album = %+v", track.Album)
	}
	want := []models.Artist{{Name: "R.E.M.", MusicbrainzID: "artist-mbid"}}
	if len(track.Artists) != 1 || track.Artists[0] != want[0] {
		t.Errorf("Artists = %+v, want %+v", track.Artists, want)
	}
}

func TestToTrack_TitleOrganizationPrecedence(t *testing.T) {
	tests := []struct {
		name string
		data tags.Raw
		want string
	}{
		{
			"title wins over organization",
			tags.Raw{
				tags.TagTitle:        tags.String("X"),
				tags.TagOrganization: tags.String("Y"),
			},
			"X",
		},
		{
			"organization fills when no title",
			tags.Raw{tags.TagOrganization: tags.String("Y")},
			"Y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToTrack(tt.data).Name; got != tt.want {
				t.Errorf("Name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToTrack_CommentFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		data tags.Raw
		want string
	}{
		{
			"comment wins",
			tags.Raw{
				tags.TagComment:   tags.String("c"),
				tags.TagLocation:  tags.String("l"),
				tags.TagCopyright: tags.String("r"),
			},
			"c",
		},
		{
			"location before copyright",
			tags.Raw{
				tags.TagLocation:  tags.String("l"),
				tags.TagCopyright: tags.String("r"),
			},
			"l",
		},
		{
			"copyright last",
			tags.Raw{tags.TagCopyright: tags.String("r")},
			"r",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToTrack(tt.data).Comment; got != tt.want {
				t.Errorf("Comment = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToTrack_MultiValuedArtistExpansion(t *testing.T) {
	data := tags.Raw{
		tags.TagArtist:              tags.Strings{"A", "B"},
		tags.TagMusicbrainzArtistID: tags.String("mbid"),
	}

	track := ToTrack(data)

	if len(track.Artists) != 2 {
		t.Fatalf("len(Artists) = %d, want 2", len(track.Artists))
	}
	if track.Artists[0].Name != "A" || track.Artists[1].Name != "B" {
		t.Errorf("Artists = %+v", track.Artists)
	}
	// Group attributes are not distributed across expanded records.
	for _, a := range track.Artists {
		if a.MusicbrainzID != "" {
			t.Errorf("expanded artist %q has MusicbrainzID %q", a.Name, a.MusicbrainzID)
		}
	}
}

func TestToTrack_ArtistDefaults(t *testing.T) {
	track := ToTrack(tags.Raw{})

	if len(track.Artists) != 1 {
		t.Fatalf("len(Artists) = %d, want 1", len(track.Artists))
	}
	if track.Artists[0] != (models.Artist{}) {
		t.Errorf("Artists[0] = %+v, want empty record", track.Artists[0])
	}
	if len(track.Composers) != 0 {
		t.Errorf("Composers = %+v, want empty", track.Composers)
	}
	if len(track.Performers) != 0 {
		t.Errorf("Performers = %+v, want empty", track.Performers)
	}
}

func TestToTrack_ComposersAndPerformers(t *testing.T) {
	data := tags.Raw{
		tags.TagComposer:  tags.Strings{"C1", "C2"},
		tags.TagPerformer: tags.String("P"),
	}

	track := ToTrack(data)

	if len(track.Composers) != 2 || track.Composers[0].Name != "C1" || track.Composers[1].Name != "C2" {
		t.Errorf("Composers = %+v", track.Composers)
	}
	if len(track.Performers) != 1 || track.Performers[0].Name != "P" {
		t.Errorf("Performers = %+v", track.Performers)
	}
}

func TestToTrack_AlbumArtistPromotion(t *testing.T) {
	track := ToTrack(tags.Raw{
		tags.TagAlbumArtist:              tags.String("Various Artists"),
		tags.TagMusicbrainzAlbumArtistID: tags.String("va-mbid"),
	})

	if len(track.Album.Artists) != 1 {
		t.Fatalf("len(Album.Artists) = %d, want 1", len(track.Album.Artists))
	}
	got := track.Album.Artists[0]
	if got.Name != "Various Artists" || got.MusicbrainzID != "va-mbid" {
		t.Errorf("Album.Artists[0] = %+v", got)
	}

	// No album-artist tag: album has no artists at all.
	track = ToTrack(tags.Raw{tags.TagAlbum: tags.String("X")})
	if len(track.Album.Artists) != 0 {
		t.Errorf("Album.Artists = %+v, want empty", track.Album.Artists)
	}
}

func TestToTrack_Dates(t *testing.T) {
	tests := []struct {
		name string
		date tags.Value
		want string
	}{
		{"valid date", tags.Date{Year: 2006, Month: 4, Day: 27}, "2006-04-27"},
		{"invalid all-zero date", tags.Date{}, ""},
		{"invalid day", tags.Date{Year: 2006, Month: 2, Day: 31}, ""},
		{"wrong value kind", tags.String("2006"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := ToTrack(tags.Raw{tags.TagDate: tt.date})
			if track.Date != tt.want {
				t.Errorf("Date = %q, want %q", track.Date, tt.want)
			}
		})
	}
}

func TestToTrack_AbsentScalarsStayZero(t *testing.T) {
	track := ToTrack(tags.Raw{tags.KeyURI: tags.String("stream://x")})

	if track.Length != 0 || track.LastModified != 0 || track.Date != "" {
		t.Errorf("Length/LastModified/Date = %d/%d/%q",
			track.Length, track.LastModified, track.Date)
	}
}
