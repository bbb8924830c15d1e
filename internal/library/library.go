// Package library persists scan results in a local sqlite database and
// keeps it in sync with the files on disk.
package library

import (
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/henningko/mopidy/internal/audio"
	"github.com/henningko/mopidy/internal/db"
	"github.com/henningko/mopidy/internal/models"
)

// Track is one stored library row: a flattened view of a scanned track.
// Artist lists are stored as "; "-joined names.
type Track struct {
	URI           string
	Mtime         int64
	Name          string
	Artists       string
	Composers     string
	Performers    string
	Album         string
	AlbumArtist   string
	TrackNo       int
	DiscNo        int
	Genre         string
	Bitrate       int
	Comment       string
	MusicbrainzID string
	Date          string
	Length        int64
	AddedAt       int64
	UpdatedAt     int64
}

type Library struct {
	db *sql.DB
}

// Open opens (or creates) the library database at path.
// Use ":memory:" for an ephemeral library.
func Open(path string) (*Library, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(d); err != nil {
		d.Close()
		return nil, err
	}
	return &Library{db: d}, nil
}

func (l *Library) Close() error {
	return l.db.Close()
}

func initSchema(d *sql.DB) error {
	_, err := d.Exec(`
		CREATE TABLE IF NOT EXISTS tracks (
			uri TEXT PRIMARY KEY,
			mtime INTEGER,
			name TEXT NOT NULL,
			artists TEXT,
			composers TEXT,
			performers TEXT,
			album TEXT,
			album_artist TEXT,
			album_num_tracks INTEGER,
			album_num_discs INTEGER,
			track_no INTEGER,
			disc_no INTEGER,
			genre TEXT,
			bitrate INTEGER,
			comment TEXT,
			musicbrainz_id TEXT,
			date TEXT,
			length INTEGER,
			added_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	return err
}

// Upsert inserts or updates one scanned track, keyed by URI.
// added_at is preserved on updates.
func (l *Library) Upsert(track models.Track) error {
	now := time.Now().Unix()
	_, err := l.db.Exec(`
		INSERT INTO tracks (uri, mtime, name, artists, composers, performers,
			album, album_artist, album_num_tracks, album_num_discs,
			track_no, disc_no, genre, bitrate, comment, musicbrainz_id,
			date, length, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uri) DO UPDATE SET
			mtime = excluded.mtime,
			name = excluded.name,
			artists = excluded.artists,
			composers = excluded.composers,
			performers = excluded.performers,
			album = excluded.album,
			album_artist = excluded.album_artist,
			album_num_tracks = excluded.album_num_tracks,
			album_num_discs = excluded.album_num_discs,
			track_no = excluded.track_no,
			disc_no = excluded.disc_no,
			genre = excluded.genre,
			bitrate = excluded.bitrate,
			comment = excluded.comment,
			musicbrainz_id = excluded.musicbrainz_id,
			date = excluded.date,
			length = excluded.length,
			updated_at = excluded.updated_at
	`,
		track.URI,
		db.NullInt64(track.LastModified),
		track.Name,
		db.NullString(joinArtists(track.Artists)),
		db.NullString(joinArtists(track.Composers)),
		db.NullString(joinArtists(track.Performers)),
		db.NullString(track.Album.Name),
		db.NullString(albumArtist(track.Album)),
		db.NullInt64(int64(track.Album.NumTracks)),
		db.NullInt64(int64(track.Album.NumDiscs)),
		db.NullInt64(int64(track.TrackNo)),
		db.NullInt64(int64(track.DiscNo)),
		db.NullString(track.Genre),
		db.NullInt64(int64(track.Bitrate)),
		db.NullString(track.Comment),
		db.NullString(track.MusicbrainzID),
		db.NullString(track.Date),
		db.NullInt64(track.Length),
		now, now)
	return err
}

// TrackByURI returns the stored row for uri, or sql.ErrNoRows.
func (l *Library) TrackByURI(uri string) (*Track, error) {
	row := l.db.QueryRow(`
		SELECT uri, mtime, name, artists, composers, performers,
			album, album_artist, track_no, disc_no, genre, bitrate,
			comment, musicbrainz_id, date, length, added_at, updated_at
		FROM tracks WHERE uri = ?
	`, uri)
	return scanTrack(row)
}

// Tracks returns all stored tracks ordered by album and track number.
func (l *Library) Tracks() ([]Track, error) {
	rows, err := l.db.Query(`
		SELECT uri, mtime, name, artists, composers, performers,
			album, album_artist, track_no, disc_no, genre, bitrate,
			comment, musicbrainz_id, date, length, added_at, updated_at
		FROM tracks
		ORDER BY album COLLATE NOCASE, disc_no, track_no, name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, *t)
	}
	return tracks, rows.Err()
}

// Count returns the number of stored tracks.
func (l *Library) Count() (int, error) {
	var n int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM tracks`).Scan(&n)
	return n, err
}

// existingMtimes returns uri->mtime for stored tracks under the given
// source directories.
func (l *Library) existingMtimes(sources []string) (map[string]int64, error) {
	rows, err := l.db.Query(`SELECT uri, mtime FROM tracks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]int64)
	for rows.Next() {
		var uri string
		var mtime sql.NullInt64
		if err := rows.Scan(&uri, &mtime); err != nil {
			return nil, err
		}
		path, ok := audio.URIToPath(uri)
		if !ok {
			continue
		}
		for _, src := range sources {
			if strings.HasPrefix(path, src) {
				existing[uri] = db.Int64Value(mtime)
				break
			}
		}
	}
	return existing, rows.Err()
}

// deleteByURIs removes the given tracks in one transaction.
func (l *Library) deleteByURIs(uris []string) error {
	if len(uris) == 0 {
		return nil
	}
	return db.WithTx(l.db, func(tx *sql.Tx) error {
		for _, uri := range uris {
			if _, err := tx.Exec(`DELETE FROM tracks WHERE uri = ?`, uri); err != nil {
				return err
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (*Track, error) {
	var t Track
	var mtime, trackNo, discNo, bitrate, length sql.NullInt64
	var artists, composers, performers, album, albumArtist sql.NullString
	var genre, comment, mbid, date sql.NullString

	err := row.Scan(&t.URI, &mtime, &t.Name, &artists, &composers, &performers,
		&album, &albumArtist, &trackNo, &discNo, &genre, &bitrate,
		&comment, &mbid, &date, &length, &t.AddedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	t.Mtime = db.Int64Value(mtime)
	t.Artists = db.StringValue(artists)
	t.Composers = db.StringValue(composers)
	t.Performers = db.StringValue(performers)
	t.Album = db.StringValue(album)
	t.AlbumArtist = db.StringValue(albumArtist)
	t.TrackNo = int(db.Int64Value(trackNo))
	t.DiscNo = int(db.Int64Value(discNo))
	t.Genre = db.StringValue(genre)
	t.Bitrate = int(db.Int64Value(bitrate))
	t.Comment = db.StringValue(comment)
	t.MusicbrainzID = db.StringValue(mbid)
	t.Date = db.StringValue(date)
	t.Length = db.Int64Value(length)
	return &t, nil
}

func joinArtists(artists []models.Artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, "; ")
}

func albumArtist(album models.Album) string {
	if len(album.Artists) == 0 {
		return ""
	}
	return album.Artists[0].Name
}
