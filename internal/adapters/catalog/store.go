// Package catalog provides the local general-purpose similarity source: a
// SQLite song corpus with an in-memory HNSW index built at startup.
package catalog

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// Song is one corpus entry with its precomputed embedding.
type Song struct {
	ID        string
	Title     string
	Artist    string
	Genre     string
	Embedding []float32
}

// Store is the SQLite-backed song corpus.
type Store struct {
	db *sql.DB
}

// NewStore opens the corpus database and runs the schema migration.
func NewStore(storagePath string) (*Store, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("catalog: open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("catalog: ping sqlite db: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("catalog: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS songs (
			id        TEXT PRIMARY KEY,
			title     TEXT NOT NULL,
			artist    TEXT NOT NULL,
			genre     TEXT NOT NULL DEFAULT '',
			embedding BLOB NOT NULL
		)
	`)
	return err
}

// Close ensures the DB connection is closed gracefully.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert writes a song and its embedding.
func (s *Store) Upsert(ctx context.Context, song Song) error {
	if song.ID == "" || song.Title == "" || song.Artist == "" {
		return fmt.Errorf("catalog: song id, title and artist are required")
	}
	if len(song.Embedding) == 0 {
		return fmt.Errorf("catalog: song %s has no embedding", song.ID)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO songs (id, title, artist, genre, embedding)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			genre = excluded.genre,
			embedding = excluded.embedding
	`, song.ID, song.Title, song.Artist, song.Genre, encodeVector(song.Embedding))
	if err != nil {
		return fmt.Errorf("catalog: upsert song %s: %w", song.ID, err)
	}
	return nil
}

// All loads the full corpus, used to build the in-memory index at startup.
func (s *Store) All(ctx context.Context) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, artist, genre, embedding FROM songs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("catalog: load songs: %w", err)
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var song Song
		var blob []byte
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Genre, &blob); err != nil {
			return nil, fmt.Errorf("catalog: scan song: %w", err)
		}
		song.Embedding, err = decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("catalog: song %s: %w", song.ID, err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate songs: %w", err)
	}

	return songs, nil
}

// Count returns the number of songs in the corpus.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs").Scan(&n); err != nil {
		return 0, fmt.Errorf("catalog: count songs: %w", err)
	}
	return n, nil
}

// Embeddings are stored as little-endian float32 blobs.

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("malformed embedding blob of %d bytes", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}
