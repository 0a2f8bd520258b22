package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/recordgate/recordgate/admission"
	"github.com/recordgate/recordgate/record"
)

var _ admission.Store = (*store)(nil)

type store struct {
	db *sql.DB
}

func New(path string) (admission.Store, error) {
	db, err := initDatabase(path)
	if err != nil {
		return nil, err
	}

	return &store{db: db}, nil
}

func (s *store) Append(ctx context.Context, rec *record.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	const q = `INSERT INTO records (data, created_at) VALUES (?, ?)`

	_, err = s.db.ExecContext(ctx, q, string(data), time.Now().UTC())

	return err
}

func (s *store) All(ctx context.Context) ([]*record.Record, error) {
	const q = `SELECT data FROM records ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var out []*record.Record

	for rows.Next() {
		var data string

		if err := rows.Scan(&data); err != nil {
			return nil, err
		}

		rec := record.New()
		if err := json.Unmarshal([]byte(data), rec); err != nil {
			return nil, err
		}

		out = append(out, rec)
	}

	return out, rows.Err()
}

func (s *store) Len(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM records`

	var n int

	err := s.db.QueryRowContext(ctx, q).Scan(&n)

	return n, err
}

func (s *store) Close() error {
	return s.db.Close()
}

func initDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	const q = `CREATE TABLE IF NOT EXISTS records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		data TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`

	if _, err := db.Exec(q); err != nil {
		_ = db.Close()

		return nil, err
	}

	return db, nil
}
