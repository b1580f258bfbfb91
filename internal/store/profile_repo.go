package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/mindflow/internal/profile"
)

// profileRepo implements ProfileRepo over the profiles table. The full
// record is stored as one JSON document per student.
type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Get(ctx context.Context, name string) (*profile.Profile, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE name = ?`, name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", name, err)
	}
	return decodeProfile(name, data)
}

func (r *profileRepo) GetOrCreate(ctx context.Context, name string) (*profile.Profile, error) {
	fresh := profile.New(name)
	data, err := json.Marshal(fresh)
	if err != nil {
		return nil, fmt.Errorf("encode profile %q: %w", name, err)
	}

	// DO NOTHING keeps an existing record intact, so whoever stored a
	// record for this name first wins.
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO NOTHING`,
		name, string(data), time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("create profile %q: %w", name, err)
	}
	return r.Get(ctx, name)
}

func (r *profileRepo) Save(ctx context.Context, p *profile.Profile) error {
	if p.Name == "" {
		return fmt.Errorf("save profile: empty name")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %q: %w", p.Name, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		p.Name, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save profile %q: %w", p.Name, err)
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete profile %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *profileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, data FROM profiles ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []*profile.Profile
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		p, err := decodeProfile(name, data)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func decodeProfile(name, data string) (*profile.Profile, error) {
	var p profile.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decode profile %q: %w", name, err)
	}
	// The row key is authoritative for the name.
	p.Name = name
	if p.Mastery == nil {
		p.Mastery = make(map[string]int)
	}
	return &p, nil
}
