package database

import (
	"database/sql"
	"errors"
	"fmt"
)

var _ TitleRepository = (*SQLTitleRepository)(nil)

// SQLTitleRepository stores derived titles keyed by a digest of their source text.
type SQLTitleRepository struct {
	db *DB
}

func NewTitleRepository(db *DB) *SQLTitleRepository {
	return &SQLTitleRepository{db: db}
}

func (r *SQLTitleRepository) GetTitle(key string) (string, bool, error) {
	var title string
	err := r.db.QueryRow(`SELECT title FROM title_cache WHERE text_hash = ?`, key).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get title: %w", err)
	}
	return title, true, nil
}

func (r *SQLTitleRepository) PutTitle(key, title string) error {
	_, err := r.db.Exec(`
		INSERT INTO title_cache (text_hash, title)
		VALUES (?, ?)
		ON CONFLICT (text_hash) DO UPDATE SET
			title = excluded.title,
			updated_at = CURRENT_TIMESTAMP
	`, key, title)
	if err != nil {
		return fmt.Errorf("failed to store title: %w", err)
	}
	return nil
}

func (r *SQLTitleRepository) GetTitleCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM title_cache`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count titles: %w", err)
	}
	return count, nil
}
