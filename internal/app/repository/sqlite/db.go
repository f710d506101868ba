package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS jobs (
    id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    options TEXT DEFAULT '{}',
    status TEXT DEFAULT 'pending',
    progress INTEGER DEFAULT 0,
    step TEXT DEFAULT '',
    video_title TEXT DEFAULT '',
    video_duration TEXT DEFAULT '',
    video_source TEXT DEFAULT '',
    transcript_text TEXT DEFAULT '',
    transcript_segments TEXT DEFAULT '[]',
    summary_short TEXT DEFAULT '',
    summary_detailed TEXT DEFAULT '',
    chapters TEXT DEFAULT '[]',
    subtitles_srt TEXT DEFAULT '',
    visual_analysis TEXT DEFAULT '[]',
    error_message TEXT DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    completed_at TIMESTAMP
)`

// OpenDB opens the sqlite database at dbFilePath and ensures the jobs table
// exists.
func OpenDB(dbFilePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create jobs table: %w", err)
	}

	return db, nil
}
