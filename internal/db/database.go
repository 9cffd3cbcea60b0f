package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mathis-deconchat/github-repo-qualifier/internal/model"
	_ "modernc.org/sqlite"
)

// timeLayout is the canonical storage format for timestamps.
const timeLayout = time.RFC3339Nano

type Connection struct {
	*sql.DB
}

// NewConnection creates and initializes a new database connection with schema
func NewConnection(dbPath string) (*Connection, error) {
	db, err := sql.Open("sqlite", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
    CREATE TABLE IF NOT EXISTS scan_sessions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        session_id TEXT NOT NULL UNIQUE,
        identity TEXT NOT NULL,
        account_handle TEXT NOT NULL,
        total_repository_count INTEGER NOT NULL DEFAULT 0,
        scanned_at TIMESTAMP NOT NULL
    );
    CREATE TABLE IF NOT EXISTS scanned_repositories (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        session_id INTEGER NOT NULL,
        name TEXT NOT NULL,
        description TEXT,
        url TEXT NOT NULL,
        is_private BOOLEAN NOT NULL DEFAULT 0,
        language TEXT,
        star_count INTEGER NOT NULL DEFAULT 0,
        fork_count INTEGER NOT NULL DEFAULT 0,
        score TEXT NOT NULL, -- serialized QualityScore
        scanned_at TIMESTAMP NOT NULL,
        FOREIGN KEY(session_id) REFERENCES scan_sessions(id) ON DELETE CASCADE
    );`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Connection{db}, nil
}

// ClearAllData removes all data from the database tables
func (c *Connection) ClearAllData() error {
	_, err := c.Exec("DELETE FROM scanned_repositories; DELETE FROM scan_sessions;")
	return err
}

// SaveScan stores one scan session together with all of its repository rows
// in a single transaction and returns a copy of the result with identifiers
// assigned. A session with zero repositories is still recorded.
func (c *Connection) SaveScan(ctx context.Context, identity string, result *model.ScanResult) (*model.ScanResult, error) {
	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	sessionID := uuid.NewString()
	var id int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO scan_sessions(session_id, identity, account_handle, total_repository_count, scanned_at) VALUES(?, ?, ?, ?, ?) RETURNING id",
		sessionID, identity, result.AccountHandle, result.TotalRepositoryCount, result.ScannedAt.UTC().Format(timeLayout)).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert scan session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO scanned_repositories(session_id, name, description, url, is_private, language, star_count, fork_count, score, scanned_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id")
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	stored := *result
	stored.ID = id
	stored.SessionID = sessionID
	stored.Repositories = make([]model.ScannedRepository, len(result.Repositories))

	for i, repo := range result.Repositories {
		scoreJSON, err := json.Marshal(repo.Score)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize score for %s: %w", repo.Name, err)
		}

		var repoID int64
		err = stmt.QueryRowContext(ctx,
			id, repo.Name, repo.Description, repo.URL, repo.IsPrivate, repo.PrimaryLanguage,
			repo.StarCount, repo.ForkCount, string(scoreJSON), repo.ScannedAt.UTC().Format(timeLayout)).Scan(&repoID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert repository row for %s: %w", repo.Name, err)
		}

		repo.ID = repoID
		stored.Repositories[i] = repo
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListScans returns every stored session for an identity, newest first, each
// with its full repository list. Sessions without repositories carry an
// empty list, never nil.
func (c *Connection) ListScans(ctx context.Context, identity string) ([]model.ScanResult, error) {
	rows, err := c.QueryContext(ctx, `
        SELECT id, session_id, account_handle, total_repository_count, scanned_at
        FROM scan_sessions
        WHERE identity = ?
        ORDER BY scanned_at DESC, id DESC
    `, identity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.ScanResult{}
	for rows.Next() {
		var result model.ScanResult
		var scannedAt string
		if err := rows.Scan(&result.ID, &result.SessionID, &result.AccountHandle, &result.TotalRepositoryCount, &scannedAt); err != nil {
			return nil, err
		}
		result.ScannedAt, err = time.Parse(timeLayout, scannedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse session timestamp: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		repositories, err := c.listSessionRepositories(ctx, results[i].ID)
		if err != nil {
			return nil, err
		}
		results[i].Repositories = repositories
	}

	return results, nil
}

func (c *Connection) listSessionRepositories(ctx context.Context, sessionID int64) ([]model.ScannedRepository, error) {
	rows, err := c.QueryContext(ctx, `
        SELECT id, name, description, url, is_private, language, star_count, fork_count, score, scanned_at
        FROM scanned_repositories
        WHERE session_id = ?
        ORDER BY id
    `, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	repositories := []model.ScannedRepository{}
	for rows.Next() {
		var repo model.ScannedRepository
		var description, language sql.NullString
		var scoreJSON, scannedAt string
		if err := rows.Scan(&repo.ID, &repo.Name, &description, &repo.URL, &repo.IsPrivate, &language, &repo.StarCount, &repo.ForkCount, &scoreJSON, &scannedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			repo.Description = &description.String
		}
		if language.Valid {
			repo.PrimaryLanguage = &language.String
		}
		if err := json.Unmarshal([]byte(scoreJSON), &repo.Score); err != nil {
			return nil, fmt.Errorf("failed to deserialize score for %s: %w", repo.Name, err)
		}
		repo.ScannedAt, err = time.Parse(timeLayout, scannedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse repository timestamp: %w", err)
		}
		repositories = append(repositories, repo)
	}

	return repositories, rows.Err()
}
