// Package store is the local SQLite keyword store for fetched job postings.
// Posting text is chunked into fixed-size documents so keyword search stays
// fast on long descriptions; search results are deduplicated back to one row
// per logical job.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jonathan/job-gap-analyzer/internal/jobrecord"
)

// chunkSize is the maximum document length in runes. Chunking keeps LIKE
// scans over the document column cheap.
const chunkSize = 800

// DefaultSearchLimit caps Search results when the caller passes no limit.
const DefaultSearchLimit = 50

// StoredJob is one deduplicated search hit.
type StoredJob struct {
	JobID    string `json:"job_id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
	URL      string `json:"url"`
}

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path, creating parent directories as
// needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS jobs (
		id       TEXT PRIMARY KEY,
		job_id   TEXT,
		title    TEXT,
		company  TEXT,
		location TEXT,
		salary   TEXT,
		url      TEXT,
		document TEXT
	)`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert stores the summaries, replacing any existing chunks with the same
// document id. Returns the number of chunk rows written. The row index keeps
// document ids unique even when two postings share a job id.
func (s *Store) Upsert(ctx context.Context, summaries []jobrecord.Summary) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO jobs
		(id, job_id, title, company, location, salary, url, document)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("store: prepare upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for rowIdx, sum := range summaries {
		jobID := sum.JobID
		if jobID == "" {
			jobID = fmt.Sprintf("job-%d", rowIdx)
		}

		for chunkIdx, chunk := range chunkText(documentText(sum)) {
			docID := fmt.Sprintf("%s-row%d-chunk%d", jobID, rowIdx, chunkIdx)
			_, err := stmt.ExecContext(ctx, docID, jobID,
				sum.Title, sum.Company, sum.NearestMRT, sum.SalaryRange, sum.URL,
				strings.TrimSpace(chunk))
			if err != nil {
				return 0, fmt.Errorf("store: upsert %s: %w", docID, err)
			}
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return written, nil
}

// Search runs a case-insensitive keyword search over title, company and
// document text, deduplicated by job id. An empty keyword returns no rows.
func (s *Store) Search(ctx context.Context, keyword string, limit int) ([]StoredJob, error) {
	keyword = strings.TrimSpace(strings.ToLower(keyword))
	if keyword == "" {
		return nil, nil
	}
	if limit < 1 {
		limit = DefaultSearchLimit
	}

	pattern := "%" + keyword + "%"
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT job_id, title, company, location, salary, url
		FROM jobs
		WHERE LOWER(title) LIKE ? OR LOWER(company) LIKE ? OR LOWER(document) LIKE ?
		LIMIT ?`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var jobs []StoredJob
	for rows.Next() {
		var j StoredJob
		if err := rows.Scan(&j.JobID, &j.Title, &j.Company, &j.Location, &j.Salary, &j.URL); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		if j.JobID == "" {
			continue
		}
		if _, dup := seen[j.JobID]; dup {
			continue
		}
		seen[j.JobID] = struct{}{}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// documentText flattens a summary into the searchable document body.
func documentText(sum jobrecord.Summary) string {
	return strings.Join([]string{
		sum.Title,
		"Company: " + sum.Company,
		"Location: " + sum.NearestMRT,
		"Salary: " + sum.SalaryRange,
		"",
		"Requirements:",
		sum.Requirements,
		"",
		"Description:",
		sum.Description,
	}, "\n")
}

// chunkText splits text into rune chunks of at most chunkSize. Empty text
// still yields one empty chunk so every job gets at least one row.
func chunkText(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return []string{""}
	}
	var chunks []string
	for i := 0; i < len(runes); i += chunkSize {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
