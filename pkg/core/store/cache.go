// Package store persists discovered IR pages and report URLs in a local
// SQLite database so repeat lookups skip the network.
//
// This package uses github.com/mattn/go-sqlite3 as the database/sql driver.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// CachedReport is one cached report row.
type CachedReport struct {
	Ticker     string
	Year       int
	ReportType string
	URL        string
	Title      string
}

// Cache wraps the SQLite report cache. Construct with Open; the zero value
// is not usable.
type Cache struct {
	db *sql.DB
}

// Open opens (and if needed creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db %s: %w", path, err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS ir_pages (
			ticker TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			last_updated TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker TEXT,
			year INTEGER,
			report_type TEXT,
			url TEXT,
			title TEXT,
			last_updated TIMESTAMP,
			UNIQUE(ticker, year, report_type, url)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init cache schema: %w", err)
		}
	}

	return &Cache{db: db}, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveIRPage upserts the IR page URL for a ticker.
func (c *Cache) SaveIRPage(ticker, url string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO ir_pages (ticker, url, last_updated) VALUES (?, ?, ?)`,
		normalizeTicker(ticker), url, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save ir page for %s: %w", ticker, err)
	}
	return nil
}

// GetIRPage returns the cached IR page URL for a ticker, or "" when the
// entry is absent or older than maxAge.
func (c *Cache) GetIRPage(ticker string, maxAge time.Duration) (string, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	var url string
	err := c.db.QueryRow(
		`SELECT url FROM ir_pages WHERE ticker = ? AND last_updated > ?`,
		normalizeTicker(ticker), cutoff,
	).Scan(&url)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read ir page for %s: %w", ticker, err)
	}
	return url, nil
}

// SaveReports upserts a batch of report rows for a ticker.
func (c *Cache) SaveReports(reports []CachedReport) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO reports (ticker, year, report_type, url, title, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare report insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, r := range reports {
		if _, err := stmt.Exec(normalizeTicker(r.Ticker), r.Year, r.ReportType, r.URL, r.Title, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert report %s %d: %w", r.URL, r.Year, err)
		}
	}
	return tx.Commit()
}

// GetReports returns the cached reports for a ticker no older than maxAge,
// optionally filtered by year (0 = all years) and report type ("" = all).
func (c *Cache) GetReports(ticker string, year int, reportType string, maxAge time.Duration) ([]CachedReport, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	query := `SELECT ticker, year, report_type, url, title FROM reports
		WHERE ticker = ? AND last_updated > ?`
	args := []interface{}{normalizeTicker(ticker), cutoff}

	if year > 0 {
		query += ` AND year = ?`
		args = append(args, year)
	}
	if reportType != "" {
		query += ` AND report_type = ?`
		args = append(args, reportType)
	}
	query += ` ORDER BY year DESC`

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("read reports for %s: %w", ticker, err)
	}
	defer rows.Close()

	var out []CachedReport
	for rows.Next() {
		var r CachedReport
		if err := rows.Scan(&r.Ticker, &r.Year, &r.ReportType, &r.URL, &r.Title); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
