package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dumpsift/dumpsift/internal/model"
)

// CredDB provides SQLite-based storage for canonical credential records.
// It manages connection pooling and provides methods for ingestion and
// prefix-indexed lookups.
//
// Design decision: We use a single database file rather than one file per
// dump source. Deduplication across sources is the whole point of the
// compound identifier, and it only works inside one key space.
type CredDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CredDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CredDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned.
func Open(dbDir string, opts Options) (*CredDB, error) {
	dbPath := filepath.Join(dbDir, "dumpsift.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; ingestion is write-heavy, so a
	// single connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CredDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CredDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CredDB) createTables() error {
	schema := `
	-- Accounts store canonical records in their document shape.
	-- The id column is the compound identifier: byte-reversed domain,
	-- separator, fingerprints. Prefix scans over it serve both the
	-- email and the domain query paths.
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		e TEXT,
		u TEXT,
		p TEXT,
		h TEXT,
		m TEXT
	) WITHOUT ROWID;

	-- Sources record provenance: which dump contributed which record.
	-- A record seen in several dumps gets several rows.
	CREATE TABLE IF NOT EXISTS sources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id TEXT NOT NULL,
		name TEXT NOT NULL,
		fingerprint TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(account_id, name)
	);

	CREATE INDEX IF NOT EXISTS idx_sources_account ON sources(account_id);
	CREATE INDEX IF NOT EXISTS idx_sources_name ON sources(name);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// InsertAccount stores an account document and its provenance.
// Returns true when the account was new, false when the identifier was
// already present (an exact duplicate record). The source row is recorded
// either way, so duplicate sightings still accumulate provenance.
func (cdb *CredDB) InsertAccount(ctx context.Context, account *model.Account, source model.Source) (bool, error) {
	doc, err := account.Document()
	if err != nil {
		return false, fmt.Errorf("failed to materialize account: %w", err)
	}

	result, err := cdb.db.ExecContext(ctx, `
	INSERT OR IGNORE INTO accounts (id, e, u, p, h, m)
	VALUES (?, ?, ?, ?, ?, ?)
	`,
		doc.ID,
		nullable(doc.Email),
		nullable(doc.Username),
		nullable(doc.Password),
		nullable(doc.Hash),
		nullable(doc.Misc),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert account: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	if source.Name != "" {
		_, err = cdb.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO sources (account_id, name, fingerprint)
		VALUES (?, ?, ?)
		`, doc.ID, source.Name, nullable(source.Fingerprint))
		if err != nil {
			return false, fmt.Errorf("failed to insert source: %w", err)
		}
	}

	return inserted > 0, nil
}

// GetAccount retrieves a single document by identifier.
// Returns nil without error when the identifier is unknown.
func (cdb *CredDB) GetAccount(ctx context.Context, id string) (*model.Document, error) {
	row := cdb.db.QueryRowContext(ctx, `
	SELECT id, e, u, p, h, m FROM accounts WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return doc, nil
}

// SearchEmail returns every document for the given email address, in
// identifier order. The scan covers the shared domain-chunk plus
// email-fingerprint prefix, so all records of one address are adjacent.
func (cdb *CredDB) SearchEmail(ctx context.Context, email []byte, limit int) ([]model.Document, error) {
	return cdb.searchPatterns(ctx, limit, escapeLike(model.EmailIDPrefix(email))+"%")
}

// SearchDomain returns every document under the given domain, including
// subdomains, in identifier order.
//
// The match is anchored at a chunk boundary: after the reversed domain the
// identifier must continue with the separator (the domain itself) or a dot
// (a subdomain). A bare prefix scan would also match domains that merely
// end with the queried one, e.g. evilexample.com for example.com.
func (cdb *CredDB) SearchDomain(ctx context.Context, domain []byte, limit int) ([]model.Document, error) {
	prefix := escapeLike(model.DomainIDPrefix(domain))
	return cdb.searchPatterns(ctx, limit, prefix+"|%", prefix+".%")
}

// searchPatterns runs a scan over the identifier key space, returning rows
// whose identifier matches any of the LIKE patterns.
func (cdb *CredDB) searchPatterns(ctx context.Context, limit int, patterns ...string) ([]model.Document, error) {
	conditions := make([]string, len(patterns))
	args := make([]any, 0, len(patterns)+1)
	for i, pattern := range patterns {
		conditions[i] = `id LIKE ? ESCAPE '\'`
		args = append(args, pattern)
	}

	query := `
	SELECT id, e, u, p, h, m FROM accounts
	WHERE ` + strings.Join(conditions, " OR ") + `
	ORDER BY id
	`
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := cdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	defer rows.Close()

	var results []model.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		results = append(results, *doc)
	}

	return results, rows.Err()
}

// Sources returns the provenance labels recorded for an account,
// in ingestion order.
func (cdb *CredDB) Sources(ctx context.Context, accountID string) (model.SourceList, error) {
	rows, err := cdb.db.QueryContext(ctx, `
	SELECT name, fingerprint FROM sources
	WHERE account_id = ?
	ORDER BY id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	var sources model.SourceList
	for rows.Next() {
		var name string
		var fingerprint sql.NullString
		if err := rows.Scan(&name, &fingerprint); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources.Add(model.Source{Name: name, Fingerprint: fingerprint.String})
	}

	return sources, rows.Err()
}

// CountAccounts returns the total number of stored records.
func (cdb *CredDB) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := cdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

// DomainChunkCount is one row of the per-domain-chunk breakdown.
type DomainChunkCount struct {
	// Chunk is the byte-reversed domain prefix of the identifiers.
	Chunk string

	// Count is the number of records carrying that chunk.
	Count int64
}

// TopDomainChunks returns the most frequent domain chunks with their record
// counts, descending. Records without an email carry an empty chunk and are
// reported under it.
func (cdb *CredDB) TopDomainChunks(ctx context.Context, limit int) ([]DomainChunkCount, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := cdb.db.QueryContext(ctx, `
	SELECT substr(id, 1, instr(id, '|') - 1) AS chunk, COUNT(*) AS n
	FROM accounts
	GROUP BY chunk
	ORDER BY n DESC, chunk
	LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query domain chunks: %w", err)
	}
	defer rows.Close()

	var results []DomainChunkCount
	for rows.Next() {
		var dc DomainChunkCount
		if err := rows.Scan(&dc.Chunk, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan domain chunk: %w", err)
		}
		results = append(results, dc)
	}

	return results, rows.Err()
}

// scanDocument reads one account row into its document shape.
func scanDocument(scan func(...any) error) (*model.Document, error) {
	var doc model.Document
	var e, u, p, h, m sql.NullString

	if err := scan(&doc.ID, &e, &u, &p, &h, &m); err != nil {
		return nil, err
	}

	doc.Email = e.String
	doc.Username = u.String
	doc.Password = p.String
	doc.Hash = h.String
	doc.Misc = m.String
	return &doc, nil
}

// nullable maps empty strings to SQL NULL so omitted document fields stay
// omitted in storage.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// escapeLike escapes LIKE wildcards in an identifier prefix. Domain chunks
// may legitimately contain underscores.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
