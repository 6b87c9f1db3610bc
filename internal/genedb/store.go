package genedb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// Store provides known-gene entry lookups. The curated TSV is
// bulk-loaded through DuckDB read_csv, then materialized into an
// in-memory symbol map for the hot path. After Load the store is
// immutable and safe for concurrent use across families.
type Store struct {
	db           *sql.DB
	entries      map[string][]Entry
	curationDate string
}

// Open opens or creates a DuckDB database for the known-gene table at
// the given path. Use an empty string for an in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// NewFromEntries builds a store directly from parsed entries, without
// a backing database. Used for small curated sets and in tests.
func NewFromEntries(entries []Entry, curationDate string) *Store {
	s := &Store{entries: make(map[string][]Entry), curationDate: curationDate}
	for _, e := range entries {
		s.entries[e.Symbol] = append(s.entries[e.Symbol], e)
	}
	return s
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS known_genes (
		symbol VARCHAR,
		inheritance VARCHAR,
		status VARCHAR,
		mechanism VARCHAR
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS metadata (
		key VARCHAR PRIMARY KEY,
		value VARCHAR
	)`)
	return err
}

// Load bulk-loads the curated known-gene TSV and materializes the
// in-memory symbol map. The file has a header line:
//
//	gene	inheritance	status	mechanism
//
// Any malformed row is fatal: the run cannot proceed with a partially
// loaded authoritative database. The curation date is kept for
// provenance only.
func (s *Store) Load(tsvPath, curationDate string) error {
	// Clear any existing data first (idempotent reload)
	if _, err := s.db.Exec(`DELETE FROM known_genes`); err != nil {
		return fmt.Errorf("clear known-gene table: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO known_genes
		SELECT gene, inheritance, status, mechanism
		FROM read_csv('%s', delim='\t', header=true,
			columns={
				'gene': 'VARCHAR',
				'inheritance': 'VARCHAR',
				'status': 'VARCHAR',
				'mechanism': 'VARCHAR'
			})`, tsvPath)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("loading known-gene table: %w", err)
	}

	if _, err := s.db.Exec(`INSERT OR REPLACE INTO metadata VALUES ('curation_date', ?)`, curationDate); err != nil {
		return fmt.Errorf("store curation date: %w", err)
	}
	s.curationDate = curationDate

	return s.materialize()
}

// materialize reads the known_genes table into the in-memory map,
// parsing and validating inheritance modes.
func (s *Store) materialize() error {
	rows, err := s.db.Query(`SELECT symbol, inheritance, status, mechanism FROM known_genes`)
	if err != nil {
		return fmt.Errorf("query known genes: %w", err)
	}
	defer rows.Close()

	entries := make(map[string][]Entry)
	for rows.Next() {
		var symbol, inheritance, status, mechanism string
		if err := rows.Scan(&symbol, &inheritance, &status, &mechanism); err != nil {
			return fmt.Errorf("scan known-gene row: %w", err)
		}
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			return fmt.Errorf("known-gene row with empty symbol")
		}
		modes, err := ParseModes(inheritance)
		if err != nil {
			return fmt.Errorf("gene %s: %w", symbol, err)
		}
		entries[symbol] = append(entries[symbol], Entry{
			Symbol:    symbol,
			Modes:     modes,
			Status:    status,
			Mechanism: mechanism,
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("known-gene rows: %w", err)
	}

	s.entries = entries
	return nil
}

// Lookup returns every curated entry for a gene symbol. A nil result
// means the gene carries no known constraint; the variant is not
// discarded, merely left unconstrained.
func (s *Store) Lookup(symbol string) []Entry {
	if s.entries == nil || symbol == "" {
		return nil
	}
	return s.entries[symbol]
}

// GeneCount returns the number of distinct gene symbols loaded.
func (s *Store) GeneCount() int {
	return len(s.entries)
}

// CurationDate returns the provenance tag of the loaded table. It
// never affects filtering logic.
func (s *Store) CurationDate() string {
	return s.curationDate
}

// Close closes the backing database, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
