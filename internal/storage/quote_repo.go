package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_quote_store.go -package=mocks quotes-ai/internal/storage QuoteStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"quotes-ai/internal/quotes"
	"quotes-ai/internal/service"
)

// QuoteStore defines the interface for quote corpus storage operations.
// The corpus is read-only at query time; writes happen only through bulk
// reloads at data-load time.
type QuoteStore interface {
	// GetByID gets a quote by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id int) (quotes.Quote, error)
	// ListAll returns all quotes ordered by ID.
	ListAll(ctx context.Context) ([]quotes.Quote, error)
	// Count returns the number of stored quotes.
	Count(ctx context.Context) (int, error)
	// ReplaceAll atomically replaces the whole corpus with the given quotes.
	ReplaceAll(ctx context.Context, qs []quotes.Quote) error
}

// QuoteRepo provides methods for quote operations backed by SQLite.
// It implements the QuoteStore interface.
type QuoteRepo struct {
	db *sql.DB
}

// NewQuoteRepo creates a new QuoteRepo.
func NewQuoteRepo(db *sql.DB) *QuoteRepo {
	return &QuoteRepo{db: db}
}

const quoteColumns = `id, quote, author, era, topic, context, source, tags, language,
	interpretation, historical_significance, themes, key_phrases, modern_relevance`

// GetByID gets a quote by its ID. Returns ErrNotFound if not found.
func (r *QuoteRepo) GetByID(ctx context.Context, id int) (quotes.Quote, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+quoteColumns+" FROM quotes WHERE id = ?", id,
	)

	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return quotes.Quote{}, fmt.Errorf("quote %d: %w", id, service.ErrNotFound)
	}
	if err != nil {
		return quotes.Quote{}, fmt.Errorf("failed to get quote: %w", err)
	}
	return q, nil
}

// ListAll returns all quotes ordered by ID.
func (r *QuoteRepo) ListAll(ctx context.Context) ([]quotes.Quote, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+quoteColumns+" FROM quotes ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []quotes.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}
	return result, nil
}

// Count returns the number of stored quotes.
func (r *QuoteRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM quotes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return count, nil
}

// ReplaceAll atomically replaces the whole corpus with the given quotes.
// Used by the loader; every quote must pass Validate first.
func (r *QuoteRepo) ReplaceAll(ctx context.Context, qs []quotes.Quote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM quotes"); err != nil {
		return fmt.Errorf("failed to clear quotes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO quotes (`+quoteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("quote %d: %w", q.ID, err)
		}

		tags, err := json.Marshal(orEmpty(q.Tags))
		if err != nil {
			return fmt.Errorf("failed to encode tags for quote %d: %w", q.ID, err)
		}
		keyPhrases, err := json.Marshal(orEmpty(q.KeyPhrases))
		if err != nil {
			return fmt.Errorf("failed to encode key phrases for quote %d: %w", q.ID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			q.ID, q.Quote, q.Author, q.Era, q.Topic, q.Context, q.Source,
			string(tags), q.Language, q.Interpretation, q.HistoricalSignificance,
			q.Themes, string(keyPhrases), q.ModernRelevance,
		); err != nil {
			return fmt.Errorf("failed to insert quote %d: %w", q.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quotes: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (quotes.Quote, error) {
	var q quotes.Quote
	var tags, keyPhrases string

	err := row.Scan(
		&q.ID, &q.Quote, &q.Author, &q.Era, &q.Topic, &q.Context, &q.Source,
		&tags, &q.Language, &q.Interpretation, &q.HistoricalSignificance,
		&q.Themes, &keyPhrases, &q.ModernRelevance,
	)
	if err != nil {
		return quotes.Quote{}, err
	}

	if err := json.Unmarshal([]byte(tags), &q.Tags); err != nil {
		return quotes.Quote{}, fmt.Errorf("invalid tags column: %w", err)
	}
	if err := json.Unmarshal([]byte(keyPhrases), &q.KeyPhrases); err != nil {
		return quotes.Quote{}, fmt.Errorf("invalid key_phrases column: %w", err)
	}
	if len(q.Tags) == 0 {
		q.Tags = nil
	}
	if len(q.KeyPhrases) == 0 {
		q.KeyPhrases = nil
	}

	return q, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
