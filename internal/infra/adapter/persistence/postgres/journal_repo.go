// Package postgres provides the PostgreSQL implementation of the journal
// repository on top of database/sql and the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"journal-api/internal/domain/entity"
	"journal-api/internal/observability/metrics"
	"journal-api/internal/repository"
)

const selectJournal = `
SELECT j.id, j.name, j.topic, j.language, j.foundation_date,
       j.issn, j.recommended_price, j.periodic,
       a.id, a.title, a.author, a.writing_date,
       a.word_count, a.reference_count, a.original_language
FROM journals j
INNER JOIN articles a ON a.id = j.article_id`

// JournalRepo implements repository.JournalRepository using PostgreSQL.
// Every write touches both tables inside one transaction.
type JournalRepo struct{ db *sql.DB }

// NewJournalRepo creates a new PostgreSQL-backed journal repository.
func NewJournalRepo(db *sql.DB) repository.JournalRepository {
	return &JournalRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJournal(s scanner) (*entity.Journal, error) {
	var j entity.Journal
	err := s.Scan(
		&j.ID, &j.Name, &j.Topic, &j.Language, &j.FoundationDate,
		&j.ISSN, &j.RecommendedPrice, &j.Periodic,
		&j.Article.ID, &j.Article.Title, &j.Article.Author, &j.Article.WritingDate,
		&j.Article.WordCount, &j.Article.ReferenceCount, &j.Article.OriginalLanguage,
	)
	if err != nil {
		return nil, err
	}
	j.Link()
	return &j, nil
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}

func (repo *JournalRepo) Get(ctx context.Context, id int64) (*entity.Journal, error) {
	defer observe("get", time.Now())

	j, err := scanJournal(repo.db.QueryRowContext(ctx, selectJournal+`
WHERE j.id = $1
LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return j, nil
}

// List returns all journals in id order.
func (repo *JournalRepo) List(ctx context.Context) ([]*entity.Journal, error) {
	defer observe("list", time.Now())

	rows, err := repo.db.QueryContext(ctx, selectJournal+`
ORDER BY j.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	journals := make([]*entity.Journal, 0, 32)
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return journals, nil
}

// Create inserts the article first, then the journal pointing at it, and
// assigns both generated ids.
func (repo *JournalRepo) Create(ctx context.Context, j *entity.Journal) error {
	defer observe("create", time.Now())

	return repo.withTx(ctx, "Create", func(tx *sql.Tx) error {
		a := &j.Article
		var articleID int64
		err := tx.QueryRowContext(ctx, `
INSERT INTO articles
       (title, author, writing_date, word_count, reference_count, original_language)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
			a.Title, a.Author, a.WritingDate,
			a.WordCount, a.ReferenceCount, a.OriginalLanguage,
		).Scan(&articleID)
		if err != nil {
			return fmt.Errorf("insert article: %w", err)
		}

		var journalID int64
		err = tx.QueryRowContext(ctx, `
INSERT INTO journals
       (name, topic, language, foundation_date, issn, recommended_price, periodic, article_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
			j.Name, j.Topic, j.Language, j.FoundationDate,
			j.ISSN, j.RecommendedPrice, j.Periodic, articleID,
		).Scan(&journalID)
		if err != nil {
			return fmt.Errorf("insert journal: %w", err)
		}

		j.ID = journalID
		j.Article.ID = articleID
		j.Link()
		return nil
	})
}

// Update overwrites the journal row and its article row in place.
// The stored article id wins over whatever the caller carries.
func (repo *JournalRepo) Update(ctx context.Context, j *entity.Journal) error {
	defer observe("update", time.Now())

	return repo.withTx(ctx, "Update", func(tx *sql.Tx) error {
		var articleID int64
		err := tx.QueryRowContext(ctx, `
UPDATE journals SET
       name              = $1,
       topic             = $2,
       language          = $3,
       foundation_date   = $4,
       issn              = $5,
       recommended_price = $6,
       periodic          = $7
WHERE id = $8
RETURNING article_id`,
			j.Name, j.Topic, j.Language, j.FoundationDate,
			j.ISSN, j.RecommendedPrice, j.Periodic, j.ID,
		).Scan(&articleID)
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update journal: %w", err)
		}

		a := &j.Article
		if _, err := tx.ExecContext(ctx, `
UPDATE articles SET
       title             = $1,
       author            = $2,
       writing_date      = $3,
       word_count        = $4,
       reference_count   = $5,
       original_language = $6
WHERE id = $7`,
			a.Title, a.Author, a.WritingDate,
			a.WordCount, a.ReferenceCount, a.OriginalLanguage, articleID,
		); err != nil {
			return fmt.Errorf("update article: %w", err)
		}

		j.Article.ID = articleID
		j.Link()
		return nil
	})
}

// Delete removes the journal and then its article.
func (repo *JournalRepo) Delete(ctx context.Context, id int64) error {
	defer observe("delete", time.Now())

	return repo.withTx(ctx, "Delete", func(tx *sql.Tx) error {
		var articleID int64
		err := tx.QueryRowContext(ctx,
			`DELETE FROM journals WHERE id = $1 RETURNING article_id`, id,
		).Scan(&articleID)
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("delete journal: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, articleID); err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		return nil
	})
}

func (repo *JournalRepo) Count(ctx context.Context) (int64, error) {
	defer observe("count", time.Now())

	var n int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: QueryRowContext: %w", err)
	}
	return n, nil
}

// withTx runs fn in a transaction. entity.ErrNotFound passes through
// unwrapped so callers can match it.
func (repo *JournalRepo) withTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: BeginTx: %w", op, err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, entity.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: Commit: %w", op, err)
	}
	return nil
}
