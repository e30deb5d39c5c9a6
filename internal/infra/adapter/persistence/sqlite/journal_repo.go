// Package sqlite provides the SQLite implementation of the journal
// repository, used for local runs and tests. Rows are mapped with sqlx.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"journal-api/internal/domain/entity"
	"journal-api/internal/observability/metrics"
	"journal-api/internal/repository"
)

const selectJournal = `
SELECT j.id, j.name, j.topic, j.language, j.foundation_date,
       j.issn, j.recommended_price, j.periodic,
       a.id AS article_id, a.title, a.author, a.writing_date,
       a.word_count, a.reference_count, a.original_language
FROM journals j
INNER JOIN articles a ON a.id = j.article_id`

type journalRow struct {
	ID               int64     `db:"id"`
	Name             string    `db:"name"`
	Topic            string    `db:"topic"`
	Language         string    `db:"language"`
	FoundationDate   time.Time `db:"foundation_date"`
	ISSN             string    `db:"issn"`
	RecommendedPrice string    `db:"recommended_price"`
	Periodic         bool      `db:"periodic"`

	ArticleID        int64     `db:"article_id"`
	Title            string    `db:"title"`
	Author           string    `db:"author"`
	WritingDate      time.Time `db:"writing_date"`
	WordCount        int       `db:"word_count"`
	ReferenceCount   int       `db:"reference_count"`
	OriginalLanguage bool      `db:"original_language"`
}

func (r journalRow) toEntity() *entity.Journal {
	j := &entity.Journal{
		ID:               r.ID,
		Name:             r.Name,
		Topic:            r.Topic,
		Language:         r.Language,
		FoundationDate:   r.FoundationDate,
		ISSN:             r.ISSN,
		RecommendedPrice: r.RecommendedPrice,
		Periodic:         r.Periodic,
		Article: entity.Article{
			ID:               r.ArticleID,
			Title:            r.Title,
			Author:           r.Author,
			WritingDate:      r.WritingDate,
			WordCount:        r.WordCount,
			ReferenceCount:   r.ReferenceCount,
			OriginalLanguage: r.OriginalLanguage,
		},
	}
	j.Link()
	return j
}

// articleArgs and journalArgs feed the named statements below.
func articleArgs(a entity.Article, id int64) map[string]any {
	return map[string]any{
		"id":                id,
		"title":             a.Title,
		"author":            a.Author,
		"writing_date":      a.WritingDate.UTC(),
		"word_count":        a.WordCount,
		"reference_count":   a.ReferenceCount,
		"original_language": a.OriginalLanguage,
	}
}

func journalArgs(j *entity.Journal, articleID int64) map[string]any {
	return map[string]any{
		"id":                j.ID,
		"name":              j.Name,
		"topic":             j.Topic,
		"language":          j.Language,
		"foundation_date":   j.FoundationDate.UTC(),
		"issn":              j.ISSN,
		"recommended_price": j.RecommendedPrice,
		"periodic":          j.Periodic,
		"article_id":        articleID,
	}
}

// JournalRepo implements repository.JournalRepository using SQLite.
type JournalRepo struct{ db *sqlx.DB }

// NewJournalRepo wraps an open sqlite3 *sql.DB.
func NewJournalRepo(db *sql.DB) repository.JournalRepository {
	return &JournalRepo{db: sqlx.NewDb(db, "sqlite3")}
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}

func (repo *JournalRepo) Get(ctx context.Context, id int64) (*entity.Journal, error) {
	defer observe("get", time.Now())

	var row journalRow
	err := repo.db.GetContext(ctx, &row, selectJournal+`
WHERE j.id = ?
LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: GetContext: %w", err)
	}
	return row.toEntity(), nil
}

// List returns all journals in id order.
func (repo *JournalRepo) List(ctx context.Context) ([]*entity.Journal, error) {
	defer observe("list", time.Now())

	var rows []journalRow
	if err := repo.db.SelectContext(ctx, &rows, selectJournal+`
ORDER BY j.id ASC`); err != nil {
		return nil, fmt.Errorf("List: SelectContext: %w", err)
	}

	journals := make([]*entity.Journal, 0, len(rows))
	for _, r := range rows {
		journals = append(journals, r.toEntity())
	}
	return journals, nil
}

func (repo *JournalRepo) Create(ctx context.Context, j *entity.Journal) error {
	defer observe("create", time.Now())

	return repo.withTx(ctx, "Create", func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, `
INSERT INTO articles
       (title, author, writing_date, word_count, reference_count, original_language)
VALUES (:title, :author, :writing_date, :word_count, :reference_count, :original_language)`,
			articleArgs(j.Article, 0))
		if err != nil {
			return fmt.Errorf("insert article: %w", err)
		}
		articleID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("article id: %w", err)
		}

		res, err = tx.NamedExecContext(ctx, `
INSERT INTO journals
       (name, topic, language, foundation_date, issn, recommended_price, periodic, article_id)
VALUES (:name, :topic, :language, :foundation_date, :issn, :recommended_price, :periodic, :article_id)`,
			journalArgs(j, articleID))
		if err != nil {
			return fmt.Errorf("insert journal: %w", err)
		}
		journalID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("journal id: %w", err)
		}

		j.ID = journalID
		j.Article.ID = articleID
		j.Link()
		return nil
	})
}

func (repo *JournalRepo) Update(ctx context.Context, j *entity.Journal) error {
	defer observe("update", time.Now())

	return repo.withTx(ctx, "Update", func(tx *sqlx.Tx) error {
		articleID, err := articleOf(ctx, tx, j.ID)
		if err != nil {
			return err
		}

		if _, err := tx.NamedExecContext(ctx, `
UPDATE journals SET
       name              = :name,
       topic             = :topic,
       language          = :language,
       foundation_date   = :foundation_date,
       issn              = :issn,
       recommended_price = :recommended_price,
       periodic          = :periodic
WHERE id = :id`, journalArgs(j, articleID)); err != nil {
			return fmt.Errorf("update journal: %w", err)
		}

		if _, err := tx.NamedExecContext(ctx, `
UPDATE articles SET
       title             = :title,
       author            = :author,
       writing_date      = :writing_date,
       word_count        = :word_count,
       reference_count   = :reference_count,
       original_language = :original_language
WHERE id = :id`, articleArgs(j.Article, articleID)); err != nil {
			return fmt.Errorf("update article: %w", err)
		}

		j.Article.ID = articleID
		j.Link()
		return nil
	})
}

func (repo *JournalRepo) Delete(ctx context.Context, id int64) error {
	defer observe("delete", time.Now())

	return repo.withTx(ctx, "Delete", func(tx *sqlx.Tx) error {
		articleID, err := articleOf(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM journals WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete journal: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, articleID); err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		return nil
	})
}

func (repo *JournalRepo) Count(ctx context.Context) (int64, error) {
	defer observe("count", time.Now())

	var n int64
	if err := repo.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM journals`); err != nil {
		return 0, fmt.Errorf("Count: GetContext: %w", err)
	}
	return n, nil
}

func articleOf(ctx context.Context, tx *sqlx.Tx, journalID int64) (int64, error) {
	var articleID int64
	err := tx.GetContext(ctx, &articleID, `SELECT article_id FROM journals WHERE id = ?`, journalID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entity.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup article id: %w", err)
	}
	return articleID, nil
}

func (repo *JournalRepo) withTx(ctx context.Context, op string, fn func(*sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: BeginTxx: %w", op, err)
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
