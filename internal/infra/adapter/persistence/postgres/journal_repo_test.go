package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"journal-api/internal/domain/entity"
	"journal-api/internal/infra/adapter/persistence/postgres"
)

/* ──────────────────────────────── ヘルパ ──────────────────────────────── */

var columns = []string{
	"id", "name", "topic", "language", "foundation_date",
	"issn", "recommended_price", "periodic",
	"id", "title", "author", "writing_date",
	"word_count", "reference_count", "original_language",
}

func nature() *entity.Journal {
	return &entity.Journal{
		Name: "Nature", Topic: "Science", Language: "English",
		FoundationDate:   time.Date(1869, 11, 4, 0, 0, 0, 0, time.UTC),
		ISSN:             "0028-0836",
		RecommendedPrice: "199.00",
		Periodic:         true,
		Article: entity.Article{
			Title: "On a New Kind of Rays", Author: "Röntgen",
			WritingDate:      time.Date(1895, 12, 28, 0, 0, 0, 0, time.UTC),
			WordCount:        4000,
			ReferenceCount:   0,
			OriginalLanguage: false,
		},
	}
}

func addRow(rows *sqlmock.Rows, j *entity.Journal) *sqlmock.Rows {
	a := j.Article
	return rows.AddRow(
		j.ID, j.Name, j.Topic, j.Language, j.FoundationDate,
		j.ISSN, j.RecommendedPrice, j.Periodic,
		a.ID, a.Title, a.Author, a.WritingDate,
		a.WordCount, a.ReferenceCount, a.OriginalLanguage,
	)
}

func stored(id, articleID int64) *entity.Journal {
	j := nature()
	j.ID = id
	j.Article.ID = articleID
	j.Article.JournalID = id
	return j
}

/* ──────────────────────────────── 1. Get ──────────────────────────────── */

func TestJournalRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := stored(1, 7)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT j.id`)).
		WithArgs(int64(1)).
		WillReturnRows(addRow(sqlmock.NewRows(columns), want))

	got, err := postgres.NewJournalRepo(db).Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestJournalRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT j.id`)).
		WithArgs(int64(9999)).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := postgres.NewJournalRepo(db).Get(context.Background(), 9999)
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}
}

/* ──────────────────────────────── 2. List ──────────────────────────────── */

func TestJournalRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows(columns)
	addRow(rows, stored(1, 1))
	addRow(rows, stored(2, 2))
	mock.ExpectQuery(`SELECT .* FROM journals j INNER JOIN articles a .* ORDER BY j.id ASC`).
		WillReturnRows(rows)

	got, err := postgres.NewJournalRepo(db).List(context.Background())
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("List unexpected result: %+v", got)
	}
	if got[1].Article.JournalID != 2 {
		t.Fatalf("article not linked: %+v", got[1].Article)
	}
}

func TestJournalRepo_List_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(columns))

	got, err := postgres.NewJournalRepo(db).List(context.Background())
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got (%v, %v)", got, err)
	}
}

/* ──────────────────────────────── 3. Create ──────────────────────────────── */

func TestJournalRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	j := nature()
	a := j.Article

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO articles`)).
		WithArgs(a.Title, a.Author, a.WritingDate, a.WordCount, a.ReferenceCount, a.OriginalLanguage).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO journals`)).
		WithArgs(j.Name, j.Topic, j.Language, j.FoundationDate,
			j.ISSN, j.RecommendedPrice, j.Periodic, int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectCommit()

	if err := postgres.NewJournalRepo(db).Create(context.Background(), j); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if diff := cmp.Diff(stored(5, 11), j); diff != "" {
		t.Fatalf("ids not assigned (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestJournalRepo_Create_RollbackOnJournalInsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO articles`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO journals`)).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	j := nature()
	if err := postgres.NewJournalRepo(db).Create(context.Background(), j); err == nil {
		t.Fatal("want error")
	}
	if j.ID != 0 || j.Article.ID != 0 {
		t.Fatalf("ids must stay unset on failure: %+v", j)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────────── 4. Update ──────────────────────────────── */

func TestJournalRepo_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	j := nature()
	j.ID = 5
	j.Article.Title = "Revised"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE journals SET`)).
		WithArgs(j.Name, j.Topic, j.Language, j.FoundationDate,
			j.ISSN, j.RecommendedPrice, j.Periodic, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"article_id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE articles SET`)).
		WithArgs("Revised", j.Article.Author, j.Article.WritingDate,
			j.Article.WordCount, j.Article.ReferenceCount, j.Article.OriginalLanguage, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := postgres.NewJournalRepo(db).Update(context.Background(), j); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if j.Article.ID != 11 || j.Article.JournalID != 5 {
		t.Fatalf("article ids not preserved: %+v", j.Article)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestJournalRepo_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE journals SET`)).
		WillReturnRows(sqlmock.NewRows([]string{"article_id"}))
	mock.ExpectRollback()

	j := nature()
	j.ID = 9999
	err := postgres.NewJournalRepo(db).Update(context.Background(), j)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────────── 5. Delete ──────────────────────────────── */

func TestJournalRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM journals WHERE id = $1 RETURNING article_id`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"article_id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM articles WHERE id = $1`)).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := postgres.NewJournalRepo(db).Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestJournalRepo_Delete_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM journals`)).
		WithArgs(int64(9999)).
		WillReturnRows(sqlmock.NewRows([]string{"article_id"}))
	mock.ExpectRollback()

	err := postgres.NewJournalRepo(db).Delete(context.Background(), 9999)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestJournalRepo_Delete_ArticleFailureRollsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM journals`)).
		WillReturnRows(sqlmock.NewRows([]string{"article_id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM articles`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := postgres.NewJournalRepo(db).Delete(context.Background(), 5)
	if err == nil || errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want wrapped driver error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────────── 6. Count ──────────────────────────────── */

func TestJournalRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM journals`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := postgres.NewJournalRepo(db).Count(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("Count = (%d, %v), want (3, nil)", n, err)
	}
}
