package sqlite_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"journal-api/internal/domain/entity"
	"journal-api/internal/infra/adapter/persistence/sqlite"
	"journal-api/internal/infra/db"
	"journal-api/internal/repository"
)

/* ────────────────────────────  ヘルパ  ──────────────────────────── */

func newRepo(t *testing.T) repository.JournalRepository {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.Config{Driver: db.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.MigrateUp(ctx, conn, db.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqlite.NewJournalRepo(conn)
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
			OriginalLanguage: true,
		},
	}
}

// instants compare with Equal so the stored location does not matter
var timeEqual = cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })

/* ──────────────────────────── 1. Create + Get ──────────────────────────── */

func TestJournalRepo_CreateGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	j := nature()
	if err := repo.Create(ctx, j); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if j.ID <= 0 || j.Article.ID <= 0 || j.Article.JournalID != j.ID {
		t.Fatalf("ids not assigned: %+v", j)
	}

	got, err := repo.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(j, got, timeEqual); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJournalRepo_Get_Missing(t *testing.T) {
	repo := newRepo(t)

	got, err := repo.Get(context.Background(), 9999)
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}
}

/* ──────────────────────────── 2. List + Count ──────────────────────────── */

func TestJournalRepo_ListCount(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty store: (%v, %v)", empty, err)
	}

	const n = 5
	for i := 0; i < n; i++ {
		if err := repo.Create(ctx, nature()); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != n {
		t.Fatalf("List = (%d, %v), want %d", len(list), err, n)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("list not in id order: %d before %d", list[i-1].ID, list[i].ID)
		}
	}

	count, err := repo.Count(ctx)
	if err != nil || count != n {
		t.Fatalf("Count = (%d, %v), want %d", count, err, n)
	}
}

/* ──────────────────────────── 3. Update ──────────────────────────── */

func TestJournalRepo_Update_PreservesIDs(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	j := nature()
	if err := repo.Create(ctx, j); err != nil {
		t.Fatal(err)
	}
	journalID, articleID := j.ID, j.Article.ID

	changed := nature()
	changed.ID = journalID
	changed.Name = "Nature Physics"
	changed.Article.Title = "Über eine neue Art von Strahlen"
	changed.Article.ID = 0

	if err := repo.Update(ctx, changed); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if changed.Article.ID != articleID {
		t.Fatalf("article id %d, want %d", changed.Article.ID, articleID)
	}

	got, err := repo.Get(ctx, journalID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Nature Physics" || got.Article.Title != "Über eine neue Art von Strahlen" {
		t.Fatalf("update not persisted: %+v", got)
	}
	if got.ID != journalID || got.Article.ID != articleID {
		t.Fatalf("ids changed: %+v", got)
	}
}

func TestJournalRepo_Update_Missing(t *testing.T) {
	repo := newRepo(t)

	j := nature()
	j.ID = 9999
	if err := repo.Update(context.Background(), j); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

/* ──────────────────────────── 4. Delete ──────────────────────────── */

func TestJournalRepo_Delete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	keep, gone := nature(), nature()
	for _, j := range []*entity.Journal{keep, gone} {
		if err := repo.Create(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	if err := repo.Delete(ctx, gone.ID); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if got, _ := repo.Get(ctx, gone.ID); got != nil {
		t.Fatalf("deleted journal still readable: %+v", got)
	}
	if err := repo.Delete(ctx, gone.ID); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
	if got, _ := repo.Get(ctx, keep.ID); got == nil {
		t.Fatal("unrelated journal removed")
	}

	// ids are not reused
	again := nature()
	if err := repo.Create(ctx, again); err != nil {
		t.Fatal(err)
	}
	if again.ID == gone.ID {
		t.Fatalf("id %d reused after delete", again.ID)
	}
}

/* ──────────────────────────── 5. Concurrency ──────────────────────────── */

func TestJournalRepo_ConcurrentCreate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j := nature()
			if err := repo.Create(ctx, j); err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			ids <- j.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("created %d journals, want %d", len(seen), n)
	}
}
