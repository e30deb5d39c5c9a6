package entity

import "time"

// Article is the featured write-up owned by exactly one Journal.
// It has no lifecycle of its own: it is created, updated and removed together
// with the Journal that embeds it.
type Article struct {
	ID               int64
	Title            string
	Author           string
	WritingDate      time.Time
	WordCount        int
	ReferenceCount   int
	OriginalLanguage bool

	// JournalID is a lookup field pointing back at the owning journal.
	// It is derived from the aggregate and never persisted on the article row.
	JournalID int64
}

// Equal reports whether two articles are the same write-up:
// identical title and identical writing instant. Generated ids are ignored.
func (a Article) Equal(other Article) bool {
	return a.Title == other.Title && a.WritingDate.Equal(other.WritingDate)
}
