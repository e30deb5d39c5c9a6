// Package entity defines the core domain entities of the journal catalogue.
// A Journal is an aggregate that embeds its single Article by value.
package entity

import "time"

// Journal represents a periodical publication together with its featured article.
type Journal struct {
	ID               int64
	Name             string
	Topic            string
	Language         string
	FoundationDate   time.Time
	ISSN             string
	RecommendedPrice string
	Periodic         bool
	Article          Article
}

// Equal reports whether two journals describe the same publication:
// identical name and identical foundation instant. Generated ids are ignored.
func (j Journal) Equal(other Journal) bool {
	return j.Name == other.Name && j.FoundationDate.Equal(other.FoundationDate)
}

// Link points the embedded article back at the journal.
// Repositories call it after ids have been assigned.
func (j *Journal) Link() {
	j.Article.JournalID = j.ID
}
