package journal

import (
	"fmt"
	"time"

	"journal-api/internal/domain/entity"
	"journal-api/pkg/journalapi"
)

// DatePolicy decides what happens to a date string that cannot be parsed.
type DatePolicy string

const (
	// PolicyFallback substitutes the current instant and reports the field.
	PolicyFallback DatePolicy = "fallback"
	// PolicyReject fails the request with ErrMalformedDate.
	PolicyReject DatePolicy = "reject"
)

// ParseDatePolicy converts a configuration value into a DatePolicy.
// The empty string selects PolicyFallback.
func ParseDatePolicy(s string) (DatePolicy, error) {
	switch DatePolicy(s) {
	case "", PolicyFallback:
		return PolicyFallback, nil
	case PolicyReject:
		return PolicyReject, nil
	}
	return "", fmt.Errorf("unknown date policy %q (want %q or %q)", s, PolicyFallback, PolicyReject)
}

// Field names reported when a date falls back.
const (
	FieldFoundationDate = "foundationDate"
	FieldWritingDate    = "article.writingDate"
)

// Mapper converts between wire shapes and Journal aggregates.
// The zero value uses PolicyFallback and time.Now.
type Mapper struct {
	Policy DatePolicy
	Now    func() time.Time
}

func (m Mapper) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

// date parses value for field. Under PolicyFallback a bad value yields now
// and substituted == true.
func (m Mapper) date(field, value string) (t time.Time, substituted bool, err error) {
	t, err = ParseDate(value)
	if err == nil {
		return t, false, nil
	}
	if m.Policy == PolicyReject {
		return time.Time{}, false, malformedDate(field, value)
	}
	return m.now(), true, nil
}

// ToEntity builds a new, unsaved Journal from req. The returned slice names
// every date field that was replaced by the current instant.
func (m Mapper) ToEntity(req journalapi.JournalRequest) (*entity.Journal, []string, error) {
	j := &entity.Journal{}
	fallbacks, err := m.Apply(j, req)
	if err != nil {
		return nil, nil, err
	}
	return j, fallbacks, nil
}

// Apply overwrites every scalar of j and of its article with req.
// Both ids are left untouched. On error j is not modified.
func (m Mapper) Apply(j *entity.Journal, req journalapi.JournalRequest) ([]string, error) {
	var fallbacks []string

	founded, sub, err := m.date(FieldFoundationDate, req.FoundationDate)
	if err != nil {
		return nil, err
	}
	if sub {
		fallbacks = append(fallbacks, FieldFoundationDate)
	}

	written, sub, err := m.date(FieldWritingDate, req.Article.WritingDate)
	if err != nil {
		return nil, err
	}
	if sub {
		fallbacks = append(fallbacks, FieldWritingDate)
	}

	j.Name = req.Name
	j.Topic = req.Topic
	j.Language = req.Language
	j.FoundationDate = founded
	j.ISSN = req.ISSN
	j.RecommendedPrice = req.RecommendedPrice
	j.Periodic = req.Periodic

	a := &j.Article
	a.Title = req.Article.Title
	a.Author = req.Article.Author
	a.WritingDate = written
	a.WordCount = req.Article.WordCount
	a.ReferenceCount = req.Article.ReferenceCount
	a.OriginalLanguage = req.Article.OriginalLanguage

	return fallbacks, nil
}

// ToResponse maps a stored journal, including generated ids, to its wire shape.
func (Mapper) ToResponse(j *entity.Journal) journalapi.JournalResponse {
	return journalapi.JournalResponse{
		ID:               j.ID,
		Name:             j.Name,
		Topic:            j.Topic,
		Language:         j.Language,
		FoundationDate:   FormatDate(j.FoundationDate),
		ISSN:             j.ISSN,
		RecommendedPrice: j.RecommendedPrice,
		Periodic:         j.Periodic,
		Article: journalapi.ArticleResponse{
			ID:               j.Article.ID,
			Title:            j.Article.Title,
			Author:           j.Article.Author,
			WritingDate:      FormatDate(j.Article.WritingDate),
			WordCount:        j.Article.WordCount,
			ReferenceCount:   j.Article.ReferenceCount,
			OriginalLanguage: j.Article.OriginalLanguage,
		},
	}
}
