// Package ui is the toolkit-independent core of the journal client.
//
// State lives in a Model value. Events arrive as Msg values and Update
// returns the next Model together with an optional Cmd, a deferred I/O
// call whose result comes back as another Msg. View renders a Model as
// plain text. Program drives the loop.
package ui

import (
	"context"
	"fmt"
	"strconv"

	"journal-api/pkg/journalapi"
)

// Backend is the subset of the REST client the UI calls.
type Backend interface {
	List(ctx context.Context) ([]journalapi.JournalResponse, error)
	Create(ctx context.Context, in journalapi.JournalRequest) (journalapi.JournalResponse, error)
	Update(ctx context.Context, id int64, in journalapi.JournalRequest) (journalapi.JournalResponse, error)
	Delete(ctx context.Context, id int64) (journalapi.JournalResponse, error)
}

// Model is the whole client state.
type Model struct {
	Journals []journalapi.JournalResponse
	Loading  bool
	// Dialog is nil while the list is shown.
	Dialog *Dialog
	// Notifications stay until dismissed.
	Notifications []string
}

// Dialog is the create/edit form.
type Dialog struct {
	// Editing is the journal being edited, nil for a new one.
	Editing    *journalapi.JournalResponse
	Form       journalapi.JournalRequest
	Submitting bool
}

// Title names the dialog.
func (d *Dialog) Title() string {
	if d.Editing == nil {
		return "New journal"
	}
	return fmt.Sprintf("Edit journal #%d", d.Editing.ID)
}

// Field names accepted by FieldChanged.
const (
	FieldName             = "name"
	FieldTopic            = "topic"
	FieldLanguage         = "language"
	FieldFoundationDate   = "foundationDate"
	FieldISSN             = "issn"
	FieldRecommendedPrice = "recommendedPrice"
	FieldPeriodic         = "periodic"
	FieldArticleTitle     = "article.title"
	FieldArticleAuthor    = "article.author"
	FieldWritingDate      = "article.writingDate"
	FieldWordCount        = "article.wordCount"
	FieldReferenceCount   = "article.referenceCount"
	FieldOriginalLanguage = "article.originalLanguage"
)

// Fields lists every form field in display order.
var Fields = []string{
	FieldName, FieldTopic, FieldLanguage, FieldFoundationDate, FieldISSN,
	FieldRecommendedPrice, FieldPeriodic,
	FieldArticleTitle, FieldArticleAuthor, FieldWritingDate,
	FieldWordCount, FieldReferenceCount, FieldOriginalLanguage,
}

// setField writes value into the named field of f.
func setField(f *journalapi.JournalRequest, field, value string) error {
	switch field {
	case FieldName:
		f.Name = value
	case FieldTopic:
		f.Topic = value
	case FieldLanguage:
		f.Language = value
	case FieldFoundationDate:
		f.FoundationDate = value
	case FieldISSN:
		f.ISSN = value
	case FieldRecommendedPrice:
		f.RecommendedPrice = value
	case FieldPeriodic:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", field)
		}
		f.Periodic = b
	case FieldArticleTitle:
		f.Article.Title = value
	case FieldArticleAuthor:
		f.Article.Author = value
	case FieldWritingDate:
		f.Article.WritingDate = value
	case FieldWordCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a whole number", field)
		}
		f.Article.WordCount = n
	case FieldReferenceCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a whole number", field)
		}
		f.Article.ReferenceCount = n
	case FieldOriginalLanguage:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", field)
		}
		f.Article.OriginalLanguage = b
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// fieldValue reads the named field of f as text.
func fieldValue(f journalapi.JournalRequest, field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldTopic:
		return f.Topic
	case FieldLanguage:
		return f.Language
	case FieldFoundationDate:
		return f.FoundationDate
	case FieldISSN:
		return f.ISSN
	case FieldRecommendedPrice:
		return f.RecommendedPrice
	case FieldPeriodic:
		return strconv.FormatBool(f.Periodic)
	case FieldArticleTitle:
		return f.Article.Title
	case FieldArticleAuthor:
		return f.Article.Author
	case FieldWritingDate:
		return f.Article.WritingDate
	case FieldWordCount:
		return strconv.Itoa(f.Article.WordCount)
	case FieldReferenceCount:
		return strconv.Itoa(f.Article.ReferenceCount)
	case FieldOriginalLanguage:
		return strconv.FormatBool(f.Article.OriginalLanguage)
	}
	return ""
}

func (m Model) find(id int64) (journalapi.JournalResponse, bool) {
	for _, j := range m.Journals {
		if j.ID == id {
			return j, true
		}
	}
	return journalapi.JournalResponse{}, false
}

func (m Model) notify(text string) Model {
	m.Notifications = append(append([]string(nil), m.Notifications...), text)
	return m
}
