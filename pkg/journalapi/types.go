// Package journalapi holds the JSON shapes exchanged over the /journals REST API.
// Both the server handlers and the client use these types.
package journalapi

// ArticleRequest is the article part of a create or update request.
type ArticleRequest struct {
	Title            string `json:"title" example:"On X-rays"`
	Author           string `json:"author" example:"Röntgen"`
	WritingDate      string `json:"writingDate" example:"1895-12-28T00:00:00"`
	WordCount        int    `json:"wordCount" example:"1200"`
	ReferenceCount   int    `json:"referenceCount" example:"3"`
	OriginalLanguage bool   `json:"originalLanguage" example:"true"`
}

// JournalRequest is the body of POST /journals and PUT /journals/{id}.
type JournalRequest struct {
	Name             string         `json:"name" example:"Nature"`
	Topic            string         `json:"topic" example:"Science"`
	Language         string         `json:"language" example:"en"`
	FoundationDate   string         `json:"foundationDate" example:"1869-11-04T00:00:00"`
	ISSN             string         `json:"issn" example:"0028-0836"`
	RecommendedPrice string         `json:"recommendedPrice" example:"19.99"`
	Periodic         bool           `json:"periodic" example:"true"`
	Article          ArticleRequest `json:"article"`
}

// ArticleResponse is the article part of a journal response.
type ArticleResponse struct {
	ID               int64  `json:"id" example:"1"`
	Title            string `json:"title"`
	Author           string `json:"author"`
	WritingDate      string `json:"writingDate"`
	WordCount        int    `json:"wordCount"`
	ReferenceCount   int    `json:"referenceCount"`
	OriginalLanguage bool   `json:"originalLanguage"`
}

// JournalResponse is returned by every /journals endpoint.
type JournalResponse struct {
	ID               int64           `json:"id" example:"1"`
	Name             string          `json:"name"`
	Topic            string          `json:"topic"`
	Language         string          `json:"language"`
	FoundationDate   string          `json:"foundationDate"`
	ISSN             string          `json:"issn"`
	RecommendedPrice string          `json:"recommendedPrice"`
	Periodic         bool            `json:"periodic"`
	Article          ArticleResponse `json:"article"`
}

// Request converts a response back into a request carrying the same values.
// Edit dialogs use it to prefill their form.
func (r JournalResponse) Request() JournalRequest {
	return JournalRequest{
		Name:             r.Name,
		Topic:            r.Topic,
		Language:         r.Language,
		FoundationDate:   r.FoundationDate,
		ISSN:             r.ISSN,
		RecommendedPrice: r.RecommendedPrice,
		Periodic:         r.Periodic,
		Article: ArticleRequest{
			Title:            r.Article.Title,
			Author:           r.Article.Author,
			WritingDate:      r.Article.WritingDate,
			WordCount:        r.Article.WordCount,
			ReferenceCount:   r.Article.ReferenceCount,
			OriginalLanguage: r.Article.OriginalLanguage,
		},
	}
}
