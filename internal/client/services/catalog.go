package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// catalogEntry is one article of an importable catalog file.
type catalogEntry struct {
	ID                   string `json:"id" validate:"required,max=100"`
	Title                string `json:"title" validate:"required,max=500"`
	Description          string `json:"description" validate:"max=5000"`
	SourceURL            string `json:"sourceUrl" validate:"required,http_url"`
	ImageURL             string `json:"imageUrl" validate:"omitempty,http_url"`
	CategoryID           string `json:"categoryId" validate:"required"`
	EstimatedReadingTime int    `json:"estimatedReadingTime" validate:"gte=0,lte=600"`
	PublishDate          string `json:"publishDate" validate:"required,datetime=2006-01-02"`
	Featured             bool   `json:"featured"`
}

// decodeCatalog reads a JSON array of articles. Entries are validated as a
// whole; a single bad entry rejects the file.
func decodeCatalog(r io.Reader) ([]reading.Article, error) {
	var entries []catalogEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: malformed catalog: %v", common.ErrorValidation, err)
	}

	out := make([]reading.Article, 0, len(entries))
	for i, e := range entries {
		e.ID = strings.TrimSpace(e.ID)
		e.Title = strings.TrimSpace(e.Title)
		if err := validate.Struct(e); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return nil, fmt.Errorf("%w: entry %d: %s failed %q", common.ErrorValidation, i, strings.ToLower(verrs[0].Field()), verrs[0].Tag())
			}
			return nil, fmt.Errorf("%w: entry %d: %v", common.ErrorValidation, i, err)
		}

		minutes := e.EstimatedReadingTime
		if minutes < 1 {
			minutes = 1
		}
		out = append(out, reading.Article{
			ID:                   e.ID,
			Title:                e.Title,
			Description:          e.Description,
			SourceURL:            e.SourceURL,
			ImageURL:             e.ImageURL,
			CategoryID:           e.CategoryID,
			EstimatedReadingTime: minutes,
			PublishDate:          reading.Date(e.PublishDate),
			Featured:             e.Featured,
			Source:               reading.SourceEditorial,
		})
	}
	return out, nil
}
