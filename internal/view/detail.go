package view

import (
	"fmt"
	"strings"

	"github.com/vadimtrunov/reelview/internal/catalog"
	"github.com/vadimtrunov/reelview/internal/core"
)

// TVInfo holds the show-only rows of the detail view.
type TVInfo struct {
	CreatedBy string `json:"created_by,omitempty"`
	Episodes  string `json:"episodes"`
	Seasons   string `json:"seasons"`
}

// Detail is the page model for the detail modal.
type Detail struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Year          string  `json:"year"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Rating        string  `json:"rating,omitempty"`
	Genres        string  `json:"genres,omitempty"`
	Language      string  `json:"language,omitempty"`
	Overview      string  `json:"overview"`
	Director      string  `json:"director,omitempty"`
	Cast          string  `json:"cast,omitempty"`
	TV            *TVInfo `json:"tv,omitempty"`
	Poster        Poster  `json:"poster"`
}

// BuildDetail converts a detail record into the modal model.
func BuildDetail(item *core.DetailItem, images catalog.Images) Detail {
	d := Detail{
		ID:       item.ID,
		Title:    item.Title,
		Year:     Year(item.ReleaseDate),
		Rating:   Rating(item.VoteAverage),
		Genres:   strings.Join(item.Genres, ", "),
		Language: item.Language,
		Overview: item.Overview,
		Director: item.Director,
		Cast:     CastLine(item.Cast),
		Poster:   NewPoster(images, item.PosterPath, catalog.SizeModal),
	}
	if item.OriginalTitle != "" && item.OriginalTitle != item.Title {
		d.OriginalTitle = item.OriginalTitle
	}
	if d.Overview == "" {
		d.Overview = MsgNoOverview
	}
	if item.IsTV() {
		d.TV = &TVInfo{
			CreatedBy: strings.Join(item.Creators, ", "),
			Episodes:  NumberOrNA(item.NumberOfEpisodes),
			Seasons:   NumberOrNA(item.NumberOfSeasons),
		}
	}
	return d
}

// TitleLine renders "Title (Year)".
func (d *Detail) TitleLine() string {
	return fmt.Sprintf("%s (%s)", d.Title, d.Year)
}

// MetaRow joins the rating, genres and language that are present.
func (d *Detail) MetaRow() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{d.Rating, d.Genres, d.Language} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "  ·  ")
}

// Credits returns the labelled credit rows in display order.
func (d *Detail) Credits() []string {
	var rows []string
	if d.Director != "" {
		rows = append(rows, "Director: "+d.Director)
	}
	if d.Cast != "" {
		rows = append(rows, "Cast: "+d.Cast)
	}
	if d.TV != nil {
		if d.TV.CreatedBy != "" {
			rows = append(rows, "Created by: "+d.TV.CreatedBy)
		}
		rows = append(rows, "Episodes: "+d.TV.Episodes, "Seasons: "+d.TV.Seasons)
	}
	return rows
}

// OriginalTitleLine renders "Original title: X", or "" when not shown.
func (d *Detail) OriginalTitleLine() string {
	if d.OriginalTitle == "" {
		return ""
	}
	return "Original title: " + d.OriginalTitle
}

// DetailFailureMessage returns the inline text for a failed detail request.
func DetailFailureMessage(err error) string {
	return catalog.UserMessage(err, MsgDetailFailed)
}
