package view

import (
	"github.com/vadimtrunov/reelview/internal/catalog"
	"github.com/vadimtrunov/reelview/internal/core"
)

// Card is one grid entry in a results page.
type Card struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Rating string `json:"rating,omitempty"`
	Genres string `json:"genres,omitempty"`
	Poster Poster `json:"poster"`
}

// Results is the page model for a listing.
type Results struct {
	Kind    core.Kind `json:"kind"`
	Query   string    `json:"query,omitempty"`
	Heading string    `json:"heading"`
	Cards   []Card    `json:"cards"`
	Empty   bool      `json:"empty"`
	Message string    `json:"message,omitempty"`
}

// BuildResults converts a listing into a page model.
func BuildResults(kind core.Kind, query string, items []core.ListingItem, images catalog.Images) Results {
	res := Results{
		Kind:    kind,
		Query:   query,
		Heading: Heading(kind, query, len(items)),
		Cards:   make([]Card, 0, len(items)),
	}
	for i := range items {
		res.Cards = append(res.Cards, NewCard(&items[i], images))
	}
	if len(res.Cards) == 0 {
		res.Empty = true
		res.Message = MsgNoResults
	}
	return res
}

// NewCard builds the card for a single listing item.
func NewCard(item *core.ListingItem, images catalog.Images) Card {
	return Card{
		ID:     item.ID,
		Title:  item.Title,
		Year:   Year(item.ReleaseDate),
		Rating: Rating(item.VoteAverage),
		Genres: CardGenres(item.Genres),
		Poster: NewPoster(images, item.PosterPath, catalog.SizeCard),
	}
}

// FailureMessage returns the text that replaces the results container after
// a failed listing request.
func FailureMessage(err error) string {
	return catalog.UserMessage(err, MsgFetchFailed)
}
