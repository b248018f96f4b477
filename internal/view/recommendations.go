package view

import (
	"github.com/vadimtrunov/reelview/internal/catalog"
	"github.com/vadimtrunov/reelview/internal/core"
)

// RecCard is one entry in the recommendation grid.
type RecCard struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Match  string `json:"match,omitempty"`
	Poster Poster `json:"poster"`
}

// Recs is the state of the recommendation container.
type Recs struct {
	Cards   []RecCard `json:"cards"`
	Message string    `json:"message,omitempty"`
}

// BuildRecommendations converts recommendation items into cards.
func BuildRecommendations(items []core.ListingItem, images catalog.Images) []RecCard {
	cards := make([]RecCard, 0, len(items))
	for i := range items {
		it := &items[i]
		cards = append(cards, RecCard{
			ID:     it.ID,
			Title:  it.Title,
			Year:   Year(it.ReleaseDate),
			Match:  Match(it.Similarity),
			Poster: NewPoster(images, it.PosterPath, catalog.SizeRecommendation),
		})
	}
	return cards
}

// LoadingRecs is the container state while the request is in flight.
func LoadingRecs() Recs {
	return Recs{Message: MsgRecsLoading}
}

// RecsOutcome maps a finished recommendation request to the container state.
// An application error or an empty list reads as "nothing found"; a transport
// or parse failure reads as a load failure.
func RecsOutcome(items []core.ListingItem, err error, images catalog.Images) Recs {
	if err != nil {
		if catalog.IsAPIError(err) {
			return Recs{Message: MsgNoRecs}
		}
		return Recs{Message: MsgRecsFailed}
	}
	if len(items) == 0 {
		return Recs{Message: MsgNoRecs}
	}
	return Recs{Cards: BuildRecommendations(items, images)}
}
