package core

import "context"

// Catalog defines the read-only recommendation API consumed by every frontend
type Catalog interface {
	// List returns the listing for a request kind. query is only used by KindSearch.
	List(ctx context.Context, kind Kind, query string) ([]ListingItem, error)

	// Detail returns the full record for a single title
	Detail(ctx context.Context, id int) (*DetailItem, error)

	// Recommendations returns titles similar to the given one
	Recommendations(ctx context.Context, id int) ([]ListingItem, error)
}

// ImageProber checks whether a remote image can be loaded
type ImageProber interface {
	ProbeImage(ctx context.Context, url string) error
}

// Frontend defines the interface for user-facing frontends (TUI, Telegram, MCP)
type Frontend interface {
	// Start runs the frontend until ctx is canceled or the user quits
	Start(ctx context.Context) error

	// Name returns the frontend name (e.g., "tui", "telegram", "mcp")
	Name() string
}

// Kind is a listing request kind. Each kind maps to its own API path.
type Kind string

// Listing request kinds.
const (
	KindPopular  Kind = "popular"
	KindTopRated Kind = "top-rated"
	KindRandom   Kind = "random"
	KindSearch   Kind = "search"
)

// Categories are the kinds reachable through category buttons, in display order.
var Categories = []Kind{KindPopular, KindTopRated, KindRandom}

// ParseKind maps a user-supplied string to a Kind.
// The second return value is false when s is not a known kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindPopular, KindTopRated, KindRandom, KindSearch:
		return Kind(s), true
	case "top_rated", "toprated":
		return KindTopRated, true
	}
	return Kind(s), false
}

// Content types reported by the API.
const (
	ContentMovie = "movie"
	ContentTV    = "tv"
)

// ListingItem is the summary record for one movie or show in a grid view
type ListingItem struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	VoteAverage float64  `json:"vote_average,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Similarity  float64  `json:"similarity,omitempty"` // 0..1, search and recommendation results only
}

// DetailItem is the full record for one movie or show shown in the modal
type DetailItem struct {
	ListingItem

	OriginalTitle    string   `json:"original_title,omitempty"`
	Overview         string   `json:"overview,omitempty"`
	Director         string   `json:"director,omitempty"`
	Cast             []string `json:"cast,omitempty"`
	ContentType      string   `json:"content_type"`
	Creators         []string `json:"creators,omitempty"`
	NumberOfEpisodes int      `json:"number_of_episodes,omitempty"`
	NumberOfSeasons  int      `json:"number_of_seasons,omitempty"`
	Language         string   `json:"language,omitempty"`
	Popularity       float64  `json:"popularity,omitempty"`
	BackdropPath     string   `json:"backdrop_path,omitempty"`
}

// IsTV reports whether the item is a TV show
func (d *DetailItem) IsTV() bool {
	return d.ContentType == ContentTV
}
