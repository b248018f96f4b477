package catalog

import "github.com/vadimtrunov/reelview/internal/core"

// Result counts sent as the n parameter.
const (
	ListingSize        = 20
	RecommendationSize = 6
)

// envelope is implemented by every response body so the error field can be
// checked before the payload is trusted.
type envelope interface {
	apiError() string
}

// listResponse wraps the listing, search and recommendations responses.
// Results is a pointer so a missing key can be told apart from an empty list.
type listResponse struct {
	Results *[]core.ListingItem `json:"results"`
	Error   string              `json:"error"`
}

func (r *listResponse) apiError() string { return r.Error }

// detailResponse wraps the /movie/{id} response.
type detailResponse struct {
	Movie *core.DetailItem `json:"movie"`
	Error string           `json:"error"`
}

func (r *detailResponse) apiError() string { return r.Error }
