package view

import "github.com/vadimtrunov/reelview/internal/catalog"

// Poster is an image reference that can fall back to the placeholder once.
type Poster struct {
	URL         string `json:"url"`
	placeholder string
}

// NewPoster resolves posterPath at size, using the placeholder for an empty path.
func NewPoster(images catalog.Images, posterPath string, size catalog.Size) Poster {
	return Poster{
		URL:         images.PosterURL(posterPath, size),
		placeholder: images.Placeholder(),
	}
}

// Fail records a load error. It switches to the placeholder and reports true,
// unless the placeholder is already showing, in which case nothing changes.
func (p *Poster) Fail() bool {
	if p.IsPlaceholder() {
		return false
	}
	p.URL = p.placeholder
	return true
}

// IsPlaceholder reports whether the poster shows the fallback image.
func (p *Poster) IsPlaceholder() bool {
	return p.URL == p.placeholder
}
