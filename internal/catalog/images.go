package catalog

import (
	"net/url"
	"strings"
)

// Image CDN defaults.
const (
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/"
	DefaultPlaceholder  = "/static/placeholder.jpg"
)

// Size is a CDN poster size variant.
type Size string

// Poster sizes used by the views.
const (
	SizeCard           Size = "w300"
	SizeModal          Size = "w500"
	SizeRecommendation Size = "w200"
)

// Images builds poster URLs.
type Images struct {
	baseURL     string
	placeholder string
}

// NewImages creates an image URL builder. A placeholder given as an absolute
// path is resolved against the origin of apiBaseURL, where the API serves
// its static assets.
func NewImages(cdnBaseURL, placeholder, apiBaseURL string) Images {
	if cdnBaseURL == "" {
		cdnBaseURL = DefaultImageBaseURL
	}
	if !strings.HasSuffix(cdnBaseURL, "/") {
		cdnBaseURL += "/"
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return Images{
		baseURL:     cdnBaseURL,
		placeholder: resolvePlaceholder(placeholder, apiBaseURL),
	}
}

// PosterURL returns the CDN URL for posterPath at size, or the placeholder
// when the path is empty.
func (i Images) PosterURL(posterPath string, size Size) string {
	if posterPath == "" {
		return i.placeholder
	}
	return i.baseURL + string(size) + posterPath
}

// Placeholder returns the fallback image URL.
func (i Images) Placeholder() string { return i.placeholder }

func resolvePlaceholder(placeholder, apiBaseURL string) string {
	if !strings.HasPrefix(placeholder, "/") || apiBaseURL == "" {
		return placeholder
	}
	u, err := url.Parse(apiBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return placeholder
	}
	return u.Scheme + "://" + u.Host + placeholder
}
