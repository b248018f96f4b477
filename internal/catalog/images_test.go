package catalog

import "testing"

func TestImages_PosterURL(t *testing.T) {
	t.Parallel()

	images := NewImages("", "", "http://localhost:5000/api")

	tests := []struct {
		name string
		path string
		size Size
		want string
	}{
		{"card", "/abc.jpg", SizeCard, "https://image.tmdb.org/t/p/w300/abc.jpg"},
		{"modal", "/abc.jpg", SizeModal, "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"recommendation", "/abc.jpg", SizeRecommendation, "https://image.tmdb.org/t/p/w200/abc.jpg"},
		{"missing_path", "", SizeCard, "http://localhost:5000/static/placeholder.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := images.PosterURL(tt.path, tt.size); got != tt.want {
				t.Errorf("PosterURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewImages_Placeholder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cdn         string
		placeholder string
		api         string
		want        string
	}{
		{"relative_resolved_against_api", "", "/static/p.png", "https://movies.example.com/api", "https://movies.example.com/static/p.png"},
		{"absolute_url_kept", "", "https://cdn.example.com/p.png", "http://localhost:5000/api", "https://cdn.example.com/p.png"},
		{"no_api_base", "", "/static/p.png", "", "/static/p.png"},
		{"cdn_without_slash", "https://img.example.com/t/p", "", "", "/static/placeholder.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			images := NewImages(tt.cdn, tt.placeholder, tt.api)
			if got := images.Placeholder(); got != tt.want {
				t.Errorf("Placeholder() = %q, want %q", got, tt.want)
			}
		})
	}

	images := NewImages("https://img.example.com/t/p", "", "")
	if got := images.PosterURL("/x.jpg", SizeCard); got != "https://img.example.com/t/p/w300/x.jpg" {
		t.Errorf("PosterURL() = %q", got)
	}
}
