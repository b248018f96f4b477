// Package view turns API records into frontend-neutral page models.
// The TUI, the Telegram bot, the MCP server and the one-shot CLI commands
// all paint the same models, so labels and fallbacks stay identical.
package view

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/vadimtrunov/reelview/internal/core"
)

const (
	cardGenreLimit = 3
	castLimit      = 5
)

// Heading returns the results heading for a request kind.
func Heading(kind core.Kind, query string, count int) string {
	switch kind {
	case core.KindSearch:
		return fmt.Sprintf("Search results for \"%s\" (%d)", query, count)
	case core.KindPopular:
		return "Popular Movies & Shows"
	case core.KindTopRated:
		return "Top Rated Movies & Shows"
	case core.KindRandom:
		return "Random Recommendations"
	default:
		return "Movie Recommendations"
	}
}

// Year returns the first four characters of a release date, or N/A.
func Year(releaseDate string) string {
	if releaseDate == "" {
		return NotAvailable
	}
	if len(releaseDate) < 4 {
		return releaseDate
	}
	return releaseDate[:4]
}

// Rating formats a vote average as "★ X.Y". A zero average renders as "".
func Rating(voteAverage float64) string {
	if voteAverage == 0 || math.IsNaN(voteAverage) {
		return ""
	}
	return "★ " + oneDecimal(voteAverage)
}

// oneDecimal formats v with one decimal place. Rounding works on the exact
// binary value and an exact tie goes away from zero, so 8.25 gives 8.3 while
// 7.85, stored as 7.8499..., gives 7.8.
func oneDecimal(v float64) string {
	if math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	neg := v < 0
	r := new(big.Rat).SetFloat64(math.Abs(v))
	r.Mul(r, big.NewRat(10, 1))

	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	// m/den >= 1/2
	if m.Lsh(m, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	whole, tenth := new(big.Int).QuoRem(q, big.NewInt(10), new(big.Int))
	s := whole.String() + "." + tenth.String()
	if neg && q.Sign() != 0 {
		s = "-" + s
	}
	return s
}

// CardGenres joins at most the first three genres.
func CardGenres(genres []string) string {
	if len(genres) > cardGenreLimit {
		genres = genres[:cardGenreLimit]
	}
	return strings.Join(genres, ", ")
}

// CastLine joins at most the first five cast members.
func CastLine(cast []string) string {
	if len(cast) > castLimit {
		cast = cast[:castLimit]
	}
	return strings.Join(cast, ", ")
}

// NumberOrNA renders n, or N/A when it is zero.
func NumberOrNA(n int) string {
	if n <= 0 {
		return NotAvailable
	}
	return strconv.Itoa(n)
}

// Match renders a similarity score in 0..1 as "Match: NN%".
func Match(similarity float64) string {
	if similarity <= 0 {
		return ""
	}
	return fmt.Sprintf("Match: %d%%", int(math.Round(similarity*100)))
}
