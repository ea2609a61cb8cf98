package tvdb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"seasonfix/internal/spec"
)

// SpecSource builds specification text from a remote season listing. It
// satisfies spec.Source, so the parser treats it exactly like a local
// spec file.
type SpecSource struct {
	lister   SeasonLister
	seriesID int64
}

var _ spec.Source = (*SpecSource)(nil)

// NewSpecSource wires a season lister to a series.
func NewSpecSource(lister SeasonLister, seriesID int64) *SpecSource {
	return &SpecSource{lister: lister, seriesID: seriesID}
}

// Text fetches the series' seasons and renders them as spec lines.
// Specials (season 0) and seasons without aired episodes are excluded;
// flat episode numbers accumulate across seasons in season order.
func (s *SpecSource) Text(ctx context.Context) (string, error) {
	seasons, err := s.lister.SeriesSeasons(ctx, s.seriesID)
	if err != nil {
		return "", err
	}

	aired := make([]Season, 0, len(seasons))
	for _, season := range seasons {
		if season.Number >= 1 && season.EpisodeCount > 0 {
			aired = append(aired, season)
		}
	}
	if len(aired) == 0 {
		return "", fmt.Errorf("series %d has no aired seasons", s.seriesID)
	}
	sort.Slice(aired, func(i, j int) bool { return aired[i].Number < aired[j].Number })

	var b strings.Builder
	b.WriteString("# season | episode range\n")
	next := 1
	for _, season := range aired {
		end := next + season.EpisodeCount - 1
		fmt.Fprintf(&b, "%d | %d-%d\n", season.Number, next, end)
		next = end + 1
	}
	return b.String(), nil
}

func (s *SpecSource) Origin() string {
	return fmt.Sprintf("series %d season listing", s.seriesID)
}
