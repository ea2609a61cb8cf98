package tvdb_test

import (
	"context"
	"errors"
	"testing"

	"seasonfix/internal/spec"
	"seasonfix/internal/tvdb"
)

type staticLister struct {
	seasons []tvdb.Season
	err     error
}

func (s staticLister) SeriesSeasons(context.Context, int64) ([]tvdb.Season, error) {
	return s.seasons, s.err
}

func TestSpecSourceText(t *testing.T) {
	lister := staticLister{seasons: []tvdb.Season{
		{Number: 2, EpisodeCount: 10},
		{Number: 0, EpisodeCount: 5}, // specials are skipped
		{Number: 1, EpisodeCount: 12},
		{Number: 3, EpisodeCount: 0}, // nothing aired yet
	}}
	source := tvdb.NewSpecSource(lister, 42)

	text, err := source.Text(context.Background())
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	want := "# season | episode range\n1 | 1-12\n2 | 13-22\n"
	if text != want {
		t.Fatalf("got %q, want %q", text, want)
	}
}

func TestSpecSourceFeedsParser(t *testing.T) {
	lister := staticLister{seasons: []tvdb.Season{
		{Number: 1, EpisodeCount: 4},
		{Number: 2, EpisodeCount: 3},
	}}
	table, err := spec.Load(context.Background(), tvdb.NewSpecSource(lister, 7))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	pos, err := table.Resolve(5)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if pos.Season != 2 || pos.Episode != 1 {
		t.Fatalf("Resolve(5): got %+v", pos)
	}
}

func TestSpecSourceNoAiredSeasons(t *testing.T) {
	source := tvdb.NewSpecSource(staticLister{seasons: []tvdb.Season{{Number: 0, EpisodeCount: 3}}}, 42)
	if _, err := source.Text(context.Background()); err == nil {
		t.Fatal("expected error when no seasons have aired")
	}
}

func TestSpecSourcePropagatesListerError(t *testing.T) {
	wantErr := errors.New("service down")
	source := tvdb.NewSpecSource(staticLister{err: wantErr}, 42)
	if _, err := source.Text(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected lister error, got %v", err)
	}
}
