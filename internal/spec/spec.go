package spec

import (
	"bufio"
	"sort"
	"strconv"
	"strings"
)

// Range maps one season to an inclusive run of flat episode numbers.
type Range struct {
	Season int
	Start  int
	End    int
}

// Table is an ordered, validated set of season ranges. It is immutable
// after Parse and safe to share across lookups.
type Table struct {
	ranges []Range
}

// Position identifies an episode after resolution: the season it belongs
// to and its 1-based position within that season.
type Position struct {
	Season  int
	Episode int
}

// Parse turns specification text into a Table. A malformed line aborts the
// whole parse with a ParseError; ranges that overlap abort with an
// OverlapError. The returned table is sorted by range start regardless of
// source ordering.
func Parse(text string) (*Table, error) {
	var ranges []Range

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return nil, ErrEmpty
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	for i := 1; i < len(ranges); i++ {
		if ranges[i].Start <= ranges[i-1].End {
			return nil, &OverlapError{First: ranges[i-1], Second: ranges[i]}
		}
	}

	return &Table{ranges: ranges}, nil
}

func parseLine(line string, lineNo int) (Range, error) {
	seasonPart, rangePart, ok := strings.Cut(line, "|")
	if !ok {
		return Range{}, &ParseError{Line: lineNo, Text: line, Reason: "expected 'season | start-end'"}
	}

	season, err := strconv.Atoi(strings.TrimSpace(seasonPart))
	if err != nil {
		return Range{}, &ParseError{Line: lineNo, Text: line, Reason: "season is not a number"}
	}
	if season < 1 {
		return Range{}, &ParseError{Line: lineNo, Text: line, Reason: "season must be positive"}
	}

	start, end, err := parseEpisodeRange(strings.TrimSpace(rangePart))
	if err != nil {
		return Range{}, &ParseError{Line: lineNo, Text: line, Reason: err.Error()}
	}
	return Range{Season: season, Start: start, End: end}, nil
}

func parseEpisodeRange(text string) (int, int, error) {
	if text == "" {
		return 0, 0, errEmptyRange
	}
	first, second, isRange := strings.Cut(text, "-")

	start, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, errBadNumber
	}
	end := start
	if isRange {
		if end, err = strconv.Atoi(strings.TrimSpace(second)); err != nil {
			return 0, 0, errBadNumber
		}
	}
	switch {
	case start < 1:
		return 0, 0, errBadStart
	case end < start:
		return 0, 0, errBackwards
	}
	return start, end, nil
}

var (
	errEmptyRange = rangeError("empty episode range")
	errBadNumber  = rangeError("episode range is not numeric")
	errBadStart   = rangeError("episode numbers start at 1")
	errBackwards  = rangeError("range end precedes start")
)

type rangeError string

func (e rangeError) Error() string { return string(e) }

// Resolve maps a flat episode number to its season and local episode
// number. Numbers outside every range return an UnmappedError.
func (t *Table) Resolve(flat int) (Position, error) {
	i := sort.Search(len(t.ranges), func(i int) bool { return t.ranges[i].End >= flat })
	if i < len(t.ranges) && t.ranges[i].Start <= flat {
		r := t.ranges[i]
		return Position{Season: r.Season, Episode: flat - r.Start + 1}, nil
	}
	return Position{}, &UnmappedError{Episode: flat}
}

// Ranges returns a copy of the table's ranges in start order.
func (t *Table) Ranges() []Range {
	out := make([]Range, len(t.ranges))
	copy(out, t.ranges)
	return out
}

// Len reports the number of season ranges in the table.
func (t *Table) Len() int { return len(t.ranges) }
