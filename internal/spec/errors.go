package spec

import (
	"errors"
	"fmt"
)

// ErrEmpty indicates specification text contained no season ranges.
var ErrEmpty = errors.New("specification contains no season ranges")

// ParseError reports a malformed specification line. Line numbers are
// 1-based and count every line of the input, including comments.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("spec line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// OverlapError reports two season ranges claiming the same flat episode
// numbers. Overlap is always a hard error; the parser never resolves it by
// picking one of the ranges.
type OverlapError struct {
	First  Range
	Second Range
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("season %d (%d-%d) overlaps season %d (%d-%d)",
		e.First.Season, e.First.Start, e.First.End,
		e.Second.Season, e.Second.Start, e.Second.End)
}

// UnmappedError reports a flat episode number outside every season range.
type UnmappedError struct {
	Episode int
}

func (e *UnmappedError) Error() string {
	return fmt.Sprintf("episode %d is not covered by any season range", e.Episode)
}
