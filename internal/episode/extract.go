// Package episode extracts flat episode numbers from filenames and builds
// the media-server friendly replacement names.
package episode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Extracted is the result of pulling an episode marker out of a filename.
type Extracted struct {
	// Number is the flat episode number encoded in the name.
	Number int
	// Title is what remains of the base name after the marker and its
	// separator, trimmed. May be empty.
	Title string
	// Ext is the file extension without the leading dot. May be empty.
	Ext string
}

// UnrecognizedError reports a filename with no usable episode marker.
type UnrecognizedError struct {
	Name string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("no episode marker in %q", e.Name)
}

// markerPattern matches the literal word "episode" followed by whitespace
// and an optionally zero-padded integer. Digits elsewhere in a title never
// match because the marker word must immediately precede them.
var markerPattern = regexp.MustCompile(`(?i)\bepisode\s+0*([0-9]+)`)

// Extract locates the episode marker in a filename. The first marker
// occurrence wins when several numeric tokens are present.
func Extract(filename string) (Extracted, error) {
	base, ext := splitExt(filename)

	loc := markerPattern.FindStringSubmatchIndex(base)
	if loc == nil {
		return Extracted{}, &UnrecognizedError{Name: filename}
	}

	number, err := strconv.Atoi(base[loc[2]:loc[3]])
	if err != nil {
		// Only reachable on numbers too large for int.
		return Extracted{}, &UnrecognizedError{Name: filename}
	}

	title := strings.TrimLeft(base[loc[1]:], " \t.-_")
	return Extracted{
		Number: number,
		Title:  strings.TrimSpace(title),
		Ext:    ext,
	}, nil
}

// splitExt splits a filename into base name and extension (the text after
// the final dot). Names without a dot have an empty extension.
func splitExt(filename string) (string, string) {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return filename, ""
	}
	return filename[:i], filename[i+1:]
}
