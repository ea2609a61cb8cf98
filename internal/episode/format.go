package episode

import (
	"fmt"
	"regexp"
)

// FormatName builds the target filename for a resolved episode:
// "S01E02 - Title.ext". Title and extension are carried over verbatim;
// either may be empty.
func FormatName(season, localEpisode int, title, ext string) string {
	name := fmt.Sprintf("S%02dE%02d", season, localEpisode)
	if title != "" {
		name += " - " + title
	}
	if ext != "" {
		name += "." + ext
	}
	return name
}

var formattedPattern = regexp.MustCompile(`^S[0-9]{2,}E[0-9]{2,}(\s|\.|$)`)

// IsFormatted reports whether a filename is already in the target
// "SxxExx" form. Such files are left alone so repeat runs are no-ops.
func IsFormatted(filename string) bool {
	return formattedPattern.MatchString(filename)
}
