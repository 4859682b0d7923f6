package dbu

import "time"

// Default layouts for the two renderings of today's date.
const (
	DefaultFileDateFormat = "2006_01_02"
	DefaultPathDateFormat = "2006-01-02"
)

// DateStamp holds today's date rendered two ways: FileToken is the form
// embedded in backup file names, PathToken names the dated directory and
// the object-key prefix. Both come from a single instant, so a run that
// straddles midnight cannot see two different days.
type DateStamp struct {
	FileToken string
	PathToken string
}

// NewDateStamp renders now with the given layouts, falling back to the
// defaults when a layout is empty.
func NewDateStamp(now time.Time, fileFormat, pathFormat string) DateStamp {
	if fileFormat == "" {
		fileFormat = DefaultFileDateFormat
	}
	if pathFormat == "" {
		pathFormat = DefaultPathDateFormat
	}
	return DateStamp{
		FileToken: now.Format(fileFormat),
		PathToken: now.Format(pathFormat),
	}
}
