package model

import "strings"

// Ensemble line-ups a gig can be registered under.
const (
	EnsembleTutti    = "Tutti"
	EnsembleBQ       = "BQ"
	EnsembleQuartett = "Quartett"
	EnsembleDuo      = "Duo"
)

// Ensembles lists the valid line-ups in display order.
var Ensembles = []string{EnsembleTutti, EnsembleBQ, EnsembleQuartett, EnsembleDuo}

// ValidEnsemble reports whether s is one of the known line-ups.
func ValidEnsemble(s string) bool {
	for _, e := range Ensembles {
		if e == s {
			return true
		}
	}
	return false
}

// Textual patterns for the Date and Time cells.
const (
	DateLayout = "02.01.2006" // day.month.year
	TimeLayout = "15:04"
)

// FileLinkNone is the FileLink sentinel for "no document uploaded yet".
// An empty cell would be indistinguishable from a missing column in a
// sparse sheet row.
const FileLinkNone = "-"

// Event is one performed gig, one field per Events column. The venue fields
// are a denormalized copy of a Location taken at commit time, not a live
// reference: later edits to the Location do not propagate into past events.
// Date and Time use DateLayout and TimeLayout, SongIDs keeps the performance
// order, and FileLink holds the setlist document link or FileLinkNone.
type Event struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Ensemble        string   `json:"ensemble"`
	LocationName    string   `json:"location_name"`
	Street          string   `json:"street"`
	PostalCode      string   `json:"postal_code"`
	City            string   `json:"city"`
	SetlistFilename string   `json:"setlist_filename"`
	SongIDs         []string `json:"song_ids"`
	FileLink        string   `json:"file_link"`
}

// SetlistFilename derives the archive filename for a gig's setlist document.
// The fields are concatenated without separators; existing archives depend
// on this exact shape.
func SetlistFilename(ensemble, date, city string) string {
	return ensemble + date + city + "Setlist.xlsx"
}

// JoinSongIDs renders the ordered id list as the comma-joined SongIds cell.
func JoinSongIDs(ids []string) string {
	return strings.Join(ids, ",")
}

// SplitSongIDs parses a SongIds cell back into the ordered id list. Empty
// cells yield an empty list, and whitespace around ids is dropped.
func SplitSongIDs(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
