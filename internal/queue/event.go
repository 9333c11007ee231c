// Package queue defines message payloads exchanged over the message broker.
package queue

// GigCommittedEvent is published when a gig draft is successfully committed
// to the events sheet. It carries enough information for downstream
// consumers to log or notify without reading the workbook.
type GigCommittedEvent struct {
	EventID         string   `json:"event_id"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Ensemble        string   `json:"ensemble"`
	LocationName    string   `json:"location_name"`
	City            string   `json:"city"`
	SetlistFilename string   `json:"setlist_filename"`
	SongIDs         []string `json:"song_ids"`
	CommittedAt     string   `json:"committed_at"`
}

// RepertoireDriftEvent is published when a stored song id on an event no
// longer resolves against the repertoire sheet. The restored selection
// silently omits such ids, so this event is the only operator-visible trace
// of drift between the two sheets.
type RepertoireDriftEvent struct {
	EventID    string   `json:"event_id"`
	MissingIDs []string `json:"missing_ids"`
	DetectedAt string   `json:"detected_at"`
}
