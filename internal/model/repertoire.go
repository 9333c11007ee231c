package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RepertoireItem represents one piece in the repertoire sheet, one field
// per column. Ids are assigned by the repository and never reused; they are
// kept as strings because historical sheets contain float-formatted and
// locale-formatted id cells, and the occasional opaque non-numeric id must
// survive a load/store round trip unchanged. Duration is free text,
// nominally "MM:SS". Label is derived for display and never persisted.
type RepertoireItem struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	ComposerLastName  string `json:"composer_last_name"`
	ComposerFirstName string `json:"composer_first_name"`
	ArrangerLastName  string `json:"arranger_last_name"`
	ArrangerFirstName string `json:"arranger_first_name"`
	Duration          string `json:"duration"`
	Publisher         string `json:"publisher"`
	WorkType          string `json:"work_type"`
	ISWC              string `json:"iswc"`
	Label             string `json:"label,omitempty"`
}

// DefaultWorkType is used when a piece is registered without a category.
const DefaultWorkType = "popular-music"

// DeriveLabel computes the selection-widget label for a piece:
// "{Title} ({ComposerLastName})", plus " / Arr: {ArrangerLastName}" when an
// arranger is present.
func (r RepertoireItem) DeriveLabel() string {
	label := fmt.Sprintf("%s (%s)", r.Title, r.ComposerLastName)
	if strings.TrimSpace(r.ArrangerLastName) != "" {
		label += " / Arr: " + r.ArrangerLastName
	}
	return label
}

// NormalizeID collapses the id spellings found in historical sheets into a
// canonical integer string: "7", "7.0" and "7,0" all become "7". Values
// that do not parse as a non-negative integral number pass through
// unchanged and act as opaque identifiers.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || f < 0 || f != math.Trunc(f) {
		return s
	}
	return strconv.FormatInt(int64(f), 10)
}

// NumericID returns the integer value of a normalized id and whether the id
// is numeric at all. Opaque ids report false and are skipped during max-id
// scans.
func NumericID(id string) (int64, bool) {
	n, err := strconv.ParseInt(NormalizeID(id), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
