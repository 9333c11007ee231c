// Package setlist renders the formatted setlist workbook for a committed
// gig. The template carries a fixed header region (logo, ensemble details,
// merged title cells) that must never be overwritten; song rows go into a
// fixed region below it. Upload of the artifact to cloud storage is out of
// scope; the generator returns the path of the written file.
package setlist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/moritzgrimm/gigbook/internal/model"
)

// Region contract of the template. Rows 1..protectedRows contain the merged
// and styled header cells and are never written. Songs start at
// firstSongRow, one row per piece; rows up to clearThroughRow are blanked
// beyond the new list so a shorter setlist never shows a previous gig's
// leftover rows.
const (
	protectedRows   = 20
	firstSongRow    = protectedRows + 1
	clearThroughRow = 70
)

// Song columns A..G in the template.
var songColumns = 7 // Title, Duration, ComposerLast, ComposerFirst, Publisher, ArrangerLast, ArrangerFirst

// Generator writes setlist workbooks. When TemplatePath is empty a plain
// workbook is produced with the same region layout, which keeps the
// filename archive consistent even before a styled template is installed.
type Generator struct {
	TemplatePath string
	OutputDir    string
}

// Generate renders the document for ev and returns the written file's path.
// The filename comes from ev.SetlistFilename, which callers derive with
// model.SetlistFilename; existing archives depend on that exact shape.
func (g *Generator) Generate(ctx context.Context, ev model.Event, songs []model.RepertoireItem) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(songs) > clearThroughRow-firstSongRow+1 {
		return "", fmt.Errorf("setlist: %d songs exceed the template's song region", len(songs))
	}

	f, sheetName, err := g.open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	for i, s := range songs {
		row := firstSongRow + i
		values := []interface{}{
			s.Title, s.Duration, s.ComposerLastName, s.ComposerFirstName,
			s.Publisher, s.ArrangerLastName, s.ArrangerFirstName,
		}
		if err := writeRow(f, sheetName, row, values); err != nil {
			return "", err
		}
	}
	// Blank the remainder of the song region.
	empty := make([]interface{}, songColumns)
	for i := range empty {
		empty[i] = ""
	}
	for row := firstSongRow + len(songs); row <= clearThroughRow; row++ {
		if err := writeRow(f, sheetName, row, empty); err != nil {
			return "", err
		}
	}

	name := ev.SetlistFilename
	if name == "" {
		name = model.SetlistFilename(ev.Ensemble, ev.Date, ev.City)
	}
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return "", err
	}
	out := filepath.Join(g.OutputDir, name)
	if err := f.SaveAs(out); err != nil {
		return "", err
	}
	return out, nil
}

func (g *Generator) open() (*excelize.File, string, error) {
	if g.TemplatePath == "" {
		f := excelize.NewFile()
		return f, f.GetSheetName(0), nil
	}
	f, err := excelize.OpenFile(g.TemplatePath)
	if err != nil {
		return nil, "", fmt.Errorf("setlist: open template: %w", err)
	}
	return f, f.GetSheetName(0), nil
}

func writeRow(f *excelize.File, sheetName string, row int, values []interface{}) error {
	if row <= protectedRows {
		// The header cells are merged; writing into them corrupts the
		// template irreparably.
		return fmt.Errorf("setlist: refusing to write into protected row %d", row)
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}
