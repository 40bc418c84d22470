// Package pdf lays an itinerary out across fixed-size document pages.
package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
)

// Page geometry and per-block line heights, in mm. The page-break check runs
// before every sub-block (day heading, activity heading, location, details)
// so a long activity list spans pages without ever splitting a wrapped line
// across a boundary.
const (
	pageMargin = 15.0
	startY     = 20.0

	titleLineHeight    = 8.0
	summaryLineHeight  = 5.0
	dayLineHeight      = 7.0
	activityLineHeight = 5.0
	detailLineHeight   = 4.0

	blockGap    = 2.0
	summaryGap  = 10.0
	activityGap = 6.0
)

// Filename is the suggested download name, embedding the trip title.
func Filename(it *models.Itinerary) string {
	return fmt.Sprintf("Itinerary for %s.pdf", it.TripTitle)
}

// Export writes the itinerary as a multi-page A4 document.
func Export(it *models.Itinerary, w io.Writer) error {
	doc, err := build(it)
	if err != nil {
		return err
	}
	return doc.Output(w)
}

func build(it *models.Itinerary) (*fpdf.Fpdf, error) {
	if it == nil {
		return nil, models.ErrNoItinerary
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	pageWidth, pageHeight := doc.GetPageSize()
	doc.AddPage()

	cur := newCursor(startY, pageMargin, pageHeight-pageMargin)
	cur.onBreak = func() { doc.AddPage() }
	usableWidth := pageWidth - pageMargin*2

	// writeBlock wraps text to the usable width, breaks the page when the
	// wrapped block would cross the bottom margin, then places the lines
	// and advances the cursor. A block taller than a whole page degrades
	// to per-line breaks so no single line straddles a boundary.
	writeBlock := func(text string, indent, lineHeight, gap float64) {
		if text == "" {
			return
		}
		lines := doc.SplitText(text, usableWidth-indent)
		blockHeight := float64(len(lines)) * lineHeight
		if blockHeight <= cur.bottom-cur.top {
			cur.ensure(blockHeight)
			for _, line := range lines {
				doc.Text(pageMargin+indent, cur.y, line)
				cur.advance(lineHeight)
			}
		} else {
			for _, line := range lines {
				cur.ensure(lineHeight)
				doc.Text(pageMargin+indent, cur.y, line)
				cur.advance(lineHeight)
			}
		}
		cur.advance(gap)
	}

	// Trip title and summary.
	doc.SetFont("Helvetica", "B", 22)
	doc.SetTextColor(0, 0, 0)
	writeBlock(it.TripTitle, 0, titleLineHeight, blockGap)

	doc.SetFont("Helvetica", "", 12)
	writeBlock(it.Summary, 0, summaryLineHeight, summaryGap)

	for _, day := range it.Days {
		doc.SetFont("Helvetica", "B", 16)
		doc.SetTextColor(37, 99, 235)
		writeBlock(fmt.Sprintf("Day %d: %s", day.Day, day.Title), 0, dayLineHeight, blockGap)

		for _, activity := range day.Activities {
			doc.SetFont("Helvetica", "B", 12)
			doc.SetTextColor(15, 23, 42)
			writeBlock(fmt.Sprintf("%s: %s", activity.Time, activity.Description), 2, activityLineHeight, blockGap)

			doc.SetFont("Helvetica", "", 10)
			doc.SetTextColor(100, 116, 139)
			if activity.Location != "" {
				writeBlock("Location: "+activity.Location, 4, detailLineHeight, blockGap)
			}
			writeBlock(activity.Details, 4, detailLineHeight, blockGap)

			cur.advance(activityGap)
		}
	}

	if doc.Error() != nil {
		return nil, doc.Error()
	}
	return doc, nil
}
