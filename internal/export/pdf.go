// Package export renders a printable PDF of a listing draft.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/boxmate/backend/internal/imaging"
	"github.com/go-pdf/fpdf"
)

// maxExtraPhotos caps the thumbnails rendered below the primary photo.
const maxExtraPhotos = 3

// Draft is the in-memory listing state handed to Render. It mirrors the
// composer form, not a persisted row; the caller decides what to export.
type Draft struct {
	Name        string
	Lagerplats  string
	Lokal       string
	Hyllplats   string
	Category    string
	Subcategory string
	Condition   string
	Value       *float64
	Description string
	Photos      []string
}

// Renderer produces A4 PDFs of listing drafts. Photos are fetched over HTTP;
// a photo that cannot be fetched or decoded is skipped rather than failing
// the export.
type Renderer struct {
	client *http.Client
}

func NewRenderer() *Renderer {
	return &Renderer{client: &http.Client{Timeout: 15 * time.Second}}
}

// Render builds the PDF and returns its bytes. Rendering has no side effects
// beyond the HTTP photo fetches.
func (r *Renderer) Render(ctx context.Context, draft Draft) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.MultiCell(0, 10, tr(draft.Name), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	location := draft.Lagerplats
	if draft.Lokal != "" {
		location += "  ·  Lokal: " + draft.Lokal
	}
	if draft.Hyllplats != "" {
		location += "  ·  Hyllplats: " + draft.Hyllplats
	}
	pdf.CellFormat(0, 6, tr(location), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	r.renderPhotos(ctx, pdf, draft.Photos)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Detaljer"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	detail := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr(value), "", "L", false)
	}

	detail("Kategori", CategoryLabel(draft.Category))
	if draft.Subcategory != "" {
		detail("Underkategori", SubcategoryLabel(draft.Subcategory))
	}
	detail("Skick", ConditionLabel(draft.Condition))
	if draft.Value != nil {
		detail("Värde", fmt.Sprintf("%.0f kr", *draft.Value))
	}
	pdf.Ln(4)

	if draft.Description != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Beskrivning"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(draft.Description), "", "L", false)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %v", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// renderPhotos draws the primary photo large and up to three thumbnails in a
// row beneath it. Failed photos leave a gap, not an error.
func (r *Renderer) renderPhotos(ctx context.Context, pdf *fpdf.Fpdf, photos []string) {
	if len(photos) == 0 {
		return
	}

	if data := r.fetchPhoto(ctx, photos[0]); data != nil {
		r.placeImage(pdf, "photo-0", data, 120)
		pdf.Ln(4)
	}

	extras := photos[1:]
	if len(extras) > maxExtraPhotos {
		extras = extras[:maxExtraPhotos]
	}
	drawn := 0
	for i, url := range extras {
		data := r.fetchPhoto(ctx, url)
		if data == nil {
			continue
		}
		name := fmt.Sprintf("photo-%d", i+1)
		x := 15.0 + float64(drawn)*60.0
		y := pdf.GetY()
		info := pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(data))
		if info == nil {
			continue
		}
		pdf.ImageOptions(name, x, y, 0, 40, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
		drawn++
	}
	if drawn > 0 {
		pdf.Ln(45)
	}
}

// placeImage draws a JPEG at the current Y with the given width, keeping the
// aspect ratio, and advances the cursor past it.
func (r *Renderer) placeImage(pdf *fpdf.Fpdf, name string, data []byte, width float64) {
	info := pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(data))
	if info == nil {
		return
	}
	height := width * info.Height() / info.Width()
	y := pdf.GetY()
	pdf.ImageOptions(name, 15, y, width, height, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	pdf.SetY(y + height)
}

// fetchPhoto downloads and normalizes one photo, returning nil on any
// failure.
func (r *Renderer) fetchPhoto(ctx context.Context, url string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("export: skip photo %s: %v", url, err)
		return nil
	}
	resp, err := r.client.Do(req)
	if err != nil {
		log.Printf("export: skip photo %s: %v", url, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("export: skip photo %s: status %d", url, resp.StatusCode)
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, imaging.MaxBytes+1))
	if err != nil {
		log.Printf("export: skip photo %s: %v", url, err)
		return nil
	}
	processed, err := imaging.Process(raw)
	if err != nil {
		log.Printf("export: skip photo %s: %v", url, err)
		return nil
	}
	return processed.Data
}
