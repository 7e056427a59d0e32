// Package render produces PDF documents from billing data using the
// fixed single-page "Modern" template.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"paydocs-backend/internal/models"
)

// RenderDocument lays out one document onto a single A4 page and returns
// the PDF bytes. Missing optional fields default to empty/zero values and
// never fail the render; only underlying engine errors are returned.
// Each call allocates its own document and cursor state, so independent
// documents can be rendered concurrently.
func RenderDocument(doc *models.DocumentData, company *models.CompanyInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0) // single-page template, no pagination
	pdf.AddPage()

	drawModern(newPDFCanvas(pdf), doc, company)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// AttachmentFilename returns the download/attachment name for a rendered
// document: "{type}-{number}.pdf", with "draft" standing in for a missing
// number.
func AttachmentFilename(doc *models.DocumentData) string {
	num := doc.DocNumber
	if num == "" {
		num = "draft"
	}
	typ := doc.DocType
	if typ == "" {
		typ = "document"
	}
	return fmt.Sprintf("%s-%s.pdf", typ, num)
}
