package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
)

// Canvas is the drawing surface the template layout depends on. The layout
// code never touches a concrete PDF engine; it issues text, line, rectangle
// and image commands against this interface and asks it to measure and wrap
// text. Coordinates are in points, origin top-left, text drawn at baseline.
type Canvas interface {
	PageSize() (width, height float64)
	SetFont(style string, size float64)
	SetTextColor(r, g, b int)
	Text(x, y float64, s string)
	TextWidth(s string) float64
	WrapText(s string, maxWidth float64) []string
	SetDrawColor(r, g, b int)
	SetLineWidth(width float64)
	Line(x1, y1, x2, y2 float64)
	SetFillColor(r, g, b int)
	FillRect(x, y, width, height float64)
	Image(data []byte, imageType string, x, y, width, height float64) error
}

// pdfCanvas adapts a gofpdf document to the Canvas interface. One instance
// per render call; gofpdf documents are not safe for concurrent use.
type pdfCanvas struct {
	pdf      *gofpdf.Fpdf
	imageSeq int
}

func newPDFCanvas(pdf *gofpdf.Fpdf) *pdfCanvas {
	return &pdfCanvas{pdf: pdf}
}

func (c *pdfCanvas) PageSize() (float64, float64) {
	return c.pdf.GetPageSize()
}

func (c *pdfCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont("Helvetica", style, size)
}

func (c *pdfCanvas) SetTextColor(r, g, b int) {
	c.pdf.SetTextColor(r, g, b)
}

func (c *pdfCanvas) Text(x, y float64, s string) {
	c.pdf.Text(x, y, s)
}

func (c *pdfCanvas) TextWidth(s string) float64 {
	return c.pdf.GetStringWidth(s)
}

func (c *pdfCanvas) WrapText(s string, maxWidth float64) []string {
	return c.pdf.SplitText(s, maxWidth)
}

func (c *pdfCanvas) SetDrawColor(r, g, b int) {
	c.pdf.SetDrawColor(r, g, b)
}

func (c *pdfCanvas) SetLineWidth(width float64) {
	c.pdf.SetLineWidth(width)
}

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *pdfCanvas) SetFillColor(r, g, b int) {
	c.pdf.SetFillColor(r, g, b)
}

func (c *pdfCanvas) FillRect(x, y, width, height float64) {
	c.pdf.Rect(x, y, width, height, "F")
}

func (c *pdfCanvas) Image(data []byte, imageType string, x, y, width, height float64) error {
	c.imageSeq++
	name := fmt.Sprintf("img-%d", c.imageSeq)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if err := c.pdf.Error(); err != nil {
		return err
	}
	c.pdf.ImageOptions(name, x, y, width, height, false, opts, 0, "")
	return c.pdf.Error()
}
