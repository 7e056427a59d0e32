package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"log"
	"strings"

	"image/png"

	_ "image/jpeg"

	"paydocs-backend/internal/models"
)

// Layout constants for the "Modern" template. Page is A4 portrait in
// points. The type label, document number and notes band use page-absolute
// offsets; everything else advances a running Y cursor. With very long
// company addresses or item tables the fixed-offset pieces can visually
// overlap the flowing bands - that is part of the template, not handled.
const (
	pageMargin = 40.0

	headerNameY     = 50.0 // company name baseline without a logo
	logoTop         = 30.0
	logoHeight      = 40.0
	headerAddrWidth = 150.0
	headerLineH     = 10.0

	typeLabelY = 70.0
	docNumberY = 88.0

	billAddrWidth = 200.0

	tableHeadH = 25.0
	descWidth  = 250.0
	rowLineH   = 12.0
	rowGap     = 8.0

	notesBottomOffset = 80.0
)

// drawModern lays the document out onto the canvas in a single
// top-to-bottom pass. All cursor state is local to the call.
func drawModern(c Canvas, doc *models.DocumentData, company *models.CompanyInfo) {
	pageW, pageH := c.PageSize()
	right := pageW - pageMargin

	// Header band: optional logo, then company name, wrapped address and
	// tax id, all right-aligned.
	y := headerNameY
	logoBottom := 0.0
	if img, ok := decodeLogo(company.Logo); ok {
		w := logoHeight * img.width / img.height
		if err := c.Image(img.data, img.imageType, right-w, logoTop, w, logoHeight); err != nil {
			log.Printf("[Render] failed to embed company logo: %v", err)
		} else {
			logoBottom = logoTop + logoHeight
			y = logoBottom + 14
		}
	}

	c.SetFont("B", 12)
	c.SetTextColor(33, 37, 41)
	textRight(c, right, y, company.Name)

	c.SetFont("", 9)
	c.SetTextColor(90, 90, 90)
	y += 14
	companyAddr := wrapLines(c, company.Address, headerAddrWidth)
	for i, line := range companyAddr {
		textRight(c, right, y+float64(i)*headerLineH, line)
	}
	y += headerLineH * float64(len(companyAddr))
	if company.ABN != "" {
		textRight(c, right, y, "ABN: "+company.ABN)
		y += headerLineH
	}
	if logoBottom > y {
		y = logoBottom
	}

	// Rule just below the header band.
	ruleY := y + 8
	c.SetDrawColor(210, 210, 210)
	c.SetLineWidth(0.5)
	c.Line(pageMargin, ruleY, right, ruleY)

	// Document type and number sit at fixed offsets from the page top,
	// independent of the header band height.
	c.SetFont("B", 28)
	c.SetTextColor(45, 55, 72)
	c.Text(pageMargin, typeLabelY, strings.ToUpper(doc.DocType))
	num := doc.DocNumber
	if num == "" {
		num = "DRAFT"
	}
	c.SetFont("", 11)
	c.SetTextColor(120, 120, 120)
	c.Text(pageMargin, docNumberY, num)

	// Billing band: customer block on the left, dates block on the right,
	// both anchored to the same starting Y.
	y = ruleY + 30
	c.SetFont("B", 9)
	c.SetTextColor(120, 120, 120)
	c.Text(pageMargin, y, "BILL TO")

	c.SetFont("B", 11)
	c.SetTextColor(33, 37, 41)
	c.Text(pageMargin, y+16, doc.Customer.Name)

	c.SetFont("", 9)
	c.SetTextColor(90, 90, 90)
	addrLines := wrapLines(c, doc.Customer.Address, billAddrWidth)
	for i, line := range addrLines {
		c.Text(pageMargin, y+30+float64(i)*headerLineH, line)
	}
	custEnd := y + 30 + headerLineH*float64(len(addrLines))
	c.Text(pageMargin, custEnd, doc.Customer.Email)

	datesX := pageW/2 + 60
	c.SetFont("B", 9)
	c.SetTextColor(120, 120, 120)
	c.Text(datesX, y+16, "Issue Date")
	c.Text(datesX, y+34, "Due Date")
	c.SetFont("", 9)
	c.SetTextColor(33, 37, 41)
	c.Text(datesX+70, y+16, doc.IssueDate)
	c.Text(datesX+70, y+34, doc.DueDate)
	datesEnd := y + 34

	y = custEnd
	if datesEnd > y {
		y = datesEnd
	}
	y += 30

	// Table header band.
	c.SetFillColor(45, 55, 72)
	c.FillRect(pageMargin, y, right-pageMargin, tableHeadH)
	c.SetFont("B", 9)
	c.SetTextColor(255, 255, 255)
	headBase := y + 16
	qtyCenter := pageMargin + descWidth + 40
	unitRight := right - 100
	c.Text(pageMargin+10, headBase, "DESCRIPTION")
	textCenter(c, qtyCenter, headBase, "QTY")
	textRight(c, unitRight, headBase, "UNIT PRICE")
	textRight(c, right-10, headBase, "TOTAL")
	y += 35

	// Table rows. Quantity, unit price and line total sit at the row's
	// starting Y; only the wrapped description drives the row height.
	for _, item := range doc.Items {
		c.SetFont("", 9)
		c.SetTextColor(50, 50, 50)
		descLines := wrapLines(c, item.Description, descWidth)
		for i, line := range descLines {
			c.Text(pageMargin+10, y+float64(i)*rowLineH, line)
		}
		textCenter(c, qtyCenter, y, number(item.Quantity))
		textRight(c, unitRight, y, money(item.Price))
		textRight(c, right-10, y, money(item.Quantity*item.Price))

		y += rowLineH*float64(len(descLines)) + rowGap
		c.SetDrawColor(230, 230, 230)
		c.SetLineWidth(0.5)
		c.Line(pageMargin, y-4, right, y-4)
	}

	// Totals block. The tax amount is recomputed from subtotal and rate;
	// the supplied total is printed as-is, never cross-checked.
	y += 20
	labelX := pageW/2 + 60
	valueRight := right - 10
	c.SetFont("", 10)
	c.SetTextColor(90, 90, 90)
	c.Text(labelX, y, "Subtotal")
	textRight(c, valueRight, y, money(doc.Subtotal))
	y += 18
	c.Text(labelX, y, fmt.Sprintf("Tax (%s%%)", number(doc.Tax)))
	textRight(c, valueRight, y, money(doc.Subtotal*doc.Tax/100))
	y += 18
	c.SetDrawColor(45, 55, 72)
	c.SetLineWidth(1)
	c.Line(labelX, y, right, y)
	y += 5
	c.SetFont("B", 13)
	c.SetTextColor(33, 37, 41)
	c.Text(labelX, y+12, "Total")
	textRight(c, valueRight, y+12, money(doc.Total))

	// Notes band, anchored a fixed distance above the page bottom. Drawn
	// only when notes are present; can overlap a long table.
	if doc.Notes != "" {
		y = pageH - notesBottomOffset
		c.SetDrawColor(210, 210, 210)
		c.SetLineWidth(0.5)
		c.Line(pageMargin, y, right, y)
		y += 20
		c.SetFont("B", 10)
		c.SetTextColor(33, 37, 41)
		c.Text(pageMargin, y, "Notes")
		c.SetFont("", 9)
		c.SetTextColor(90, 90, 90)
		for i, line := range wrapLines(c, doc.Notes, right-pageMargin) {
			c.Text(pageMargin, y+14+float64(i)*headerLineH, line)
		}
	}
}

func textRight(c Canvas, x, y float64, s string) {
	c.Text(x-c.TextWidth(s), y, s)
}

func textCenter(c Canvas, x, y float64, s string) {
	c.Text(x-c.TextWidth(s)/2, y, s)
}

// wrapLines wraps text to maxWidth; empty text contributes no lines and
// therefore no vertical advance.
func wrapLines(c Canvas, s string, maxWidth float64) []string {
	if s == "" {
		return nil
	}
	return c.WrapText(s, maxWidth)
}

type logoImage struct {
	data      []byte
	imageType string // gofpdf image type name; always PNG after re-encoding
	width     float64
	height    float64
}

// decodeLogo accepts only self-describing inline image data (a base64
// data URI). Plain URLs and malformed payloads are skipped with a log
// line; the header then lays out exactly as if no logo were supplied.
func decodeLogo(logo string) (*logoImage, bool) {
	if logo == "" {
		return nil, false
	}
	if !strings.HasPrefix(logo, "data:image/") {
		return nil, false
	}
	idx := strings.Index(logo, ";base64,")
	if idx < 0 {
		log.Printf("[Render] logo data URI is not base64 encoded, skipping")
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(logo[idx+len(";base64,"):])
	if err != nil {
		log.Printf("[Render] failed to decode logo data URI: %v", err)
		return nil, false
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Printf("[Render] unreadable logo image data: %v", err)
		return nil, false
	}
	switch format {
	case "png", "jpeg":
	default:
		log.Printf("[Render] unsupported logo format %q, skipping", format)
		return nil, false
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, false
	}

	// Decode fully and re-encode before handing anything to the engine:
	// a logo with a valid header but a corrupt body (truncated upload)
	// would otherwise trip gofpdf's sticky error and fail the whole
	// document, not just the logo.
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("[Render] failed to re-encode logo: %v", err)
		return nil, false
	}
	return &logoImage{
		data:      buf.Bytes(),
		imageType: "PNG",
		width:     float64(bounds.Dx()),
		height:    float64(bounds.Dy()),
	}, true
}
