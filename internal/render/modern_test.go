package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydocs-backend/internal/models"
)

// fakeCanvas records draw commands and measures text deterministically at
// 5pt per character, so wrapping behavior is predictable in tests.
type fakeCanvas struct {
	texts  []fakeText
	lines  []fakeLine
	rects  []fakeRect
	images []fakeImage
}

type fakeText struct {
	x, y float64
	s    string
}

type fakeLine struct {
	x1, y1, x2, y2 float64
}

type fakeRect struct {
	x, y, w, h float64
}

type fakeImage struct {
	imageType  string
	x, y, w, h float64
}

func (c *fakeCanvas) PageSize() (float64, float64)  { return 595, 842 }
func (c *fakeCanvas) SetFont(string, float64)       {}
func (c *fakeCanvas) SetTextColor(int, int, int)    {}
func (c *fakeCanvas) SetDrawColor(int, int, int)    {}
func (c *fakeCanvas) SetLineWidth(float64)          {}
func (c *fakeCanvas) SetFillColor(int, int, int)    {}
func (c *fakeCanvas) TextWidth(s string) float64    { return float64(len(s)) * 5 }

func (c *fakeCanvas) Text(x, y float64, s string) {
	c.texts = append(c.texts, fakeText{x, y, s})
}

func (c *fakeCanvas) Line(x1, y1, x2, y2 float64) {
	c.lines = append(c.lines, fakeLine{x1, y1, x2, y2})
}

func (c *fakeCanvas) FillRect(x, y, w, h float64) {
	c.rects = append(c.rects, fakeRect{x, y, w, h})
}

func (c *fakeCanvas) Image(data []byte, imageType string, x, y, w, h float64) error {
	c.images = append(c.images, fakeImage{imageType, x, y, w, h})
	return nil
}

func (c *fakeCanvas) WrapText(s string, maxWidth float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{s}
	}
	var out []string
	cur := words[0]
	for _, w := range words[1:] {
		if c.TextWidth(cur+" "+w) <= maxWidth {
			cur += " " + w
			continue
		}
		out = append(out, cur)
		cur = w
	}
	return append(out, cur)
}

func (c *fakeCanvas) findText(s string) (fakeText, bool) {
	for _, t := range c.texts {
		if t.s == s {
			return t, true
		}
	}
	return fakeText{}, false
}

func (c *fakeCanvas) hasText(s string) bool {
	_, ok := c.findText(s)
	return ok
}

func baseCompany() *models.CompanyInfo {
	return &models.CompanyInfo{
		Name:    "Acme Co",
		Address: "1 Main St",
		Email:   "a@acme.test",
	}
}

func TestModernEmptyItems(t *testing.T) {
	c := &fakeCanvas{}
	drawModern(c, &models.DocumentData{DocType: "Invoice"}, baseCompany())

	// Only the header rule and the totals rule; no row separators.
	assert.Len(t, c.lines, 2)
	assert.Len(t, c.rects, 1, "table header band still drawn")
	assert.True(t, c.hasText("DESCRIPTION"))
	assert.True(t, c.hasText("Subtotal"))
}

func TestModernRowAdvance(t *testing.T) {
	longDesc := strings.TrimSpace(strings.Repeat("gizmo ", 30))
	doc := &models.DocumentData{
		DocType: "Invoice",
		Items: []models.DocumentItem{
			{Description: longDesc, Quantity: 2, Price: 10},
			{Description: "short", Quantity: 3, Price: 20},
		},
	}
	c := &fakeCanvas{}
	wrapped := len(c.WrapText(longDesc, descWidth))
	require.Greater(t, wrapped, 1, "description must wrap for this test")
	drawModern(c, doc, baseCompany())

	first, ok := c.findText("2")
	require.True(t, ok)
	second, ok := c.findText("3")
	require.True(t, ok)

	// Row advance is 12*wrappedLines + 8, driven by the description only.
	assert.Equal(t, 12.0*float64(wrapped)+8, second.y-first.y)
	assert.Greater(t, second.y, first.y, "rows never overlap")
	// One separator line per row on top of the two band rules.
	assert.Len(t, c.lines, 4)
}

func TestModernTaxLineIgnoresSuppliedTotal(t *testing.T) {
	doc := &models.DocumentData{
		DocType:  "Invoice",
		Subtotal: 100,
		Tax:      10,
		Total:    9999, // inconsistent on purpose; printed as-is
	}
	c := &fakeCanvas{}
	drawModern(c, doc, baseCompany())

	assert.True(t, c.hasText("Tax (10%)"))
	assert.True(t, c.hasText("$10.00"), "tax amount recomputed from subtotal")
	assert.True(t, c.hasText("$9999.00"), "supplied total printed unvalidated")
}

func TestModernNotesBand(t *testing.T) {
	c := &fakeCanvas{}
	drawModern(c, &models.DocumentData{DocType: "Quote"}, baseCompany())
	assert.False(t, c.hasText("Notes"), "no notes band without notes")

	c = &fakeCanvas{}
	drawModern(c, &models.DocumentData{DocType: "Quote", Notes: "net 30"}, baseCompany())
	label, ok := c.findText("Notes")
	require.True(t, ok)
	// Anchored 80pt above the page bottom, label 20 below the rule.
	assert.Equal(t, 842.0-notesBottomOffset+20, label.y)
	assert.True(t, c.hasText("net 30"))
}

func TestModernURLLogoSkipped(t *testing.T) {
	withURL := &fakeCanvas{}
	company := baseCompany()
	company.Logo = "https://example.com/x.png"
	drawModern(withURL, &models.DocumentData{DocType: "Invoice"}, company)

	without := &fakeCanvas{}
	drawModern(without, &models.DocumentData{DocType: "Invoice"}, baseCompany())

	assert.Empty(t, withURL.images)
	assert.Equal(t, without.texts, withURL.texts, "header layout identical to no logo")

	name, ok := withURL.findText("Acme Co")
	require.True(t, ok)
	assert.Equal(t, headerNameY, name.y)
}

func TestModernInlineLogoShiftsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 1))))
	company := baseCompany()
	company.Logo = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	c := &fakeCanvas{}
	drawModern(c, &models.DocumentData{DocType: "Invoice"}, company)

	require.Len(t, c.images, 1)
	assert.Equal(t, "PNG", c.images[0].imageType)
	assert.Equal(t, logoHeight, c.images[0].h)
	assert.Equal(t, logoHeight*2, c.images[0].w, "width follows the image aspect ratio")

	name, ok := c.findText("Acme Co")
	require.True(t, ok)
	assert.Equal(t, logoTop+logoHeight+14, name.y, "name baseline shifted below the logo")
}

// truncatedLogoDataURI builds a PNG whose header parses but whose body is
// cut short, as a half-uploaded logo would be.
func truncatedLogoDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 40))))
	truncated := buf.Bytes()[:buf.Len()/2]

	cfg, _, err := image.DecodeConfig(bytes.NewReader(truncated))
	require.NoError(t, err, "header must still parse")
	require.Equal(t, 40, cfg.Width)
	_, _, err = image.Decode(bytes.NewReader(truncated))
	require.Error(t, err, "body must be corrupt")

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(truncated)
}

func TestModernTruncatedLogoSkipped(t *testing.T) {
	company := baseCompany()
	company.Logo = truncatedLogoDataURI(t)

	c := &fakeCanvas{}
	drawModern(c, &models.DocumentData{DocType: "Invoice"}, company)

	assert.Empty(t, c.images, "corrupt logo body never reaches the canvas")
	name, ok := c.findText("Acme Co")
	require.True(t, ok)
	assert.Equal(t, headerNameY, name.y)
}

func TestModernMalformedLogoSkipped(t *testing.T) {
	company := baseCompany()
	company.Logo = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a png"))

	c := &fakeCanvas{}
	drawModern(c, &models.DocumentData{DocType: "Invoice"}, company)

	assert.Empty(t, c.images)
	name, ok := c.findText("Acme Co")
	require.True(t, ok)
	assert.Equal(t, headerNameY, name.y)
}

func TestModernEndToEnd(t *testing.T) {
	doc := &models.DocumentData{
		DocType:   "Invoice",
		DocNumber: "INV-001",
		Customer:  models.Customer{Name: "Jane", Email: "jane@example.com", Address: "2 Side St"},
		Items: []models.DocumentItem{
			{Description: "Design work", Quantity: 2, Price: 50},
		},
		Subtotal: 100,
		Tax:      10,
		Total:    110,
	}
	c := &fakeCanvas{}
	drawModern(c, doc, baseCompany())

	for _, want := range []string{
		"INVOICE", "INV-001", "BILL TO", "Jane", "Design work",
		"$50.00", "$100.00", "Tax (10%)", "$10.00", "Total", "$110.00",
	} {
		assert.True(t, c.hasText(want), "missing %q", want)
	}
}

func TestModernDraftNumber(t *testing.T) {
	c := &fakeCanvas{}
	drawModern(c, &models.DocumentData{DocType: "Quote"}, baseCompany())
	assert.True(t, c.hasText("QUOTE"))
	assert.True(t, c.hasText("DRAFT"))
}
