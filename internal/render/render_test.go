package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydocs-backend/internal/models"
)

func TestRenderDocumentProducesPDF(t *testing.T) {
	doc := &models.DocumentData{
		DocType:   "Invoice",
		DocNumber: "INV-001",
		Customer:  models.Customer{Name: "Jane", Email: "jane@example.com"},
		Items: []models.DocumentItem{
			{Description: "Design work", Quantity: 2, Price: 50},
		},
		Subtotal: 100,
		Tax:      10,
		Total:    110,
	}
	out, err := RenderDocument(doc, &models.CompanyInfo{Name: "Acme Co", Address: "1 Main St"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.NotEmpty(t, out)
}

func TestRenderDocumentEmptyInputs(t *testing.T) {
	// Zero values everywhere must still produce a valid buffer.
	out, err := RenderDocument(&models.DocumentData{}, &models.CompanyInfo{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderDocumentURLLogo(t *testing.T) {
	company := &models.CompanyInfo{Name: "Acme Co", Logo: "https://example.com/x.png"}
	out, err := RenderDocument(&models.DocumentData{DocType: "Invoice"}, company)
	require.NoError(t, err, "non-inline logo must not fail the render")
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderDocumentTruncatedLogo(t *testing.T) {
	company := &models.CompanyInfo{Name: "Acme Co", Logo: truncatedLogoDataURI(t)}
	out, err := RenderDocument(&models.DocumentData{DocType: "Invoice"}, company)
	require.NoError(t, err, "corrupt logo body must not fail the render")
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestAttachmentFilename(t *testing.T) {
	assert.Equal(t, "Invoice-INV-001.pdf",
		AttachmentFilename(&models.DocumentData{DocType: "Invoice", DocNumber: "INV-001"}))
	assert.Equal(t, "Quote-draft.pdf",
		AttachmentFilename(&models.DocumentData{DocType: "Quote"}))
	assert.Equal(t, "document-draft.pdf", AttachmentFilename(&models.DocumentData{}))
}
