package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEmailBody(t *testing.T) {
	body := renderEmailBody("Hi Jane,\n\nPlease find Invoice INV-001 attached.")
	assert.Equal(t, "<p>Hi Jane,</p><p></p><p>Please find Invoice INV-001 attached.</p>", body)
}

func TestRenderEmailBodyEscapesHTML(t *testing.T) {
	body := renderEmailBody("<script>alert(1)</script>")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitLines("a\nb\nc"))
	assert.Equal(t, []string{""}, splitLines(""))
	assert.Equal(t, []string{"a", ""}, splitLines("a\n"))
}
