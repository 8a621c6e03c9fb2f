package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-cloud-sync/models"
)

func TestRecordLine(t *testing.T) {
	tests := []struct {
		name string
		rec  models.Record
		want string
	}{
		{name: "id first, fields sorted", rec: models.Record{"id": 7, "b": 2, "a": "x"}, want: "#7  a=x  b=2"},
		{name: "no id", rec: models.Record{"a": 1}, want: "#-  a=1"},
		{name: "only id", rec: models.Record{"id": "k"}, want: "#k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recordLine(tt.rec, "id"))
		})
	}
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "short", fitText("short", 10))
	assert.Equal(t, "abcdefg...", fitText("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", fitText("abcdef", 2))
	assert.Equal(t, "any", fitText("any", 0))
}

func TestRenderPage(t *testing.T) {
	out := renderPage("TITLE", "line1\nline2", "keys")

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "  line1\n  line2\n")
	assert.Contains(t, out, "keys")

	assert.Contains(t, renderPage("T", "  ", ""), "  -\n")
}
