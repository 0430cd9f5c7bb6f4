package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		path     string
		expected segmentModel.DocType
	}{
		{"slides.pdf", segmentModel.PDF},
		{"NOTES.PDF", segmentModel.PDF},
		{"handout.docx", segmentModel.DOCX},
		{"syllabus.rtf", segmentModel.DOCX},
		{"readme.txt", segmentModel.TXT},
		{"diagram.png", segmentModel.ERR},
		{"noextension", segmentModel.ERR},
	}

	for _, tt := range tests {
		if got := DetectType(tt.path); got != tt.expected {
			t.Errorf("DetectType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestText_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("mitosis divides the nucleus"), 0644); err != nil {
		t.Fatal(err)
	}

	text, err := Text(path, segmentModel.TXT)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if text != "mitosis divides the nucleus" {
		t.Errorf("got %q", text)
	}
}

func TestText_UnsupportedType(t *testing.T) {
	if _, err := Text("x.png", segmentModel.ERR); err == nil {
		t.Error("expected error for unsupported content type")
	}
}

func TestText_CorruptPDFDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 not actually a pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	text, err := Text(path, segmentModel.PDF)
	if err == nil && text != "" {
		t.Errorf("corrupt pdf should yield empty text or an error, got %q", text)
	}
}
