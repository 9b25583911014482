// ABOUTME: Tests for the title-delimited section loader
// ABOUTME: Covers section boundaries, leading content, and trailing flush
package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeElementStream(t *testing.T, elements []Element) string {
	t.Helper()
	data, err := json.Marshal(elements)
	if err != nil {
		t.Fatalf("encoding elements: %v", err)
	}
	path := filepath.Join(t.TempDir(), "doc.docx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing element stream: %v", err)
	}
	return path
}

func TestLoadSections(t *testing.T) {
	tests := []struct {
		name     string
		elements []Element
		want     []string
	}{
		{
			name: "titles delimit sections",
			elements: []Element{
				{Category: CategoryTitle, Text: "First "},
				{Category: "NarrativeText", Text: "alpha "},
				{Category: "NarrativeText", Text: "beta"},
				{Category: CategoryTitle, Text: "Second "},
				{Category: "NarrativeText", Text: "gamma"},
			},
			want: []string{"First alpha beta", "Second gamma"},
		},
		{
			name: "content before first title kept",
			elements: []Element{
				{Category: "NarrativeText", Text: "preamble"},
				{Category: CategoryTitle, Text: "Body"},
			},
			want: []string{"preamble", "Body"},
		},
		{
			name: "title case-insensitive",
			elements: []Element{
				{Category: "title", Text: "One"},
				{Category: "NarrativeText", Text: " text"},
			},
			want: []string{"One text"},
		},
		{
			name:     "empty stream",
			elements: []Element{},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(512, 64, 5)
			path := writeElementStream(t, tt.elements)

			sections, err := l.loadSections(path)
			if err != nil {
				t.Fatalf("loadSections failed: %v", err)
			}
			if len(sections) != len(tt.want) {
				t.Fatalf("got %d sections, want %d: %v", len(sections), len(tt.want), sections)
			}
			for i := range tt.want {
				if sections[i] != tt.want[i] {
					t.Errorf("section %d = %q, want %q", i, sections[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadSections_InvalidStream(t *testing.T) {
	l := New(512, 64, 5)
	path := filepath.Join(t.TempDir(), "bad.docx")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := l.loadSections(path); err == nil {
		t.Fatal("expected decode error for invalid element stream")
	}
}
