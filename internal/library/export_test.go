package library

import (
	"bytes"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func TestExportYAML(t *testing.T) {
	l, _ := testLibrary(t)

	p := samplePaper("p1")
	p.FullText = "the full body, which exports must not leak"
	if _, err := l.Add(p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := l.SaveAnalysis("p1", types.AnalysisResult{PaperID: "p1", Summary: "the summary"}); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	var buf bytes.Buffer
	if err := l.ExportYAML(&buf); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	out := buf.String()

	var entries []ExportEntry
	if err := yaml.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.ID != "p1" || e.Title != "Paper p1" || e.DOI != "10.5555/p1" {
		t.Errorf("entry = %+v", e)
	}
	if e.SavedAnalysis == nil || e.SavedAnalysis.Summary != "the summary" {
		t.Errorf("SavedAnalysis = %+v", e.SavedAnalysis)
	}

	// Full text stays out of exports.
	if strings.Contains(out, "full body") {
		t.Error("export contains the paper full text")
	}
}

func TestExportYAMLEmptyLibrary(t *testing.T) {
	l, _ := testLibrary(t)
	var buf bytes.Buffer
	if err := l.ExportYAML(&buf); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	var entries []ExportEntry
	if err := yaml.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}
