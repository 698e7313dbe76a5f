package analysis

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pdiddy/research-assistant/internal/enrich"
	"github.com/pdiddy/research-assistant/internal/pdfcache"
	"github.com/pdiddy/research-assistant/internal/pdftest"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// fakeAnalyzer returns canned values per field and records what it saw.
type fakeAnalyzer struct {
	mu       sync.Mutex
	values   map[types.AnalysisField]string
	errs     map[types.AnalysisField]error
	contents []enrich.Content
}

func (f *fakeAnalyzer) AnalyzeField(_ context.Context, field types.AnalysisField, _ types.Paper, c enrich.Content) (string, error) {
	f.mu.Lock()
	f.contents = append(f.contents, c)
	f.mu.Unlock()
	if err := f.errs[field]; err != nil {
		return "", err
	}
	return f.values[field], nil
}

func testEnricher(t *testing.T) (*enrich.Enricher, *pdfcache.Store) {
	t.Helper()
	store, err := pdfcache.Open(filepath.Join(t.TempDir(), "pdfs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return enrich.New(store), store
}

func TestRunAllFields(t *testing.T) {
	enricher, _ := testEnricher(t)
	analyzer := &fakeAnalyzer{values: map[types.AnalysisField]string{
		types.FieldSummary:     "the summary",
		types.FieldMethodology: "the methodology",
		types.FieldOutcome:     "the outcome",
	}}
	board := NewBoard()

	paper := types.Paper{ID: "p1", Title: "T", Abstract: "abs"}
	r := Run(context.Background(), analyzer, enricher, board, paper, nil)

	if r.Summary != "the summary" || r.Methodology != "the methodology" || r.Outcome != "the outcome" {
		t.Errorf("result = %+v", r)
	}
	if r.IsLoading {
		t.Error("IsLoading = true after Run returned")
	}
	if r.Error != "" {
		t.Errorf("Error = %q, want empty", r.Error)
	}
	if len(analyzer.contents) != len(types.AllAnalysisFields) {
		t.Errorf("analyzer called %d times, want %d", len(analyzer.contents), len(types.AllAnalysisFields))
	}
}

func TestRunSubsetOfFields(t *testing.T) {
	enricher, _ := testEnricher(t)
	analyzer := &fakeAnalyzer{values: map[types.AnalysisField]string{
		types.FieldSummary: "only the summary",
	}}
	board := NewBoard()

	paper := types.Paper{ID: "p1", Abstract: "abs"}
	r := Run(context.Background(), analyzer, enricher, board, paper, []types.AnalysisField{types.FieldSummary})

	if r.Summary != "only the summary" {
		t.Errorf("Summary = %q", r.Summary)
	}
	if r.Methodology != "" || r.Outcome != "" {
		t.Errorf("unrequested fields populated: %+v", r)
	}
}

func TestRunPartialFailure(t *testing.T) {
	enricher, _ := testEnricher(t)
	analyzer := &fakeAnalyzer{
		values: map[types.AnalysisField]string{
			types.FieldSummary: "the summary",
		},
		errs: map[types.AnalysisField]error{
			types.FieldOutcome: errors.New("model timeout"),
		},
	}
	board := NewBoard()

	paper := types.Paper{ID: "p1", Abstract: "abs"}
	fields := []types.AnalysisField{types.FieldSummary, types.FieldOutcome}
	r := Run(context.Background(), analyzer, enricher, board, paper, fields)

	// A failed field never blocks a successful one.
	if r.Summary != "the summary" {
		t.Errorf("Summary = %q, want it despite the outcome failure", r.Summary)
	}
	if r.Outcome != "" {
		t.Errorf("Outcome = %q, want empty on failure", r.Outcome)
	}
	if !strings.Contains(r.Error, "model timeout") {
		t.Errorf("Error = %q, want the failure recorded", r.Error)
	}
	if r.IsLoading {
		t.Error("IsLoading = true after Run returned")
	}
}

func TestRunUsesEnrichedContent(t *testing.T) {
	enricher, store := testEnricher(t)

	page := "This cached page has more than enough characters to count as a usable full text extraction."
	if err := store.Put(context.Background(), "p1", pdftest.MinimalPDF([]string{page})); err != nil {
		t.Fatal(err)
	}

	analyzer := &fakeAnalyzer{values: map[types.AnalysisField]string{types.FieldSummary: "s"}}
	board := NewBoard()

	paper := types.Paper{ID: "p1", Abstract: "abs"}
	Run(context.Background(), analyzer, enricher, board, paper, []types.AnalysisField{types.FieldSummary})

	if len(analyzer.contents) != 1 {
		t.Fatalf("analyzer called %d times, want 1", len(analyzer.contents))
	}
	if _, ok := analyzer.contents[0].(enrich.FullText); !ok {
		t.Errorf("analyzer content = %T, want FullText from the cached PDF", analyzer.contents[0])
	}
}

func TestRunConcurrentPapers(t *testing.T) {
	enricher, _ := testEnricher(t)
	board := NewBoard()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("p%d", i)
			analyzer := &fakeAnalyzer{values: map[types.AnalysisField]string{
				types.FieldSummary: "summary of " + id,
			}}
			Run(context.Background(), analyzer, enricher, board,
				types.Paper{ID: id, Abstract: "abs"},
				[]types.AnalysisField{types.FieldSummary})
		}()
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("p%d", i)
		if got := board.Get(id).Summary; got != "summary of "+id {
			t.Errorf("%s.Summary = %q", id, got)
		}
	}
}
