package llm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/research-assistant/internal/enrich"
	"github.com/pdiddy/research-assistant/pkg/types"
)

func testPapers(n int) []types.Paper {
	papers := make([]types.Paper, n)
	for i := range papers {
		papers[i] = types.Paper{
			ID:       fmt.Sprintf("p%d", i+1),
			Title:    fmt.Sprintf("Paper %d", i+1),
			Authors:  []string{"A. Author"},
			Year:     2020,
			Abstract: fmt.Sprintf("Abstract of paper %d.", i+1),
		}
	}
	return papers
}

// --- Field extraction ---

func TestFieldMessages(t *testing.T) {
	p := types.Paper{Title: "Sleep Study", Authors: []string{"A"}, Abstract: "abs"}

	for _, field := range types.AllAnalysisFields {
		t.Run(string(field), func(t *testing.T) {
			msgs, err := FieldMessages(field, p, enrich.SelectContent(p))
			if err != nil {
				t.Fatalf("FieldMessages: %v", err)
			}
			if len(msgs) != 2 {
				t.Fatalf("len(msgs) = %d, want 2", len(msgs))
			}
			if msgs[0].Role != types.RoleSystem || msgs[1].Role != types.RoleUser {
				t.Errorf("roles = %s, %s", msgs[0].Role, msgs[1].Role)
			}
			if !strings.Contains(msgs[1].Content, "Sleep Study") {
				t.Error("user turn missing the paper title")
			}
			if !strings.Contains(msgs[1].Content, "Abstract:") {
				t.Error("user turn missing the content marker")
			}
		})
	}
}

func TestFieldMessagesDistinctInstructions(t *testing.T) {
	p := types.Paper{Title: "T", Abstract: "abs"}
	seen := make(map[string]bool)
	for _, field := range types.AllAnalysisFields {
		msgs, err := FieldMessages(field, p, enrich.SelectContent(p))
		if err != nil {
			t.Fatalf("FieldMessages(%s): %v", field, err)
		}
		if seen[msgs[0].Content] {
			t.Errorf("field %s shares its instruction with another field", field)
		}
		seen[msgs[0].Content] = true
	}
}

func TestFieldMessagesUnknownField(t *testing.T) {
	p := types.Paper{Title: "T", Abstract: "abs"}
	if _, err := FieldMessages("sentiment", p, enrich.SelectContent(p)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestFieldMessagesUsesFullText(t *testing.T) {
	p := types.Paper{Title: "T", Abstract: "abs", FullText: "the extracted body"}
	msgs, err := FieldMessages(types.FieldSummary, p, enrich.SelectContent(p))
	if err != nil {
		t.Fatalf("FieldMessages: %v", err)
	}
	if !strings.Contains(msgs[1].Content, "Full text (truncated):") {
		t.Error("user turn missing the full-text marker")
	}
	if !strings.Contains(msgs[1].Content, "the extracted body") {
		t.Error("user turn missing the full text")
	}
}

// --- Synthesis ---

func TestSynthesisMessages(t *testing.T) {
	msgs, err := SynthesisMessages("what did they find?", testPapers(2))
	if err != nil {
		t.Fatalf("SynthesisMessages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	if !strings.Contains(msgs[0].Content, "200 words") {
		t.Error("system prompt missing the length bound")
	}
	if !strings.Contains(msgs[1].Content, "what did they find?") {
		t.Error("user turn missing the question")
	}
	for _, want := range []string{"[1]", "[2]"} {
		if !strings.Contains(msgs[1].Content, want) {
			t.Errorf("user turn missing source index %s", want)
		}
	}
}

func TestSynthesisMessagesCapsPapers(t *testing.T) {
	msgs, err := SynthesisMessages("q", testPapers(10))
	if err != nil {
		t.Fatalf("SynthesisMessages: %v", err)
	}
	if !strings.Contains(msgs[1].Content, fmt.Sprintf("[%d]", MaxSynthesisPapers)) {
		t.Errorf("user turn missing index [%d]", MaxSynthesisPapers)
	}
	if strings.Contains(msgs[1].Content, fmt.Sprintf("[%d]", MaxSynthesisPapers+1)) {
		t.Errorf("user turn contains index beyond the cap of %d", MaxSynthesisPapers)
	}
}

func TestSynthesisMessagesValidation(t *testing.T) {
	if _, err := SynthesisMessages("  ", testPapers(1)); err == nil {
		t.Error("expected error for blank question")
	}
	if _, err := SynthesisMessages("q", nil); err == nil {
		t.Error("expected error for no papers")
	}
}

// --- Chat ---

func TestChatMessagesStructure(t *testing.T) {
	history := []types.ChatMessage{
		{Role: types.RoleUser, Content: "earlier question"},
		{Role: types.RoleAssistant, Content: "earlier answer"},
	}
	msgs, err := ChatMessages(history, testPapers(2), "new question")
	if err != nil {
		t.Fatalf("ChatMessages: %v", err)
	}
	if len(msgs) != 4 {
		t.Fatalf("len(msgs) = %d, want 4", len(msgs))
	}
	if msgs[0].Role != types.RoleSystem {
		t.Errorf("msgs[0].Role = %s, want system", msgs[0].Role)
	}
	if msgs[1].Content != "earlier question" || msgs[2].Content != "earlier answer" {
		t.Error("history not preserved in order")
	}
	last := msgs[len(msgs)-1]
	if last.Role != types.RoleUser || last.Content != "new question" {
		t.Errorf("last turn = %+v", last)
	}
}

func TestChatMessagesFiltersStaleSystem(t *testing.T) {
	history := []types.ChatMessage{
		{Role: types.RoleSystem, Content: "stale context"},
		{Role: types.RoleUser, Content: "q"},
		{Role: types.RoleAssistant, Content: "a"},
	}
	msgs, err := ChatMessages(history, testPapers(1), "next")
	if err != nil {
		t.Fatalf("ChatMessages: %v", err)
	}

	systems := 0
	for _, m := range msgs {
		if m.Role == types.RoleSystem {
			systems++
			if strings.Contains(m.Content, "stale context") {
				t.Error("stale system message survived")
			}
			if !strings.Contains(m.Content, "Paper 1") {
				t.Error("fresh system message missing the current papers")
			}
		}
	}
	if systems != 1 {
		t.Errorf("system message count = %d, want 1", systems)
	}
}

func TestChatMessagesNoPapers(t *testing.T) {
	msgs, err := ChatMessages(nil, nil, "hello")
	if err != nil {
		t.Fatalf("ChatMessages: %v", err)
	}
	if !strings.Contains(msgs[0].Content, "No context papers") {
		t.Error("system prompt should state that no papers are selected")
	}
}

func TestChatMessagesCapsPapers(t *testing.T) {
	msgs, err := ChatMessages(nil, testPapers(9), "q")
	if err != nil {
		t.Fatalf("ChatMessages: %v", err)
	}
	if !strings.Contains(msgs[0].Content, fmt.Sprintf("Paper %d", MaxChatPapers)) {
		t.Errorf("system prompt missing paper %d", MaxChatPapers)
	}
	if strings.Contains(msgs[0].Content, fmt.Sprintf("Paper %d", MaxChatPapers+1)) {
		t.Errorf("system prompt contains paper beyond the cap of %d", MaxChatPapers)
	}
}

func TestChatMessagesBlankTurn(t *testing.T) {
	if _, err := ChatMessages(nil, nil, "   "); err == nil {
		t.Fatal("expected error for blank message")
	}
}

// --- Review ---

func TestReviewMessagesTokens(t *testing.T) {
	msgs, err := ReviewMessages("sleep and caffeine", testPapers(3))
	if err != nil {
		t.Fatalf("ReviewMessages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	for _, tok := range []string{"ref1", "ref2", "ref3"} {
		if !strings.Contains(msgs[0].Content, tok) {
			t.Errorf("system prompt missing token %s", tok)
		}
		if !strings.Contains(msgs[1].Content, "["+tok+"]") {
			t.Errorf("references missing entry [%s]", tok)
		}
	}
	if strings.Contains(msgs[0].Content, "ref4") {
		t.Error("system prompt lists a token with no source")
	}
	if !strings.Contains(msgs[1].Content, "sleep and caffeine") {
		t.Error("user turn missing the topic")
	}
}

func TestReviewMessagesValidation(t *testing.T) {
	if _, err := ReviewMessages(" ", testPapers(1)); err == nil {
		t.Error("expected error for blank topic")
	}
	if _, err := ReviewMessages("topic", nil); err == nil {
		t.Error("expected error for no papers")
	}
}

func TestReviewSourcesCap(t *testing.T) {
	// Abstract-only sources admit the larger cap.
	papers := testPapers(20)
	got := ReviewSources(papers)
	if len(got) != MaxReviewPapers {
		t.Errorf("abstract-only: len = %d, want %d", len(got), MaxReviewPapers)
	}

	// Any full-text source drops the cap.
	papers[0].FullText = "the body"
	got = ReviewSources(papers)
	if len(got) != MaxReviewPapersFullText {
		t.Errorf("with full text: len = %d, want %d", len(got), MaxReviewPapersFullText)
	}

	// Under the cap the list is untouched.
	got = ReviewSources(testPapers(3))
	if len(got) != 3 {
		t.Errorf("under cap: len = %d, want 3", len(got))
	}
}

func TestReviewMessagesFullTextCap(t *testing.T) {
	papers := testPapers(10)
	papers[2].FullText = "the body"

	msgs, err := ReviewMessages("topic", papers)
	if err != nil {
		t.Fatalf("ReviewMessages: %v", err)
	}
	if !strings.Contains(msgs[1].Content, fmt.Sprintf("[ref%d]", MaxReviewPapersFullText)) {
		t.Errorf("references missing ref%d", MaxReviewPapersFullText)
	}
	if strings.Contains(msgs[1].Content, fmt.Sprintf("ref%d", MaxReviewPapersFullText+1)) {
		t.Errorf("references include a source beyond the full-text cap of %d", MaxReviewPapersFullText)
	}
}

func TestReviewTokens(t *testing.T) {
	tokens := ReviewTokens(3)
	want := []string{"ref1", "ref2", "ref3"}
	if len(tokens) != len(want) {
		t.Fatalf("len(tokens) = %d, want %d", len(tokens), len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("tokens[%d] = %q, want %q", i, tokens[i], want[i])
		}
	}
}
