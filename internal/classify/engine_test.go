package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"VideoClassifier/internal/domain"
	"VideoClassifier/internal/taxonomy"
)

type fakeGenerator struct {
	respond func(prompt string) (string, error)
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.respond(prompt)
}

type countingPacer struct {
	waits int
}

func (p *countingPacer) Wait(context.Context) error {
	p.waits++
	return nil
}

var engineTrails = []domain.Trail{
	{Tool: "Python", Topics: []string{"Sintaxe básica", "APIs REST"}},
}

func newTestEngine(gen *fakeGenerator) (*Engine, *countingPacer) {
	pacer := &countingPacer{}
	engine := NewEngine(EngineDeps{
		Generator:     gen,
		Trails:        taxonomy.NewStore(engineTrails),
		SynopsisPacer: pacer,
		ToolPacer:     pacer,
		TopicPacer:    pacer,
	})
	return engine, pacer
}

func records(n int) []domain.ClassifiedVideo {
	out := make([]domain.ClassifiedVideo, n)
	for i := range out {
		out[i] = domain.ClassifiedVideo{Video: domain.VideoRecord{VideoID: string(rune('a' + i))}}
	}
	return out
}

func TestContextualizeStatuses(t *testing.T) {
	t.Parallel()

	responses := []func() (string, error){
		func() (string, error) { return "  O vídeo demonstra Python com requests.  ", nil },
		func() (string, error) { return NonTechnicalSentinel, nil },
		func() (string, error) { return `"` + NonTechnicalSentinel + `"`, nil },
		func() (string, error) { return "", errors.New("rate limited") },
	}
	call := 0
	gen := &fakeGenerator{respond: func(string) (string, error) {
		resp := responses[call]
		call++
		return resp()
	}}
	engine, pacer := newTestEngine(gen)

	out, err := engine.Contextualize(context.Background(), records(4))
	if err != nil {
		t.Fatalf("Contextualize error: %v", err)
	}

	if out[0].Classification.SynopsisStatus != domain.StatusValid {
		t.Fatalf("record 0 status = %s, want valid", out[0].Classification.SynopsisStatus)
	}
	if got := out[0].Classification.Synopsis; got != "O vídeo demonstra Python com requests." {
		t.Fatalf("synopsis not trimmed: %q", got)
	}
	if out[1].Classification.SynopsisStatus != domain.StatusInvalid {
		t.Fatalf("record 1 status = %s, want invalid", out[1].Classification.SynopsisStatus)
	}
	if out[2].Classification.SynopsisStatus != domain.StatusInvalid {
		t.Fatalf("quoted sentinel not detected: %s", out[2].Classification.SynopsisStatus)
	}
	if out[3].Classification.SynopsisStatus != domain.StatusTransientError {
		t.Fatalf("record 3 status = %s, want transient_error", out[3].Classification.SynopsisStatus)
	}

	// One pacing delay per call, failures included.
	if pacer.waits != 4 {
		t.Fatalf("pacer waited %d times, want 4", pacer.waits)
	}
}

func TestContextualizePromptInputs(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: func(string) (string, error) { return "sinopse", nil }}
	engine, _ := newTestEngine(gen)

	recs := []domain.ClassifiedVideo{{Video: domain.VideoRecord{
		Title:       "Curso de Pandas",
		ChannelName: "Canal Dados",
	}}}
	if _, err := engine.Contextualize(context.Background(), recs); err != nil {
		t.Fatalf("Contextualize error: %v", err)
	}

	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Curso de Pandas") || !strings.Contains(prompt, "Canal Dados") {
		t.Fatal("prompt missing title or channel name")
	}
	if !strings.Contains(prompt, "Sem descrição") {
		t.Fatal("empty description not replaced by placeholder")
	}
}

func TestClassifyToolsKeepsRawPayloadAndPaces(t *testing.T) {
	t.Parallel()

	payload := "```json\n{\"ferramenta_principal\": \"Python\"}\n```"
	call := 0
	gen := &fakeGenerator{respond: func(string) (string, error) {
		call++
		if call == 2 {
			return "", errors.New("boom")
		}
		return payload, nil
	}}
	engine, pacer := newTestEngine(gen)

	out, err := engine.ClassifyTools(context.Background(), records(3))
	if err != nil {
		t.Fatalf("ClassifyTools error: %v", err)
	}

	if out[0].Classification.RawToolPayload != payload {
		t.Fatalf("raw payload altered: %q", out[0].Classification.RawToolPayload)
	}
	if out[0].Classification.ToolStatus != domain.StatusValid {
		t.Fatalf("record 0 status = %s", out[0].Classification.ToolStatus)
	}
	if out[1].Classification.ToolStatus != domain.StatusTransientError {
		t.Fatalf("record 1 status = %s, want transient_error", out[1].Classification.ToolStatus)
	}
	if pacer.waits != 3 {
		t.Fatalf("pacer waited %d times, want 3", pacer.waits)
	}
}

func TestClassifyTopicsSkipsRecordsWithoutTrail(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{respond: func(string) (string, error) { return "Sintaxe básica", nil }}
	engine, pacer := newTestEngine(gen)

	recs := records(2)
	recs[0].Classification.RawToolPayload = `{"ferramenta_principal": "Python"}`
	recs[1].Classification.RawToolPayload = "erro"

	out, err := engine.ClassifyTopics(context.Background(), recs)
	if err != nil {
		t.Fatalf("ClassifyTopics error: %v", err)
	}

	if out[0].Classification.TopicStatus != domain.StatusValid || out[0].Classification.Topic != "Sintaxe básica" {
		t.Fatalf("record 0: %+v", out[0].Classification)
	}
	if out[1].Classification.TopicStatus != domain.StatusNoTrail {
		t.Fatalf("record 1 status = %s, want no_trail", out[1].Classification.TopicStatus)
	}

	// Only the resolvable record triggers a call and its pacing delay.
	if len(gen.prompts) != 1 {
		t.Fatalf("generator invoked %d times, want 1", len(gen.prompts))
	}
	if pacer.waits != 1 {
		t.Fatalf("pacer waited %d times, want 1", pacer.waits)
	}
}

func TestClassifyTopicsAnswerHandling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		answer     string
		wantTopic  string
		wantStatus domain.StageStatus
	}{
		{"exact topic", "APIs REST", "APIs REST", domain.StatusValid},
		{"topic with whitespace", "  APIs REST\n", "APIs REST", domain.StatusValid},
		{"quoted topic", `"APIs REST"`, "APIs REST", domain.StatusValid},
		{"invalid sentinel", "invalido", "", domain.StatusInvalid},
		{"uppercase sentinel", "INVALIDO", "", domain.StatusInvalid},
		{"invented topic", "Tópico inventado", "", domain.StatusInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{respond: func(string) (string, error) { return tt.answer, nil }}
			engine, _ := newTestEngine(gen)

			recs := records(1)
			recs[0].Classification.RawToolPayload = `{"ferramenta_principal": "Python"}`

			out, err := engine.ClassifyTopics(context.Background(), recs)
			if err != nil {
				t.Fatalf("ClassifyTopics error: %v", err)
			}
			if out[0].Classification.Topic != tt.wantTopic {
				t.Fatalf("topic = %q, want %q", out[0].Classification.Topic, tt.wantTopic)
			}
			if out[0].Classification.TopicStatus != tt.wantStatus {
				t.Fatalf("status = %s, want %s", out[0].Classification.TopicStatus, tt.wantStatus)
			}
		})
	}
}

func TestTopicPromptEnumeratesTrail(t *testing.T) {
	t.Parallel()

	prompt := TopicPrompt("uma sinopse", "Python", []string{"Sintaxe básica", "APIs REST"})
	if !strings.Contains(prompt, "- Sintaxe básica") || !strings.Contains(prompt, "- APIs REST") {
		t.Fatal("topic list not enumerated")
	}
	if !strings.Contains(prompt, `"Python"`) {
		t.Fatal("tool name missing from prompt")
	}
	if !strings.Contains(prompt, "uma sinopse") {
		t.Fatal("synopsis missing from prompt")
	}
}
