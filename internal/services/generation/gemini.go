package generation

import (
	"context"

	"github.com/inkwell-labs/inkwell/internal/infrastructure/gemini"
	"google.golang.org/genai"
)

// GeminiBackend generates with one Gemini model. It only returns complete
// texts; the relay paces them out as word fragments.
type GeminiBackend struct {
	models *genai.Models
	model  string
}

// NewGeminiBackends returns one backend per configured model, in fallback order
func NewGeminiBackends(svc *gemini.Service) []Backend {
	if svc == nil {
		return nil
	}

	backends := make([]Backend, 0, len(svc.ModelNames()))
	for _, model := range svc.ModelNames() {
		backends = append(backends, &GeminiBackend{models: svc.Models(), model: model})
	}
	return backends
}

func (b *GeminiBackend) Name() string {
	return "gemini:" + b.model
}

func (b *GeminiBackend) Generate(ctx context.Context, p Prompt) (Result, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.Style.Instruction(), genai.RoleUser),
	}

	resp, err := b.models.GenerateContent(ctx, b.model, genai.Text(p.Text), cfg)
	if err != nil {
		return Result{}, Classify(ProviderGemini, err)
	}

	text := resp.Text()
	if text == "" {
		return Result{}, &Error{Kind: KindBackend, Message: "No text generated. Please check your API key and try again."}
	}

	res := Result{Text: text}
	if m := resp.UsageMetadata; m != nil {
		res.Usage = &Usage{
			PromptTokens:     int(m.PromptTokenCount),
			CompletionTokens: int(m.CandidatesTokenCount),
			TotalTokens:      int(m.TotalTokenCount),
		}
	}
	return res, nil
}
