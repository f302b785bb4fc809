package generation

import (
	"context"
	"errors"
	"io"
	"iter"

	infraopenai "github.com/inkwell-labs/inkwell/internal/infrastructure/openai"
	"github.com/sashabaranov/go-openai"
)

const (
	openAIMaxTokens   = 1000
	openAITemperature = 0.7
)

// OpenAIBackend generates through the chat completions API and streams natively
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend returns nil when the OpenAI service is not configured
func NewOpenAIBackend(svc *infraopenai.Service) *OpenAIBackend {
	if svc == nil {
		return nil
	}
	return &OpenAIBackend{client: svc.GetClient(), model: svc.Model()}
}

func (b *OpenAIBackend) Name() string {
	return "openai:" + b.model
}

func (b *OpenAIBackend) request(p Prompt, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.Style.Instruction()},
			{Role: openai.ChatMessageRoleUser, Content: p.Text},
		},
		MaxTokens:   openAIMaxTokens,
		Temperature: openAITemperature,
		Stream:      stream,
	}
}

func (b *OpenAIBackend) Generate(ctx context.Context, p Prompt) (Result, error) {
	resp, err := b.client.CreateChatCompletion(ctx, b.request(p, false))
	if err != nil {
		return Result{}, Classify(ProviderOpenAI, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Result{}, &Error{Kind: KindBackend, Message: "No text generated. Please check your API key and try again."}
	}

	return Result{
		Text: resp.Choices[0].Message.Content,
		Usage: &Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func (b *OpenAIBackend) GenerateIncremental(ctx context.Context, p Prompt) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stream, err := b.client.CreateChatCompletionStream(ctx, b.request(p, true))
		if err != nil {
			yield("", Classify(ProviderOpenAI, err))
			return
		}
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", Classify(ProviderOpenAI, err))
				return
			}
			if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
				continue
			}
			if !yield(resp.Choices[0].Delta.Content, nil) {
				return
			}
		}
	}
}
