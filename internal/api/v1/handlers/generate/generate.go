package generate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/inkwell-labs/inkwell/internal/services/generation"
	"github.com/inkwell-labs/inkwell/internal/services/identity"
	"github.com/inkwell-labs/inkwell/internal/services/relay"
	"github.com/inkwell-labs/inkwell/pkg/httpext"
	"github.com/inkwell-labs/inkwell/pkg/logger"
)

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// Request is the body of a generation request
type Request struct {
	Prompt string `json:"prompt"`
	Type   string `json:"type" validate:"omitempty,oneof=content blog social ad"`
	Stream bool   `json:"stream"`
}

// Response is the body of a successful non-streamed generation
type Response struct {
	Content string            `json:"content"`
	Usage   *generation.Usage `json:"usage,omitempty"`
	Success bool              `json:"success"`
}

// authorize checks that a backend is configured and a user is signed in
func authorize(producer *relay.Producer, r *http.Request) error {
	if err := producer.Chain().Ready(); err != nil {
		return err
	}
	if _, ok := identity.CurrentUserID(r.Context()); !ok {
		return generation.Unauthorized()
	}
	return nil
}

// parsePrompt validates a decoded request body
func parsePrompt(body *Request) (generation.Prompt, error) {
	if strings.TrimSpace(body.Prompt) == "" {
		return generation.Prompt{}, generation.Validation("Prompt is required")
	}

	body.Type = strings.ToLower(strings.TrimSpace(body.Type))
	if err := validate.Struct(body); err != nil {
		return generation.Prompt{}, generation.Validation(fmt.Sprintf("Invalid request: %v", err))
	}

	style, _ := generation.ParseStyle(body.Type)
	return generation.Prompt{Text: body.Prompt, Style: style}, nil
}

// WriteError writes a classified failure as a JSON error response
func WriteError(w http.ResponseWriter, err error) {
	classified := generation.Classify(generation.Provider{}, err)
	httpext.JsonErrorWithDetails(w, classified.Status(), httpext.ErrorResponse{
		Error:   classified.Message,
		Details: classified.Details,
		HelpURL: classified.HelpURL,
	})
}

// HandleGenerate serves one generation, streamed as fragment events when the
// request asks for it and as a single JSON body otherwise
func HandleGenerate(producer *relay.Producer, w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	log := logger.For(logger.HANDLER).With().Str("request_id", requestID).Logger()

	if err := authorize(producer, r); err != nil {
		log.Warn().Err(err).Msg("Generation request rejected")
		WriteError(w, err)
		return
	}

	var body Request
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		WriteError(w, generation.Validation("Invalid request format"))
		return
	}

	prompt, err := parsePrompt(&body)
	if err != nil {
		log.Warn().Err(err).Msg("Generation request rejected")
		WriteError(w, err)
		return
	}

	userID, _ := identity.CurrentUserID(r.Context())
	log.Info().
		Str("user_id", userID).
		Str("style", string(prompt.Style)).
		Bool("stream", body.Stream).
		Int("prompt_length", len(prompt.Text)).
		Msg("Received generation request")

	if body.Stream {
		sse, err := relay.NewSSEWriter(w, requestID)
		if err != nil {
			log.Error().Err(err).Msg("Streaming unsupported by response writer")
			httpext.JsonError(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}

		if err := producer.Stream(r.Context(), sse, prompt); err != nil {
			log.Error().Err(err).Msg("Generation failed before streaming started")
			WriteError(w, err)
		}
		return
	}

	res, err := producer.Generate(r.Context(), prompt)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate content")
		WriteError(w, err)
		return
	}

	httpext.JsonResponse(w, Response{Content: res.Text, Usage: res.Usage, Success: true})

	log.Info().
		Str("backend", res.Backend).
		Int("status", http.StatusOK).
		Msg("Generation request processed successfully")
}
