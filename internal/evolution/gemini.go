package evolution

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/vovakirdan/neon-runner/internal/config"
)

const promptTemplate = `The player reached a score of %d in a cyberpunk dino run game. Generate a "Sector Evolution".
Provide a cool futuristic sector name, a short immersive description (max 15 words), and a mutation name (e.g., "Gravity Shift").
Also provide a primary neon color hex code in #RRGGBB form.`

// recordSchema constrains the model's JSON output to a Record.
var recordSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"sectorName":     {Type: genai.TypeString},
		"description":    {Type: genai.TypeString},
		"mutationEffect": {Type: genai.TypeString},
		"colorTheme":     {Type: genai.TypeString},
	},
	Required:         []string{"sectorName", "description", "mutationEffect", "colorTheme"},
	PropertyOrdering: []string{"sectorName", "description", "mutationEffect", "colorTheme"},
}

// textFunc sends a prompt and returns the raw response text.
type textFunc func(ctx context.Context, prompt string) (string, error)

// GeminiGenerator asks a Gemini model for structured JSON content.
type GeminiGenerator struct {
	model string
	text  textFunc
}

// NewGeminiGenerator creates a generator using the API key found in the
// environment variable named by cfg.APIKeyEnv.
func NewGeminiGenerator(ctx context.Context, cfg config.EvolutionConfig) (*GeminiGenerator, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("%w: set %s", ErrNoAPIKey, cfg.APIKeyEnv)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("evolution: create gemini client: %w", err)
	}

	g := &GeminiGenerator{model: cfg.Model}
	g.text = func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   recordSchema,
		})
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return g, nil
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, score int) (Record, error) {
	text, err := g.text(ctx, Prompt(score))
	if err != nil {
		return Record{}, fmt.Errorf("evolution: gemini %s: %w", g.model, err)
	}
	return ParseRecord(text)
}

// Prompt returns the request sent to the model for a milestone score.
func Prompt(score int) string {
	return fmt.Sprintf(promptTemplate, score)
}
