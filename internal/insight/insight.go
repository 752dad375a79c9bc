package insight

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-flash-lite-latest"

// The insight feature is best-effort: a quota, network or setup failure
// must never reach the trading path, so every failure degrades to a fixed
// string instead of an error.
const (
	fallbackInsight = "AI market analysis is unavailable right now (API quota or connection issue). You can still follow the market through the price chart."
	fallbackProverb = "Money is a tool, not the goal."
	defaultProverb  = "Patience is the greatest capital."
)

// generator is the slice of the genai client the service uses; tests stub it.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
}

func (g *genaiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Insight is one generated market commentary. Sources stays empty until
// search grounding is enabled for the model; clients treat it as opaque.
type Insight struct {
	Text    string `json:"text"`
	Sources []any  `json:"sources"`
}

// Service produces AI market commentary and the daily proverb. A Service
// without a working client serves fallbacks for everything.
type Service struct {
	gen generator
}

// New creates the service. The genai client picks its API key up from the
// environment; when that fails the service still works, degraded.
func New(ctx context.Context) *Service {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Println("Insight service degraded, no AI client:", err)
		return &Service{}
	}
	return &Service{gen: &genaiGenerator{client: client}}
}

// MarketInsight returns a short commentary on the instrument's market
// situation. It never fails; the worst case is the fallback text.
func (s *Service) MarketInsight(ctx context.Context, symbol string) Insight {
	if s.gen == nil {
		return Insight{Text: fallbackInsight, Sources: []any{}}
	}

	prompt := fmt.Sprintf("Analyze the current market situation, popularity and "+
		"general investor sentiment for %s. Give a short, professional summary. "+
		"Use general knowledge only.", symbol)

	text, err := s.gen.generate(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Println("Insight generation failed:", err)
		}
		return Insight{Text: fallbackInsight, Sources: []any{}}
	}
	return Insight{Text: text, Sources: []any{}}
}

// DailyProverb returns one short motivational saying about money.
func (s *Service) DailyProverb(ctx context.Context) string {
	if s.gen == nil {
		return fallbackProverb
	}

	text, err := s.gen.generate(ctx,
		"Give one motivational saying about financial success and patience, at most ten words.")
	if err != nil {
		return fallbackProverb
	}
	if text = strings.TrimSpace(text); text == "" {
		return defaultProverb
	}
	return text
}
