package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"waypoint/internal/engine"
)

const defaultModel = "gemini-2.0-flash"

// Gemini generates assessment questions and roadmaps with the Gemini API.
// All responses are requested as JSON and normalized through the same
// decoder the offline generator output shares.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) generateJSON(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0.4),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	text := stripFences(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("gemini returned an empty response")
	}
	return []byte(text), nil
}

func (g *Gemini) ParseGoal(ctx context.Context, text string) (engine.GoalAnalysis, error) {
	prompt := fmt.Sprintf(`A user typed a career goal: %q.
Decide whether this is a concrete, achievable career goal and normalize it
into a job title. Respond with JSON only: {"isValid": bool, "role": string}.`, text)

	data, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return engine.GoalAnalysis{}, err
	}
	var out struct {
		IsValid bool   `json:"isValid"`
		Role    string `json:"role"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return engine.GoalAnalysis{}, fmt.Errorf("decode goal analysis: %w", err)
	}
	return engine.GoalAnalysis{Valid: out.IsValid, Role: strings.TrimSpace(out.Role)}, nil
}

func (g *Gemini) GenerateQuestions(ctx context.Context, role string) ([]engine.Question, error) {
	prompt := fmt.Sprintf(`Generate exactly 10 yes/no skill assessment questions for
someone who wants to become a %s. Each question probes one concrete skill.
Respond with JSON only:
{"questions": [{"id": string, "skill": string, "question": string, "context": string}]}`, role)

	data, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var out struct {
		Questions []engine.Question `json:"questions"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	for i := range out.Questions {
		if out.Questions[i].ID == "" {
			out.Questions[i].ID = fmt.Sprintf("q%d", i+1)
		}
	}
	return out.Questions, nil
}

func (g *Gemini) GenerateRoadmap(ctx context.Context, role string, known, gaps []string) (*engine.Roadmap, error) {
	prompt := fmt.Sprintf(`Create a learning roadmap for becoming a %s.
The learner already knows: %s.
The learner needs to learn: %s.
Structure: 3 to 6 sequential milestones, each with 1-3 sub-topics, each
sub-topic with 2-5 concrete tasks. A task may be an object
{"title": string, "detail": string, "link": string} or a plain string.
Respond with JSON only:
{"nodes": [{"id": string, "title": string, "subNodes": [{"id": string, "title": string, "tasks": [...]}]}]}`,
		role, joinOr(known, "nothing relevant"), joinOr(gaps, "general fundamentals"))

	data, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return DecodeRoadmap(data)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
