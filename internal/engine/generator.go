package engine

import "context"

// GoalAnalysis is the structured result of parsing a free-text career goal.
type GoalAnalysis struct {
	Valid bool
	Role  string
}

// Generator is the content-generation collaborator. Implementations may be
// slow, may fail, and may return empty results; the engine tolerates all
// three and never retries on its own.
type Generator interface {
	ParseGoal(ctx context.Context, text string) (GoalAnalysis, error)
	GenerateQuestions(ctx context.Context, role string) ([]Question, error)
	GenerateRoadmap(ctx context.Context, role string, known, gaps []string) (*Roadmap, error)
}
