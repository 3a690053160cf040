package generate

import (
	"context"
	"fmt"
	"strings"

	"waypoint/internal/engine"
)

// Static is the offline generator: deterministic templates derived from
// the role and assessed skill gaps. It backs the tool when no API key is
// configured and doubles as the test generator.
type Static struct{}

func NewStatic() *Static { return &Static{} }

var roleSkills = map[string][]string{
	"full stack developer": {"HTML & CSS", "JavaScript", "React", "Node.js", "SQL", "REST APIs", "Git", "Testing", "Docker", "CI/CD"},
	"backend developer":    {"Go", "SQL", "REST APIs", "Message queues", "Caching", "Docker", "Testing", "Observability", "Git", "System design"},
	"frontend developer":   {"HTML & CSS", "JavaScript", "TypeScript", "React", "State management", "Accessibility", "Testing", "Build tooling", "Git", "Performance"},
	"data engineer":        {"Python", "SQL", "Data modeling", "Spark", "Airflow", "Cloud storage", "Streaming", "Testing", "Git", "Warehousing"},
	"devops engineer":      {"Linux", "Networking", "Docker", "Kubernetes", "Terraform", "CI/CD", "Monitoring", "Scripting", "Git", "Incident response"},
}

var genericSkills = []string{"Fundamentals", "Version control", "Testing", "Debugging", "Documentation", "Collaboration", "Tooling", "Architecture", "Security basics", "Interviewing"}

func skillsForRole(role string) []string {
	if skills, ok := roleSkills[strings.ToLower(strings.TrimSpace(role))]; ok {
		return skills
	}
	return genericSkills
}

// ParseGoal accepts any non-empty text and normalizes it into a role
// title. Rejecting vague goals is the remote generator's job; offline we
// stay permissive.
func (g *Static) ParseGoal(ctx context.Context, text string) (engine.GoalAnalysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return engine.GoalAnalysis{}, nil
	}
	role := text
	for _, prefix := range []string{"i want to become a ", "i want to become ", "i want to be a ", "become a ", "become "} {
		if strings.HasPrefix(strings.ToLower(role), prefix) {
			role = role[len(prefix):]
			break
		}
	}
	return engine.GoalAnalysis{Valid: true, Role: titleCase(role)}, nil
}

func (g *Static) GenerateQuestions(ctx context.Context, role string) ([]engine.Question, error) {
	skills := skillsForRole(role)
	out := make([]engine.Question, 0, len(skills))
	for i, skill := range skills {
		out = append(out, engine.Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Skill:    skill,
			Question: fmt.Sprintf("Have you worked with %s before?", skill),
			Context:  fmt.Sprintf("%s is a core skill for a %s.", skill, role),
		})
	}
	return out, nil
}

// GenerateRoadmap lays out a fixed four-milestone chain. Gap skills fill
// the early milestones; known skills only appear as refreshers.
func (g *Static) GenerateRoadmap(ctx context.Context, role string, known, gaps []string) (*engine.Roadmap, error) {
	if len(gaps) == 0 {
		gaps = skillsForRole(role)
	}

	rm := &engine.Roadmap{}
	addNode := func(title string, x float64, subs []engine.SubNode) {
		rm.Nodes = append(rm.Nodes, engine.MilestoneNode{
			ID:       fmt.Sprintf("node-%d", len(rm.Nodes)+1),
			Title:    title,
			Position: engine.Position{X: x, Y: 120 * float64(len(rm.Nodes))},
			SubNodes: subs,
		})
	}

	half := (len(gaps) + 1) / 2
	addNode("Foundations", 0, []engine.SubNode{
		{ID: "sub-1-1", Title: "Close the basics gap", Tasks: skillTasks(gaps[:half], role)},
	})
	addNode(fmt.Sprintf("Core %s skills", role), 240, []engine.SubNode{
		{ID: "sub-2-1", Title: "Level up", Tasks: skillTasks(gaps[half:], role)},
		{ID: "sub-2-2", Title: "Refresh what you know", Tasks: refreshTasks(known)},
	})
	addNode("Build real things", 480, []engine.SubNode{
		{ID: "sub-3-1", Title: "Portfolio projects", Tasks: []engine.Task{
			{Title: fmt.Sprintf("Ship a small %s project end to end", role)},
			{Title: "Write a README that explains your decisions"},
			{Title: "Get one code review from a stranger"},
		}},
	})
	addNode("Get hired", 720, []engine.SubNode{
		{ID: "sub-4-1", Title: "Interview readiness", Tasks: []engine.Task{
			{Title: "Rewrite your resume around shipped work"},
			{Title: fmt.Sprintf("Do three mock interviews for %s roles", role)},
			{Title: "Apply to five positions"},
		}},
	})
	rm.Normalize()
	return rm, nil
}

func skillTasks(skills []string, role string) []engine.Task {
	if len(skills) == 0 {
		return []engine.Task{{Title: fmt.Sprintf("Survey the %s landscape", role)}}
	}
	out := make([]engine.Task, 0, len(skills))
	for _, s := range skills {
		out = append(out, engine.Task{
			Title:  fmt.Sprintf("Learn %s", s),
			Detail: fmt.Sprintf("Work through an introduction to %s and build one toy example.", s),
		})
	}
	return out
}

func refreshTasks(known []string) []engine.Task {
	if len(known) == 0 {
		return []engine.Task{{Title: "Write down what you already know and where it is shaky"}}
	}
	out := make([]engine.Task, 0, len(known))
	for _, s := range known {
		out = append(out, engine.Task{Title: fmt.Sprintf("Do one non-trivial exercise with %s", s)})
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
