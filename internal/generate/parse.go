// Package generate provides the content-generation collaborators consumed
// by the engine: a Gemini-backed generator and an offline deterministic
// one. Model output is normalized to the engine's types right here, at the
// ingestion boundary, so the rest of the system never sees duck-typed
// payloads.
package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"waypoint/internal/engine"
)

// rawTask accepts either a bare string ("Read the docs") or a structured
// object. Models flip-flop between the two shapes.
type rawTask struct {
	Title  string
	Detail string
	Link   string
}

func (t *rawTask) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Title = strings.TrimSpace(s)
		return nil
	}
	var obj struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Link   string `json:"link"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("task is neither string nor object: %w", err)
	}
	t.Title = strings.TrimSpace(obj.Title)
	t.Detail = obj.Detail
	t.Link = obj.Link
	return nil
}

type rawSubNode struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Tasks []rawTask `json:"tasks"`
}

type rawPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type rawNode struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Position *rawPosition `json:"position"`
	SubNodes []rawSubNode `json:"subNodes"`
}

type rawRoadmap struct {
	Nodes []rawNode `json:"nodes"`
}

// DecodeRoadmap parses generator output into the engine's roadmap type,
// filling in missing ids and dropping titleless tasks. Statuses are always
// re-seeded; whatever the model claims about progress is ignored.
func DecodeRoadmap(data []byte) (*engine.Roadmap, error) {
	var raw rawRoadmap
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode roadmap: %w", err)
	}

	rm := &engine.Roadmap{}
	for _, rn := range raw.Nodes {
		if strings.TrimSpace(rn.Title) == "" {
			continue
		}
		node := engine.MilestoneNode{
			ID:    orID(rn.ID),
			Title: strings.TrimSpace(rn.Title),
		}
		if rn.Position != nil {
			node.Position = engine.Position{X: rn.Position.X, Y: rn.Position.Y}
		}
		for _, rs := range rn.SubNodes {
			sub := engine.SubNode{ID: orID(rs.ID), Title: strings.TrimSpace(rs.Title)}
			for _, rt := range rs.Tasks {
				if rt.Title == "" {
					continue
				}
				sub.Tasks = append(sub.Tasks, engine.Task{
					Title:  rt.Title,
					Detail: rt.Detail,
					Link:   rt.Link,
				})
			}
			if len(sub.Tasks) > 0 {
				node.SubNodes = append(node.SubNodes, sub)
			}
		}
		rm.Nodes = append(rm.Nodes, node)
	}
	rm.Normalize()
	return rm, nil
}

func orID(id string) string {
	id = strings.TrimSpace(id)
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// stripFences removes markdown code fences that models like to wrap JSON
// in, despite being asked for raw JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
