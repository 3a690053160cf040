package generate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoint/internal/engine"
)

func TestStaticParseGoal(t *testing.T) {
	g := NewStatic()
	ctx := context.Background()

	got, err := g.ParseGoal(ctx, "I want to become a full stack developer")
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.Equal(t, "Full Stack Developer", got.Role)

	got, err = g.ParseGoal(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, got.Valid)
}

func TestStaticQuestionsCoverTenSkills(t *testing.T) {
	g := NewStatic()
	qs, err := g.GenerateQuestions(context.Background(), "Backend Developer")
	require.NoError(t, err)
	require.Len(t, qs, 10)

	seen := map[string]bool{}
	for _, q := range qs {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Skill)
		assert.NotEmpty(t, q.Question)
		assert.False(t, seen[q.Skill], "duplicate skill %s", q.Skill)
		seen[q.Skill] = true
	}
}

func TestStaticQuestionsUnknownRoleFallsBack(t *testing.T) {
	g := NewStatic()
	qs, err := g.GenerateQuestions(context.Background(), "Llama Whisperer")
	require.NoError(t, err)
	assert.Len(t, qs, 10)
}

func TestStaticRoadmapShape(t *testing.T) {
	g := NewStatic()
	rm, err := g.GenerateRoadmap(context.Background(), "Backend Developer",
		[]string{"Git"}, []string{"Go", "SQL", "Docker"})
	require.NoError(t, err)
	require.Len(t, rm.Nodes, 4)

	assert.Equal(t, engine.NodeActive, rm.Nodes[0].Status)
	for i := 1; i < len(rm.Nodes); i++ {
		assert.Equal(t, engine.NodeLocked, rm.Nodes[i].Status, "node %d", i)
	}
	for _, n := range rm.Nodes {
		assert.NotEmpty(t, n.ID)
		require.NotEmpty(t, n.SubNodes, "node %s", n.Title)
		for _, sub := range n.SubNodes {
			assert.NotEmpty(t, sub.Tasks, "sub-node %s", sub.Title)
		}
	}

	// Gap skills drive the early milestones.
	assert.Contains(t, rm.Nodes[0].SubNodes[0].Tasks[0].Title, "Go")
}

func TestStaticRoadmapIsDeterministic(t *testing.T) {
	g := NewStatic()
	ctx := context.Background()

	a, err := g.GenerateRoadmap(ctx, "Data Engineer", nil, []string{"Spark", "SQL"})
	require.NoError(t, err)
	b, err := g.GenerateRoadmap(ctx, "Data Engineer", nil, []string{"Spark", "SQL"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
