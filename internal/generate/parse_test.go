package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoint/internal/engine"
)

func TestDecodeRoadmapMixedTaskShapes(t *testing.T) {
	data := []byte(`{
		"nodes": [
			{
				"id": "n1",
				"title": "Foundations",
				"subNodes": [
					{
						"id": "n1-a",
						"title": "Basics",
						"tasks": [
							"Read the language tour",
							{"title": "Build a CLI", "detail": "Something small", "link": "https://example.com"},
							""
						]
					}
				]
			},
			{
				"title": "Core skills",
				"subNodes": [
					{"title": "Backend", "tasks": ["Build an API"]}
				]
			}
		]
	}`)

	rm, err := DecodeRoadmap(data)
	require.NoError(t, err)
	require.Len(t, rm.Nodes, 2)

	tasks := rm.Nodes[0].SubNodes[0].Tasks
	require.Len(t, tasks, 2, "empty-title task is dropped")
	assert.Equal(t, "Read the language tour", tasks[0].Title)
	assert.Equal(t, "Build a CLI", tasks[1].Title)
	assert.Equal(t, "Something small", tasks[1].Detail)
	assert.Equal(t, "https://example.com", tasks[1].Link)

	// Missing ids are filled so addressing stays stable.
	assert.NotEmpty(t, rm.Nodes[1].ID)
	assert.NotEmpty(t, rm.Nodes[1].SubNodes[0].ID)

	// Statuses are always re-seeded at the boundary.
	assert.Equal(t, engine.NodeActive, rm.Nodes[0].Status)
	assert.Equal(t, engine.NodeLocked, rm.Nodes[1].Status)
}

func TestDecodeRoadmapRejectsGarbage(t *testing.T) {
	_, err := DecodeRoadmap([]byte(`not json at all`))
	require.Error(t, err)
}

func TestDecodeRoadmapDropsEmptyNodes(t *testing.T) {
	data := []byte(`{"nodes": [
		{"title": "", "subNodes": []},
		{"title": "Real", "subNodes": [{"title": "s", "tasks": ["t"]}]}
	]}`)
	rm, err := DecodeRoadmap(data)
	require.NoError(t, err)
	require.Len(t, rm.Nodes, 1)
	assert.Equal(t, "Real", rm.Nodes[0].Title)
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      `{"a":1}`,
		"```json\n{\"a\":1}\n```":        `{"a":1}`,
		"```\n{\"a\":1}\n```":            `{"a":1}`,
		"  \n```json\n{\"a\":1}\n```\n ": `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, stripFences(in))
	}
}
