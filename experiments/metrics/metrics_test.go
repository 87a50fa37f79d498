package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts a search", func(t *testing.T) {
		c := NewCollector()
		c.Start("fixed(goat=1,tiger=1,noise=0.00)")
		c.AddNode()
		c.AddNode()
		c.AddQuiescenceNode()
		c.AddTTHit()
		c.AddCutoff()
		c.SetDepth(2, 12.5)
		c.SetTimedOut()

		m := c.Complete()

		require.Equal(t, "fixed(goat=1,tiger=1,noise=0.00)", m.Config)
		require.Equal(t, 2, m.Nodes)
		require.Equal(t, 1, m.QNodes)
		require.Equal(t, 1, m.TTHits)
		require.Equal(t, 1, m.Cutoffs)
		require.Equal(t, 2, m.Depth)
		require.Equal(t, 12.5, m.Score)
		require.True(t, m.TimedOut)
		require.False(t, m.RandomMove)
	})

	t.Run("start resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start("a")
		c.AddNode()
		c.SetRandomMove()

		c.Start("b")
		m := c.Complete()

		require.Equal(t, "b", m.Config)
		require.Zero(t, m.Nodes)
		require.False(t, m.RandomMove)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("a")
		c.AddNode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "presets")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
		{ID: 1, Name: "hard", Description: "fixed(goat=4,tiger=4,noise=0.00)", Evaluator: "heuristic"},
	}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		ID: 1, GoatAgent: 1, TigerAgent: 1,
		GameMetric: GameMetric{Winner: "tiger", StartTime: start, EndTime: start.Add(time.Second),
			Duration: time.Second, TotalPlies: 41, GoatsCaptured: 5},
	}}))
	require.NoError(t, w.WriteSearchRecords([]SearchRecord{{
		Game: 1,
		MoveMetric: MoveMetric{Ply: 1, Side: "goat",
			SearchMetric: SearchMetric{Nodes: 10, Depth: 4, Score: -1.25}},
	}}))

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	configs := read("agent_configs.csv")
	require.Len(t, configs, 2, "Header plus one row")
	require.Equal(t, []string{"1", "hard", "fixed(goat=4,tiger=4,noise=0.00)", "heuristic"}, configs[1])

	games := read("game_records.csv")
	require.Len(t, games, 2)
	require.Equal(t, "tiger", games[1][3])
	require.Equal(t, "41", games[1][4])
	require.Equal(t, "2024-05-01T12:00:00Z", games[1][7])

	searches := read("search_records.csv")
	require.Len(t, searches, 2)
	require.Equal(t, "goat", searches[1][2])
	require.Equal(t, "10", searches[1][5])
	require.Equal(t, "-1.25", searches[1][10])
}
