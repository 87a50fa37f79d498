package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	ID          int
	Name        string // preset name
	Description string // normalised search configuration
	Evaluator   string
}

type GameRecord struct {
	ID         int
	GoatAgent  int // AgentConfig.ID
	TigerAgent int // AgentConfig.ID
	GameMetric
}

type SearchRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes every file there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "config", "evaluator"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Description,
			config.Evaluator,
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "goat_agent", "tiger_agent", "winner", "plies", "goats_captured",
		"ply_cap_reached", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.GoatAgent),
			strconv.Itoa(record.TigerAgent),
			record.Winner,
			strconv.Itoa(record.TotalPlies),
			strconv.Itoa(record.GoatsCaptured),
			strconv.FormatBool(record.PlyCapReached),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteSearchRecords(records []SearchRecord) error {
	header := []string{"game", "ply", "side", "config", "duration", "nodes", "qnodes", "tt_hits",
		"cutoffs", "depth", "score", "timed_out", "random_move"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Ply),
			record.Side,
			record.Config,
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.QNodes),
			strconv.Itoa(record.TTHits),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.Depth),
			strconv.FormatFloat(record.Score, 'f', 2, 64),
			strconv.FormatBool(record.TimedOut),
			strconv.FormatBool(record.RandomMove),
		})
	}
	return w.write("search_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
