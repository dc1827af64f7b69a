package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// AgentRecord is one agent's ratings snapshot.
type AgentRecord struct {
	ID            string
	Name          string
	Generation    int
	Elo3p         float64
	Elo4p         float64
	Elo5p         float64
	EloGlobal     float64
	MatchesPlayed int
	AvgMatchScore float64
}

// MatchRecord ties a match to the agents that played it.
type MatchRecord struct {
	ID     int
	Agents []string // per seat, AgentRecord.ID
	MatchMetric
}

// DealRecord ties a counted deal to its match.
type DealRecord struct {
	Match int // MatchRecord.ID
	Index int
	DealMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped output directory for one experiment run.
func NewWriter(name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteAgentRecords(records []AgentRecord) error {
	path := filepath.Join(w.baseDir, "agent_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create agent records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "name", "generation", "elo_3p", "elo_4p", "elo_5p", "elo_global", "matches_played", "avg_match_score"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write agent records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID,
			record.Name,
			strconv.Itoa(record.Generation),
			formatFloat(record.Elo3p),
			formatFloat(record.Elo4p),
			formatFloat(record.Elo5p),
			formatFloat(record.EloGlobal),
			strconv.Itoa(record.MatchesPlayed),
			formatFloat(record.AvgMatchScore),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write agent record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMatchRecords(records []MatchRecord) error {
	path := filepath.Join(w.baseDir, "match_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create match records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "variant", "agents", "start_time", "end_time", "duration", "deals_played", "deals_cancelled"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write match records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Variant),
			strings.Join(record.Agents, "|"),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.DealsPlayed),
			strconv.Itoa(record.DealsCancelled),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write match record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteDealRecords(records []DealRecord) error {
	path := filepath.Join(w.baseDir, "deal_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create deal records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"match", "index", "dealer", "taker", "partner", "contract", "scores"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write deal records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Match),
			strconv.Itoa(record.Index),
			strconv.Itoa(record.Dealer),
			strconv.Itoa(record.Taker),
			strconv.Itoa(record.Partner),
			record.Contract.String(),
			formatScores(record.Scores),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write deal record row: %w", err)
		}
	}

	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatScores(scores []int) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, "|")
}
