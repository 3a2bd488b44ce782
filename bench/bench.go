// Package bench runs batches of simulated matches and writes their
// throughput/outcome records to CSV, the adaptation of the teacher's
// experiments/metrics speedup-comparison harness from a Risk-playing
// agent benchmark to this package's match-level Result/Decisions shape.
package bench

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"scrimmage/game"
	"scrimmage/simulator"
)

// GameRecord is one completed match's outcome plus timing, the
// generalization of the teacher's GameRecord (which wraps a single Risk
// game's winner/duration) to this ruleset's Result shape.
type GameRecord struct {
	ID         int
	HomePolicy string
	AwayPolicy string
	Winner     string
	Decided    bool
	HomeScore  int
	AwayScore  int
	Decisions  int
	Duration   time.Duration
}

// RunMatches runs n matches, one per call to build, and returns their
// records in completion order. build receives the 0-based match index
// so callers can vary seeds/rosters/policies across the batch.
func RunMatches(n int, homeName, awayName string, build func(id int) *simulator.Match) []GameRecord {
	records := make([]GameRecord, 0, n)
	for i := 0; i < n; i++ {
		match := build(i)
		result, duration := simulator.RunTimed(match)

		records = append(records, GameRecord{
			ID:         i,
			HomePolicy: homeName,
			AwayPolicy: awayName,
			Winner:     winnerLabel(result),
			Decided:    result.Decided,
			HomeScore:  result.HomeScore,
			AwayScore:  result.AwayScore,
			Decisions:  result.Decisions,
			Duration:   duration,
		})
	}
	return records
}

func winnerLabel(result simulator.Result) string {
	if !result.Decided {
		return "draw"
	}
	if result.Winner == game.Home {
		return "home"
	}
	return "away"
}

// Writer persists batch results to a timestamped directory under
// baseDir, mirroring the teacher's per-run subfolder convention.
type Writer struct {
	dir string
}

// NewWriter creates a fresh timestamped subdirectory of baseDir
// ("bench" if empty) to hold this run's CSV output.
func NewWriter(baseDir string) (*Writer, error) {
	if baseDir == "" {
		baseDir = "bench"
	}
	dir := filepath.Join(baseDir, time.Now().UTC().Format(time.RFC3339))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("bench: failed to create output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteGameRecords writes records to game_records.csv in the writer's
// output directory.
func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.dir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bench: failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "home_policy", "away_policy", "winner", "decided", "home_score", "away_score", "decisions", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("bench: failed to write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.ID),
			r.HomePolicy,
			r.AwayPolicy,
			r.Winner,
			strconv.FormatBool(r.Decided),
			strconv.Itoa(r.HomeScore),
			strconv.Itoa(r.AwayScore),
			strconv.Itoa(r.Decisions),
			r.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("bench: failed to write row: %w", err)
		}
	}
	return nil
}

// Throughput reports decisions resolved per wall-clock second across a
// batch of records, the metric the original speedup harness compared
// goroutine counts by.
func Throughput(records []GameRecord) float64 {
	var decisions int
	var total time.Duration
	for _, r := range records {
		decisions += r.Decisions
		total += r.Duration
	}
	if total == 0 {
		return 0
	}
	return float64(decisions) / total.Seconds()
}
