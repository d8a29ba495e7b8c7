package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"mages-tower/internal/tower"
)

// RunRecord summarises one finished tempo.
type RunRecord struct {
	ID         string    `json:"id"`
	Tempo      int       `json:"tempo"` // the tempo that was finished
	TopFloor   int       `json:"topFloor"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	DurationMS int64     `json:"durationMs"`
	Sprint     bool      `json:"sprint"`
}

func newRunRecord(at time.Time, d tower.TempoAdvancedData) RunRecord {
	return RunRecord{
		ID:         uuid.NewString(),
		Tempo:      d.From,
		TopFloor:   d.TopFloor,
		StartedAt:  d.StartedAt,
		FinishedAt: at,
		DurationMS: d.Elapsed.Milliseconds(),
		Sprint:     d.Sprint,
	}
}

// saveRunLog appends rec as a single JSON line to dir/runs.jsonl.
// An empty dir disables the log.
func saveRunLog(dir string, rec RunRecord) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}
