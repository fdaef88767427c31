// Package scores persists finished-game results per game mode.
package scores

import (
	"context"
	"errors"
	"sort"
	"time"

	"blockblast/src/base"

	"github.com/google/uuid"
)

// DefaultCap is how many records each mode keeps.
const DefaultCap = 10

var ErrBadRecord = errors.New("scores: invalid record")

type Record struct {
	ID         uuid.UUID     `json:"id"`
	Mode       base.GameMode `json:"mode"`
	Score      int           `json:"score"`
	Date       time.Time     `json:"date"`
	Placements int           `json:"placements"`
	Lines      int           `json:"lines"`
}

// NewRecord stamps a fresh ID and the current time.
func NewRecord(mode base.GameMode, score, placements, lines int) Record {
	return Record{
		ID:         uuid.New(),
		Mode:       mode,
		Score:      score,
		Date:       time.Now(),
		Placements: placements,
		Lines:      lines,
	}
}

func (r Record) validate() error {
	if !r.Mode.IsValid() || r.Score < 0 || r.Placements < 0 || r.Lines < 0 {
		return ErrBadRecord
	}
	return nil
}

// Store is the high-score collaborator of a game.
type Store interface {
	Append(ctx context.Context, r Record) error
	Top(ctx context.Context, mode base.GameMode, k int) ([]Record, error)
}

// insert adds r keeping the list sorted by score, newer first on ties, and
// trimmed to limit entries.
func insert(list []Record, r Record, limit int) []Record {
	list = append(list, r)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score == list[j].Score {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].Score > list[j].Score
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}

func head(list []Record, k int) []Record {
	if k <= 0 || k > len(list) {
		k = len(list)
	}
	out := make([]Record, k)
	copy(out, list[:k])
	return out
}
