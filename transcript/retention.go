package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// RetentionConfig controls which saved transcripts Prune removes.
type RetentionConfig struct {
	// MaxAge removes transcripts that ended longer ago than this.
	MaxAge time.Duration

	// KeepMin is the number of most recent transcripts kept regardless of age.
	KeepMin int

	// KeepManual keeps transcripts saved explicitly by the user.
	KeepManual bool
}

// DefaultRetentionConfig keeps a month of transcripts and at least 20.
func DefaultRetentionConfig() RetentionConfig {
	return RetentionConfig{
		MaxAge:     30 * 24 * time.Hour,
		KeepMin:    20,
		KeepManual: true,
	}
}

// PruneResult summarizes a Prune run.
type PruneResult struct {
	Deleted    []string `json:"deleted"`
	Kept       []string `json:"kept"`
	Errors     []string `json:"errors,omitempty"`
	SpaceSaved int64    `json:"spaceSaved"`
}

// Prune removes expired transcripts. With dryRun nothing is deleted but the
// result lists what would be.
func (s *FileStore) Prune(cfg RetentionConfig, now time.Time, dryRun bool) (*PruneResult, error) {
	metas, err := s.List(ListFilter{})
	if err != nil {
		return nil, err
	}

	// Oldest first.
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].EndedAt.Before(metas[j].EndedAt)
	})

	result := &PruneResult{Deleted: []string{}, Kept: []string{}}
	threshold := now.Add(-cfg.MaxAge)
	removed := 0

	for _, m := range metas {
		switch {
		case cfg.KeepManual && m.Reason == EndReasonManual,
			len(metas)-removed-1 < cfg.KeepMin,
			cfg.MaxAge <= 0 || !m.EndedAt.Before(threshold):
			result.Kept = append(result.Kept, m.ID)
			continue
		}

		dir, err := recordDir(s.baseDir, m.ID)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		size := dirSize(dir)
		if !dryRun {
			if err := s.Delete(m.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("delete %s: %v", m.ID, err))
				continue
			}
		}
		result.Deleted = append(result.Deleted, m.ID)
		result.SpaceSaved += size
		removed++
	}

	return result, nil
}

func dirSize(path string) int64 {
	var size int64
	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}
