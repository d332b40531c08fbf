package transcript

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Searcher provides search capabilities over saved transcripts
type Searcher struct {
	store  Manager
	logger *slog.Logger
}

// NewSearcher creates a searcher over store
func NewSearcher(store Manager) *Searcher {
	return &Searcher{store: store, logger: slog.Default()}
}

// SearchOptions configures content search
type SearchOptions struct {
	CaseSensitive bool
	MaxResults    int
	Context       int // characters of context on each side of a match
	Filter        ListFilter
}

// SearchResult represents a search match
type SearchResult struct {
	ID      string `json:"id"`
	Offset  int    `json:"offset"`
	Match   string `json:"match"`
	Snippet string `json:"snippet"`
}

// SearchContent scans every saved transcript for query.
func (s *Searcher) SearchContent(query string, opts SearchOptions) ([]SearchResult, error) {
	if query == "" {
		return nil, nil
	}

	metas, err := s.store.List(opts.Filter)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for _, meta := range metas {
		rec, err := s.store.Load(meta.ID)
		if err != nil {
			s.logger.Warn("skipping unreadable transcript", "id", meta.ID, "error", err)
			continue
		}

		for _, off := range FindAll(rec.History, query, opts.CaseSensitive) {
			results = append(results, SearchResult{
				ID:      rec.ID,
				Offset:  off,
				Match:   rec.History[off : off+matchLen(rec.History[off:], query, opts.CaseSensitive)],
				Snippet: snippet(rec.History, off, len(query), opts.Context),
			})
			if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
				return results, nil
			}
		}
	}

	return results, nil
}

// FindAll returns the byte offsets of every non-overlapping occurrence of
// query in history.
func FindAll(history, query string, caseSensitive bool) []int {
	if query == "" {
		return nil
	}

	haystack, needle := history, query
	if !caseSensitive {
		haystack = foldRunes([]rune(history))
		needle = foldRunes([]rune(query))
	}

	var offsets []int
	start := 0
	for {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			break
		}
		pos := start + idx
		offsets = append(offsets, mapOffset(history, haystack, pos, caseSensitive))
		start = pos + len(needle)
	}
	return offsets
}

// FindLast returns the byte offset of the last occurrence of query in
// history, or -1.
func FindLast(history, query string, caseSensitive bool) int {
	all := FindAll(history, query, caseSensitive)
	if len(all) == 0 {
		return -1
	}
	return all[len(all)-1]
}

// mapOffset converts a byte offset in the folded text back to the original.
func mapOffset(original, folded string, pos int, caseSensitive bool) int {
	if caseSensitive {
		return pos
	}
	runes := utf8.RuneCountInString(folded[:pos])
	off := 0
	for i := 0; i < runes; i++ {
		_, size := utf8.DecodeRuneInString(original[off:])
		off += size
	}
	return off
}

// matchLen returns the byte length in s of a match for query at its start.
func matchLen(s, query string, caseSensitive bool) int {
	if caseSensitive {
		return len(query)
	}
	n := utf8.RuneCountInString(query)
	off := 0
	for i := 0; i < n && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}

func snippet(history string, off, n, context int) string {
	if context <= 0 {
		context = 40
	}
	start := max(0, off-context)
	end := min(len(history), off+n+context)
	for start > 0 && !utf8.RuneStart(history[start]) {
		start--
	}
	for end < len(history) && !utf8.RuneStart(history[end]) {
		end++
	}

	s := strings.ReplaceAll(history[start:end], "\n", " ")
	if start > 0 {
		s = "..." + s
	}
	if end < len(history) {
		s += "..."
	}
	return s
}
