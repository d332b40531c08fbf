package integrationtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/captionmirror/transcript"
)

// meeting is a caption window that grows and scrolls as people talk.
var meeting = []string{
	"good morning everyone and welcome to the weekly sync",
	"good morning everyone and welcome to the weekly sync today we cover",
	"welcome to the weekly sync today we cover the release plan and hiring",
	"the release plan and hiring and then a short demo from the platform team",
}

const meetingHistory = "good morning everyone and welcome to the weekly sync today we cover " +
	"the release plan and hiring and then a short demo from the platform team"

// captionFeed serves whatever caption text the test last set.
type captionFeed struct {
	mu   sync.Mutex
	text string
}

func (f *captionFeed) set(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
}

func (f *captionFeed) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(f.text + "\r\n"))
}

func newCaptionFeed(t *testing.T) (*captionFeed, string) {
	t.Helper()
	feed := &captionFeed{}
	srv := httptest.NewServer(feed)
	t.Cleanup(srv.Close)
	return feed, srv.URL
}

func newStore(t *testing.T) *transcript.FileStore {
	t.Helper()
	store, err := transcript.NewFileStore(transcript.StoreConfig{BaseDir: filepath.Join(t.TempDir(), "data")})
	require.NoError(t, err)
	return store
}

func decodeJSON(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

func transcriptFilter() transcript.ListFilter {
	return transcript.ListFilter{Reason: transcript.EndReasonCleared}
}
