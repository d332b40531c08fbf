package integrationtest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/captionmirror/auth"
	captionhttp "github.com/randalmurphal/captionmirror/http"
	"github.com/randalmurphal/captionmirror/hotkey"
	"github.com/randalmurphal/captionmirror/server"
	"github.com/randalmurphal/captionmirror/session"
	"github.com/randalmurphal/captionmirror/source"
	"github.com/randalmurphal/captionmirror/testutil"
)

// TestControlServerDrivesSession polls an HTTP caption feed and drives the
// session through the control API the way a remote hotkey daemon would.
func TestControlServerDrivesSession(t *testing.T) {
	ctx := testutil.TestContext(t)
	feed, feedURL := newCaptionFeed(t)
	store := newStore(t)
	blocking := testutil.NewBlockingDeliverer()

	sess, err := session.New(session.Config{
		Source:       source.NewHTTPSource(feedURL, ""),
		SourceName:   source.KindHTTP,
		Deliverer:    blocking,
		Store:        store,
		PollInterval: 5 * time.Millisecond,
	})
	require.NoError(t, err)
	go func() { _ = sess.Run(ctx) }()

	dispatcher := hotkey.NewDispatcher()
	require.NoError(t, sess.BindHotkeys(ctx, dispatcher,
		hotkey.MustParse(hotkey.DefaultCopy), hotkey.MustParse(hotkey.DefaultClear)))

	jwtCfg := auth.JWTConfig{Secret: []byte(strings.Repeat("s", 40)), Issuer: "captionmirror"}
	token, err := auth.GenerateToken(jwtCfg, "stream-deck", auth.ScopeControl)
	require.NoError(t, err)

	srv := httptest.NewServer(server.New(sess, server.Config{JWT: jwtCfg, Dispatcher: dispatcher}).Handler())
	t.Cleanup(srv.Close)

	client := captionhttp.NewClient(captionhttp.ClientConfig{
		BaseURL:     srv.URL,
		ServiceName: "control",
		MaxRetries:  1,
		BeforeRequest: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		},
	})

	history := func() server.StateResponse {
		var st server.StateResponse
		resp, err := client.Request(ctx, http.MethodGet, "/history", nil, nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, decodeJSON(resp, &st))
		return st
	}

	for _, caption := range meeting {
		feed.set(caption)
		testutil.Eventually(t, 2*time.Second, func() bool {
			return strings.HasSuffix(history().History, caption)
		})
	}
	assert.Equal(t, meetingHistory, history().History)

	hiring := strings.Index(meetingHistory, "hiring")
	var st server.StateResponse
	require.NoError(t, client.Post(ctx, "/anchor", map[string]int{"offset": hiring}, &st))
	assert.Equal(t, hiring, st.Anchor)
	assert.True(t, st.UserAnchor)

	// A copy pressed through the hotkey route blocks in delivery; a second
	// copy through /copy is dropped while it is in flight.
	var keyResp struct {
		Action  string `json:"action"`
		Handled bool   `json:"handled"`
	}
	require.NoError(t, client.Post(ctx, "/keys", map[string]string{"key": "ctrl+shift+a"}, &keyResp))
	assert.True(t, keyResp.Handled)
	assert.Equal(t, "copy", keyResp.Action)
	<-blocking.Entered

	var copyResp server.CopyResponse
	require.NoError(t, client.Post(ctx, "/copy", nil, &copyResp))
	assert.True(t, copyResp.Skipped)
	assert.True(t, history().CopyInFlight)

	blocking.Release()
	testutil.Eventually(t, 2*time.Second, func() bool {
		return len(blocking.Texts()) == 1
	})
	assert.Equal(t, []string{meetingHistory[hiring:]}, blocking.Texts())

	require.NoError(t, client.Post(ctx, "/clear", nil, &st))
	assert.Empty(t, st.History)

	metas, err := store.List(transcriptFilter())
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, sess.ID(), metas[0].SessionID)
	assert.Equal(t, source.KindHTTP, metas[0].Source)
}

func TestControlServerRejectsReadOnlyToken(t *testing.T) {
	ctx := testutil.TestContext(t)
	sess, err := session.New(session.Config{})
	require.NoError(t, err)

	jwtCfg := auth.JWTConfig{Secret: []byte(strings.Repeat("k", 32))}
	token, err := auth.GenerateToken(jwtCfg, "viewer", auth.ScopeRead)
	require.NoError(t, err)

	srv := httptest.NewServer(server.New(sess, server.Config{JWT: jwtCfg}).Handler())
	t.Cleanup(srv.Close)

	client := captionhttp.NewClient(captionhttp.ClientConfig{
		BaseURL:    srv.URL,
		MaxRetries: 1,
		BeforeRequest: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		},
	})

	err = client.Post(ctx, "/clear", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, captionhttp.ErrForbidden)
	assert.Contains(t, err.Error(), "insufficient scope")
}
