package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-saju/internal/calendar"
	"github.com/tartampluch/go-saju/internal/config"
)

// feedDay is the instant the solar-term feeds under test are built for.
var feedDay = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// termFeed builds the rolling solar-term feed around at.
func termFeed(t *testing.T, at time.Time) []byte {
	t.Helper()
	data, err := calendar.RollingTermFeed(at)
	require.NoError(t, err)
	return data
}

// newTermServer returns a server that builds the real solar-term feed on a fixed clock.
func newTermServer(port string) *FeedServer {
	srv := NewFeedServer(port, config.DefaultFeedCron, calendar.RollingTermFeed)
	srv.Now = func() time.Time { return feedDay }
	return srv
}

func get(t *testing.T, srv *FeedServer, header, value string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	srv.handleFeedRequest(w, req)
	return w.Result()
}

// -----------------------------------------------------------------------------
// Unit Tests (White-Box Testing of Handler Logic)
// -----------------------------------------------------------------------------

// TestHandler_ServingContent checks headers and body once the term feed is built.
func TestHandler_ServingContent(t *testing.T) {
	srv := newTermServer("0") // Port irrelevant for handler test
	require.NoError(t, srv.Refresh())

	resp := get(t, srv, "", "")
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, termFeed(t, feedDay), body)

	// Three years of 24 terms, 2024 through 2026.
	text := string(body)
	assert.Equal(t, 72, strings.Count(text, "BEGIN:VEVENT"))
	assert.Contains(t, text, "입춘 (立春)")
	assert.Contains(t, text, config.ICalCalName)
	assert.Contains(t, text, "DTSTART;VALUE=DATE:20260204")
}

// TestHandler_Caching verifies ETag (If-None-Match) and If-Modified-Since handling.
// A rebuild for the same day yields the same ETag, so clients keep their copy.
func TestHandler_Caching(t *testing.T) {
	srv := newTermServer("0")
	require.NoError(t, srv.Refresh())

	first := get(t, srv, "", "")
	_ = first.Body.Close()
	etag := first.Header.Get(config.HeaderETag)
	lastModified := first.Header.Get(config.HeaderLastModified)
	require.NotEmpty(t, etag, "Server must provide an ETag")
	require.NotEmpty(t, lastModified)

	require.NoError(t, srv.Refresh())

	resp := get(t, srv, config.HeaderIfNoneMatch, etag)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body, "Body must be empty on 304 Not Modified")

	since := get(t, srv, config.HeaderIfModifiedSince, time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
	_ = since.Body.Close()
	assert.Equal(t, http.StatusNotModified, since.StatusCode)

	// A new year changes the window and the ETag.
	srv.Now = func() time.Time { return feedDay.AddDate(1, 0, 0) }
	require.NoError(t, srv.Refresh())

	changed := get(t, srv, config.HeaderIfNoneMatch, etag)
	defer func() { _ = changed.Body.Close() }()
	assert.Equal(t, http.StatusOK, changed.StatusCode)
	assert.NotEqual(t, etag, changed.Header.Get(config.HeaderETag))
	body, _ = io.ReadAll(changed.Body)
	assert.Contains(t, string(body), "DTSTART;VALUE=DATE:20270204")
}

// TestHandler_MethodNotAllowed ensures strictly GET and HEAD are accepted.
func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := newTermServer("0")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	srv.handleFeedRequest(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow))
}

// TestHandler_Initializing verifies the 503 behavior before the first build.
func TestHandler_Initializing(t *testing.T) {
	srv := newTermServer("0")

	resp := get(t, srv, "", "")
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition swaps feeds of different years while readers hit the
// handler. Run this with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := newTermServer("0")
	feeds := [][]byte{
		termFeed(t, feedDay),
		termFeed(t, feedDay.AddDate(1, 0, 0)),
		termFeed(t, feedDay.AddDate(2, 0, 0)),
	}

	var wg sync.WaitGroup
	end := time.Now().Add(500 * time.Millisecond)

	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := id; time.Now().Before(end); i++ {
				srv.Update(feeds[i%len(feeds)])
				time.Sleep(time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				w := httptest.NewRecorder()
				srv.handleFeedRequest(w, httptest.NewRequest(http.MethodGet, "/", nil))

				switch w.Code {
				case http.StatusOK:
					if !strings.HasSuffix(w.Body.String(), "END:VCALENDAR\r\n") {
						t.Errorf("Partial feed served: %d bytes", w.Body.Len())
					}
				case http.StatusServiceUnavailable:
				default:
					t.Errorf("Unexpected status code during race test: %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

// TestServer_Lifecycle spins up the actual TCP listener to verify network binding
// and graceful shutdown logic.
func TestServer_Lifecycle(t *testing.T) {
	// Port is a string joined to the bind address, so a fixed high port is used.
	const port = "18099"

	// No builder: the feed only arrives through Update.
	srv := NewFeedServer(port, config.DefaultFeedCron, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + "/"

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	// 1. Initial state (503)
	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	// 2. Publish the term feed
	feed := termFeed(t, feedDay)
	srv.Update(feed)

	// 3. Served content (200)
	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, feed, body)

	// 4. Shutdown
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

// -----------------------------------------------------------------------------
// Refresh & Schedule
// -----------------------------------------------------------------------------

func TestRefresh_BuildsWithClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var got time.Time

	srv := NewFeedServer("0", config.DefaultFeedCron, func(now time.Time) ([]byte, error) {
		got = now
		return []byte("FEED"), nil
	})
	srv.Now = func() time.Time { return fixed }

	require.NoError(t, srv.Refresh())
	assert.Equal(t, fixed, got)

	w := httptest.NewRecorder()
	srv.handleFeedRequest(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FEED", w.Body.String())
}

func TestRefresh_BuildErrorKeepsPreviousFeed(t *testing.T) {
	fail := false
	srv := NewFeedServer("0", config.DefaultFeedCron, func(time.Time) ([]byte, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return []byte("V1"), nil
	})

	require.NoError(t, srv.Refresh())
	fail = true
	err := srv.Refresh()
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrFeedBuild)

	w := httptest.NewRecorder()
	srv.handleFeedRequest(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "V1", w.Body.String())
}

func TestRefresh_WithoutBuilder(t *testing.T) {
	assert.Error(t, NewFeedServer("0", config.DefaultFeedCron, nil).Refresh())
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	srv := NewFeedServer("0", config.DefaultFeedCron, nil)
	srv.Update([]byte("BEGIN:VCALENDAR"))

	w := httptest.NewRecorder()
	srv.handleFeedRequest(w, httptest.NewRequest(http.MethodHead, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.Bytes())
	assert.NotEmpty(t, w.Header().Get(config.HeaderETag))
}

func TestStart_InvalidSchedule(t *testing.T) {
	srv := NewFeedServer("18098", "not a schedule", func(time.Time) ([]byte, error) {
		return []byte("FEED"), nil
	})

	err := srv.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrCronSchedule)
}

func TestStart_RequiresPort(t *testing.T) {
	err := NewFeedServer("", config.DefaultFeedCron, nil).Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRequired)
}

func TestStart_ServesBuiltFeedImmediately(t *testing.T) {
	const port = "18097"

	srv := NewFeedServer(port, config.DefaultFeedCron, func(time.Time) ([]byte, error) {
		return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() { errChan <- srv.Start(ctx) }()

	url := "http://127.0.0.1:" + port + "/"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}
