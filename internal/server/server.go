package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-saju/internal/config"
)

// BuildFunc renders the feed for the given instant.
type BuildFunc func(now time.Time) ([]byte, error)

// cacheItem stores the rendered feed and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// FeedServer publishes an iCalendar feed over HTTP and rebuilds it on a cron schedule.
type FeedServer struct {
	// cache is read on every request and replaced only on refresh.
	cache atomic.Pointer[cacheItem]

	Port     string
	Schedule string    // cron spec, e.g. "@daily"
	Build    BuildFunc // Optional. Without it the feed is only set through Update.
	Now      func() time.Time
}

// NewFeedServer creates a server that rebuilds its feed with build on schedule.
func NewFeedServer(port, schedule string, build BuildFunc) *FeedServer {
	return &FeedServer{
		Port:     port,
		Schedule: schedule,
		Build:    build,
		Now:      time.Now,
	}
}

// Start builds the feed, starts the refresh schedule and serves HTTP until the
// context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	if s.Build != nil {
		if err := s.Refresh(); err != nil {
			// Keep serving 503 until the next scheduled refresh succeeds.
			slog.Error(config.ErrFeedBuild,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err)
		}

		scheduler := cron.New()
		if _, err := scheduler.AddFunc(s.Schedule, s.scheduledRefresh); err != nil {
			return fmt.Errorf("%s: %w", config.ErrCronSchedule, err)
		}
		scheduler.Start()
		slog.Debug(config.MsgWorkerStart,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeySchedule, s.Schedule)
		defer func() {
			<-scheduler.Stop().Done()
			slog.Debug(config.MsgWorkerStop, config.LogKeyComponent, config.CompWorker)
		}()
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleFeedRequest)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
			config.LogKeySchedule, s.Schedule,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Refresh rebuilds the feed and swaps it into the cache.
func (s *FeedServer) Refresh() error {
	if s.Build == nil {
		return errors.New(config.ErrFeedBuild)
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	slog.Info(config.MsgFeedRefresh,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyYear, now.Year(),
	)
	data, err := s.Build(now)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrFeedBuild, err)
	}
	s.Update(data)
	return nil
}

func (s *FeedServer) scheduledRefresh() {
	if err := s.Refresh(); err != nil {
		slog.Error(config.ErrFeedBuild,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
	}
}

// Update atomically replaces the served content.
func (s *FeedServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleFeedRequest serves the ICS content with HTTP caching support.
func (s *FeedServer) handleFeedRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		clientTime, err1 := time.Parse(http.TimeFormat, since)
		serverTime, err2 := time.Parse(http.TimeFormat, item.lastModified)
		if err1 == nil && err2 == nil && !serverTime.After(clientTime) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
