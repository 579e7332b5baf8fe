package main

import (
	"context"
	"strings"

	"github.com/goware/urlx"
	"github.com/labstack/echo/v4"
)

const (
	msgEnterURL        = "Please enter a YouTube video URL."
	msgNoStreams       = "Unable to find any video streams."
	msgDownloadFailed  = "Failed to download video."
	downloadButtonText = "Download Video"
	videoMIMEType      = "video/mp4"
)

type State int

const (
	StateIdle State = iota
	StateResolving
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

type NoticeLevel string

const (
	NoticeError   NoticeLevel = "error"
	NoticeSuccess NoticeLevel = "success"
)

type Notice struct {
	Level NoticeLevel
	Text  string
}

// Download is what the page needs to offer a finished video.
type Download struct {
	Token    string
	Filename string
	Size     int64
}

// Session is the state of one form submission. It doubles as the Reporter
// handed to the downloader.
type Session struct {
	URL      string
	State    State
	Notices  []Notice
	Download *Download
	Activity string

	onBusy func(activity string)
}

func (s *Session) Error(msg string) {
	s.Notices = append(s.Notices, Notice{Level: NoticeError, Text: msg})
}

func (s *Session) Success(msg string) {
	s.Notices = append(s.Notices, Notice{Level: NoticeSuccess, Text: msg})
}

func (s *Session) Busy(msg string) func() {
	s.Activity = msg
	if s.onBusy != nil {
		s.onBusy(msg)
	}
	return func() { s.Activity = "" }
}

// Shell drives a submission through resolution and fetch.
type Shell struct {
	downloader *Downloader
	handoffs   *HandoffStore
	logger     echo.Logger
}

func NewShell(downloader *Downloader, handoffs *HandoffStore, logger echo.Logger) *Shell {
	return &Shell{
		downloader: downloader,
		handoffs:   handoffs,
		logger:     logger,
	}
}

// Submit runs one submission. onBusy, when not nil, is called as soon as a
// long running step starts so the caller can show it before the step ends.
func (sh *Shell) Submit(ctx context.Context, rawURL string, onBusy func(activity string)) *Session {
	s := &Session{URL: rawURL, State: StateIdle, onBusy: onBusy}
	if rawURL == "" {
		s.Error(msgEnterURL)
		return s
	}

	url := normalizeURL(rawURL)
	sh.logger.Debugf("Normalized URL: %s", url)

	s.State = StateResolving
	resolution := sh.downloader.HighestResolution(ctx, url, s)
	if resolution == "" {
		s.Error(msgNoStreams)
		s.State = StateFailed
		return s
	}

	video, filename := sh.downloader.Fetch(ctx, url, resolution, s)
	if video == nil {
		s.Error(msgDownloadFailed)
		s.State = StateFailed
		return s
	}

	s.Download = &Download{
		Token:    sh.handoffs.Store(filename, video),
		Filename: filename,
		Size:     video.Size(),
	}
	sh.logger.Debugf("%d downloads waiting to be collected", sh.handoffs.Len())
	s.State = StateReady
	return s
}

// normalizeURL tidies URL-shaped input. Anything else, such as a bare video
// ID, is passed through for the catalog to judge.
func normalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, "/") {
		return trimmed
	}
	u, err := urlx.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	normalized, err := urlx.Normalize(u)
	if err != nil {
		return trimmed
	}
	return normalized
}
