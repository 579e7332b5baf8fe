package main

import (
	"context"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

type fakeCatalog struct {
	video     *Video
	lookupErr error
	streamErr error
	payloads  map[int]string
	lookups   int
	opened    []Stream
}

func (c *fakeCatalog) Lookup(ctx context.Context, url string) (*Video, error) {
	c.lookups++
	if c.lookupErr != nil {
		return nil, c.lookupErr
	}
	return c.video, nil
}

func (c *fakeCatalog) Stream(ctx context.Context, video *Video, stream Stream) (io.ReadCloser, error) {
	c.opened = append(c.opened, stream)
	if c.streamErr != nil {
		return nil, c.streamErr
	}
	return io.NopCloser(strings.NewReader(c.payloads[stream.Itag])), nil
}

// sampleCatalog lists progressive MP4 streams at 360p, 720p and 1080p plus
// some that must never be picked.
func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{
		video: &Video{
			Title: `Live: "Best" of 2024 <Remastered> a/b\c|d?e*`,
			Streams: StreamList{
				{Itag: 18, Resolution: "360p", Container: "mp4", Progressive: true},
				{Itag: 137, Resolution: "2160p", Container: "mp4", Progressive: false},
				{Itag: 22, Resolution: "720p", Container: "mp4", Progressive: true},
				{Itag: 43, Resolution: "1440p", Container: "webm", Progressive: true},
				{Itag: 37, Resolution: "1080p", Container: "mp4", Progressive: true},
			},
		},
		payloads: map[int]string{
			18: "video-360",
			22: "video-720",
			37: "video-1080",
		},
	}
}

type recordingReporter struct {
	errors    []string
	successes []string
	busy      []string
	active    bool
}

func (r *recordingReporter) Error(msg string)   { r.errors = append(r.errors, msg) }
func (r *recordingReporter) Success(msg string) { r.successes = append(r.successes, msg) }

func (r *recordingReporter) Busy(msg string) func() {
	r.busy = append(r.busy, msg)
	r.active = true
	return func() { r.active = false }
}
