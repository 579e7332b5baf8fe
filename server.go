package main

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type server struct {
	shell    *Shell
	handoffs *HandoffStore
	pages    *pageRenderer
}

func newServer(shell *Shell, handoffs *HandoffStore, logger echo.Logger) *echo.Echo {
	s := &server{shell: shell, handoffs: handoffs, pages: newPageRenderer()}

	e := echo.New()
	e.HideBanner = true
	e.Logger = logger
	e.Renderer = s.pages
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.GET("/", s.handleIndex)
	e.POST("/", s.handleSubmit)
	e.GET("/download/:token", s.handleDownload)
	e.GET("/healthz", handleHealth)
	return e
}

func (s *server) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "index", newPageData(&Session{State: StateIdle}))
}

// handleSubmit streams the page: the form goes out first, a busy line follows
// once the download starts, and the outcome closes the page.
func (s *server) handleSubmit(c echo.Context) error {
	rawURL := c.FormValue("url")
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	res.WriteHeader(http.StatusOK)
	if err := s.pages.Render(res, "head", newPageData(&Session{URL: rawURL}), c); err != nil {
		return err
	}
	res.Flush()

	session := s.shell.Submit(c.Request().Context(), rawURL, func(activity string) {
		if err := s.pages.Render(res, "busy", activity, c); err != nil {
			c.Echo().Logger.Warnf("Writing busy notice: %s", err.Error())
			return
		}
		res.Flush()
	})
	c.Echo().Logger.Debugf("Submission of %q ended %s", session.URL, session.State)
	return s.pages.Render(res, "tail", newPageData(session), c)
}

func (s *server) handleDownload(c echo.Context) error {
	entry, ok := s.handoffs.Take(c.Param("token"))
	if !ok {
		return c.String(http.StatusNotFound, "Download expired or already collected")
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": entry.Filename})
	if disposition == "" {
		disposition = "attachment"
	}
	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, disposition)
	header.Set(echo.HeaderContentLength, strconv.FormatInt(entry.Video.Size(), 10))
	return c.Stream(http.StatusOK, videoMIMEType, entry.Video)
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
