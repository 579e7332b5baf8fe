package main

import (
	"html/template"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
)

const pageTitle = "YouTube Video Downloader"

const pageTemplate = `{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { font-family: system-ui, sans-serif; display: grid; place-items: center; min-height: 100vh; margin: 0; background: #fafafa; color: #222; }
        .container { width: 90%; max-width: 560px; }
        .card { border: 1px solid #ddd; border-radius: 8px; padding: 1.25rem; background: #fff; }
        input { width: 100%; padding: 10px; margin: 8px 0; border: 1px solid #ccc; border-radius: 6px; box-sizing: border-box; }
        button, a.button { display: block; width: 100%; padding: 10px; border: 1px solid #ccc; border-radius: 6px; background: #fff; text-align: center; text-decoration: none; color: #222; font-size: 1rem; cursor: pointer; box-sizing: border-box; }
        button:disabled { color: #888; cursor: progress; }
        .notice { margin-top: 12px; padding: 10px 14px; border-radius: 6px; }
        .error { background: #fdecea; color: #b3261e; }
        .success { background: #e6f4ea; color: #1e6b34; }
        .busy { background: #eef3fb; color: #1a4d8f; }
        .download { margin-top: 12px; }
    </style>
</head>
<body>
<div class="container">
    <h1>{{.Title}}</h1>
    <form class="card" method="post" action="/" id="form">
        <label for="url">Enter YouTube Video URL:</label>
        <input type="text" id="url" name="url" value="{{.Session.URL}}" autocomplete="off">
        <button type="submit" id="submit">Submit URL</button>
    </form>
    <div class="notice busy" id="pending" hidden>Looking up video...</div>
{{end}}
{{define "busy"}}    <div class="notice busy">{{.}}</div>
{{end}}
{{define "tail"}}    {{range .Session.Notices}}<div class="notice {{.Level}}">{{.Text}}</div>
    {{end}}
    {{with .Session.Download}}<div class="download">
        <a class="button" href="/download/{{.Token}}" download="{{.Filename}}">{{$.DownloadLabel}} ({{$.Size}})</a>
    </div>{{end}}
</div>
<script>
    document.querySelectorAll('.busy').forEach(function (el) { el.hidden = true; });
    document.getElementById('form').onsubmit = function () {
        document.getElementById('submit').disabled = true;
        document.getElementById('pending').hidden = false;
    };
</script>
</body>
</html>
{{end}}
{{define "index"}}{{template "head" .}}{{template "tail" .}}{{end}}`

type pageData struct {
	Title         string
	DownloadLabel string
	Size          string
	Session       *Session
}

func newPageData(s *Session) pageData {
	d := pageData{
		Title:         pageTitle,
		DownloadLabel: downloadButtonText,
		Session:       s,
	}
	if s.Download != nil {
		d.Size = humanize.Bytes(uint64(s.Download.Size))
	}
	return d
}

// pageRenderer renders the single form page for echo.
type pageRenderer struct {
	templates *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{
		templates: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

func (r *pageRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
