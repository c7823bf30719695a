// Package view renders the board's server-side HTML pages.
//
// Every page is parsed together with the shared layout and partials from the
// embedded templates directory. Pages are executed into a buffer first so a
// template failure still produces a clean 500 response.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"project-board/internal/domain/entity"
)

//go:embed templates
var templateFS embed.FS

// Page names accepted by Render.
const (
	PageArticleIndex   = "articles/index"
	PageArticleDetail  = "articles/detail"
	PageArticleSearch  = "articles/search"
	PageArticleHashtag = "articles/search-hashtag"
	PageArticleForm    = "articles/form"
	PageLogin          = "login"
	PageError          = "error"
)

var pages = []string{
	PageArticleIndex,
	PageArticleDetail,
	PageArticleSearch,
	PageArticleHashtag,
	PageArticleForm,
	PageLogin,
	PageError,
}

// Viewer is the signed-in user as seen by templates. The zero value is anonymous.
type Viewer struct {
	UserID   string
	Nickname string
}

// SignedIn reports whether a user is present.
func (v Viewer) SignedIn() bool { return v.UserID != "" }

// Name returns the nickname, falling back to the user id.
func (v Viewer) Name() string {
	if v.Nickname != "" {
		return v.Nickname
	}
	return v.UserID
}

// Base carries the fields the layout reads. Page models embed it.
type Base struct {
	PageTitle string
	Viewer    Viewer
}

// ErrorPage is the model of the error page.
type ErrorPage struct {
	Base
	Status  int
	Message string
}

// Renderer executes the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

// New parses every page from the embedded templates.
func New(logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}

	md := NewMarkdown()
	funcs := template.FuncMap{
		"markdown":    md.Render,
		"formatTime":  formatTime,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"searchTypes": entity.SearchTypes,
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages)), logger: logger}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(sub,
			"layout.html",
			"partials/*.html",
			name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// MustNew is New for program start-up and tests.
func MustNew(logger *slog.Logger) *Renderer {
	r, err := New(logger)
	if err != nil {
		panic(err)
	}
	return r
}

// Render writes page name with data and the given status.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		r.logger.Error("unknown view", slog.String("view", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		r.logger.Error("render view failed",
			slog.String("view", name),
			slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Error renders the error page. message is shown to the user verbatim.
func (r *Renderer) Error(w http.ResponseWriter, viewer Viewer, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	r.Render(w, status, PageError, ErrorPage{
		Base:    Base{PageTitle: http.StatusText(status), Viewer: viewer},
		Status:  status,
		Message: message,
	})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
