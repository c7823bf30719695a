package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"project-board/internal/dto"
	"project-board/internal/handler/http/requestid"
	"project-board/internal/handler/http/view"
	"project-board/internal/observability/metrics"
	accountUC "project-board/internal/usecase/account"
)

// Authenticator checks credentials. *account.Service implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, userID, password string) (dto.UserAccountDTO, error)
}

// Viewer converts the request principal into the view's viewer.
func Viewer(ctx context.Context) view.Viewer {
	p, ok := FromContext(ctx)
	if !ok {
		return view.Viewer{}
	}
	return view.Viewer{UserID: p.UserID, Nickname: p.Nickname}
}

// LoginHandler serves the login form and issues session cookies.
type LoginHandler struct {
	Accounts Authenticator
	Issuer   *TokenIssuer
	Limiter  *LoginLimiter
	Cookie   CookieConfig
	View     *view.Renderer
	Logger   *slog.Logger
}

// Register mounts GET/POST /login and POST /logout.
func Register(mux *http.ServeMux, h LoginHandler) {
	mux.HandleFunc("GET /login", h.Form)
	mux.HandleFunc("POST /login", h.Submit)
	mux.HandleFunc("POST /logout", h.Logout)
}

func (h LoginHandler) logger(r *http.Request) *slog.Logger {
	l := h.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With(slog.String("request_id", requestid.FromContext(r.Context())))
}

// Form renders the login page. Signed-in users go straight to the board.
func (h LoginHandler) Form(w http.ResponseWriter, r *http.Request) {
	if _, ok := FromContext(r.Context()); ok {
		http.Redirect(w, r, "/articles", http.StatusFound)
		return
	}
	h.View.Render(w, http.StatusOK, view.PageLogin, view.Login{
		Base: view.Base{PageTitle: "Log in"},
		Next: SafeNext(r.URL.Query().Get("next")),
	})
}

// Submit checks the posted credentials. Success sets the session cookie and
// redirects to next; failure re-renders the form with 401, or 429 when the
// client is throttled.
func (h LoginHandler) Submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := h.logger(r)
	defer func() { RecordLoginDuration(time.Since(start).Seconds()) }()

	if err := r.ParseForm(); err != nil {
		h.View.Error(w, view.Viewer{}, http.StatusBadRequest, "malformed form")
		return
	}
	userID := strings.TrimSpace(r.PostForm.Get("userId"))
	password := r.PostForm.Get("password")
	next := SafeNext(r.PostForm.Get("next"))

	model := view.Login{Base: view.Base{PageTitle: "Log in"}, UserID: userID, Next: next}

	if h.Limiter != nil && !h.Limiter.Allow(ClientIP(r)) {
		metrics.RecordLoginAttempt("throttled")
		logger.Warn("login throttled", slog.String("client_ip", ClientIP(r)))
		model.Error = "too many login attempts, try again later"
		h.View.Render(w, http.StatusTooManyRequests, view.PageLogin, model)
		return
	}

	account, err := h.Accounts.Authenticate(r.Context(), userID, password)
	if err != nil {
		if errors.Is(err, accountUC.ErrInvalidCredentials) {
			metrics.RecordLoginAttempt("failure")
			logger.Info("login rejected", slog.String("user_id", userID))
			model.Error = accountUC.ErrInvalidCredentials.Error()
			h.View.Render(w, http.StatusUnauthorized, view.PageLogin, model)
			return
		}
		metrics.RecordLoginAttempt("error")
		logger.Error("login failed", slog.Any("error", err))
		h.View.Error(w, view.Viewer{}, http.StatusInternalServerError, "")
		return
	}

	token, exp, err := h.Issuer.Issue(Principal{UserID: account.UserID, Nickname: account.Nickname})
	if err != nil {
		metrics.RecordLoginAttempt("error")
		logger.Error("issue session token failed", slog.Any("error", err))
		h.View.Error(w, view.Viewer{}, http.StatusInternalServerError, "")
		return
	}

	metrics.RecordLoginAttempt("success")
	logger.Info("login succeeded", slog.String("user_id", account.UserID))
	h.Cookie.set(w, token, exp)
	http.Redirect(w, r, next, http.StatusFound)
}

// Logout clears the session cookie and returns to the board.
func (h LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Cookie.clear(w)
	http.Redirect(w, r, "/articles", http.StatusFound)
}
