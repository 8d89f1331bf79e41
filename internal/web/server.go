package web

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"instock/internal/session"
	"instock/internal/stockapi"
)

type Server struct {
	api       *stockapi.Client
	sessions  session.Store
	templates embed.FS
	mux       *http.ServeMux
	logger    *slog.Logger
}

func NewServer(api *stockapi.Client, sessions session.Store, tmpl embed.FS, logger *slog.Logger) *Server {
	s := &Server{
		api:       api,
		sessions:  sessions,
		templates: tmpl,
		mux:       http.NewServeMux(),
		logger:    logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/warehouses", http.StatusSeeOther)
	})

	s.mux.HandleFunc("GET /warehouses", s.handleListWarehouses)
	s.mux.HandleFunc("GET /warehouses/add", s.handleNewWarehouseForm)
	s.mux.HandleFunc("POST /warehouses/add", s.handleCreateWarehouse)
	s.mux.HandleFunc("GET /warehouses/{id}", s.handleWarehouseDetail)
	s.mux.HandleFunc("GET /warehouses/{id}/edit", s.handleEditWarehouseForm)
	s.mux.HandleFunc("POST /warehouses/{id}/edit", s.handleUpdateWarehouse)
	s.mux.HandleFunc("DELETE /warehouses/{id}", s.handleDeleteWarehouse)

	s.mux.HandleFunc("GET /inventory", s.handleListInventory)
	s.mux.HandleFunc("GET /inventory/add", s.handleNewInventoryForm)
	s.mux.HandleFunc("POST /inventory/add", s.handleCreateInventory)
	s.mux.HandleFunc("GET /inventory/{id}", s.handleInventoryDetail)
	s.mux.HandleFunc("GET /inventory/{id}/edit", s.handleEditInventoryForm)
	s.mux.HandleFunc("POST /inventory/{id}/edit", s.handleUpdateInventory)
	s.mux.HandleFunc("DELETE /inventory/{id}", s.handleDeleteInventory)

	s.mux.HandleFunc("POST /phone-format", s.handlePhoneFormat)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; "+
				"font-src https://fonts.gstatic.com; "+
				"img-src 'self' data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", requestIDFromContext(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID(requestLogger(s.logger, securityHeaders(s.mux))).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, status int, data any, files ...string) {
	tmpl, err := template.New("").ParseFS(s.templates, append([]string{"base.html"}, files...)...)
	if err != nil {
		s.logger.Error("template parse error", "files", files, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		s.logger.Error("template execute error", "files", files, "error", err)
	}
}

// renderPartial parses and executes a single named partial template.
func (s *Server) renderPartial(w http.ResponseWriter, file, name string, data any) {
	tmpl, err := template.New("").ParseFS(s.templates, file)
	if err != nil {
		s.logger.Error("template parse error", "file", file, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template execute error", "file", file, "error", err)
	}
}

// renderError shows the error view in place of the requested page. The
// message is the resolver's user-facing text; domain errors carry their
// backend status through to the response.
func (s *Server) renderError(w http.ResponseWriter, err error, backURL string) {
	status := http.StatusBadGateway
	message := "Something unexpected happened. Please try again."

	var domainErr *stockapi.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
		if domainErr.Status >= 400 {
			status = domainErr.Status
		}
	}

	s.renderPage(w, status, map[string]any{
		"Message":   message,
		"BackURL":   backURL,
		"ActiveNav": "",
	}, "pages/error.html")
}

// pageData carries the attributes every page shares, merged with the
// page-specific entries.
func (s *Server) pageData(w http.ResponseWriter, r *http.Request, activeNav string, extra map[string]any) map[string]any {
	data := map[string]any{
		"ActiveNav":   activeNav,
		"ShowWelcome": false,
	}
	if s.sessions != nil && s.sessions.Get(r, "welcome_seen") == "" {
		s.sessions.Set(w, "welcome_seen", "1")
		data["ShowWelcome"] = true
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// parseID extracts the {id} path variable and returns it as int64.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
