// Package webtui serves the terminal editor in a browser: each websocket connection runs
// `mindit edit` in a pseudo-terminal and streams it to xterm.js.
package webtui

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

var terminalPage = template.Must(template.ParseFS(assetsFS, "templates/terminal.html"))

type ServerConfig struct {
	Addr   string
	Dir    string
	MapRef string
	// Exe is the mindit binary started per session. Empty means the running executable.
	Exe    string
	Logger *slog.Logger
}

type Server struct {
	cfg ServerConfig
	log *slog.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("webtui: missing addr")
	}
	cfg.Dir = strings.TrimSpace(cfg.Dir)
	cfg.MapRef = strings.TrimSpace(cfg.MapRef)
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{cfg: cfg, log: log}, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(assetsFS, "static")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", http.RedirectHandler("/terminal", http.StatusFound))
	mux.HandleFunc("GET /terminal", s.handleTerminal)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	return mux
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := terminalPage.Execute(w, s.cfg); err != nil {
		s.log.Error("render terminal page", "err", err)
	}
}
