// Package web serves the health probe, the resume download and the built
// single page frontend.
package web

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mehmetcc/folio/internal/config"
	"github.com/mehmetcc/folio/internal/httpx"
	"go.uber.org/zap"
)

const indexFile = "index.html"

type WebHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
	Resume(w http.ResponseWriter, r *http.Request)
	APINotFound(w http.ResponseWriter, r *http.Request)
	Frontend(w http.ResponseWriter, r *http.Request)
}

type webHandler struct {
	staticDir  string
	resumePath string
	logger     *zap.Logger
}

func NewWebHandler(cfg *config.AppConfig, logger *zap.Logger) WebHandler {
	return &webHandler{
		staticDir:  cfg.StaticDir,
		resumePath: cfg.ResumePath,
		logger:     logger,
	}
}

func (h *webHandler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *webHandler) Resume(w http.ResponseWriter, r *http.Request) {
	if !isFile(h.resumePath) {
		httpx.WriteError(w, http.StatusNotFound, "Resume not found")
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(h.resumePath)))
	http.ServeFile(w, r, h.resumePath)
}

func (h *webHandler) APINotFound(w http.ResponseWriter, r *http.Request) {
	httpx.WriteError(w, http.StatusNotFound, "API endpoint not found")
}

// Frontend serves files from the static dir. Paths that name a file (the last
// segment has an extension) 404 when missing; any other path gets index.html
// so the client router can handle it.
func (h *webHandler) Frontend(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)
	if clean == "/api" || strings.HasPrefix(clean, "/api/") {
		h.APINotFound(w, r)
		return
	}

	if clean != "/" {
		target := filepath.Join(h.staticDir, filepath.FromSlash(clean))
		if isFile(target) {
			http.ServeFile(w, r, target)
			return
		}
		if path.Ext(clean) != "" {
			httpx.WriteError(w, http.StatusNotFound, "File not found")
			return
		}
	}

	index := filepath.Join(h.staticDir, indexFile)
	if !isFile(index) {
		h.logger.Warn("frontend index missing", zap.String("path", index))
		httpx.WriteError(w, http.StatusNotFound, "Frontend not built")
		return
	}
	// ServeFile redirects requests ending in /index.html, so write the file ourselves.
	f, err := os.Open(index)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	http.ServeContent(w, r, indexFile, st.ModTime(), f)
}

func isFile(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
