package handler

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// render executes a named template, logging failures. By the time
// execution fails part of the body may already be written, so no error
// page is attempted.
func render(w http.ResponseWriter, tmpl *template.Template, logger *slog.Logger, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("render template", "template", name, "error", err)
	}
}
