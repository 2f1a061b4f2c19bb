// Package docs раздаёт описание HTTP API в формате OpenAPI для swagger UI.
package docs

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.json
var spec []byte

// SpecHandler отдаёт JSON-описание API, которое загружает swagger UI.
func SpecHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(spec)
}
