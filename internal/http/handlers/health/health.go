// Package health отвечает на проверки живости сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// Handler возвращает {"status":"ok"}.
type Handler struct{}

// New создаёт Handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
