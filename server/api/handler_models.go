package api

import (
	"net/http"
)

func (h *Handler) handleModels(w http.ResponseWriter, r *http.Request) {
	result := &ModelList{
		Object: "list",
		Models: []Model{},
	}

	for _, m := range h.Models() {
		result.Models = append(result.Models, Model{
			Object: "model",
			ID:     m.ID,
		})
	}

	writeJson(w, result)
}
