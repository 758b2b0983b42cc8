package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/adrianliechti/wingman-diffusion/pkg/plugin"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider/stability"
)

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := readRenderRequest(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing prompt"))
		return
	}

	p, err := h.Renderer(req.Model)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	options := &provider.RenderOptions{
		Width:  req.Width.Int(plugin.DefaultSize),
		Height: req.Height.Int(plugin.DefaultSize),
	}

	result, err := plugin.Render(r.Context(), p, req.Prompt, options)

	if err != nil {
		var upstreamErr *stability.UpstreamError

		if errors.As(err, &upstreamErr) {
			writeError(w, http.StatusBadGateway, err)
			return
		}

		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(result))
}

func readRenderRequest(r *http.Request) (*RenderRequest, error) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if contentType == "application/json" {
		var req RenderRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}

		return &req, nil
	}

	req := &RenderRequest{
		Model:  r.FormValue("model"),
		Prompt: r.FormValue("prompt"),
	}

	if req.Prompt == "" {
		req.Prompt = r.FormValue("text")
	}

	if val := r.FormValue("width"); val != "" {
		req.Width = plugin.Dimension(val)
	}

	if val := r.FormValue("height"); val != "" {
		req.Height = plugin.Dimension(val)
	}

	return req, nil
}
