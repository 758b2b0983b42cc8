package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adrianliechti/wingman-diffusion/config"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider"
	"github.com/adrianliechti/wingman-diffusion/server"

	"github.com/stretchr/testify/require"
)

type mockRenderer struct{}

func (m *mockRenderer) Render(ctx context.Context, prompt string, options *provider.RenderOptions) (*provider.Rendering, error) {
	return &provider.Rendering{
		Content:     []byte("png"),
		ContentType: "image/png",
	}, nil
}

func TestServer(t *testing.T) {
	cfg := &config.Config{}
	cfg.RegisterRenderer("sdxl", &mockRenderer{})

	s, err := server.New(context.Background(), cfg, "test")
	require.NoError(t, err)

	ts := httptest.NewServer(s)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader(`{"prompt":"cat"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "![cat](data:image/png;base64,cG5n)", string(body))

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/v1/render", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
