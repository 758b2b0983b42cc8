package plugin_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/adrianliechti/wingman-diffusion/pkg/plugin"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider/stability"

	"github.com/stretchr/testify/require"
)

type upstream struct {
	*httptest.Server

	calls atomic.Int64
	body  chan map[string]any
}

func newUpstream(t *testing.T, status int, response string) *upstream {
	t.Helper()

	u := &upstream{
		body: make(chan map[string]any, 1),
	}

	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)

		u.body <- body

		w.WriteHeader(status)
		w.Write([]byte(response))
	}))

	t.Cleanup(u.Close)

	return u
}

func (u *upstream) options() []stability.Option {
	return []stability.Option{
		stability.WithURL(u.URL),
		stability.WithClient(u.Client()),
	}
}

func artifacts(data []byte) string {
	return `{"artifacts":[{"base64":"` + base64.StdEncoding.EncodeToString(data) + `","finishReason":"SUCCESS"}]}`
}

func TestGenerate(t *testing.T) {
	u := newUpstream(t, http.StatusOK, artifacts([]byte("image")))

	settings := plugin.Settings{
		APIKey: "sk-test",
	}

	result, err := plugin.Generate(context.Background(), "a [red] <fox>\nat night", settings, u.options()...)
	require.NoError(t, err)

	require.Equal(t, `![a \[red\] &lt;fox&gt; at night](data:image/png;base64,aW1hZ2U=)`, result)

	body := <-u.body
	require.EqualValues(t, 1024, body["width"])
	require.EqualValues(t, 1024, body["height"])
	require.Equal(t, []any{map[string]any{"text": "a [red] <fox>\nat night"}}, body["text_prompts"])
}

func TestGenerateDimensions(t *testing.T) {
	tests := []struct {
		name string

		width  plugin.Dimension
		height plugin.Dimension

		expectWidth  int
		expectHeight int
	}{
		{"omitted", "", "", 1024, 1024},
		{"zero string", "0", "0", 1024, 1024},
		{"not a number", "wide", "tall", 1024, 1024},
		{"numbers", plugin.DimensionOf(512), plugin.DimensionOf(768), 512, 768},
		{"strings with spaces", " 896 ", "1152", 896, 1152},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUpstream(t, http.StatusOK, artifacts(nil))

			settings := plugin.Settings{
				APIKey: "sk-test",

				Width:  tt.width,
				Height: tt.height,
			}

			_, err := plugin.Generate(context.Background(), "prompt", settings, u.options()...)
			require.NoError(t, err)

			body := <-u.body
			require.EqualValues(t, tt.expectWidth, body["width"])
			require.EqualValues(t, tt.expectHeight, body["height"])
		})
	}
}

func TestGenerateMissingAPIKey(t *testing.T) {
	u := newUpstream(t, http.StatusOK, artifacts(nil))

	_, err := plugin.Generate(context.Background(), "prompt", plugin.Settings{}, u.options()...)
	require.Error(t, err)

	require.Equal(t, "Please set a Stable Diffusion API Key in the plugin settings.", err.Error())
	require.ErrorIs(t, err, plugin.ErrMissingAPIKey)

	var configErr *plugin.ConfigurationError
	require.True(t, errors.As(err, &configErr))

	require.Zero(t, u.calls.Load())
}

func TestGenerateUpstreamError(t *testing.T) {
	u := newUpstream(t, http.StatusBadRequest, `{"message":"invalid dimensions"}`)

	_, err := plugin.Generate(context.Background(), "prompt", plugin.Settings{APIKey: "sk-test"}, u.options()...)
	require.Error(t, err)

	require.Equal(t, `Error: Stability API error: 400, Message: {"message":"invalid dimensions"}`, err.Error())

	var genErr *plugin.GenerationError
	require.True(t, errors.As(err, &genErr))

	var upstreamErr *stability.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	require.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
	require.Equal(t, `{"message":"invalid dimensions"}`, upstreamErr.Body)
}

func TestGenerateDecodeError(t *testing.T) {
	u := newUpstream(t, http.StatusOK, `not json`)

	_, err := plugin.Generate(context.Background(), "prompt", plugin.Settings{APIKey: "sk-test"}, u.options()...)
	require.Error(t, err)

	require.Regexp(t, `^Error: `, err.Error())

	var genErr *plugin.GenerationError
	require.True(t, errors.As(err, &genErr))
}

func TestGenerateNetworkError(t *testing.T) {
	u := newUpstream(t, http.StatusOK, artifacts(nil))
	url := u.URL
	u.Close()

	_, err := plugin.Generate(context.Background(), "prompt", plugin.Settings{APIKey: "sk-test"}, stability.WithURL(url))
	require.Error(t, err)

	var genErr *plugin.GenerationError
	require.True(t, errors.As(err, &genErr))
	require.Regexp(t, `^Error: `, err.Error())
}

func TestGenerateConcurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TextPrompts []struct {
				Text string `json:"text"`
			} `json:"text_prompts"`
		}

		json.NewDecoder(r.Body).Decode(&body)

		w.Write([]byte(artifacts([]byte(body.TextPrompts[0].Text))))
	}))

	defer server.Close()

	prompts := []string{"one", "two", "three", "four", "five"}
	results := make([]string, len(prompts))
	errs := make(chan error, len(prompts))

	done := make(chan struct{})

	for i, prompt := range prompts {
		go func() {
			defer func() { done <- struct{}{} }()

			result, err := plugin.Generate(context.Background(), prompt, plugin.Settings{APIKey: "sk-test"}, stability.WithURL(server.URL))

			if err != nil {
				errs <- err
				return
			}

			results[i] = result
		}()
	}

	for range prompts {
		<-done
	}

	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	for i, prompt := range prompts {
		require.Equal(t, "!["+prompt+"](data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte(prompt))+")", results[i])
	}
}

type mockRenderer struct {
	rendering *provider.Rendering
	err       error
}

func (m *mockRenderer) Render(ctx context.Context, prompt string, options *provider.RenderOptions) (*provider.Rendering, error) {
	return m.rendering, m.err
}

func TestRender(t *testing.T) {
	t.Run("uses rendering content type", func(t *testing.T) {
		r := &mockRenderer{
			rendering: &provider.Rendering{
				Content:     []byte("jpeg"),
				ContentType: "image/jpeg",
			},
		}

		result, err := plugin.Render(context.Background(), r, "cat", nil)
		require.NoError(t, err)

		require.Equal(t, "![cat](data:image/jpeg;base64,anBlZw==)", result)
	})

	t.Run("wraps errors", func(t *testing.T) {
		r := &mockRenderer{
			err: errors.New("boom"),
		}

		_, err := plugin.Render(context.Background(), r, "cat", nil)
		require.EqualError(t, err, "Error: boom")
	})
}
