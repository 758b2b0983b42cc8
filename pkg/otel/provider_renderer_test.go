package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/wingman-diffusion/pkg/otel"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider"

	"github.com/stretchr/testify/require"

	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type mockRenderer struct {
	err error
}

func (m *mockRenderer) Render(ctx context.Context, prompt string, options *provider.RenderOptions) (*provider.Rendering, error) {
	if m.err != nil {
		return nil, m.err
	}

	return &provider.Rendering{
		Model: "sdxl",

		Content:     []byte("png"),
		ContentType: "image/png",
	}, nil
}

func setupRecorder() *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()

	otelapi.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	return recorder
}

func TestRenderer(t *testing.T) {
	recorder := setupRecorder()

	r := otel.NewRenderer("stability", "stable-diffusion-xl", &mockRenderer{})

	result, err := r.Render(context.Background(), "cat", &provider.RenderOptions{Width: 512, Height: 512})
	require.NoError(t, err)
	require.Equal(t, []byte("png"), result.Content)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	require.Equal(t, "render stable-diffusion-xl", spans[0].Name())
	require.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestRendererError(t *testing.T) {
	recorder := setupRecorder()

	r := otel.NewRenderer("stability", "stable-diffusion-xl", &mockRenderer{err: errors.New("upstream down")})

	_, err := r.Render(context.Background(), "cat", nil)
	require.EqualError(t, err, "upstream down")

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Equal(t, "upstream down", spans[0].Status().Description)
}
