package limiter_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/wingman-diffusion/pkg/limiter"
	"github.com/adrianliechti/wingman-diffusion/pkg/provider"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type mockRenderer struct {
	calls atomic.Int64
}

func (m *mockRenderer) Render(ctx context.Context, prompt string, options *provider.RenderOptions) (*provider.Rendering, error) {
	m.calls.Add(1)

	return &provider.Rendering{
		Content:     []byte(prompt),
		ContentType: "image/png",
	}, nil
}

func TestRendererWithoutLimiter(t *testing.T) {
	mock := &mockRenderer{}
	r := limiter.NewRenderer(nil, mock)

	for range 10 {
		_, err := r.Render(context.Background(), "x", nil)
		require.NoError(t, err)
	}

	require.EqualValues(t, 10, mock.calls.Load())
}

func TestRendererWaits(t *testing.T) {
	mock := &mockRenderer{}
	r := limiter.NewRenderer(rate.NewLimiter(rate.Every(time.Hour), 1), mock)

	result, err := r.Render(context.Background(), "first", nil)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), result.Content)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = r.Render(ctx, "second", nil)
	require.Error(t, err)

	require.EqualValues(t, 1, mock.calls.Load())
}
