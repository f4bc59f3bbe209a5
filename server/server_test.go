package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun(t *testing.T) {

	t.Run("Should stop when context is cancelled", func(t *testing.T) {

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- Run(ctx, "127.0.0.1:0", http.NotFoundHandler(), zap.NewNop())
		}()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})

	t.Run("Should return listen error", func(t *testing.T) {

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer listener.Close()

		err = Run(context.Background(), listener.Addr().String(), http.NotFoundHandler(), zap.NewNop())
		require.Error(t, err)
	})
}
