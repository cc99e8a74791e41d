package main

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServeStopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := serve(ctx,
		&http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()},
		&http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()},
	)
	require.NoError(t, err)
}

func TestServeReturnsListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	err = serve(context.Background(),
		&http.Server{Addr: l.Addr().String(), Handler: http.NotFoundHandler()},
		&http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()},
	)
	require.Error(t, err)
}
