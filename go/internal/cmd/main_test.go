package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestRunServerReturnsOnServeError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	listener.Close()

	done := make(chan struct{})
	go func() {
		runServer(context.Background(), &http.Server{}, listener)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected runServer to return after a serve failure")
	}
}

func TestRunServerStopsOnContextCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runServer(ctx, &http.Server{}, listener)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected runServer to return after context cancel")
	}
}
