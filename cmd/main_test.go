package main

import (
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ReturnsWhenPortIsTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	done := make(chan error, 1)
	go func() { done <- serve(app, ln.Addr().String(), make(chan os.Signal)) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve kept waiting after the listener failed")
	}
}

func TestServe_ShutsDownOnSignal(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	listening := make(chan struct{})
	app.Hooks().OnListen(func(fiber.ListenData) error {
		close(listening)
		return nil
	})

	quit := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() { done <- serve(app, "127.0.0.1:0", quit) }()

	select {
	case <-listening:
	case <-time.After(5 * time.Second):
		t.Fatal("server never started listening")
	}
	quit <- syscall.SIGTERM

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not return after the signal")
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, logLevel("debug"))
	assert.Equal(t, log.LevelError, logLevel("error"))
	assert.Equal(t, log.LevelInfo, logLevel(""))
}
