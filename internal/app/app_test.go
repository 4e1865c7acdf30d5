package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nebulaeats/nebula/internal/config"
	"github.com/nebulaeats/nebula/internal/test"
)

func TestNewHTTPServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	server := newHTTPServer(serverParams{
		Config: &config.Config{RunAddress: ":9191"},
		Router: router,
	})
	if server.Addr != ":9191" {
		t.Fatalf("unexpected addr %q", server.Addr)
	}
	if server.Handler == nil {
		t.Fatal("expected router handler")
	}
}

func TestNewScheduler(t *testing.T) {
	f := newFacadeFixture(t)
	scheduler := newScheduler(workerParams{
		Facade: f.facade,
		Config: &config.Config{SchedulerPoll: time.Second, SchedulerBatch: 8, WorkerPoolSize: 2},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if scheduler == nil {
		t.Fatal("expected scheduler instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	lifecycle := &test.LifecycleRecorder{}
	shutdowner := &test.ShutdownerStub{Called: make(chan struct{}, 1)}

	f := newFacadeFixture(t)
	cfg := &config.Config{
		RunAddress:      "127.0.0.1:0",
		SchedulerPoll:   50 * time.Millisecond,
		SchedulerBatch:  4,
		WorkerPoolSize:  1,
		ShutdownTimeout: time.Second,
	}
	server := &http.Server{Addr: cfg.RunAddress, Handler: gin.New()}
	scheduler := newScheduler(workerParams{Facade: f.facade, Config: cfg, Logger: logger})

	registerLifecycle(lifecycleParams{
		Lifecycle:  lifecycle,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     scheduler,
		Config:     cfg,
	})

	if len(lifecycle.Hooks) != 1 {
		t.Fatalf("expected one lifecycle hook, got %d", len(lifecycle.Hooks))
	}
	hook := lifecycle.Hooks[0]

	ctx := context.Background()
	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if err := hook.OnStop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestRegisterLifecycleShutsDownOnServerFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	lifecycle := &test.LifecycleRecorder{}
	shutdowner := &test.ShutdownerStub{Called: make(chan struct{}, 1)}

	f := newFacadeFixture(t)
	cfg := &config.Config{
		RunAddress:      "256.256.256.256:0",
		SchedulerPoll:   time.Second,
		SchedulerBatch:  4,
		WorkerPoolSize:  1,
		ShutdownTimeout: time.Second,
	}
	server := &http.Server{Addr: cfg.RunAddress, Handler: gin.New()}
	scheduler := newScheduler(workerParams{Facade: f.facade, Config: cfg, Logger: logger})

	registerLifecycle(lifecycleParams{
		Lifecycle:  lifecycle,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     scheduler,
		Config:     cfg,
	})

	hook := lifecycle.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(2 * time.Second):
		t.Fatal("expected shutdown after listen failure")
	}

	if err := hook.OnStop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
