package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aadinq/catty/backend/internal/audio"
	"github.com/aadinq/catty/backend/internal/config"
	"github.com/aadinq/catty/backend/internal/handler"
	"github.com/aadinq/catty/backend/internal/sensor"
	conversation "github.com/aadinq/catty/backend/internal/service/conversation"
	"github.com/aadinq/catty/backend/internal/service/roast"
	"github.com/aadinq/catty/backend/internal/service/voice"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize the response client. Without credentials the orchestrator
	// still runs and answers every send with the key-missing roast.
	roaster := roast.Disabled()
	if cfg.AI.Enabled() {
		client, err := roast.NewClient(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize roast client: %v", err)
			log.Println("continuing with canned responses only")
		} else {
			roaster = client
			log.Printf("roast client initialized (provider=%s model=%s)", cfg.AI.Provider, cfg.AI.Model)
		}
	} else {
		log.Println("AI credentials not configured, skipping roast client initialization")
	}

	// Initialize voice synthesis
	var synth voice.Synthesizer
	sampleRate := cfg.Voice.SampleRate
	if voiceClient, err := voice.NewClient(ctx, cfg.Voice); err != nil {
		log.Printf("warning: failed to initialize voice client: %v", err)
	} else if voiceClient != nil {
		synth = voiceClient
		sampleRate = voiceClient.SampleRate()
		log.Printf("voice client initialized (model=%s voice=%s)", cfg.Voice.Model, cfg.Voice.Voice)
	} else {
		log.Println("voice synthesis disabled by configuration")
	}

	player := audio.NewPlayer(nil, sampleRate)
	conv := conversation.NewService(roaster, synth, player, sensor.LogHaptics{})

	router := handler.NewRouter(conv, cfg)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Catty backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
