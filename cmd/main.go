package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bagelbot/internal/config"
	"bagelbot/internal/engine"
	"bagelbot/internal/llm"
	"bagelbot/internal/menu"
	"bagelbot/internal/modifiers"
	"bagelbot/internal/monitoring"
	"bagelbot/internal/parser"
	"bagelbot/internal/server"
	"bagelbot/internal/session"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the structured-parse client. Without an API key the engine
	// still runs on its deterministic parsers alone.
	var client llm.Client
	if cfg.OpenAIKey != "" {
		c, err := llm.NewOpenAIClient(cfg.Model, cfg.OpenAIKey)
		if err != nil {
			log.Fatalf("Failed to initialize LLM: %v", err)
		}
		client = c
	} else {
		log.Println("OPENAI_API_KEY not set; running with deterministic parsers only")
	}

	// Build the engine over the menu snapshot
	snap := menu.DefaultSnapshot()
	lookup := menu.NewLookup(snap)
	pricing := menu.NewTablePricing(snap)
	defaults := menu.NewIngredientCache(snap)
	mods := modifiers.NewEngine(pricing, defaults)
	pipe := parser.NewPipeline(snap, lookup, client, cfg.LLMTimeout)
	geo := &engine.StaticGeocoder{Neighborhoods: cfg.Neighborhoods}
	eng := engine.New(snap, lookup, pricing, mods, pipe, geo, cfg.Store)

	// Initialize session persistence
	store, err := session.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer store.Close()

	// Initialize metrics
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	pipe.SetRecorder(metrics)

	// Start metrics server
	go startMetricsServer(*metricsPort)

	// Start API server
	api := server.New(eng, store, metrics)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: api.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
