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
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"smartfridge/internal/api"
	"smartfridge/internal/config"
	"smartfridge/internal/device"
	"smartfridge/internal/fridge"
	"smartfridge/internal/history"
	"smartfridge/internal/monitoring"
	"smartfridge/internal/sensor"
	"smartfridge/internal/vision"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// .env is optional; production deployments provide the environment
	// through the service unit.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, relying on process environment")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	model, err := initializeLLM(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize vision model: %v", err)
	}

	trail, err := history.Open(cfg.Storage.HistoryPath)
	if err != nil {
		log.Fatalf("Failed to open history database: %v", err)
	}
	defer trail.Close()

	monitor := monitoring.NewMonitor()
	ledger := fridge.NewLedger(cfg.Storage.LedgerPath)
	zones := fridge.DefaultZones()
	rig := device.NewSimulator(fridge.TotalLevels, fridge.SectionsPerLevel)
	agent := fridge.NewAgent(zones, ledger, vision.NewClassifier(model), rig, trail, monitor)

	// Proximity reports arrive over HTTP from the face-detection process
	// and are debounced by the poller before reaching the dashboard.
	trigger := &sensor.TriggerDetector{}
	fridgeAPI := api.NewFridgeAPI(agent, trail, monitor, trigger, cfg.Storage.UploadDir)

	if cfg.Sensor.Enabled {
		poller := sensor.NewPoller(trigger,
			time.Duration(cfg.Sensor.PollSeconds*float64(time.Second)),
			time.Duration(cfg.Sensor.CooldownSeconds*float64(time.Second)))
		go poller.Run(ctx)
		go func() {
			for range poller.Events() {
				log.Printf("proximity event: user approaching")
				fridgeAPI.NotifyProximity()
			}
		}()
	}

	go startMetricsServer(cfg.Server.MetricsPort)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: fridgeAPI.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}

		cancel()
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

// initializeLLM connects to the OpenAI-compatible vision endpoint.
func initializeLLM(cfg *config.Config) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Vision.Model),
		openai.WithToken(cfg.Vision.APIKey),
	}
	if cfg.Vision.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.Vision.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vision client: %w", err)
	}
	return llm, nil
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
