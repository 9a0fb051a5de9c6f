package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/exp/slog"
)

func main() {
	config_file := flag.String("config", "./config.yaml", "path to the yaml config file")
	from := flag.Int("from", -1, "start point index, runs a single query and exits")
	to := flag.Int("to", -1, "end point index, runs a single query and exits")
	export := flag.String("export", "", "writes the built graph as json to the given file and exits")
	flag.Parse()

	config, err := ReadConfig(*config_file)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Printf("config file %v not found, using defaults\n", *config_file)
		config, err = DefaultConfig(), nil
	}
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
	closer := SetupLogging(config.Logging)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager, err := NewRoutingManager(ctx, config.Source, config.Build.GraphOptions())
	if err != nil {
		slog.Error(fmt.Sprintf("failed to build routing graph: %v", err))
		os.Exit(1)
	}

	if *export != "" {
		if err := ExportGraph(manager, *export); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		return
	}
	if *from >= 0 || *to >= 0 {
		if err := RunQuery(os.Stdout, manager, *from, *to); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		return
	}

	if err := RunServer(ctx, manager, config); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func NewHTTPHandler(service *RoutingService, options ServerOptions, metrics *Metrics) http.Handler {
	app := mux.NewRouter()
	app.Use(MetricsMiddleware(metrics))
	service.RegisterRoutes(app)

	c := cors.New(cors.Options{
		AllowedOrigins: options.CorsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(app)
}

// Serves the routing api until ctx is cancelled.
func RunServer(ctx context.Context, manager *RoutingManager, config Config) error {
	metrics := NewMetrics("poi_routing")
	manager.OnReload(metrics.ObserveGraph)

	if config.Build.Watch {
		watcher, err := NewSourceWatcher(manager)
		if err != nil {
			return err
		}
		go watcher.Run(ctx)
	}

	service := NewRoutingService(manager, config.Routing, metrics)
	server := &http.Server{
		Addr:              config.Server.Address,
		Handler:           NewHTTPHandler(service, config.Server, metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		slog.Info(fmt.Sprintf("Server running on %v", config.Server.Address))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")
	shutdown_ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdown_ctx)
}
