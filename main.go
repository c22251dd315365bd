package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kbase/dpkg/config"
	"github.com/kbase/dpkg/services"
)

// time allowed for in-flight requests to finish on shutdown
const shutdownGracePeriod = 30 * time.Second

// Prints usage info.
func usage() {
	fmt.Fprintf(os.Stderr, "%s: usage:\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "%s <config_file>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "See README.md for details on config files.\n")
	os.Exit(1)
}

// reads the named YAML configuration file, expanding environment variables
// (which may come from a .env file in the working directory)
func loadConfig(configFile string) error {
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment variables from .env")
	}
	slog.Info(fmt.Sprintf("Reading configuration from '%s'...", configFile))
	b, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}
	if err := config.Init(b); err != nil {
		return err
	}
	if config.Service.Debug {
		logLevel := new(slog.LevelVar)
		logLevel.Set(slog.LevelDebug)
		h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
		slog.SetDefault(slog.New(h))
	}
	return nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	if err := loadConfig(os.Args[1]); err != nil {
		log.Fatalf("Couldn't configure the service: %s\n", err.Error())
	}

	service, err := services.NewDataPackageService()
	if err != nil {
		log.Fatalf("Couldn't create the service: %s\n", err.Error())
	}

	// the service stops on SIGINT, SIGHUP, SIGTERM, or SIGQUIT, or if it can't
	// keep serving
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	served := make(chan error, 1)
	go func() {
		served <- service.Start(config.Service.Port)
	}()

	select {
	case err := <-served:
		if err != nil {
			slog.Error(fmt.Sprintf("Service stopped: %s", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info(fmt.Sprintf("Shutting down (allowing %s for open requests)...",
			shutdownGracePeriod))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := service.Shutdown(shutdownCtx); err != nil {
			slog.Error(fmt.Sprintf("Couldn't shut down gracefully: %s", err.Error()))
			service.Close()
		}
	}
}
