package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"deck-converter/internal/config"
	"deck-converter/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container := config.NewConverterContainer()

	convertHandler := handler.NewConvertHandler(
		container.ConversionService,
		container.Config.GetMaxFileSize(),
		container.Logger,
	)

	router := handler.NewConverterRouter(convertHandler, container.Logger)

	server := &http.Server{
		Addr:    ":" + container.Config.GetConverterPort(),
		Handler: router,
	}

	// Run server
	go func() {
		container.Logger.Info("Conversion service listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down conversion service...")
	_ = server.Close()

	container.Logger.Info("Server exited")
}
