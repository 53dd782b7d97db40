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

	"github.com/gin-gonic/gin"

	"coinrush/config"
	"coinrush/network"
	"coinrush/room"
)

func main() {
	config.InitConfig()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := log.Default()
	rooms := room.NewManager(cfg.DefaultRoom, room.Options{
		Floor:         cfg.Floor,
		FloorInterval: cfg.FloorInterval,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           network.NewRouter(rooms, cfg.StaticDir, cfg.Codec, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Listening on port %s", cfg.Port)
		log.Printf("WebSocket endpoint: ws://localhost:%s/ws", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	rooms.Shutdown()
}
