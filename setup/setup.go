package setup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"inkwell-server/assets"
	"inkwell-server/config"
	"inkwell-server/db"
	"inkwell-server/handlers"
)

func MustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	return cfg
}

func MustInitDb(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("Error initializing database: ", err)
	}
}

func MustInitAssets(cfg *config.Config) {
	if cfg.AssetsBucket == "" {
		log.Println("No assets bucket configured. Cover uploads are disabled.")
		return
	}

	client, err := assets.NewS3Client(cfg.AssetsBucket, cfg.AwsRegion)
	if err != nil {
		log.Fatal("Error initializing assets client: ", err)
	}
	assets.SetClient(client)
}

func StartServer(cfg *config.Config, r *mux.Router) {
	if cfg.GoEnv == "development" {
		log.Println("In development mode.")
	}

	handlers.Init(cfg)

	go startServer(cfg.Port, r)
	log.Println("Started server on port " + cfg.Port)

	sigTermChan := make(chan os.Signal, 1)
	signal.Notify(sigTermChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigTermChan
		log.Println("Received shutdown signal. Exiting.")
		os.Exit(0)
	}()

	select {}
}

func startServer(port string, routes *mux.Router) {
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), routes)
	if err != nil {
		log.Fatalf("Failed to start server on port %s: %v", port, err)
	}
}
