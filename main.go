package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"virtualab/config"
	"virtualab/database"
	"virtualab/routers"
	"virtualab/storage"
	"virtualab/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	storage.Init(config.AppConfig)

	keepAlive, err := utils.InitializeKeepAliveScheduler(config.AppConfig.KeepAliveSpec, database.Ping)
	if err != nil {
		log.Fatalf("Invalid KEEP_ALIVE_SPEC %q: %v", config.AppConfig.KeepAliveSpec, err)
	}

	app := routers.NewApp()

	// Shut down on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down...")
		<-keepAlive.Stop().Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}

	if err := database.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
	log.Println("Server exited")
}
