package main

import (
	"log"
	"net/http"

	"empadas-server/src/api"
	"empadas-server/src/config"
	"empadas-server/src/store"
)

func main() {
	cfg := config.Load()

	// Stores are built lazily on first use so a missing env var fails the
	// operation that needs it instead of the whole process.
	provider := store.NewProvider(cfg.LocalDataDir, cfg.LocalFallback)

	router := api.NewRouter(cfg, provider)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
