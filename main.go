package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/rs/cors"

	"advancedstats/config"
	"advancedstats/database"
	"advancedstats/handlers"
	"advancedstats/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Initialize DB connection
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal(err)
	}

	var cache services.Cache = services.NopCache{}
	if cfg.RedisAddr != "" {
		redisCache, err := services.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer redisCache.Close()
		cache = redisCache
		log.Printf("Caching statistics in redis at %s for %s", cfg.RedisAddr, cfg.CacheTTL)
	}

	h := &handlers.Handler{
		Stats: services.NewStats(database.NewStore(pool), cache),
		Token: cfg.StatsToken,
	}

	generator, err := services.NewGenerator(cfg.LLMProvider, cfg.APIKey, cfg.LLMModel)
	switch {
	case errors.Is(err, services.ErrNoProvider):
		log.Println("No LLM_PROVIDER set, insights are disabled")
	case err != nil:
		log.Fatal(err)
	default:
		h.Insights = &services.Insights{Generator: generator}
	}

	// Create a CORS handler
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
	})

	handler := c.Handler(handlers.NewRouter(h))

	log.Printf("Server starting on %s", cfg.Port)
	if err := http.ListenAndServe(cfg.Port, handler); err != nil {
		log.Fatal(err)
	}
}
