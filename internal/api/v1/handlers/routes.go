package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/inkwell-labs/inkwell/internal/api/v1/handlers/generate"
	"github.com/inkwell-labs/inkwell/internal/api/v1/handlers/seo"
	"github.com/inkwell-labs/inkwell/internal/api/v1/middleware"
	"github.com/inkwell-labs/inkwell/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(router *mux.Router, services *services.Services) {
	// Public routes
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	var redisPinger Pinger
	if redisService := services.GetRedisService(); redisService != nil {
		redisPinger = redisService
	}
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		HandleHealth(redisPinger, w, r)
	}).Methods("GET")

	// API routes resolve the caller first; handlers reject anonymous requests
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequestLogger)
	api.Use(middleware.Identify)

	generateLimit := middleware.RateLimit("generate", services.GetRedisService())
	seoLimit := middleware.RateLimit("seo", services.GetRedisService())

	api.Handle("/ai", generateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		generate.HandleGenerate(services.GetAIProducer(), w, r)
	}))).Methods("POST")
	api.Handle("/ai/ws", generateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		generate.HandleGenerateWebSocket(services.GetAIProducer(), w, r)
	}))).Methods("GET")
	api.Handle("/openai", generateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		generate.HandleGenerate(services.GetOpenAIProducer(), w, r)
	}))).Methods("POST")

	api.Handle("/serpstack", seoLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seo.HandleLookup(services.GetSEOService(), w, r)
	}))).Methods("POST")
}
