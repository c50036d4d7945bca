package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"atelier-studio-server/modules/analyze"
	"atelier-studio-server/modules/common/config"
	redisutil "atelier-studio-server/modules/common/redis"
	"atelier-studio-server/modules/detail"
	"atelier-studio-server/modules/faceswap"
	"atelier-studio-server/modules/ghost"
	"atelier-studio-server/modules/studio"
	"atelier-studio-server/modules/worker"
)

// CORS middleware. Individual handlers also set their own headers so routes
// behave the same when mounted elsewhere.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "atelier-studio-server",
	})
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Redis backs the async queue; everything else works without it.
	rdb := redisutil.Connect(cfg)
	if rdb != nil {
		go worker.StartWorker(rdb)
	}

	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")

	// studio.Enqueuer must stay a nil interface when the queue is down,
	// a typed nil would read as "available".
	var enqueuer studio.Enqueuer
	if q := worker.NewQueue(rdb); q != nil {
		enqueuer = q
	}

	studio.NewHandler(enqueuer).RegisterRoutes(r)
	detail.NewHandler().RegisterRoutes(r)
	ghost.NewHandler().RegisterRoutes(r)
	faceswap.NewHandler().RegisterRoutes(r)
	analyze.NewHandler().RegisterRoutes(r)
	worker.NewHandler(rdb).RegisterRoutes(r)

	log.Printf("🚀 Atelier Studio Server starting on port %s", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("🎨 Generate endpoint: http://localhost:%s/api/generate", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
