package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/mathis-deconchat/github-repo-qualifier/internal/db"
	gh "github.com/mathis-deconchat/github-repo-qualifier/internal/github"
	"github.com/mathis-deconchat/github-repo-qualifier/internal/scanner"
)

const identityHeader = "X-Identity"

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("INFO: Loaded environment from .env")
	}

	dbPath := os.Getenv("QUALIFIER_DB_PATH")
	if dbPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatalf("FATAL: Failed to get working directory: %v", err)
		}
		projectRoot := filepath.Join(wd, "..", "..")
		dbPath = filepath.Join(projectRoot, "data", "qualifier.db")
	}

	log.Printf("INFO: Attempting to connect to database at: %s", dbPath)

	conn, err := db.NewConnection(dbPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer conn.Close()

	var clientOpts []gh.Option
	if endpoint := os.Getenv("QUALIFIER_GRAPHQL_ENDPOINT"); endpoint != "" {
		clientOpts = append(clientOpts, gh.WithEndpoint(endpoint))
	}
	s := scanner.New(gh.NewClient(clientOpts...), conn)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", identityHeader},
	}))
	r.Use(middleware.Logger)

	// Health
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Run a scan
	r.Post("/api/scans", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var input scanner.ScanInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.AccountHandle == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Missing username"})
			return
		}

		result, err := s.Scan(r.Context(), identityFrom(r), input)
		if err != nil {
			w.WriteHeader(scanErrorStatus(err))
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(result)
	})

	// Scan history
	r.Get("/api/scans", func(w http.ResponseWriter, r *http.Request) {
		results, err := conn.ListScans(r.Context(), identityFrom(r))
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Failed to fetch scan history"})
			return
		}
		json.NewEncoder(w).Encode(results)
	})

	log.Println("INFO: Server is running and listening on port 3000")
	http.ListenAndServe(":3000", r)
}

func identityFrom(r *http.Request) string {
	if identity := r.Header.Get(identityHeader); identity != "" {
		return identity
	}
	return "local"
}

// scanErrorStatus maps fetcher failures onto transport statuses.
func scanErrorStatus(err error) int {
	var authErr *gh.AuthenticationError
	var rateErr *gh.RateLimitError
	var notFoundErr *gh.NotFoundError

	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
