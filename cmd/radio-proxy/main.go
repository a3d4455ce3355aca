package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/MatthewBurke1995/ABC-Radio-Wrapper/pkg/client"
	"github.com/MatthewBurke1995/ABC-Radio-Wrapper/pkg/logging"
	"github.com/MatthewBurke1995/ABC-Radio-Wrapper/pkg/query"
	"github.com/MatthewBurke1995/ABC-Radio-Wrapper/pkg/radio"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Configuration from environment
	port := getEnv("PORT", "8080")
	baseURL := getEnv("BASE_URL", client.BaseURL)
	userAgent := getEnv("USER_AGENT", "abc-radio-proxy/0.1.0")

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Output: os.Stderr,
	})

	searchClient, err := client.New(client.Config{
		BaseURL:   baseURL,
		UserAgent: userAgent,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create search client")
	}

	http.HandleFunc("/health", healthHandler)
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/plays", playsHandler(searchClient))

	addr := ":" + port
	logger.Info().
		Str("addr", addr).
		Str("base_url", baseURL).
		Str("user_agent", userAgent).
		Msg("Starting radio proxy")

	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// playsHandler serves decoded play history: it maps the request's query
// parameters onto search options, runs one search, and returns the typed
// result as JSON.
func playsHandler(searchClient *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paramsFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		result, err := searchClient.Search(ctx, params)
		if err != nil {
			var cfgErr *query.ConfigurationError
			if errors.As(err, &cfgErr) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			var decodeErr *radio.DecodeError
			if errors.As(err, &decodeErr) {
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			http.Error(w, fmt.Sprintf("search failed: %v", err), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
		}
	}
}

// paramsFromRequest maps proxy query parameters onto search options.
func paramsFromRequest(r *http.Request) (query.Params, error) {
	q := r.URL.Query()
	var params query.Params

	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return query.Params{}, fmt.Errorf("invalid from %q: %v", raw, err)
		}
		params.From = query.Time(t)
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return query.Params{}, fmt.Errorf("invalid to %q: %v", raw, err)
		}
		params.To = query.Time(t)
	}
	if raw := q.Get("station"); raw != "" {
		params.Station = query.String(raw)
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return query.Params{}, fmt.Errorf("invalid offset %q: %v", raw, err)
		}
		params.Offset = query.Int(n)
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return query.Params{}, fmt.Errorf("invalid limit %q: %v", raw, err)
		}
		params.Limit = query.Int(n)
	}

	return params, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
