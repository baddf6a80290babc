// cmd/mcp-server/main.go: HTTP tool server for the workbook
//
// Exposes the workbook tools as an HTTP endpoint for agent frameworks.
//
// Usage:
//   go run ./cmd/mcp-server -port 8080 -config workbook.yaml
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	workbook "github.com/njchilds90/goworkbook"
	"github.com/njchilds90/goworkbook/internal/config"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	configPath := flag.String("config", "", "YAML configuration file")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	zc := zap.NewProductionConfig()
	if *verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load configuration", zap.Error(err))
	}
	wb, err := workbook.New(workbook.WithLogger(logger), workbook.WithConfig(cfg))
	if err != nil {
		logger.Fatal("build workbook", zap.Error(err))
	}

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("workbook tool server listening",
		zap.String("addr", addr),
		zap.Strings("endpoints", []string{"POST /tool", "GET /schema", "GET /health"}),
		zap.Stringer("config", cfg))

	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(wb, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// newHandler wires the three endpoints.
func newHandler(wb *workbook.Workbook, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// POST /tool: handle a tool call
	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic in /tool", zap.Any("panic", rec), zap.Stack("stack"))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req workbook.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		start := time.Now()
		resp := wb.HandleToolCall(req)
		logger.Info("tool call",
			zap.String("tool", req.Tool),
			zap.Bool("ok", resp.Error == ""),
			zap.Duration("elapsed", time.Since(start)))
		writeJSON(w, http.StatusOK, resp)
	})

	// GET /schema: return tool schema for agent registration
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, workbook.ToolSchema())
	})

	// GET /health: liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"domains": wb.Domains(),
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
