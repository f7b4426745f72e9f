// CLAUDE:SUMMARY Entry point for the rubriqued HTTP service — upload a trivia PDF, get the answer key back.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/rubrique/dbopen"
	"github.com/hazyhaar/rubrique/kit"
	"github.com/hazyhaar/rubrique/quizpipe"
	"github.com/hazyhaar/rubrique/rubric"
	"github.com/hazyhaar/rubrique/trace"
)

type serviceConfig struct {
	Listen   string          `yaml:"listen"`
	TraceDB  string          `yaml:"trace_db"`
	LogLevel string          `yaml:"log_level"`
	Pipeline quizpipe.Config `yaml:"pipeline"`
}

func loadServiceConfig(path string) (serviceConfig, error) {
	cfg := serviceConfig{
		Listen:   env("LISTEN", ":8086"),
		TraceDB:  env("TRACE_DB", "db/runs.db"),
		LogLevel: env("LOG_LEVEL", "info"),
		Pipeline: quizpipe.DefaultConfig(),
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Pipeline.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", env("RUBRIQUED_CONFIG", ""), "YAML config file")
	flag.Parse()

	cfg, err := loadServiceConfig(*configPath)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	var lvl slog.Level
	switch cfg.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg.Pipeline.Logger = logger
	pipe, err := quizpipe.New(cfg.Pipeline)
	if err != nil {
		slog.Error("pipeline", "error", err)
		os.Exit(1)
	}

	var runs *trace.Store
	if cfg.TraceDB != "" {
		db, err := dbopen.Open(cfg.TraceDB, dbopen.WithMkdirAll())
		if err != nil {
			slog.Error("trace db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		runs = trace.NewStore(db)
		if err := runs.Init(); err != nil {
			slog.Error("trace init", "error", err)
			os.Exit(1)
		}
		defer runs.Close()
	}

	r := chi.NewRouter()
	r.Use(requestID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Post("/api/extract", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(cfg.Pipeline.MaxFileSize); err != nil {
			writeError(w, 400, err)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, 400, fmt.Errorf("multipart field 'file' required: %w", err))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, cfg.Pipeline.MaxFileSize+1))
		if err != nil {
			writeError(w, 400, err)
			return
		}
		if int64(len(data)) > cfg.Pipeline.MaxFileSize {
			writeError(w, 413, fmt.Errorf("file too large (max %d bytes)", cfg.Pipeline.MaxFileSize))
			return
		}

		start := time.Now()
		res, err := pipe.Extract(r.Context(), data)
		record(r.Context(), runs, header.Filename, res, err, time.Since(start))

		if err != nil {
			if errors.Is(err, rubric.ErrNoRounds) {
				writeJSON(w, 422, map[string]any{
					"error":   "no rounds found; unsupported export?",
					"quality": qualityOf(res),
				})
				return
			}
			writeError(w, 500, err)
			return
		}

		if r.URL.Query().Get("format") == "csv" {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.WriteHeader(200)
			if err := rubric.WriteCSV(w, res.Rubric); err != nil {
				slog.Error("write csv", "error", err)
			}
			return
		}
		res.Text = ""
		writeJSON(w, 200, res)
	})

	r.Get("/api/runs", func(w http.ResponseWriter, r *http.Request) {
		if runs == nil {
			writeError(w, 404, fmt.Errorf("run log disabled"))
			return
		}
		recent, err := runs.Recent(r.Context(), queryInt(r, "limit", 50))
		if err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, recent)
	})

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// requestID propagates X-Request-ID into the context, minting one when absent.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = strconv.FormatInt(time.Now().UnixNano(), 36)
		}
		w.Header().Set("X-Request-ID", id)
		ctx := kit.WithRequestID(r.Context(), id)
		ctx = kit.WithTransport(ctx, "http")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func record(ctx context.Context, runs *trace.Store, source string, res *quizpipe.Result, err error, d time.Duration) {
	if runs == nil {
		return
	}
	run := &trace.Run{
		RequestID:  kit.GetRequestID(ctx),
		Source:     source,
		DurationUs: d.Microseconds(),
	}
	if res != nil {
		run.Rounds = len(res.Rubric)
		run.Entries = res.Rubric.TotalEntries()
		if res.Quality != nil {
			run.Blocks = res.Quality.BlockCount
		}
	}
	if err != nil {
		run.Error = err.Error()
	}
	runs.RecordAsync(run)
}

func qualityOf(res *quizpipe.Result) any {
	if res == nil {
		return nil
	}
	return res.Quality
}

// --- Helpers ---

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
