// CLAUDE:SUMMARY Entry point for the rubrique CLI — PDF in, answer-key CSV out, optional MCP stdio server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/rubrique/dbopen"
	"github.com/hazyhaar/rubrique/quizpipe"
	"github.com/hazyhaar/rubrique/rubric"
	"github.com/hazyhaar/rubrique/trace"
)

func main() {
	var (
		configPath = flag.String("config", env("RUBRIQUE_CONFIG", ""), "YAML config file")
		tracePath  = flag.String("trace-db", env("TRACE_DB", ""), "SQLite run log (empty disables)")
		logLevel   = flag.String("log-level", env("LOG_LEVEL", "info"), "debug, info, warn or error")
		mcpMode    = flag.Bool("mcp", false, "serve the extraction tools over MCP stdio instead of extracting")
	)
	flag.Usage = usage
	flag.Parse()

	var lvl slog.Level
	switch *logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	// Logs go to stderr: stdout may carry CSV or the MCP stream.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := quizpipe.LoadConfig(*configPath)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	cfg.Logger = logger

	pipe, err := quizpipe.New(cfg)
	if err != nil {
		slog.Error("pipeline", "error", err)
		os.Exit(1)
	}

	var runs *trace.Store
	if *tracePath != "" {
		db, err := dbopen.Open(*tracePath, dbopen.WithMkdirAll())
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

	if *mcpMode {
		srv := mcp.NewServer(&mcp.Implementation{
			Name:    "rubrique",
			Version: "1.0.0",
		}, nil)
		pipe.RegisterMCP(srv)
		slog.Info("MCP stdio server starting")
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("MCP server", "error", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	if args[0] == "runs" {
		if runs == nil {
			fmt.Fprintln(os.Stderr, "runs requires -trace-db")
			os.Exit(1)
		}
		listRuns(ctx, runs)
		return
	}

	input := args[0]
	output := strings.TrimSuffix(input, filepath.Ext(input)) + ".csv"
	if len(args) > 1 {
		output = args[1]
	}

	start := time.Now()
	res, err := pipe.ExtractFile(ctx, input)
	record(runs, input, res, err, time.Since(start))

	if err != nil {
		if errors.Is(err, rubric.ErrNoRounds) {
			slog.Error("no rounds found; unsupported export?", "input", input)
			if res != nil && res.Quality != nil {
				if res.Quality.LooksScanned() {
					slog.Error("document appears to be an image-only scan")
				}
				slog.Info("diagnostics",
					"blocks", res.Quality.BlockCount,
					"tokens", res.Quality.TokenCount,
					"doc_chars", res.Quality.DocChars)
			}
			os.Exit(2)
		}
		slog.Error("extract", "input", input, "error", err)
		os.Exit(1)
	}

	f, err := os.Create(output)
	if err != nil {
		slog.Error("create output", "path", output, "error", err)
		os.Exit(1)
	}
	if err := rubric.WriteCSV(f, res.Rubric); err != nil {
		f.Close()
		slog.Error("write csv", "path", output, "error", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		slog.Error("close output", "path", output, "error", err)
		os.Exit(1)
	}

	slog.Info("rubric written",
		"input", input, "output", output,
		"rounds", len(res.Rubric), "entries", res.Rubric.TotalEntries())
}

func record(runs *trace.Store, input string, res *quizpipe.Result, err error, d time.Duration) {
	if runs == nil {
		return
	}
	r := &trace.Run{Source: filepath.Base(input), DurationUs: d.Microseconds()}
	if res != nil {
		r.Rounds = len(res.Rubric)
		r.Entries = res.Rubric.TotalEntries()
		if res.Quality != nil {
			r.Blocks = res.Quality.BlockCount
		}
	}
	if err != nil {
		r.Error = err.Error()
	}
	runs.RecordAsync(r)
}

func listRuns(ctx context.Context, runs *trace.Store) {
	recent, err := runs.Recent(ctx, 50)
	if err != nil {
		slog.Error("list runs", "error", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	for _, r := range recent {
		enc.Encode(r)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: rubrique [flags] input.pdf [output.csv]
       rubrique [flags] runs
       rubrique -mcp [flags]

Extracts the answer key from a trivia PDF export and writes it as CSV.
Default output is the input path with a .csv extension.

flags:
`)
	flag.PrintDefaults()
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
