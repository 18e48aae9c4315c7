// Command emend runs the correction decision engine as a local service with
// an interactive stdin loop and an optional HTTP endpoint for metrics and
// health checks.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/typecraft/emend/internal/config"
	"github.com/typecraft/emend/internal/dictionary"
	"github.com/typecraft/emend/internal/engine"
	"github.com/typecraft/emend/internal/health"
	"github.com/typecraft/emend/internal/observe"
	"github.com/typecraft/emend/internal/safety"
	"github.com/typecraft/emend/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	noWatch := flag.Bool("no-watch", false, "disable config file hot-reload")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "emend: config file %q not found; copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "emend: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	level := new(slog.LevelVar)
	level.Set(slogLevel(cfg.Server.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("emend starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
		"language", cfg.Engine.Language,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "emend"})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}

	// ── Storage and dictionary ────────────────────────────────────────────────
	reg := config.DefaultRegistry()

	kv, err := reg.CreateStore(cfg.Storage)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.Storage.Backend, "err", err)
		return 1
	}

	dict, err := reg.CreateDictionary(cfg.Dictionary)
	if err != nil {
		slog.Error("failed to load dictionary", "source", cfg.Dictionary.Source, "err", err)
		return 1
	}
	resolver := resolverFor(dict, cfg.Dictionary)

	// ── Engine ────────────────────────────────────────────────────────────────
	gate := safety.NewGate(safety.WithDenylist(cfg.Engine.DenylistExtra))

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithGate(gate),
	}
	if cfg.Engine.Language != "" {
		opts = append(opts, engine.WithLanguage(cfg.Engine.Language))
	}
	if cfg.Engine.FlushDelay > 0 {
		opts = append(opts, engine.WithFlushDelay(cfg.Engine.FlushDelay))
	}
	if cfg.Engine.MaxPairs > 0 {
		opts = append(opts, engine.WithMaxPairs(cfg.Engine.MaxPairs))
	}
	if cfg.Engine.IntentionalTTL > 0 {
		opts = append(opts, engine.WithIntentionalTTL(cfg.Engine.IntentionalTTL))
	}
	if len(cfg.Engine.BigramWeights) > 0 {
		opts = append(opts, engine.WithBigramWeights(cfg.Engine.BigramWeights))
	}

	eng, err := engine.New(ctx, kv, dict, resolver, opts...)
	if err != nil {
		slog.Error("failed to initialise engine", "err", err)
		return 1
	}
	eng.SetEnabled(cfg.Engine.EnabledOrDefault())

	// ── Config hot-reload ─────────────────────────────────────────────────────
	var watcher *config.Watcher
	if !*noWatch {
		watcher, err = config.NewWatcher(*configPath, func(old, new *config.Config) {
			diff := config.Diff(old, new)
			if !diff.Any() {
				return
			}
			if diff.LogLevelChanged {
				level.Set(slogLevel(diff.NewLogLevel))
				slog.Info("log level changed", "level", diff.NewLogLevel)
			}
			if diff.EnabledChanged {
				eng.SetEnabled(diff.NewEnabled)
				slog.Info("engine toggled", "enabled", diff.NewEnabled)
			}
			if diff.DenylistChanged || diff.BigramsChanged {
				slog.Warn("denylist or bigram changes require a restart to take effect")
			}
			if diff.RestartRequired {
				slog.Warn("config change requires a restart",
					"hint", "storage, dictionary and engine tuning are fixed at startup")
			}
		})
		if err != nil {
			slog.Error("failed to start config watcher", "err", err)
			return 1
		}
		watcher.Start()
	}

	// ── HTTP endpoint (optional) ──────────────────────────────────────────────
	var srv *http.Server
	if cfg.Server.ListenAddr != "" {
		srv = newHTTPServer(cfg, eng, kv, resolver)
		go func() {
			slog.Info("http endpoint listening", "addr", cfg.Server.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("http server error", "err", err)
			}
		}()
	}

	printStartupSummary(cfg, eng)

	slog.Info("ready — type text and press Enter, Ctrl+C to shut down")

	runREPL(ctx, eng)

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	slog.Info("shutting down…")

	if watcher != nil {
		watcher.Stop()
	}
	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("http shutdown error", "err", err)
		}
	}

	exitCode := 0
	if err := eng.Close(); err != nil {
		slog.Error("engine close error", "err", err)
		exitCode = 1
	}
	if err := kv.Close(); err != nil {
		slog.Error("store close error", "err", err)
		exitCode = 1
	}
	if err := otelShutdown(shutdownCtx); err != nil {
		slog.Warn("telemetry shutdown error", "err", err)
	}
	slog.Info("goodbye")
	return exitCode
}

// ── Interactive loop ──────────────────────────────────────────────────────────

// runREPL reads lines from stdin and reports the engine's decision for the
// last word of each line, treating the newline as a commit boundary. Lines
// starting with "+" learn a word, lines starting with "-" ignore one.
func runREPL(ctx context.Context, eng *engine.Engine) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			handleLine(ctx, eng, line)
		}
	}
}

func handleLine(ctx context.Context, eng *engine.Engine, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	switch {
	case strings.HasPrefix(line, "+"):
		word := strings.TrimSpace(line[1:])
		if err := eng.LearnWord(ctx, word); err != nil {
			fmt.Printf("  learn failed: %v\n", err)
			return
		}
		fmt.Printf("  learned %q\n", word)
		return
	case strings.HasPrefix(line, "-"):
		word := strings.TrimSpace(line[1:])
		if err := eng.IgnoreWord(ctx, word); err != nil {
			fmt.Printf("  ignore failed: %v\n", err)
			return
		}
		fmt.Printf("  ignoring %q\n", word)
		return
	}

	word, d := eng.DecideLast(ctx, line, true)
	switch {
	case d.ApplyAuto:
		fmt.Printf("  %q → %q (auto)\n", word, d.Replacement)
		eng.RecordAccepted(ctx, word, d.Replacement)
	case len(d.Suggestions) > 0:
		fmt.Printf("  %q → suggestions: %s\n", word, strings.Join(d.Suggestions, ", "))
	default:
		fmt.Printf("  %q → no action\n", word)
	}
}

// ── HTTP wiring ───────────────────────────────────────────────────────────────

func newHTTPServer(cfg *config.Config, eng *engine.Engine, kv store.KV, resolver dictionary.LanguageResolver) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())

	h := health.New(
		health.StoreChecker(kv),
		health.DictionaryChecker(resolver, eng.Status().Language),
	)
	h.Register(mux)

	mux.HandleFunc("GET /statusz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(eng.Status()); err != nil {
			slog.Warn("statusz encode error", "err", err)
		}
	})

	return &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           observe.Middleware(observe.DefaultMetrics())(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// resolverFor returns the language resolver for dict. Word-list dictionaries
// resolve languages themselves; anything else falls back to a static resolver
// over the configured language list.
func resolverFor(dict dictionary.Checker, cfg config.DictionaryConfig) dictionary.LanguageResolver {
	if r, ok := dict.(dictionary.LanguageResolver); ok {
		return r
	}
	langs := cfg.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	return dictionary.NewStaticResolver(langs, langs[0])
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config, eng *engine.Engine) {
	st := eng.Status()
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║          emend — startup summary      ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printRow("Language", st.Language)
	printRow("Enabled", fmt.Sprintf("%t", st.Enabled))
	printRow("Storage", string(cfg.Storage.Backend))
	printRow("Dictionary", orDefault(cfg.Dictionary.Source, "wordlist"))
	printRow("Learned words", fmt.Sprintf("%d", st.LearnedWords))
	printRow("Ignored words", fmt.Sprintf("%d", st.IgnoredWords))
	printRow("Accept. pairs", fmt.Sprintf("%d", st.AcceptancePairs))
	if cfg.Server.ListenAddr != "" {
		printRow("Listen addr", cfg.Server.ListenAddr)
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printRow(label, value string) {
	if len(value) > 19 {
		value = value[:16] + "…"
	}
	fmt.Printf("║  %-14s  : %-19s ║\n", label, value)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ── Logger ────────────────────────────────────────────────────────────────────

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
