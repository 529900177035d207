// SPDX-License-Identifier: EPL-2.0

// Command wavmark inserts and removes the audio watermark on WAV files, or
// serves the same operations over HTTP.
//
// Usage:
//
//	wavmark [-config file.yaml] insert <in.wav|in.aiff> <out.wav>
//	wavmark [-config file.yaml] remove <in.wav|in.aiff> <out.wav>
//	wavmark [-config file.yaml] serve
//	wavmark [-config file.yaml] migrate   (creates tables, seeds an empty catalog)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ik5/wavmark"
	"github.com/ik5/wavmark/formats/aiff"
	"github.com/ik5/wavmark/formats/wav"
	"github.com/ik5/wavmark/internal/catalog"
	"github.com/ik5/wavmark/internal/config"
	"github.com/ik5/wavmark/internal/server"
)

const usage = `usage: wavmark [-config file.yaml] <command> [args]

commands:
  insert <in> <out.wav>   prepend the watermark (in: .wav or .aiff)
  remove <in> <out.wav>   strip the watermark
  serve                   run the HTTP service
  migrate                 create and seed the catalog tables
`

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("wavmark", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "path to the YAML configuration file (defaults apply when empty)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "wavmark: config file %q not found\n", *configPath)
		} else {
			fmt.Fprintf(stderr, "wavmark: %v\n", err)
		}
		return 1
	}

	logger := newLogger(stderr, cfg.Server.LogLevel)
	slog.SetDefault(logger)

	marker, err := newMarker(cfg)
	if err != nil {
		logger.Error("invalid watermark configuration", "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "insert", "remove":
		if len(rest) != 2 {
			fmt.Fprintf(stderr, "wavmark: %s needs <in> <out.wav>\n", cmd)
			return 2
		}
		dec, ok := decoderFor(rest[0])
		if !ok {
			fmt.Fprintf(stderr, "wavmark: unsupported input format %q\n", filepath.Ext(rest[0]))
			return 2
		}
		fn := marker.InsertFrom
		if cmd == "remove" {
			fn = marker.RemoveFrom
		}
		err := transformFile(rest[0], rest[1], func(r io.Reader, w io.Writer) error {
			return fn(dec, r, w)
		})
		if err != nil {
			logger.Error(cmd+" failed", "in", rest[0], "err", err)
			return 1
		}
		logger.Info(cmd+" done", "in", rest[0], "out", rest[1])
		return 0

	case "serve":
		return serve(ctx, cfg, marker, logger)

	case "migrate":
		return migrate(ctx, cfg, logger)

	default:
		fmt.Fprintf(stderr, "wavmark: unknown command %q\n\n", cmd)
		fs.Usage()
		return 2
	}
}

// decoders maps input file extensions to their container decoder.
var decoders = map[string]wavmark.ClipDecoder{
	".wav":  wav.Decoder{},
	".wave": wav.Decoder{},
	".aif":  aiff.Decoder{},
	".aiff": aiff.Decoder{},
}

func decoderFor(path string) (wavmark.ClipDecoder, bool) {
	dec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return dec, ok
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, config.Validate(cfg)
	}
	return config.Load(path)
}

func newMarker(cfg *config.Config) (*wavmark.Marker, error) {
	pattern, err := cfg.Watermark.Pattern()
	if err != nil {
		return nil, err
	}

	return wavmark.New(wavmark.Options{
		AllowedSampleRates:  cfg.Audio.AllowedSampleRates,
		AllowedSampleWidths: cfg.Audio.AllowedSampleWidths,
		Pattern:             pattern,
	})
}

// transformFile runs fn from inPath to outPath. outPath is removed when fn
// fails.
func transformFile(inPath, outPath string, fn func(io.Reader, io.Writer) error) (err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(outPath)
		}
	}()

	return fn(in, out)
}

func serve(ctx context.Context, cfg *config.Config, marker *wavmark.Marker, logger *slog.Logger) int {
	var nodes server.NodeLister
	if dsn := cfg.Database.PostgresDSN; dsn != "" {
		pool, err := catalog.Connect(ctx, dsn)
		if err != nil {
			logger.Error("failed to connect to catalog", "err", err)
			return 1
		}
		defer pool.Close()
		nodes = catalog.NewStore(pool)
		logger.Info("catalog connected")
	} else {
		logger.Warn("no postgres_dsn configured, /api/nodes disabled")
	}

	logger.Info("wavmark starting", startupAttrs(cfg, marker)...)

	srv := server.New(cfg.Server, marker, nodes, logger)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", "err", err)
		return 1
	}

	logger.Info("goodbye")
	return 0
}

// startupAttrs describes the effective marker settings for the start-up log.
func startupAttrs(cfg *config.Config, marker *wavmark.Marker) []any {
	v := marker.Validator()
	p := marker.Pattern()
	return []any{
		"listen_addr", cfg.Server.ListenAddr,
		"sample_rates", v.SampleRates(),
		"sample_widths", v.SampleWidths(),
		"pattern_frames", p.Len(),
		"pattern_bits", p.Bits(cfg.Watermark.OneDB),
	}
}

func migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) int {
	if cfg.Database.PostgresDSN == "" {
		logger.Error("migrate needs database.postgres_dsn")
		return 1
	}

	pool, err := catalog.Connect(ctx, cfg.Database.PostgresDSN)
	if err != nil {
		logger.Error("failed to connect to catalog", "err", err)
		return 1
	}
	defer pool.Close()

	store := catalog.NewStore(pool)
	if err := store.Migrate(ctx); err != nil {
		logger.Error("migration failed", "err", err)
		return 1
	}
	logger.Info("catalog schema applied")

	added, err := store.Seed(ctx)
	if err != nil {
		logger.Error("seeding failed", "added", added, "err", err)
		return 1
	}
	if added > 0 {
		logger.Info("catalog seeded", "nodes", added)
	}
	return 0
}

func newLogger(w io.Writer, level config.LogLevel) *slog.Logger {
	var l slog.Level
	switch level {
	case config.LogDebug:
		l = slog.LevelDebug
	case config.LogWarn:
		l = slog.LevelWarn
	case config.LogError:
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
