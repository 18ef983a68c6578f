// Package cli is the command line front end shared by the demo commands.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/shapedemo"
	"github.com/gogpu/shapedemo/internal/snapshot"
	"github.com/gogpu/shapedemo/internal/window"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// runWindow is replaced in tests.
var runWindow = window.Run

// Run parses args, then shows shape in a window, or writes a snapshot when
// -snapshot is given. opts configure the demo before flags are applied.
func Run(args []string, shape shapedemo.Shape, opts ...shapedemo.Option) int {
	return run(args, os.Stderr, shape, opts)
}

func run(args []string, stderr io.Writer, shape shapedemo.Shape, opts []shapedemo.Option) int {
	fs := flag.NewFlagSet(shape.Name(), flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		backendName = fs.String("backend", "auto", "renderer: auto, gpu or cpu")
		output      = fs.String("snapshot", "", "render one frame to `file` (.png, .bmp, .tiff) and exit")
		width       = fs.Int("width", shapedemo.DefaultWidth, "window width")
		height      = fs.Int("height", shapedemo.DefaultHeight, "window height")
		verbose     = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return ExitUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	shapedemo.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	log := shapedemo.Logger()

	backend, err := window.ParseBackend(*backendName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	sized := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "width" || f.Name == "height" {
			sized = true
		}
	})
	if sized {
		opts = append(opts, shapedemo.WithSize(*width, *height))
	}
	cfg, err := shapedemo.NewConfig(opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	if *output != "" {
		if _, err := snapshot.FormatFor(*output); err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if err := writeSnapshot(*output, shape, cfg, backend); err != nil {
			log.Error("snapshot failed", "err", err)
			return ExitError
		}
		log.Info("snapshot written", "path", *output, "width", cfg.Width, "height", cfg.Height)
		return ExitOK
	}

	if err := runWindow(shape, cfg, backend); err != nil {
		log.Error("demo failed", "err", err)
		return ExitError
	}
	return ExitOK
}

// writeSnapshot renders one frame without opening a window.
func writeSnapshot(path string, shape shapedemo.Shape, cfg shapedemo.Config, backend window.Backend) error {
	src, err := window.NewSource(backend, nil, shape, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	img, err := src.Render(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	return snapshot.Write(path, img)
}
