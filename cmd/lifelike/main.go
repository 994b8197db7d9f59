// Command lifelike runs a Game of Life over the tessellation drawn in an image.
//
// Usage:
//
//	lifelike [flags] <input_image>
//	lifelike inspect [flags] <input_image>
//
// Every same-colored 8-connected region of the input becomes a cell and
// touching regions become neighbors. Each generation is written as a PNG
// frame named <output-prefix><8-digit frame>.png under --output-dir.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/setanarut/lifelike"
	"github.com/setanarut/lifelike/utils"
)

type config struct {
	wrap          bool
	proportional  bool
	smin, smax    uint
	rmin, rmax    uint
	frames        uint
	seed          uint64
	outputDir     string
	outputPrefix  string
	quantize      int
	paletteMethod string
	aliveColor    string
	deadColor     string
	borderColor   string
	swatch        string
	jobs          int
	quiet         bool
}

func defaultConfig() config {
	r := lifelike.DefaultRules()
	return config{
		smin:          r.SurviveMin,
		smax:          r.SurviveMax,
		rmin:          r.BirthMin,
		rmax:          r.BirthMax,
		frames:        100,
		outputDir:     "image_out",
		outputPrefix:  "frame_",
		paletteMethod: "dominantcolor",
		aliveColor:    "#3f3f3f",
		deadColor:     "#ffffff",
		borderColor:   "#7f7f7f",
		jobs:          runtime.GOMAXPROCS(0),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// Cobra prints the error, including argument and flag errors.
	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	cfg := defaultConfig()
	root := &cobra.Command{
		Use:           "lifelike [flags] <input_image>",
		Short:         "Game of Life over the cells of an arbitrary tessellation image",
		Args:          cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, args[0], newLogger(logOut, cfg.quiet))
		},
	}

	f := root.PersistentFlags()
	f.BoolVarP(&cfg.wrap, "wrap", "w", cfg.wrap, "treat image space as toroidal")
	f.IntVarP(&cfg.quantize, "quantize", "q", cfg.quantize, "snap the image to this many colors before finding cells (0 = off)")
	f.StringVar(&cfg.paletteMethod, "palette-method", cfg.paletteMethod, "quantize palette method: dominantcolor or kmeans")
	f.BoolVar(&cfg.quiet, "quiet", cfg.quiet, "suppress progress output")

	rf := root.Flags()
	rf.UintVar(&cfg.smin, "smin", cfg.smin, "minimum neighbors for existing cell to survive")
	rf.UintVar(&cfg.smax, "smax", cfg.smax, "maximum neighbors for existing cell to survive")
	rf.UintVar(&cfg.rmin, "rmin", cfg.rmin, "minimum neighbors for new cell to be born")
	rf.UintVar(&cfg.rmax, "rmax", cfg.rmax, "maximum neighbors for new cell to be born")
	rf.UintVarP(&cfg.frames, "frames", "f", cfg.frames, "number of frames to render")
	rf.BoolVarP(&cfg.proportional, "proportional", "p", cfg.proportional, "weight neighbors by how many neighbors they have")
	rf.Uint64Var(&cfg.seed, "seed", cfg.seed, "seed for the initial state (0 = random)")
	rf.StringVarP(&cfg.outputPrefix, "output-prefix", "o", cfg.outputPrefix, "prefix for output frame files")
	rf.StringVar(&cfg.outputDir, "output-dir", cfg.outputDir, "directory for output frame files")
	rf.StringVar(&cfg.aliveColor, "alive-color", cfg.aliveColor, "fill color of live cells")
	rf.StringVar(&cfg.deadColor, "dead-color", cfg.deadColor, "fill color of dead cells")
	rf.StringVar(&cfg.borderColor, "border-color", cfg.borderColor, "color of cell borders")
	rf.StringVar(&cfg.swatch, "palette-swatch", cfg.swatch, "also write the alive/dead/border colors to this PNG")
	rf.IntVarP(&cfg.jobs, "jobs", "j", cfg.jobs, "frames encoded concurrently")

	root.AddCommand(newInspectCmd(logOut, &cfg))
	return root
}

func newInspectCmd(logOut io.Writer, cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [flags] <input_image>",
		Short: "Print statistics about the cells found in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(*cfg, args[0], cmd.OutOrStdout(), newLogger(logOut, cfg.quiet))
		},
	}
}

func newLogger(out io.Writer, quiet bool) *log.Logger {
	if quiet {
		out = io.Discard
	}
	return log.New(out, "lifelike: ", 0)
}

func buildWorld(cfg config, input string, logger *log.Logger) (*lifelike.World, error) {
	method, err := utils.ParsePaletteMethod(cfg.paletteMethod)
	if err != nil {
		return nil, &lifelike.StageError{Stage: lifelike.StageConfig, Err: err}
	}
	presentation, err := lifelike.ParsePalette(cfg.aliveColor, cfg.deadColor, cfg.borderColor)
	if err != nil {
		return nil, &lifelike.StageError{Stage: lifelike.StageConfig, Err: err}
	}

	logger.Printf("Loading '%s'.", input)
	src, err := utils.ReadSurface(input)
	if err != nil {
		return nil, err
	}
	logger.Printf("File dimensions: (width, height) = (%d, %d).", src.Width(), src.Height())

	var palette []colorful.Color
	if cfg.quantize > 0 {
		palette = utils.ExtractPalette(src.NRGBA(), cfg.quantize, method, logger)
		logger.Printf("Quantizing to %d colors (%s).", len(palette), method)
	}

	opt := lifelike.DefaultOptions()
	opt.Wrap = cfg.wrap
	opt.Rules = lifelike.Rules{
		SurviveMin:   cfg.smin,
		SurviveMax:   cfg.smax,
		BirthMin:     cfg.rmin,
		BirthMax:     cfg.rmax,
		Proportional: cfg.proportional,
	}
	opt.Seed = cfg.seed
	opt.Palette = presentation
	opt.Logger = logger

	builder := lifelike.NewWorldBuilder(src, palette)
	return builder.Build(opt)
}

func run(ctx context.Context, cfg config, input string, logger *log.Logger) error {
	if cfg.jobs < 1 {
		return &lifelike.StageError{Stage: lifelike.StageConfig, Err: errors.New("--jobs must be at least 1")}
	}
	world, err := buildWorld(cfg, input, logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.outputDir, 0o755); err != nil {
		return &lifelike.StageError{Stage: lifelike.StageWrite, Err: fmt.Errorf("couldn't create output directory: %w", err)}
	}
	if cfg.swatch != "" {
		if err := utils.SavePalette(world.Palette().Colors(), 64, cfg.swatch); err != nil {
			return &lifelike.StageError{Stage: lifelike.StageWrite, Err: err}
		}
	}

	// Frames are encoded in the background while the next generation is
	// computed. Each frame owns its surface, so encoders never touch the world.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs)
	for frame := range int(cfg.frames) {
		if gctx.Err() != nil {
			break
		}
		img := world.Image()
		path := utils.FramePath(cfg.outputDir, cfg.outputPrefix, frame)
		logger.Printf("Writing frame to '%s'.", path)
		g.Go(func() error {
			if err := utils.SaveImage(img.NRGBA(), path); err != nil {
				return &lifelike.StageError{Stage: lifelike.StageWrite, Err: err}
			}
			return nil
		})
		world.Step()
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func inspect(cfg config, input string, out io.Writer, logger *log.Logger) error {
	world, err := buildWorld(cfg, input, logger)
	if err != nil {
		return err
	}
	r := lifelike.Analyze(world.Cells())
	fmt.Fprintf(out, "size:        %dx%d\n", world.Width(), world.Height())
	fmt.Fprintf(out, "cells:       %d\n", r.Cells)
	fmt.Fprintf(out, "edges:       %d\n", r.Edges)
	fmt.Fprintf(out, "colors:      %d\n", r.Colors)
	fmt.Fprintf(out, "components:  %d\n", r.Components)
	fmt.Fprintf(out, "isolated:    %d\n", r.Isolated)
	fmt.Fprintf(out, "degree:      min %d, max %d, mean %.3f, stddev %.3f\n", r.MinDegree, r.MaxDegree, r.MeanDegree, r.StdDevDegree)
	fmt.Fprintf(out, "mean area:   %.2f px\n", r.MeanArea)
	for d := r.MinDegree; d <= r.MaxDegree; d++ {
		if n := r.DegreeHistogram[d]; n > 0 {
			fmt.Fprintf(out, "  degree %3d: %d\n", d, n)
		}
	}
	return nil
}
