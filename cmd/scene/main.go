package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/smasonuk/gosie3d"
	"github.com/smasonuk/gosie3d/internal/app"
	"github.com/smasonuk/gosie3d/internal/assets"
	"github.com/smasonuk/gosie3d/internal/config"
	"github.com/spf13/cobra"
)

type flags struct {
	config   string
	variant  string
	model    string
	headless bool
	frames   int
	watch    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "scene",
		Short:        "Animated 3D scene demos on the gosie3d renderer",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "TOML config file")
	fl.StringVar(&f.variant, "variant", "", "scene variant: basic, quad or model")
	fl.StringVar(&f.model, "model", "", "model file for the model variant (.gltf, .glb, .ply, .dxf)")
	fl.BoolVar(&f.headless, "headless", false, "run the frame loop without a window")
	fl.IntVar(&f.frames, "frames", 0, "stop after this many frames (0 runs until interrupted)")
	fl.BoolVar(&f.watch, "watch", false, "reload [options] when the config file changes")

	cmd.AddCommand(newConvertCmd())
	return cmd
}

func loadConfig(f flags) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}
	if f.variant != "" {
		cfg.Variant = f.variant
	}
	if f.model != "" {
		cfg.Scene.ModelPath = f.model
		if f.variant == "" {
			cfg.Variant = config.VariantModel
		}
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, f flags) error {
	if f.watch && f.config == "" {
		return fmt.Errorf("--watch needs --config")
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if f.watch {
		if err := a.Watch(f.config); err != nil {
			return err
		}
	}

	if f.headless {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		err := a.RunHeadless(ctx, f.frames, time.Second/60)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	if f.frames > 0 {
		a.StopAfter(f.frames)
	}
	return app.NewGame(a).Run()
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a model to PLY or DXF",
		Long: "Loads a .gltf, .glb, .ply or .dxf model and writes it as .ply or .dxf,\n" +
			"chosen by the extension of <out>.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return convert(args[0], args[1])
		},
	}
}

func convert(in, out string) error {
	var save func(*gosie3d.Model, string) error
	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".ply":
		save = (*gosie3d.Model).SavePLYWithFaceColors
	case ".dxf":
		save = (*gosie3d.Model).SaveDXF
	default:
		return fmt.Errorf("%w: cannot write %q", assets.ErrUnsupportedFormat, ext)
	}

	m, err := assets.LoadModel(in)
	if err != nil {
		return err
	}
	if err := save(m, out); err != nil {
		return err
	}
	log.Printf("Wrote %s (%d faces)", out, m.FaceCount())
	return nil
}
