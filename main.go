package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/gesture-particles/internal/audio"
	"github.com/iburimskiy/gesture-particles/internal/config"
	"github.com/iburimskiy/gesture-particles/internal/game"
	"github.com/iburimskiy/gesture-particles/internal/gesture"
	"github.com/iburimskiy/gesture-particles/internal/morph"
	"github.com/iburimskiy/gesture-particles/internal/shape"
	"github.com/iburimskiy/gesture-particles/internal/vision"
)

type options struct {
	configPath string
	shape      string
	color      string
	count      int
	camera     int
	model      string
	noTracking bool
	mute       bool
	verbose    bool
}

func main() {
	log.SetFlags(log.Ltime)
	log.SetPrefix("particles: ")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "gesture-particles",
		Short:        "Particle shapes you stretch and pinch with your hands",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), conf)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "TOML settings file")
	f.StringVar(&opts.shape, "shape", "", "initial shape: heart, flower, saturn, zen, boom, sphere")
	f.StringVar(&opts.color, "color", "", "initial particle color as #rrggbb")
	f.IntVar(&opts.count, "count", 0, "number of particles")
	f.IntVar(&opts.camera, "camera", 0, "capture device index")
	f.StringVar(&opts.model, "model", "", "hand landmark model file")
	f.BoolVar(&opts.noTracking, "no-tracking", false, "run without the camera")
	f.BoolVar(&opts.mute, "mute", false, "disable feedback sounds")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log selection and tracker events")
	return cmd
}

// loadConfig reads the settings file and applies the flags that were set.
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	conf, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("shape") {
		k, err := shape.ParseKind(opts.shape)
		if err != nil {
			return nil, err
		}
		conf.Shape = k
	}
	if f.Changed("color") {
		conf.Color = opts.color
	}
	if f.Changed("count") {
		conf.Particles.Count = opts.count
	}
	if f.Changed("camera") {
		conf.Camera.Device = opts.camera
	}
	if f.Changed("model") {
		conf.Detector.Model = opts.model
	}
	if opts.noTracking {
		conf.Camera.Enabled = false
	}
	if opts.mute {
		conf.Sound.Enabled = false
	}
	if opts.verbose {
		conf.Verbose = true
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return conf, nil
}

func run(ctx context.Context, conf *config.Config) error {
	hex, err := shape.NormalizeHex(conf.Color)
	if err != nil {
		return err
	}
	anim, err := morph.New(conf.Particles.Count, morph.Selection{Shape: conf.Shape, Color: hex}, shape.NewGenerator(nil))
	if err != nil {
		return err
	}

	chimes, audioErr := audio.NewChimes(conf.Sound)
	if audioErr != nil {
		log.Printf("sound disabled: %v", audioErr)
	}

	var feed game.Signal
	if conf.Camera.Enabled {
		tracker := gesture.NewTracker(func(ctx context.Context) (gesture.HandSource, error) {
			p, err := vision.Open(ctx, conf.Camera, conf.Detector)
			if err != nil {
				// keep the interface nil rather than a typed nil pointer
				return nil, err
			}
			return p, nil
		})
		tracker.SetVerbose(conf.Verbose)
		tracker.Start(ctx)
		defer tracker.Stop()
		feed = tracker
	}

	g := game.New(conf, anim, feed, chimes)
	g.SetError(audioErr)

	ebiten.SetWindowSize(conf.Window.Width, conf.Window.Height)
	ebiten.SetWindowTitle(conf.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
