package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/display"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

const defaultWorkers = 4

// options holds the parsed command line
type options struct {
	sceneName       string
	width           int
	height          int
	display         string
	frames          int
	fps             int
	timestep        time.Duration
	scale           int
	followWindow    bool
	profile         time.Duration
	shutdownTimeout time.Duration
	workers         int
	help            bool
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if opts.help {
		printUsage(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, opts)
	stop()
	if err != nil {
		log.Printf("Render failed: %v", err)
		os.Exit(1)
	}
}

// newFlagSet defines the command line flags, storing values into opts
func newFlagSet(opts *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.sceneName, "scene", "default", "Scene to render (see list below)")
	fs.IntVar(&opts.width, "width", 0, "Frame width in pixels (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Frame height in pixels (0 = scene default)")
	fs.StringVar(&opts.display, "display", "window", "Display sink: 'window', 'terminal' or 'none'")
	fs.IntVar(&opts.frames, "frames", 0, "Stop after this many frames (0 = run until closed)")
	fs.IntVar(&opts.fps, "fps", 0, "Frame rate cap (0 = uncapped)")
	fs.DurationVar(&opts.timestep, "timestep", 0, "Fixed animation step per frame, e.g. 16ms (0 = wall clock)")
	fs.IntVar(&opts.scale, "scale", 2, "Initial window size as a multiple of the frame size")
	fs.BoolVar(&opts.followWindow, "follow-window", false, "Re-render at the window's size when it is resized")
	fs.DurationVar(&opts.profile, "profile", 0, "Log frame statistics at this interval, e.g. 1s (0 = off)")
	fs.DurationVar(&opts.shutdownTimeout, "shutdown-timeout", 2*time.Second, "Maximum time to wait for workers on exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	return fs
}

// parseOptions parses flags followed by an optional positional worker count
func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := newFlagSet(&opts, stderr)
	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.help {
		return opts, nil
	}

	workers, err := parseWorkers(fs.Args())
	if err != nil {
		return opts, err
	}
	opts.workers = workers

	switch opts.display {
	case "window", "terminal", "none":
	default:
		return opts, fmt.Errorf("unknown display %q (want window, terminal or none)", opts.display)
	}
	if opts.frames < 0 || opts.fps < 0 {
		return opts, fmt.Errorf("-frames and -fps must not be negative")
	}
	if opts.scale < 1 {
		return opts, fmt.Errorf("-scale must be at least 1, got %d", opts.scale)
	}

	return opts, nil
}

// parseWorkers reads the optional positional worker count
func parseWorkers(args []string) (int, error) {
	switch len(args) {
	case 0:
		return defaultWorkers, nil
	case 1:
	default:
		return 0, fmt.Errorf("expected at most one positional argument (worker count), got %d", len(args))
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid worker count %q: %w", args[0], renderer.ErrInvalidWorkerCount)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid worker count %d: %w", n, renderer.ErrInvalidWorkerCount)
	}
	return n, nil
}

// createScene creates a scene based on the scene name
func createScene(sceneName string) (*scene.Scene, error) {
	return scene.New(sceneName)
}

func renderConfig(opts options) renderer.Config {
	config := renderer.DefaultConfig()
	config.Width = opts.width
	config.Height = opts.height
	config.Workers = opts.workers
	config.FixedTimeStep = opts.timestep
	config.FrameLimit = opts.fps
	config.MaxFrames = opts.frames
	config.ProfileInterval = opts.profile
	config.ShutdownTimeout = opts.shutdownTimeout
	return config
}

// run wires the scene, coordinator and display together and blocks until
// rendering ends
func run(ctx context.Context, opts options) error {
	selectedScene, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}
	config := renderConfig(opts)

	var (
		coordinator *renderer.Coordinator
		window      *display.Window
		sink        renderer.Sink
	)

	switch opts.display {
	case "window":
		windowConfig := display.DefaultWindowConfig()
		windowConfig.Title = fmt.Sprintf("Realtime Raytracer - %s", selectedScene.Name)
		windowConfig.Scene = selectedScene.Name
		windowConfig.Scale = opts.scale
		if opts.followWindow {
			windowConfig.OnResize = func(width, height int) {
				if err := coordinator.RequestResize(width, height); err != nil {
					log.Printf("Ignoring resize: %v", err)
				}
			}
		}
		width, height := config.Width, config.Height
		if width == 0 || height == 0 {
			width, height = selectedScene.Width, selectedScene.Height
		}
		window = display.NewWindow(width, height, windowConfig)
		sink = window
	case "terminal":
		terminalConfig := display.DefaultTerminalConfig()
		terminalConfig.FD = int(os.Stdout.Fd())
		terminal := display.NewTerminal(os.Stdout, terminalConfig)
		defer terminal.Close()
		sink = terminal
	default:
		headless := display.NewHeadless()
		defer func() {
			log.Printf("Rendered %d frames, last frame checksum %016x", headless.Frames(), headless.Checksum())
		}()
		sink = headless
	}

	logger := renderer.NewDefaultLogger()
	if opts.display == "terminal" {
		// Log lines would scroll the preview
		logger = core.NopLogger{}
	}

	coordinator, err = renderer.NewCoordinator(selectedScene, sink, config, logger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if window != nil {
			defer window.Close()
		}
		return coordinator.Run(gctx)
	})

	if window == nil {
		return g.Wait()
	}

	g.Go(func() error {
		select {
		case <-window.Done():
			coordinator.Stop()
		case <-gctx.Done():
			window.Close()
		}
		return nil
	})

	// ebiten must own the main goroutine
	windowErr := window.Run()
	coordinator.Stop()
	if err := g.Wait(); err != nil {
		return err
	}
	return windowErr
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Realtime Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options] [workers]")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  workers   number of render threads (default %d)\n", defaultWorkers)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	var defaults options
	newFlagSet(&defaults, w).PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keys (window): Esc quits, Tab toggles the status overlay")
}
