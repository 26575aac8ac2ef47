// main.go - Command line front end

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"
)

const HEADLESS_DEFAULT_FRAMES = 60

var bannerLines = []string{
	"  ▄████ ▒██   ██▒  ██████  ▒█████    █████▒▄▄▄█████▓",
	" ██▒ ▀█▒▒▒ █ █ ▒░▒██    ▒ ▒██▒  ██▒▓██   ▒ ▓  ██▒ ▓▒",
	"▒██░▄▄▄░░░  █   ░░ ▓██▄   ▒██░  ██▒▒████ ░ ▒ ▓██░ ▒░",
	"░▓█  ██▓ ░ █ █ ▒   ▒   ██▒▒██   ██░░▓█▒  ░ ░ ▓██▓ ░ ",
	"░▒▓███▀▒▒██▒ ▒██▒▒██████▒▒░ ████▓▒░░▒█░      ▒██▒ ░ ",
	" ░▒   ▒ ▒▒ ░ ░▓ ░▒ ▒▓▒ ▒ ░░ ▒░▒░▒░  ▒ ░      ▒ ░░   ",
}

func boilerPlate(out io.Writer, color bool) {
	fmt.Fprintln(out)
	for i, line := range bannerLines {
		if color {
			fmt.Fprintf(out, "\033[38;2;255;%d;147m%s\033[0m\n", 20+i*40, line)
		} else {
			fmt.Fprintln(out, line)
		}
	}
	fmt.Fprintln(out, "\nSoftware GX pipeline", Version)
	fmt.Fprintln(out, "(c) 2024 - 2026 Zayn Otley")
	fmt.Fprintln(out, "License: GPLv3 or later")
}

type options struct {
	scene    string
	frames   int
	width    int
	height   int
	scale    int
	dump     string
	headless bool
	verbose  bool
	features bool
}

func parseFlags(args []string) (options, error) {
	var opts options

	flagSet := flag.NewFlagSet("gxsoft", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.scene, "scene", "", "Lua scene script (default: built-in demo)")
	flagSet.IntVar(&opts.frames, "frames", 0, "Frames to render, 0 runs until the window closes")
	flagSet.IntVar(&opts.width, "width", GX_DEFAULT_WIDTH, "Embedded frame buffer width")
	flagSet.IntVar(&opts.height, "height", GX_DEFAULT_HEIGHT, "Embedded frame buffer height")
	flagSet.IntVar(&opts.scale, "scale", 1, "Window scale factor")
	flagSet.StringVar(&opts.dump, "dump", "", "Write the last frame to this PNG file")
	flagSet.BoolVar(&opts.headless, "headless", false, "Render without a window")
	flagSet.BoolVar(&opts.verbose, "v", false, "Debug logging on stderr")
	flagSet.BoolVar(&opts.features, "features", false, "Print compiled features and exit")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./gxsoft [-scene file.lua] [-frames N] [-width W -height H] [-scale N] [-dump out.png] [-headless] [-v]")
		fmt.Printf("Headless runs default to %d frames.\n\n", HEADLESS_DEFAULT_FRAMES)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if opts.frames < 0 {
		return opts, fmt.Errorf("-frames must not be negative")
	}
	if opts.headless && opts.frames == 0 {
		opts.frames = HEADLESS_DEFAULT_FRAMES
	}
	return opts, nil
}

func loadSceneSource(path string) (name, src string, err error) {
	if path == "" {
		return "default.lua", defaultSceneSource, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return filepath.Base(path), string(data), nil
}

func run(opts options, tty bool) error {
	if opts.verbose {
		SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	gx, err := NewGXEngine(opts.width, opts.height)
	if err != nil {
		return err
	}

	backend := VIDEO_BACKEND_EBITEN
	if opts.headless {
		backend = VIDEO_BACKEND_HEADLESS
	}
	output, err := NewVideoOutput(backend)
	if err != nil {
		return err
	}
	if err := output.SetDisplayConfig(DisplayConfig{
		Width:       opts.width,
		Height:      opts.height,
		Scale:       opts.scale,
		RefreshRate: 60,
		PixelFormat: PixelFormatRGBA,
		VSync:       true,
	}); err != nil {
		return err
	}
	if err := output.Start(); err != nil {
		return err
	}
	defer output.Close()

	vi := NewVIBridge(gx, output)
	if sc, ok := output.(StatusCapable); ok {
		sc.SetStatusProvider(vi.Status)
	}

	name, src, err := loadSceneSource(opts.scene)
	if err != nil {
		return err
	}
	scene, err := NewLuaScene(gx, vi, name, src)
	if err != nil {
		return err
	}
	defer scene.Close()

	var closed <-chan struct{}
	if d, ok := output.(interface{ Done() <-chan struct{} }); ok {
		closed = d.Done()
	}

	for n := 0; opts.frames == 0 || n < opts.frames; n++ {
		select {
		case <-closed:
			fmt.Println("Window closed.")
			return dumpFrame(opts, vi)
		default:
		}
		if err := scene.RunFrame(); err != nil {
			return err
		}
		if err := vi.WaitForRetrace(); err != nil {
			return err
		}
		if tty && opts.headless {
			fmt.Printf("\rframe %d/%d", n+1, opts.frames)
		}
	}
	if tty && opts.headless {
		fmt.Println()
	}
	return dumpFrame(opts, vi)
}

func dumpFrame(opts options, vi *VIBridge) error {
	if opts.dump == "" {
		return nil
	}
	if err := WriteFramePNG(opts.dump, vi.LastFrame(), opts.width, opts.height, 1); err != nil {
		return err
	}
	fmt.Printf("Frame written to %s\n", opts.dump)
	return nil
}

func main() {
	tty := term.IsTerminal(int(os.Stdout.Fd()))

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if opts.features {
		printFeatures()
		return
	}

	boilerPlate(os.Stdout, tty)

	if err := run(opts, tty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
