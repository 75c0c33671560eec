// sightline is the client: a single-control camera narrator. It reads
// press/release/tap events from stdin and speaks what the camera sees.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sightline/go-sightline/internal/config"
	applog "github.com/sightline/go-sightline/internal/log"
	"github.com/sightline/go-sightline/pkg/app"
	"github.com/sightline/go-sightline/pkg/capture"
	"github.com/sightline/go-sightline/pkg/speech"
)

func main() {
	serverURL := flag.String("server", config.ServerURL(), "sightline server base URL")
	device := flag.Int("device", 0, "camera device id")
	maxWidth := flag.Int("max-width", 1024, "downscale frames to this width before upload")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	applog.Init(*logLevel)
	logger := applog.L()

	camera, err := capture.OpenWebcam(
		capture.WithDeviceID(*device),
		capture.WithMaxWidth(*maxWidth),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sightline: %v\n", err)
		os.Exit(1)
	}

	speaker, err := speech.NewCommandSpeaker(logger)
	if err != nil {
		camera.Close()
		fmt.Fprintf(os.Stderr, "sightline: %v\n", err)
		os.Exit(1)
	}

	announcer := speech.NewAnnouncer(speaker, speech.NewLogHaptic(logger), logger)
	a := app.New(app.NewClient(*serverURL), camera, announcer, logger)
	defer a.Close()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		a.Close()
		os.Exit(0)
	}()

	fmt.Println("commands: press, release, tap, quit")
	runInputLoop(a, os.Stdin)
}

// runInputLoop translates stdin commands into gesture events. A bare "tap"
// stands in for the press, release, click sequence a hardware button emits.
func runInputLoop(a *app.App, in *os.File) {
	gestures := a.Gestures()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "press", "p":
			gestures.Press()
		case "release", "r":
			// A hardware control synthesizes a click after release; the
			// dispatcher decides whether it acts or is swallowed.
			gestures.Release()
			gestures.Click()
		case "tap", "t", "click":
			gestures.Press()
			gestures.Release()
			gestures.Click()
		case "quit", "q", "exit":
			return
		case "":
		default:
			fmt.Println("commands: press, release, tap, quit")
		}
	}
}
