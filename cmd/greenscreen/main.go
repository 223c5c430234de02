// Package main replays a recorded order script against a headless 5250
// session and prints the resulting screen, for debugging data streams and
// for driving the model from shell pipelines.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/greenscreen/internal/config"
	"github.com/dshills/greenscreen/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "session profile (TOML)")
	scriptPath := flag.String("script", "-", "order script to replay, - for stdin")
	dump := flag.Bool("dump", false, "print a YAML state dump after the screen")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("greenscreen %s (%s)\n", version, commit)
		return 0
	}

	profile := config.Default()
	if *configPath != "" {
		var err error
		profile, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading profile: %v\n", err)
			return 1
		}
	}

	sess, err := session.New(profile.Rows, profile.Cols,
		session.WithCodePage(profile.CodePage),
		session.WithErrorLine(profile.ErrorLineRow()+1),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating session: %v\n", err)
		return 1
	}

	in := os.Stdin
	if *scriptPath != "-" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening script: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	responses, err := replay(sess, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	printScreen(os.Stdout, sess)
	for _, resp := range responses {
		fmt.Printf("response: % x\n", resp)
	}
	if *dump {
		if err := dumpState(os.Stdout, sess); err != nil {
			fmt.Fprintf(os.Stderr, "Error: dumping state: %v\n", err)
			return 1
		}
	}
	return 0
}
