package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/session-tree/internal/app"
	"github.com/atomicstack/session-tree/internal/config"
	"github.com/atomicstack/session-tree/internal/logging"
	"github.com/atomicstack/session-tree/internal/logging/events"
	"golang.org/x/term"
)

// Exit codes follow the fzf convention: 0 on selection, 1 on failure, 130 on
// user cancellation.
const exitCancelled = 130

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	appCfg := runtimeCfg.App
	if appCfg.Width == 0 || appCfg.Height == 0 {
		if width, height, ok := detectTerminalSize(); ok {
			if appCfg.Width == 0 {
				appCfg.Width = width
			}
			if appCfg.Height == 0 {
				appCfg.Height = height
			}
		}
	}

	path, selected, err := app.Run(appCfg)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !selected {
		os.Exit(exitCancelled)
	}
	fmt.Println(path)
}

// detectTerminalSize probes the standard descriptors for a usable terminal.
func detectTerminalSize() (int, int, bool) {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()} {
		if term.IsTerminal(int(fd)) {
			if width, height, err := term.GetSize(int(fd)); err == nil {
				return width, height, true
			}
		}
	}
	return 0, 0, false
}

func traceStartup(cfg config.Config) {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	payload := map[string]interface{}{
		"argv":  cfg.Args,
		"flags": flags,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	events.App.Start(payload)
}
