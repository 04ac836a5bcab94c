package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/session-tree/internal/app"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envRoot       = "SESSION_TREE_ROOT"
	envAll        = "SESSION_TREE_ALL_PROJECTS"
	envCurrent    = "SESSION_TREE_CURRENT"
	envWidth      = "SESSION_TREE_WIDTH"
	envHeight     = "SESSION_TREE_HEIGHT"
	envShowFooter = "SESSION_TREE_FOOTER"
	envTrace      = "SESSION_TREE_TRACE"
	envLogFile    = "SESSION_TREE_LOG_FILE"
)

// fileDefaults mirrors the optional YAML defaults file. Flags and environment
// variables take precedence over anything found here.
type fileDefaults struct {
	Root        string `yaml:"root"`
	AllProjects *bool  `yaml:"allProjects"`
	Footer      *bool  `yaml:"footer"`
	Trace       *bool  `yaml:"trace"`
	LogFile     string `yaml:"logFile"`
}

// DefaultsPath returns the location of the optional YAML defaults file.
func DefaultsPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "session-tree", "config.yaml")
}

func loadFileDefaults(path string) fileDefaults {
	var d fileDefaults
	if path == "" {
		return d
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return d
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		fmt.Fprintf(os.Stderr, "ignoring malformed defaults file %s: %v\n", path, err)
		return fileDefaults{}
	}
	return d
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ(), DefaultsPath())
}

// LoadArgs allows tests to supply specific args/environment/defaults file.
func LoadArgs(args []string, environ []string, defaultsPath string) (Config, error) {
	env := parseEnv(environ)
	file := loadFileDefaults(defaultsPath)

	fs := flag.NewFlagSet("session-tree", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	root := fs.String("root", envOrDefault(env, envRoot, file.Root), "session records root (defaults to ~/.claude/projects)")
	all := fs.Bool("all", envOrBool(env, envAll, boolOr(file.AllProjects, false)), "list sessions across all projects instead of the current one")
	current := fs.String("current", envOrDefault(env, envCurrent, ""), "path of the session to pre-select and mark as current")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, boolOr(file.Footer, false)), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, boolOr(file.Trace, false)), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Root:           *root,
			AllProjects:    *all,
			CurrentSession: *current,
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"root":    *root,
			"all":     strconv.FormatBool(*all),
			"current": *current,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"footer":  strconv.FormatBool(*footer),
			"trace":   strconv.FormatBool(*trace),
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	// Additional validation hooks can be placed here as configuration evolves.
	return nil
}
