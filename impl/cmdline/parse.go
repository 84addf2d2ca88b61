package cmdline

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Exotik850/ollama-file-find/impl/config"

	"github.com/urfave/cli/v3"
)

// fromCmdline will be populated with flags indicating which configuration
// settings were specified on the command line.
var fromCmdline config.FromCmdLine

// cfg has the parsed configuration - including defaults (e.g. port) if the
// user does not override
var cfg = config.Configuration{}

// cmds is for the command line parser urfave/cli
var cmds = &cli.Command{
	Name:  "ollama-file-find",
	Usage: "lists locally installed Ollama models by reading the models directory",
	// define this or the parser terminates the program
	ExitErrHandler: func(_ context.Context, _ *cli.Command, _ error) {},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Value:       "error",
			Usage:       "Sets the minimum value for logging: debug, warn, info, or error",
			Destination: &cfg.LogLevel,
			Validator: func(lvl string) error {
				validValues := []string{"debug", "warn", "info", "error"}
				if !slices.Contains(validValues, strings.ToLower(lvl)) {
					return fmt.Errorf("must be one of %s", strings.Join(validValues, ", "))
				}
				return nil
			},
			Action: func(ctx context.Context, cmd *cli.Command, _ string) error {
				fromCmdline.LogLevel = true
				return nil
			},
		},
		&cli.StringFlag{
			Name:        "log-file",
			Value:       "",
			Usage:       "log to the specified file rather than the console",
			Destination: &cfg.LogFile,
			Action: func(ctx context.Context, cmd *cli.Command, _ string) error {
				fromCmdline.LogFile = true
				return nil
			},
		},
		&cli.StringFlag{
			Name:        "config-file",
			Usage:       "A file to load configuration values from (cmdline overrides file settings)",
			Destination: &cfg.ConfigFile,
			Validator: func(path string) error {
				if fi, err := os.Stat(path); err != nil {
					return fmt.Errorf("file not found")
				} else if fi.IsDir() {
					return fmt.Errorf("not a file")
				}
				return nil
			},
			Action: func(ctx context.Context, cmd *cli.Command, _ string) error {
				fromCmdline.ConfigFile = true
				return nil
			},
		},
		&cli.StringFlag{
			Name:        "models-dir",
			Usage:       "The models directory (overrides OLLAMA_MODELS and the home fallback)",
			Destination: &cfg.ModelsDir,
			Action: func(ctx context.Context, cmd *cli.Command, _ string) error {
				fromCmdline.ModelsDir = true
				return nil
			},
		},
	},
	Commands: []*cli.Command{
		{
			Name:  "list",
			Usage: "Lists the models in the models directory",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				fromCmdline.Command = "list"
				return nil
			},
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "plain",
					Value:       false,
					Usage:       "Emits plain text (just model names) instead of JSON",
					Destination: &cfg.ScanConfig.Plain,
					Action: func(ctx context.Context, cmd *cli.Command, _ bool) error {
						fromCmdline.ScanConfig = true
						return nil
					},
				},
				&cli.BoolFlag{
					Name:        "include-hidden",
					Value:       false,
					Usage:       "Includes models whose path components begin with '.'",
					Destination: &cfg.ScanConfig.IncludeHidden,
					Action: func(ctx context.Context, cmd *cli.Command, _ bool) error {
						fromCmdline.ScanConfig = true
						return nil
					},
				},
				&cli.BoolFlag{
					Name:        "verbose",
					Value:       false,
					Usage:       "Shows layer digests, sizes, total size, and timestamps",
					Destination: &cfg.ScanConfig.Verbose,
					Action: func(ctx context.Context, cmd *cli.Command, _ bool) error {
						fromCmdline.ScanConfig = true
						return nil
					},
				},
				&cli.BoolFlag{
					Name:        "blob-paths",
					Value:       false,
					Usage:       "Resolves each digest to its blob path and verifies it (implies JSON output)",
					Destination: &cfg.ScanConfig.BlobPaths,
					Action: func(ctx context.Context, cmd *cli.Command, _ bool) error {
						fromCmdline.ScanConfig = true
						return nil
					},
				},
			},
		},
		{
			Name:  "verify",
			Usage: "Checks every referenced blob for existence and size consistency",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				fromCmdline.Command = "verify"
				return nil
			},
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "include-hidden",
					Value:       false,
					Usage:       "Includes models whose path components begin with '.'",
					Destination: &cfg.ScanConfig.IncludeHidden,
					Action: func(ctx context.Context, cmd *cli.Command, _ bool) error {
						fromCmdline.ScanConfig = true
						return nil
					},
				},
			},
		},
		{
			Name:  "serve",
			Usage: "Serves the model inventory over a read-only HTTP API",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				fromCmdline.Command = "serve"
				return nil
			},
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:        "port",
					Value:       8080,
					Usage:       "The port to serve on",
					Destination: &cfg.ServeCfg.Port,
					Action: func(ctx context.Context, cmd *cli.Command, _ int64) error {
						fromCmdline.ServeCfg = true
						return nil
					},
				},
				&cli.IntFlag{
					Name:        "metrics-port",
					Value:       0,
					Usage:       "Serves prometheus metrics on this port (zero disables metrics)",
					Destination: &cfg.ServeCfg.MetricsPort,
					Action: func(ctx context.Context, cmd *cli.Command, _ int64) error {
						fromCmdline.ServeCfg = true
						return nil
					},
				},
			},
		},
		{
			Name:  "version",
			Usage: "Displays the version",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				fromCmdline.Command = "version"
				return nil
			},
		},
	},
}

// Parse parses the command line. It returns the following:
//
//  1. A FromCmdLine struct which has the command to run ("list", "serve",
//     etc.). If the command is the empty string then no sub-command was
//     specified in which case the parser auto-displays help. This struct also
//     has flags telling you which configuration values were provided by the
//     user on the command line.
//  2. A Configuration struct containing the parsed configuration values. For
//     any configuration flag in the FromCmdLine struct with a false value, the
//     corresponding configuration value in *this* struct will be the default.
//  3. An error, if the parser returned one, else nil.
func Parse() (config.FromCmdLine, config.Configuration, error) {
	if err := cmds.Run(context.Background(), os.Args); err != nil {
		return config.FromCmdLine{}, config.Configuration{}, err
	}
	return fromCmdline, cfg, nil
}

// ClearParse supports unit testing
func ClearParse() {
	fromCmdline = config.FromCmdLine{}
	cfg = config.Configuration{}
}
