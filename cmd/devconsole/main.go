// Package main provides the devconsole CLI entry point: an interactive
// developer console over the built-in convars and commands.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devconsole/internal/config"
	"devconsole/internal/logger"
	"devconsole/internal/panel"
	"devconsole/internal/parser"
	"devconsole/internal/version"
	"devconsole/pkg/consoletypes"
)

var (
	configFile      string
	cfg             *config.Config
	detailedVersion bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devconsole",
	Short: "devconsole - in-process developer console",
	Long: `devconsole is an interactive developer console. Read and write convars,
run commands, search entries with find and bind keys to command lines.`,
	Run: runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive console",
	Run:   runShell,
}

// runCmd runs a single console line and exits with its result.
var runCmd = &cobra.Command{
	Use:   "run <name> [args...]",
	Short: "Run one console line and exit",
	Long: `Run one console line without entering the interactive console.
Each argument becomes one token, so quoting is preserved.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runLine,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		printVersion(cmd.OutOrStdout(), detailedVersion)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file [default: ./devconsole.yaml or the user config dir]")
	flags.String(config.KeyLogLevel, "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String(config.KeyLogFile, "", "Write logs to file instead of stderr")
	flags.Bool(config.KeyTestMode, false, "Run in deterministic test mode")
	flags.String(config.KeyBindsFile, "", "Key binding file (.yaml, .yml or .toml)")
	flags.String(config.KeyTheme, "", fmt.Sprintf("Panel theme (%s)", strings.Join(panel.ThemeNames(), "|")))
	flags.String(config.KeyPrompt, "", "Prompt text")
	flags.Int(config.KeyWidth, 0, "Truncate log lines to this many cells")

	for _, key := range []string{
		config.KeyLogLevel, config.KeyLogFile, config.KeyTestMode, config.KeyBindsFile,
		config.KeyTheme, config.KeyPrompt, config.KeyWidth,
	} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", key, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(runCmd)
	versionCmd.Flags().BoolVar(&detailedVersion, "detailed", false, "Show commit, build date, channel and platform")
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	var err error
	cfg, err = config.Load(viper.GetViper(), configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting devconsole", "version", version.Base())

	a, err := start(cfg, os.Stdout)
	if err != nil {
		logger.Fatal("Failed to start console", "error", err)
	}
	defer a.close()

	a.shell(!cfg.TestMode)
}

func runLine(_ *cobra.Command, args []string) {
	a, err := start(cfg, os.Stdout)
	if err != nil {
		logger.Fatal("Failed to start console", "error", err)
	}

	result := a.console.RunLine(joinArgs(args))
	a.close()
	os.Exit(exitCode(result))
}

// joinArgs rebuilds a console line from already split arguments.
func joinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = parser.Quote(arg)
	}
	return strings.Join(quoted, " ")
}

func exitCode(result consoletypes.RunCommandResult) int {
	switch result {
	case consoletypes.CommandSuccess:
		return 0
	case consoletypes.UnknownCommand:
		return 127
	default:
		return 1
	}
}

func printVersion(w io.Writer, detailed bool) {
	if !detailed {
		fmt.Fprintln(w, version.Short())
		return
	}
	for _, line := range version.Detailed() {
		fmt.Fprintln(w, line)
	}
}
