package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tlqtangok/reg-api/pkg/registry"
	"github.com/tlqtangok/reg-api/pkg/store/memory"
	"github.com/tlqtangok/reg-api/pkg/store/regfile"
	"github.com/tlqtangok/reg-api/pkg/store/winreg"
	"github.com/tlqtangok/reg-api/pkg/types"
)

const (
	backendFile    = "file"
	backendMemory  = "memory"
	backendWindows = "windows"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	cfg config
)

// config is the resolved store selection, from flags or REGCTL_* env.
type config struct {
	Backend  string
	File     string
	Root     string
	Encoding string
	Metrics  bool
}

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Read and write registry-style values",
	Long: `regctl reads and writes string values under hierarchical keys.
Keys live in a .reg text file (default), in memory, or in the native
Windows registry. Every flag can also be set through the environment as
REGCTL_<FLAG>, e.g. REGCTL_FILE=app.reg, and from .env / .env.local.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(*cobra.Command, []string) {
		if cfg.Metrics {
			registry.WriteMetrics(os.Stderr)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().String("backend", backendFile, "Store backend: file, memory, or windows")
	rootCmd.PersistentFlags().StringP("file", "f", "regctl.reg", "Path of the .reg file (file backend)")
	rootCmd.PersistentFlags().String("root", types.HKEYCurrentUserShort, "Root key for paths without an HKEY prefix")
	rootCmd.PersistentFlags().String("encoding", "UTF-8", "Encoding of the .reg file: UTF-8 or UTF-16LE")
	rootCmd.PersistentFlags().Bool("metrics", false, "Print operation metrics to stderr on exit")
}

// initConfig loads env files and maps REGCTL_* variables onto flag names.
func initConfig() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("regctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	verbose = viper.GetBool("verbose")
	quiet = viper.GetBool("quiet")
	jsonOut = viper.GetBool("json")
	cfg = config{
		Backend:  viper.GetString("backend"),
		File:     viper.GetString("file"),
		Root:     viper.GetString("root"),
		Encoding: viper.GetString("encoding"),
		Metrics:  viper.GetBool("metrics"),
	}
	return nil
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logger writes diagnostics to stderr: Debug with --verbose, Error only
// with --quiet, Warn otherwise.
func logger() *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// storeHandle is an open backend plus whatever it needs to release.
type storeHandle struct {
	types.Store
	close func() error
}

func openStore() (*storeHandle, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", backendFile:
		printVerbose("Opening store: %s\n", cfg.File)
		s, err := regfile.Open(cfg.File, &regfile.Options{
			Encoding: cfg.Encoding,
			WithBOM:  strings.EqualFold(cfg.Encoding, "UTF-16LE"),
			Logger:   logger(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		return &storeHandle{Store: s, close: s.Close}, nil
	case backendMemory:
		return &storeHandle{Store: memory.New(), close: func() error { return nil }}, nil
	case backendWindows:
		s, err := winreg.Open(logger())
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		return &storeHandle{Store: s, close: func() error { return nil }}, nil
	}
	return nil, fmt.Errorf("unknown backend %q (want %s, %s, or %s)", cfg.Backend, backendFile, backendMemory, backendWindows)
}

// openKey opens keyPath on a fresh facade. A leading HKEY name in keyPath
// overrides --root. Without create, a missing key is reported as
// types.ErrNotFound instead of being created. The returned func closes the
// key and the store.
func openKey(keyPath string, create bool) (*registry.Registry, func(), error) {
	root, err := types.ParseRootKey(cfg.Root)
	if err != nil {
		return nil, nil, err
	}
	if r, rest, ok := types.SplitRootPath(keyPath); ok {
		root, keyPath = r, rest
	}

	sh, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	if !create {
		k, err := sh.OpenKey(root, keyPath, types.AccessRead)
		if err != nil {
			_ = sh.close()
			return nil, nil, fmt.Errorf("cannot open key %s\\%s: %w", root, types.NormalizePath(keyPath), err)
		}
		_ = k.Close()
	}
	reg := registry.New(sh.Store, &registry.Options{Root: root, Logger: logger()})
	if !reg.ChangeRoot(keyPath) {
		_ = sh.close()
		return nil, nil, fmt.Errorf("cannot open key %s\\%s", root, types.NormalizePath(keyPath))
	}
	printVerbose("Opened key: %s\\%s\n", root, reg.Path())
	return reg, func() {
		reg.Close()
		_ = sh.close()
	}, nil
}

// keyDisplayPath is keyPath without its HKEY prefix, as Registry.Path
// would report it.
func keyDisplayPath(keyPath string) string {
	if _, rest, ok := types.SplitRootPath(keyPath); ok {
		keyPath = rest
	}
	return types.NormalizePath(keyPath)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
