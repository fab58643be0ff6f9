package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/lockdown/audio"
	"github.com/lixenwraith/lockdown/clock"
	"github.com/lixenwraith/lockdown/config"
)

var (
	configPath string
	debugMode  bool
	mute       bool
	debugLog   bool

	rootCmd = &cobra.Command{
		Use:   "lockdown",
		Short: "Escape the locked-down data center",
		Long: `Restore power, enter the access code, route the cables and
stabilize cooling to unlock the exit of the server room.`,
		SilenceUsage: true,
		RunE:         runGame,
	}
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML puzzle configuration (defaults built in)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "auto-solve every puzzle shortly after start")
	rootCmd.Flags().BoolVar(&mute, "mute", false, "start with audio muted")
	rootCmd.Flags().BoolVar(&debugLog, "debug-log", false, "write logs to logs/lockdown.log")
}

// loadConfig resolves defaults, the optional file, env overrides and flags
func loadConfig(path string, debugFlag bool) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if debugFlag {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGame(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logFile := setupLogging(debugLog, parseLevel(os.Getenv("LOG_LEVEL")))
	if logFile != nil {
		defer logFile.Close()
	}

	path := configPath
	if path == "" {
		path = os.Getenv("LOCKDOWN_CONFIG")
	}
	cfg, err := loadConfig(path, debugMode)
	if err != nil {
		return err
	}
	log.Info().Str("theme", cfg.Theme.Name).Bool("debug", cfg.Debug).Msg("config loaded")

	audioCfg := audio.LoadConfig()
	if mute {
		audioCfg.Enabled = false
	}
	sound := audio.NewSoundManager(audioCfg, log.Logger)
	if err := sound.Initialize(); err != nil {
		log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
	}
	defer sound.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	// Panic recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mLOCKDOWN CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	app, err := newApp(screen, cfg, clock.NewMonotonic(), sound, log.Logger)
	if err != nil {
		return err
	}
	app.run()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
