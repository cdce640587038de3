package main

import (
	"flag"
	"fmt"
	"io"

	"game-loop/internal/config"
	"game-loop/internal/env"
)

// options are the command-line settings shared by run and config. Only flags that were set
// on the command line override the config file and environment.
type options struct {
	configPath string
	envPath    string
	backend    string
	logLevel   string
	frames     int
	fullscreen bool
	showFPS    bool
	write      bool
	set        map[string]bool
}

func commonFlags(name string, o *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", config.DefaultPath, "path to the YAML config file")
	fs.StringVar(&o.envPath, "env", ".env", "dotenv file loaded before reading GAME_* variables")
	return fs
}

func newRunFlags() (*options, *flag.FlagSet) {
	o := &options{}
	fs := commonFlags("run", o)
	fs.StringVar(&o.backend, "backend", "", "raylib, terminal or headless")
	fs.StringVar(&o.logLevel, "log-level", "", "trace, debug, info, warn or error")
	fs.IntVar(&o.frames, "frames", 0, "headless: number of frames to render before quitting (0 = until interrupted)")
	fs.BoolVar(&o.fullscreen, "fullscreen", false, "start in fullscreen mode")
	fs.BoolVar(&o.showFPS, "show-fps", false, "draw the FPS counter")
	return o, fs
}

func newConfigFlags() (*options, *flag.FlagSet) {
	o := &options{}
	fs := commonFlags("config", o)
	fs.BoolVar(&o.write, "write", false, "write the effective config to -config instead of printing it")
	return o, fs
}

// markSet records which flags were given on the command line. Call after fs.Parse.
func (o *options) markSet(fs *flag.FlagSet) {
	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
}

// loadConfig layers defaults, the config file, .env and GAME_* variables, and flags.
// warnings are problems that fell back to defaults; err is anything that must stop startup.
func loadConfig(o *options) (cfg config.Config, warnings []error, err error) {
	cfg, loadErr := config.Load(o.configPath)
	if loadErr != nil {
		warnings = append(warnings, loadErr)
	}
	if _, err := env.Load(o.envPath); err != nil {
		warnings = append(warnings, fmt.Errorf("load %s: %w", o.envPath, err))
	}
	if err := applyOverrides(o, &cfg); err != nil {
		return cfg, warnings, err
	}
	return cfg, warnings, cfg.Validate()
}

// applyOverrides puts GAME_* variables and the flags set on the command line on top of cfg.
// It runs at startup and again on every config reload.
func applyOverrides(o *options, cfg *config.Config) error {
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}
	if o.set["backend"] {
		cfg.Backend = o.backend
	}
	if o.set["log-level"] {
		cfg.Log.Level = o.logLevel
	}
	if o.set["fullscreen"] {
		cfg.Fullscreen = o.fullscreen
	}
	if o.set["show-fps"] {
		cfg.ShowFPS = o.showFPS
	}
	return nil
}

func printConfig(o *options, w io.Writer) error {
	cfg, warnings, err := loadConfig(o)
	for _, warn := range warnings {
		fmt.Fprintln(w, "# warning:", warn)
	}
	if err != nil {
		return err
	}
	if o.write {
		if err := config.Save(o.configPath, cfg); err != nil {
			return err
		}
		fmt.Fprintln(w, "wrote", o.configPath)
		return nil
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
