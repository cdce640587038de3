package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"game-loop/internal/commands"
)

func main() {
	reg := commands.NewRegistry("run")

	runOpts, runFS := newRunFlags()
	reg.Register("run", "open a window and run the frame loop (default)", runFS, func(args []string) error {
		runOpts.markSet(runFS)
		return run(runOpts)
	})

	cfgOpts, cfgFS := newConfigFlags()
	reg.Register("config", "print the effective config as YAML, or write it with -write", cfgFS, func(args []string) error {
		cfgOpts.markSet(cfgFS)
		return printConfig(cfgOpts, os.Stdout)
	})

	if err := reg.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			reg.Usage(os.Stderr)
			return
		}
		if errors.Is(err, commands.ErrUnknownCommand) {
			fmt.Fprintln(os.Stderr, err)
			reg.Usage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "game:", err)
		os.Exit(1)
	}
}
