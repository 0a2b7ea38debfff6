package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/coredb/nativemod"
)

func main() {
	app := cli.NewApp()
	app.Name = "nativemodctl"
	app.Usage = "inspect and drive the native module cache from the command line"
	app.Description = "loads shared libraries through the same legacy/modern generations the server embeds, for staging-path and symbol-resolution diagnostics"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "accepted but has no effect: the engine always runs with a no-op logger"},
	}
	app.Commands = []*cli.Command{
		{
			Name:      "stage",
			Usage:     "load a shared library once and report the addresses of the requested symbols",
			ArgsUsage: "<path> <package> [symbol...]",
			Action:    stage,
		},
		{
			Name:      "reload",
			Usage:     "load a shared library, then reload it in place and report the post-reload addresses of the requested symbols",
			ArgsUsage: "<path> <package> <symbol...>",
			Action:    reload,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("nativemodctl: %v", err)
	}
}

func newEngine(ctx *cli.Context, resolver nativemod.PathResolver) *nativemod.Engine {
	var logger nativemod.Logger = nativemod.NopLogger{}
	return nativemod.New(resolver, nativemod.Options{Logger: logger})
}

func stage(ctx *cli.Context) error {
	args := ctx.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("usage: stage <path> <package> [symbol...]")
	}
	path, pkg, symbols := args[0], args[1], args[2:]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	e := newEngine(ctx, nativemod.StaticResolver{pkg: path})
	defer e.Close()

	for _, sym := range symbols {
		b := nativemod.NewBinding(pkg + "." + sym)
		if err := e.BindSymbol(b, true); err != nil {
			return fmt.Errorf("bind %s: %w", sym, err)
		}
		addr, _ := b.Address()
		fmt.Printf("%-32s %#x\n", b.Name, uintptr(addr))
	}
	return nil
}

func reload(ctx *cli.Context) error {
	args := ctx.Args().Slice()
	if len(args) < 3 {
		return fmt.Errorf("usage: reload <path> <package> <symbol...>")
	}
	path, pkg, symbols := args[0], args[1], args[2:]

	e := newEngine(ctx, nativemod.StaticResolver{pkg: path})
	defer e.Close()

	bindings := make([]*nativemod.Binding, 0, len(symbols))
	for _, sym := range symbols {
		b := nativemod.NewBinding(pkg + "." + sym)
		if err := e.BindSymbol(b, true); err != nil {
			return fmt.Errorf("bind %s: %w", sym, err)
		}
		bindings = append(bindings, b)
	}

	fmt.Fprintf(os.Stderr, "reloading %s from %s (touch the file to change its identity before running this)\n", pkg, filepath.Base(path))
	if err := e.ReloadLegacy(pkg); err != nil {
		return fmt.Errorf("reload %s: %w", pkg, err)
	}

	names := make([]string, len(bindings))
	for i, b := range bindings {
		addr, _ := b.Address()
		names[i] = fmt.Sprintf("%s=%#x", b.Name, uintptr(addr))
	}
	fmt.Println(strings.Join(names, " "))
	return nil
}
