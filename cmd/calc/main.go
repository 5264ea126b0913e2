// Command calc evaluates keypad expressions, works fraction problems step by
// step, and runs an interactive keypad.
//
// Usage:
//
//	calc [global options] EXPR...
//	calc [global options] command [arguments...]
//
// With no command and no expressions, calc reads one expression per line
// from standard input.
package main

import (
	"fmt"
	"os"

	log "github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"gopkg.in/urfave/cli.v1"
)

const version = "0.1.0"

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug",
		Value: int(log.LvlInfo),
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored output",
	}
	radiansFlag = cli.BoolFlag{
		Name:  "rad",
		Usage: "Measure angles in radians instead of degrees",
	}
	digitsFlag = cli.IntFlag{
		Name:  "digits",
		Usage: "Integer digits shown before switching to scientific notation",
	}
	precFlag = cli.UintFlag{
		Name:  "prec",
		Usage: "Precision in bits of functions computed with big floats",
	}
	echoFlag = cli.BoolFlag{
		Name:  "echo",
		Usage: "Print parse trees alongside results",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "calc"
	app.Usage = "keypad calculator and fraction workbook"
	app.Version = version
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		noColorFlag,
		radiansFlag,
		digitsFlag,
		precFlag,
		echoFlag,
	}
	app.Commands = []cli.Command{
		evalCommand,
		fracCommand,
		decCommand,
		toDecCommand,
		percentCommand,
		consoleCommand,
		dumpConfigCommand,
	}
	app.Before = setupLogging
	app.Action = evalAction
	return app
}

func setupLogging(ctx *cli.Context) error {
	lvl := log.Lvl(ctx.GlobalInt(verbosityFlag.Name))
	switch {
	case lvl < log.LvlCrit:
		lvl = log.LvlCrit
	case lvl > log.LvlDebug:
		lvl = log.LvlDebug
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(colorable.NewColorableStderr(), log.TerminalFormat())))
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
