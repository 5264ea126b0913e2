package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/fatih/color"
	log "github.com/inconshreveable/log15"
	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/display"
	"github.com/zephyrtronium/calc/session"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "",
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows configuration values after applying the configuration file and flags.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type engineConfig struct {
	// Angle is "deg" or "rad".
	Angle calc.AngleMode
	Prec  uint
}

type displayConfig struct {
	DigitLimit int
	Color      bool
}

type consoleConfig struct {
	// Preset is the keypad, "basic" or "scientific".
	Preset string
	// History is a file in which to keep console input across sessions.
	History      string `toml:",omitempty"`
	PreviewCache int
}

type calcConfig struct {
	Engine  engineConfig
	Display displayConfig
	Console consoleConfig
}

var defaultConfig = calcConfig{
	Engine: engineConfig{
		Angle: calc.Degrees,
		Prec:  64,
	},
	Display: displayConfig{
		DigitLimit: display.DefaultDigitLimit,
		Color:      true,
	},
	Console: consoleConfig{
		Preset:       "scientific",
		PreviewCache: 256,
	},
}

func loadConfig(file string, cfg *calcConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = decodeConfig(bufio.NewReader(f), cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

func decodeConfig(r io.Reader, cfg *calcConfig) error {
	if err := tomlSettings.NewDecoder(r).Decode(cfg); err != nil {
		return err
	}
	return cfg.validate()
}

func (cfg *calcConfig) validate() error {
	if cfg.Display.DigitLimit <= 0 {
		return fmt.Errorf("digit limit must be positive, not %d", cfg.Display.DigitLimit)
	}
	if cfg.Console.PreviewCache <= 0 {
		return fmt.Errorf("preview cache size must be positive, not %d", cfg.Console.PreviewCache)
	}
	if _, ok := session.Preset(cfg.Console.Preset); !ok {
		return fmt.Errorf("unknown keypad preset %q", cfg.Console.Preset)
	}
	return nil
}

// makeConfig loads the configuration file, if any, and applies flags over it.
func makeConfig(ctx *cli.Context) (calcConfig, error) {
	cfg := defaultConfig
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
		log.Info("Loaded configuration", "file", file)
	}
	if ctx.GlobalBool(radiansFlag.Name) {
		cfg.Engine.Angle = calc.Radians
	}
	if ctx.GlobalIsSet(digitsFlag.Name) {
		cfg.Display.DigitLimit = ctx.GlobalInt(digitsFlag.Name)
	}
	if ctx.GlobalIsSet(precFlag.Name) {
		cfg.Engine.Prec = ctx.GlobalUint(precFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Display.Color = false
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	color.NoColor = color.NoColor || !cfg.Display.Color
	log.Debug("Effective configuration", "angle", cfg.Engine.Angle, "prec", cfg.Engine.Prec, "digits", cfg.Display.DigitLimit)
	return cfg, nil
}

// keypad returns the console keypad for cfg, with the engine's angle mode and
// display's digit limit.
func (cfg *calcConfig) keypad() session.Config {
	k, _ := session.Preset(cfg.Console.Preset)
	k.Angle = cfg.Engine.Angle
	k.Prec = cfg.Engine.Prec
	k.DigitLimit = cfg.Display.DigitLimit
	return k
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	dump.WriteString("# Note: this config doesn't contain the console history file if unset.\n\n")
	_, err = dump.Write(out)
	return err
}
