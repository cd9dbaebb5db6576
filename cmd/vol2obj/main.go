// Command vol2obj exports every frame of a vologram container as an
// OBJ+MTL+still-image triple.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Volograms/vol-cl-tools/internal/config"
	"github.com/Volograms/vol-cl-tools/internal/logging"
	"github.com/Volograms/vol-cl-tools/internal/objexport"
	"github.com/Volograms/vol-cl-tools/internal/texture/basisstub"
)

func main() {
	app := &cli.App{
		Name:  "vol2obj",
		Usage: "export every frame of a vologram container as OBJ+MTL+PNG",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true},
			&cli.StringFlag{Name: "out-dir", Aliases: []string{"o"}, Required: true},
			&cli.StringFlag{Name: "prefix", Value: "frame_"},
			&cli.StringFlag{Name: "config"},
			&cli.StringFlag{Name: "log-level", Value: "info"},
			&cli.StringFlag{Name: "log-file"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vol2obj:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	level := cfg.Logging.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	logFile := cfg.Logging.LogFile
	if c.IsSet("log-file") {
		logFile = c.String("log-file")
	}

	logger, err := logging.Init(level, logFile)
	if err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	defer logger.Sync()

	in, err := os.Open(c.String("input"))
	if err != nil {
		return errors.Wrap(err, "opening input container")
	}
	defer in.Close()

	written, err := objexport.Run(in, basisstub.New(), objexport.ExportOptions{
		OutDir: c.String("out-dir"),
		Prefix: c.String("prefix"),
	})
	if err != nil {
		return err
	}

	logger.Info("export complete", zap.Int("frames_written", written))
	return nil
}
