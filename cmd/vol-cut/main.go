// Command vol-cut extracts a contiguous frame range from a vologram
// container into a new container, renumbering frames from zero and
// reconstituting keyframes at the new start and (when the range spans two
// or more frames) the new end, optionally stripping normals and resizing
// the embedded texture in the same pass.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Volograms/vol-cl-tools/internal/audio"
	"github.com/Volograms/vol-cl-tools/internal/config"
	"github.com/Volograms/vol-cl-tools/internal/diskprobe"
	"github.com/Volograms/vol-cl-tools/internal/logging"
	"github.com/Volograms/vol-cl-tools/internal/pipeline"
	"github.com/Volograms/vol-cl-tools/internal/texture"
	"github.com/Volograms/vol-cl-tools/internal/texture/basisstub"
)

func main() {
	app := &cli.App{
		Name:  "vol-cut",
		Usage: "extract a frame range from a vologram container",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "input .vols container"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "output .vols container"},
			&cli.IntFlag{Name: "start", Required: true, Usage: "first frame to keep (inclusive)"},
			&cli.IntFlag{Name: "end", Required: true, Usage: "last frame to keep (inclusive)"},
			&cli.BoolFlag{Name: "strip-normals"},
			&cli.IntFlag{Name: "texture-width", Usage: "0 leaves the texture unresized"},
			&cli.IntFlag{Name: "texture-height", Usage: "0 leaves the texture unresized"},
			&cli.StringFlag{Name: "config", Usage: "optional YAML config file"},
			&cli.StringFlag{Name: "log-level", Value: "info"},
			&cli.StringFlag{Name: "log-file", Usage: "optional log file path"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vol-cut:", err)
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

	outPath := c.String("output")
	if err := diskprobe.EnsureDir(dirOf(outPath), os.FileMode(cfg.Output.DirPermissions)); err != nil {
		return err
	}

	tmpPath := outPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrap(err, "creating output container")
	}

	width, height := c.Int("texture-width"), c.Int("texture-height")
	if width > cfg.Texture.MaxDimension || height > cfg.Texture.MaxDimension {
		out.Close()
		os.Remove(tmpPath)
		return errors.Errorf("requested texture dimensions %dx%d exceed configured max %d", width, height, cfg.Texture.MaxDimension)
	}

	var codec texture.Codec = basisstub.New()
	ctx := pipeline.NewContext(logger, codec, audio.DefaultRemuxer{})
	rep, err := ctx.Cut(in, out, pipeline.CutOptions{
		StartFrame:    c.Int("start"),
		EndFrame:      c.Int("end"),
		StripNormals:  c.Bool("strip-normals"),
		ResizeTexture: width > 0 && height > 0,
		TextureWidth:  width,
		TextureHeight: height,
	})
	if err != nil {
		out.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "closing output container")
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return errors.Wrap(err, "finalizing output container")
	}

	logger.Info("cut complete",
		zap.Int("frames_written", rep.FramesWritten),
		zap.Int("reconstituted_frames", rep.ReconstitutedFrames))
	return nil
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
