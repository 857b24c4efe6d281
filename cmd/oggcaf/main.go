// Command oggcaf converts Opus audio between the Ogg and CAF containers
// without re-encoding the codec payload.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/kjalvik/oggcaf"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

	app := &cli.App{
		Name:  "oggcaf",
		Usage: "losslessly repackage Opus audio between Ogg and CAF",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "enable debug logging"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			convertCommand("to-caf", "convert an Ogg-Opus file to CAF", oggcaf.ConvertOggFileToCAFFile, &log),
			convertCommand("to-ogg", "convert a CAF file to Ogg-Opus", oggcaf.ConvertCAFFileToOggFile, &log),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("conversion failed")
		os.Exit(1)
	}
}

type convertFunc func(inPath, outPath string, deleteInput bool) error

func convertCommand(name, usage string, convert convertFunc, log *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<input> [output]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "delete-input", Usage: "remove the input file after a successful conversion"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit("expected an input path", 1)
			}
			inPath := c.Args().Get(0)
			outPath := c.Args().Get(1)
			if outPath == "" {
				outPath = defaultOutputPath(name, inPath)
			}

			log.Info().Str("in", inPath).Str("out", outPath).Msg("converting")
			if err := convert(inPath, outPath, c.Bool("delete-input")); err != nil {
				var convErr *oggcaf.ConvertError
				if errors.As(err, &convErr) {
					return cli.Exit(fmt.Sprintf("%s: %s", convErr.Kind, convErr.Error()), 1)
				}
				return cli.Exit(err.Error(), 1)
			}
			log.Info().Str("out", outPath).Msg("done")
			return nil
		},
	}
}

func defaultOutputPath(command, inPath string) string {
	ext := ".caf"
	if command == "to-ogg" {
		ext = ".opus"
	}
	if idx := strings.LastIndex(inPath, "."); idx > 0 {
		return inPath[:idx] + ext
	}
	return inPath + ext
}
