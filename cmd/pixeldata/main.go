package main

import (
	"bytes"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	"github.com/bodgit/pixeldata"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}).Level(level).With().Timestamp().Logger()
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()

	app.Name = "pixeldata"
	app.Usage = "Convert a directory of images to RGB565 C source tables"
	app.Version = "1.0.0"
	app.ArgsUsage = "DIRECTORY"

	// Standard output carries only the generated source
	app.Writer = stderr
	app.ErrWriter = stderr

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.IntFlag{
			Name:  "colors",
			Value: 0,
			Usage: "reduce each image to at most `N` colors first, 0 to disable",
		},
		&cli.IntFlag{
			Name:  "width",
			Value: pixeldata.DefaultRowWidth,
			Usage: "declared number of values per image row",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			_ = cli.ShowAppHelp(c)
			return cli.NewExitError("specify a folder containing images", 1)
		}

		logger := newLogger(stderr, c.Bool("verbose"))

		// Nothing reaches standard output unless the whole run succeeds
		b := new(bytes.Buffer)

		p, err := pixeldata.New(b, logger, pixeldata.Colors(c.Int("colors")), pixeldata.RowWidth(c.Int("width")))
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		n, err := p.Convert(c.Args().First())
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		if _, err := b.WriteTo(stdout); err != nil {
			return cli.NewExitError(err, 1)
		}

		logger.Debug().Int("count", n).Msg("Converted")

		return nil
	}

	return app
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
