package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "sphere-tracer"
	app.Usage = "render sphere scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene or a JSON scene file and write the image.

Camera flags override the scene's own camera only when given. With no --out
the image is written to output/<scene>/render_<timestamp>.<format>; use
--out - to stream it to stdout.`,
			Flags:  renderFlags(),
			Action: renderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes and scene files",
			Action: listScenes,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: scenesDir,
					Usage: "directory to search for JSON scene files",
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
