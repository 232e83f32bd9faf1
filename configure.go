package main

import (
	"github.com/urfave/cli"
)

func configure(app *cli.App) {
	serveCMD := makeServeCMD()
	enrichCMD := makeEnrichCMD()
	app.Commands = []cli.Command{serveCMD, enrichCMD}
}
