package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Info("loaded environment from .env")
	}
	app := cli.NewApp()
	app.Name = "moviezone-web-ui"
	app.Usage = "MovieZone catalog web UI"
	configure(app)
	err := app.Run(os.Args)
	if err != nil {
		log.WithError(err).Fatal("failed to run app")
	}
}
