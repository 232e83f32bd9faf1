package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"

	"github.com/moviezone-io/web-ui/handlers/admin"
	"github.com/moviezone-io/web-ui/handlers/contact"
	"github.com/moviezone-io/web-ui/handlers/detail"
	"github.com/moviezone-io/web-ui/handlers/home"
	"github.com/moviezone-io/web-ui/handlers/watch"
	"github.com/moviezone-io/web-ui/models"
	"github.com/moviezone-io/web-ui/services/ads"
	"github.com/moviezone-io/web-ui/services/auth"
	"github.com/moviezone-io/web-ui/services/enrich"
	mongodb "github.com/moviezone-io/web-ui/services/mongo"
	"github.com/moviezone-io/web-ui/services/template"
	"github.com/moviezone-io/web-ui/services/tmdb"
	w "github.com/moviezone-io/web-ui/services/web"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = mongodb.RegisterFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = template.RegisterFlags(c.Flags)
	c.Flags = auth.RegisterFlags(c.Flags)
	c.Flags = tmdb.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting DB
	db := mongodb.New(c)
	if err := db.Connect(context.Background()); err != nil {
		return err
	}
	defer db.Close()

	// Setting template renderer
	re := multitemplate.NewRenderer()

	// Setting TemplateManager
	tm := template.NewManager(c, re)
	if err := tm.Init(); err != nil {
		return err
	}

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false
	r.HTMLRender = re

	// Setting TMDb API
	api := tmdb.New(c, cl)

	// Setting Enricher
	en := enrich.New(api, models.NewCatalogStore(db.Get()))

	// Setting AdServing
	serving := ads.New(ads.NewClient(cl), models.NewAdStore(db.Get()))

	// Setting HomeHandler
	home.RegisterHandler(r, db.Get(), serving)

	// Setting DetailHandler
	detail.RegisterHandler(r, db.Get(), en, serving)

	// Setting WatchHandler
	watch.RegisterHandler(r, db.Get())

	// Setting ContactHandler
	contact.RegisterHandler(r, db.Get())

	// Setting AdminHandler
	admin.RegisterHandler(r, auth.New(c), db.Get())

	// Setting Web
	web := w.New(c, r)

	// And SERVE!
	return web.Serve()
}
