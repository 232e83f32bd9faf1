package main

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/moviezone-io/web-ui/models"
	"github.com/moviezone-io/web-ui/services/enrich"
	mongodb "github.com/moviezone-io/web-ui/services/mongo"
	"github.com/moviezone-io/web-ui/services/tmdb"
)

func makeEnrichCMD() cli.Command {
	enrichCMD := cli.Command{
		Name:    "enrich",
		Aliases: []string{"e"},
		Usage:   "Enriches catalog items with TMDb metadata",
		Action:  enrichAction,
	}
	configureEnrich(&enrichCMD)
	return enrichCMD
}

func configureEnrich(c *cli.Command) {
	c.Flags = append(c.Flags,
		cli.BoolFlag{
			Name:  "force",
			Usage: "re-fetch details even for complete items",
		},
		cli.StringFlag{
			Name:  "id",
			Usage: "enrich a single item by id",
		},
	)
	c.Flags = mongodb.RegisterFlags(c.Flags)
	c.Flags = tmdb.RegisterFlags(c.Flags)
}

func enrichAction(c *cli.Context) error {
	force := c.Bool("force")
	id := c.String("id")

	// Setting DB
	db := mongodb.New(c)
	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		return err
	}
	defer db.Close()

	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting TMDb API
	api := tmdb.New(c, cl)
	if api == nil {
		return errors.New("tmdb api key is not configured")
	}

	// Setting Enricher
	en := enrich.New(api, models.NewCatalogStore(db.Get()))

	var items []*models.ContentItem
	var err error
	if id != "" {
		item, err := models.GetContentByID(ctx, db.Get(), id)
		if err != nil {
			return err
		}
		if item == nil {
			return errors.Errorf("no content with id %v", id)
		}
		items = append(items, item)
	} else if force {
		items, err = models.ListContent(ctx, db.Get(), bson.M{}, 0)
	} else {
		items, err = models.ListContent(ctx, db.Get(), models.MissingMetadataFilter(), 0)
	}
	if err != nil {
		return err
	}
	log.Infof("enriching %v items", len(items))
	for _, item := range items {
		if err := en.Enrich(ctx, item, force); err != nil {
			log.WithError(err).Warnf("failed to enrich %q", item.Title)
		}
	}
	return nil
}
