package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	uriFlag = "mongo-uri"
	dbFlag  = "mongo-db"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   uriFlag,
			Usage:  "mongodb connection string",
			EnvVar: "MONGO_URI",
		},
		cli.StringFlag{
			Name:   dbFlag,
			Usage:  "mongodb database name",
			Value:  "movie_db",
			EnvVar: "MONGO_DB",
		},
	)
}

// Mongo wraps a process-wide client, initialized once at startup
// and shared by every request.
type Mongo struct {
	uri  string
	name string
	cl   *mongo.Client
	db   *mongo.Database
}

func New(c *cli.Context) *Mongo {
	return &Mongo{
		uri:  c.String(uriFlag),
		name: c.String(dbFlag),
	}
}

// Connect establishes and verifies the connection. Any failure here is
// fatal to startup.
func (s *Mongo) Connect(ctx context.Context) error {
	if s.uri == "" {
		return errors.New("mongo uri is empty")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return errors.Wrap(err, "failed to connect to mongodb")
	}
	if err := cl.Ping(ctx, nil); err != nil {
		return errors.Wrap(err, "failed to ping mongodb")
	}
	s.cl = cl
	s.db = cl.Database(s.name)
	log.Infof("connected to mongodb database %v", s.name)
	return nil
}

func (s *Mongo) Get() *mongo.Database {
	return s.db
}

func (s *Mongo) Close() {
	if s.cl == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.cl.Disconnect(ctx)
}
