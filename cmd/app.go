// Package cmd implements the sroi command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/etnz/solarroi"
	"github.com/etnz/solarroi/kv"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&listCmd{}, "portfolio")
	c.Register(&statsCmd{}, "portfolio")
	c.Register(&showCmd{}, "portfolio")
	c.Register(&varsCmd{}, "portfolio")
	c.Register(&computeCmd{}, "portfolio")
	c.Register(&queryCmd{}, "portfolio")

	c.Register(&setCmd{}, "practitioner")
	c.Register(&resetCmd{}, "practitioner")
	c.Register(&trackCmd{}, "practitioner")
	c.Register(&teamCmd{}, "practitioner")
	c.Register(&newCmd{}, "practitioner")
	c.Register(&exportCmd{}, "practitioner")
	c.Register(&importCmd{}, "practitioner")

	c.Register(&lensCmd{}, "")
	c.Register(&topicCmd{}, "")
	c.Register(&assistCmd{}, "")
}

// Config holds the defaults of the global flags, read from the environment.
type Config struct {
	Backend    string `env:"SROI_BACKEND" envDefault:"dir"`
	Path       string `env:"SROI_PATH"`
	RedisAddr  string `env:"SROI_REDIS_ADDR" envDefault:"localhost:6379"`
	Collection string `env:"SROI_COLLECTION" envDefault:"microgrid-projects"`
	Model      string `env:"SROI_MODEL" envDefault:"gemini-2.5-pro"`
}

// LoadConfig reads the configuration from the environment, after loading the
// optional .env file of the working directory.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: cannot load .env file: %v", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, nil
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var config = mustLoadConfig()

var (
	backendName = flag.String("backend", config.Backend, "Storage backend: dir, sqlite, redis or memory")
	storePath   = flag.String("path", config.Path, "Path of the dir (default .sroi) or sqlite (default .sroi/sroi.db) backend")
	redisAddr   = flag.String("redis-addr", config.RedisAddr, "Address of the redis backend server")
	collection  = flag.String("collection", config.Collection, "Key of the project collection in the backend")
	plain       = flag.Bool("plain", false, "Print markdown as is, without terminal rendering")
)

// stdout is where commands write their output.
var stdout io.Writer = os.Stdout

func mustLoadConfig() Config {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// OpenBackend opens the backend selected by the global flags. close releases it.
func OpenBackend(ctx context.Context) (backend solarroi.Backend, close func() error, err error) {
	noop := func() error { return nil }
	switch *backendName {
	case "dir", "":
		path := *storePath
		if path == "" {
			path = ".sroi"
		}
		return kv.NewDir(path), noop, nil
	case "sqlite":
		path := *storePath
		if path == "" {
			path = filepath.Join(".sroi", "sroi.db")
		}
		db, err := kv.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case "redis":
		r := kv.NewRedis(*redisAddr, "sroi:")
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return nil, nil, fmt.Errorf("cannot reach redis at %q: %w", *redisAddr, err)
		}
		return r, r.Close, nil
	case "memory":
		return kv.NewMemory(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q, expected dir, sqlite, redis or memory", *backendName)
	}
}

// session is an open store with its portfolio loaded.
type session struct {
	store     *solarroi.Store
	portfolio *solarroi.Portfolio
	lens      solarroi.Lens
	close     func() error
}

// openSession opens the backend and loads the portfolio and the lens.
func openSession(ctx context.Context) (*session, error) {
	backend, closeFn, err := OpenBackend(ctx)
	if err != nil {
		return nil, err
	}
	store := solarroi.NewStore(backend, *collection, solarroi.DefaultProjects())
	p, err := store.Load(ctx)
	if err != nil {
		closeFn()
		return nil, err
	}
	lens, err := store.Lens(ctx)
	if err != nil {
		closeFn()
		return nil, err
	}
	return &session{store: store, portfolio: p, lens: lens, close: closeFn}, nil
}

// save writes the portfolio back.
func (s *session) save(ctx context.Context) error {
	return s.store.Save(ctx, s.portfolio)
}
