package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"truco-server/internal/config"
	"truco-server/internal/mux"
	"truco-server/internal/rng"
	"truco-server/pkg/db"
	"truco-server/pkg/model"
	"truco-server/pkg/registry"
	"truco-server/pkg/truco"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5

// writeTimeout is added to the longest long-poll
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the configuration")

func main() {
	if err := godotenv.Load(); err == nil {
		logrus.Info("loaded .env file")
	}

	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	if *addr != "" {
		cfg.Addr = *addr
	}

	players := playerStore(cfg)
	matches := registry.New(rng.Crypto{}, registry.NewFactory(truco.DefaultOptions()), logrus.StandardLogger())

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, players, matches))),
		ReadTimeout:  readTimeout,
		WriteTimeout: cfg.MaxTimeout() + writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).WithField("store", cfg.Store).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// playerStore fails fast if the database is unusable
func playerStore(cfg config.Config) model.PlayerStore {
	if cfg.Store != config.StorePostgres {
		return model.NewMemoryStore(rng.Crypto{})
	}

	dbh, err := db.Instance(cfg.PGDSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	return model.NewPostgresStore(dbh)
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
