package main

import (
	"flag"

	"go.uber.org/zap"

	"chirp/auth"
	"chirp/crud"
	"chirp/http"
	"chirp/storage"
)

// main is the app's entry point.
func main() {
	// The "-prod" flag means we're running in production: a .config.json
	// file is then required and the app panics if none is found.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	config := LoadConfig(*productionBool)

	logger, err := newLogger(config.IsProd())
	must(err)
	defer logger.Sync()

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err = Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// The blob store holding uploaded media bytes.
	blobs, err := storage.NewFileStore(config.MediaDir)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.Pepper),
		crud.WithTweet(),
		crud.WithFollow(),
		crud.WithLike(),
		crud.WithMedia(blobs),
		crud.WithFeed(),
	)
	must(err)

	// The token manager issues and resolves bearer tokens.
	tokens := auth.NewTokenManager(config.JWTSecret, config.TokenTTLMinutes)

	// Set up a webserver and serve the app.
	server := http.NewServer(
		logger,
		tokens,
		config.BearerWrites,
		services.User,
		services.Tweet,
		services.Follow,
		services.Like,
		services.Media,
		services.Feed,
	)
	server.Run(config.Port)
}

// newLogger picks the zap preset matching the environment.
func newLogger(isProd bool) (*zap.Logger, error) {
	if isProd {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
