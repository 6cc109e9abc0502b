package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"medicart/internal/config"
	"medicart/internal/payments"
	"medicart/internal/repository"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      *config.Config
	store    repository.Store
	session  *scs.SessionManager
	gateway  payments.Gateway
	validate *validator.Validate
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	addr := flag.String("addr", cfg.Addr, "HTTP network address")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	var store repository.Store
	switch cfg.Store {
	case "memory":
		store = repository.NewMemory()
		infoLog.Println("Using in-memory store")
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		m, err := repository.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		cancel()
		if err != nil {
			errorLog.Fatal(err)
		}
		defer m.Close(context.Background())
		infoLog.Println("Connected to MongoDB")
		store = m
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		errorLog.Fatal(err)
	}

	session := scs.New()
	session.Lifetime = cfg.SessionLifetime
	session.Cookie.HttpOnly = true

	app := &application{
		errorLog: errorLog,
		infoLog:  infoLog,
		cfg:      cfg,
		store:    store,
		session:  session,
		gateway:  payments.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.KeyID, cfg.Gateway.KeySecret),
		validate: validator.New(),
	}

	srv := &http.Server{
		Addr:     *addr,
		ErrorLog: errorLog,
		Handler:  app.routes(),
	}

	infoLog.Printf("Starting medicart API on %s", *addr)
	err = srv.ListenAndServe()
	errorLog.Fatal(err)
}
