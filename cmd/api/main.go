package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	"github.com/BruksfildServices01/material-rental/internal/config"
	dbpkg "github.com/BruksfildServices01/material-rental/internal/db"
	"github.com/BruksfildServices01/material-rental/internal/fieldcrypt"
	"github.com/BruksfildServices01/material-rental/internal/identity"
	"github.com/BruksfildServices01/material-rental/internal/infra/cache"
	"github.com/BruksfildServices01/material-rental/internal/infra/docstore"
	"github.com/BruksfildServices01/material-rental/internal/infra/events"
	"github.com/BruksfildServices01/material-rental/internal/infra/firebaseapp"
	"github.com/BruksfildServices01/material-rental/internal/infra/gallery"
	infraRepo "github.com/BruksfildServices01/material-rental/internal/infra/repository"
	"github.com/BruksfildServices01/material-rental/internal/jobs"
	"github.com/BruksfildServices01/material-rental/internal/logging"
	"github.com/BruksfildServices01/material-rental/internal/metrics"
	"github.com/BruksfildServices01/material-rental/internal/middleware"
	"github.com/BruksfildServices01/material-rental/internal/routes"
	"github.com/BruksfildServices01/material-rental/internal/validators"
	ucBooking "github.com/BruksfildServices01/material-rental/internal/usecase/booking"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logFile := logging.Setup(cfg.LogFile)
	defer logFile.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	logger := logging.Std{}

	// ======================================================
	// 🔥 FIREBASE
	// ======================================================
	var fb *firebaseapp.App
	if cfg.UsesFirebase() {
		fb, err = firebaseapp.New(ctx, cfg.Firebase)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	// ======================================================
	// 🗄️ STORE
	// ======================================================
	var store docstore.Store
	switch cfg.StoreDriver {
	case "firebase":
		client, err := fb.Database(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		store = docstore.NewRTDBStore(client)
	case "postgres":
		store = docstore.NewGormStore(dbpkg.NewDB(cfg))
	default:
		log.Printf("WARN using the in-memory store, data is lost on restart")
		store = docstore.NewMemoryStore()
	}

	cipher, err := fieldcrypt.New(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("failed to init field cipher: %v", err)
	}

	// ======================================================
	// 🖼️ GALLERY
	// ======================================================
	var lister gallery.Lister = gallery.Noop{}
	switch cfg.StorageDriver {
	case "firebase":
		bucket, name, err := fb.Bucket(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		lister = gallery.NewFirebaseStorage(bucket, name)
	case "s3":
		lister = gallery.NewS3(gallery.S3Config(cfg.S3))
	}

	// ======================================================
	// 🔐 IDENTITY
	// ======================================================
	var verifier identity.Verifier
	switch cfg.AuthProvider {
	case "firebase":
		client, err := fb.Auth(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		verifier = identity.NewFirebaseVerifier(client)
	default:
		verifier = identity.NewJWTVerifier(cfg.JWTSecret)
	}

	var appChecker identity.AppChecker
	if cfg.AppCheckEnabled {
		client, err := fb.AppCheck(ctx)
		if err != nil {
			log.Fatalf("%v", err)
		}
		appChecker = identity.NewFirebaseAppChecker(client)
	}

	// ======================================================
	// 📡 CACHE / EVENTS / METRICS / AUDIT
	// ======================================================
	m := metrics.New()

	rdb, err := cache.Open(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("WARN read cache disabled: %v", err)
	}
	readCache := middleware.NewCache(rdb, cfg.CacheTTL, m)

	var publisher events.Publisher = events.Noop{}
	if cfg.RabbitMQURL != "" {
		publisher = events.NewAMQPPublisher(cfg.RabbitMQURL)
	}

	auditLogger := audit.New(store)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// ⏱️ JOBS
	// ======================================================
	reconcile := ucBooking.NewReconcile(
		infraRepo.NewMaterialRepository(store),
		infraRepo.NewBookingRepository(store, cipher),
		infraRepo.NewMessageRepository(store, cipher),
		m,
		logger,
	)

	sched, err := jobs.StartReconcile(cfg.ReconcileInterval, reconcile, readCache, logger)
	if err != nil {
		log.Fatalf("failed to schedule reconcile: %v", err)
	}

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if err := validators.Register(); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:     cfg,
		Store:      store,
		Cipher:     cipher,
		Gallery:    lister,
		Gate:       identity.NewGate(verifier, cfg.OperatorUID),
		AppChecker: appChecker,
		Cache:      readCache,
		Events:     publisher,
		Metrics:    m,
		Audit:      auditDispatcher,
		AuditLog:   auditLogger,
		Log:        logger,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR server forced to shutdown: %v", err)
	}
	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			log.Printf("ERROR scheduler shutdown: %v", err)
		}
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		log.Printf("ERROR audit queue not drained: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	log.Println("Server exited")
}
