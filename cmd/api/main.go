package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/nmoreno/billetera/docs"
	"github.com/nmoreno/billetera/internal/analytics"
	"github.com/nmoreno/billetera/internal/config"
	"github.com/nmoreno/billetera/internal/database"
	"github.com/nmoreno/billetera/internal/insight"
	"github.com/nmoreno/billetera/internal/inventory"
	"github.com/nmoreno/billetera/internal/loan"
	"github.com/nmoreno/billetera/internal/splitbill"
	"github.com/nmoreno/billetera/internal/subscription"
	"github.com/nmoreno/billetera/internal/survival"
	"github.com/nmoreno/billetera/internal/transaction"
	"github.com/nmoreno/billetera/internal/trip"
	"github.com/nmoreno/billetera/pkg/logging"
	mw "github.com/nmoreno/billetera/pkg/middleware"
)

// @title           Billetera API
// @version         1.0
// @description     Personal finance backend: transactions with installment amortization, trip expense splitting, split bills, pantry inventory, loans, subscriptions, survival mode and spending analytics.
// @BasePath        /api
func main() {
	logging.Setup()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	// Money fields serialize as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	slog.Info("connected to database")

	// Transaction feature
	txRepo := transaction.NewRepository(db)
	txService := transaction.NewService(txRepo)
	txHandler := transaction.NewHandler(txService)

	// Trip feature
	tripRepo := trip.NewRepository(db)
	tripService := trip.NewService(tripRepo)
	tripHandler := trip.NewHandler(tripService)

	// Loan feature
	loanRepo := loan.NewRepository(db)
	loanService := loan.NewService(loanRepo)
	loanHandler := loan.NewHandler(loanService)

	// Subscription feature
	subRepo := subscription.NewRepository(db)
	subService := subscription.NewService(subRepo)
	subHandler := subscription.NewHandler(subService)

	// Split-bill feature divides single transactions among contacts
	billRepo := splitbill.NewRepository(db)
	billService := splitbill.NewService(billRepo, txRepo)
	billHandler := splitbill.NewHandler(billService)

	// Inventory feature
	inventoryRepo := inventory.NewRepository(db)
	inventoryService := inventory.NewService(inventoryRepo)
	inventoryHandler := inventory.NewHandler(inventoryService)

	// Survival mode, insights and analytics read spending through the
	// transaction repo
	survivalService := survival.NewService(txRepo, cfg.Survival)
	survivalHandler := survival.NewHandler(survivalService)

	insightService := insight.NewService(txRepo, cfg.Insights)
	insightHandler := insight.NewHandler(insightService)

	analyticsService := analytics.NewService(txRepo)
	analyticsHandler := analytics.NewHandler(analyticsService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			r.Use(mw.AuthMiddleware(cfg.JWTSecret))
		} else {
			// Without a JWT secret requests run as a test user
			r.Use(mw.TestUserMiddleware)
		}

		r.Mount("/transactions", txHandler.Routes())
		r.Mount("/trips", tripHandler.Routes())
		r.Mount("/split-bills", billHandler.Routes())
		r.Mount("/inventory", inventoryHandler.Routes())
		r.Mount("/loans", loanHandler.Routes())
		r.Mount("/subscriptions", subHandler.Routes())
		r.Mount("/survival", survivalHandler.Routes())
		r.Mount("/insights", insightHandler.Routes())
		r.Mount("/analytics", analyticsHandler.Routes())
	})

	slog.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
