package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/D6nnisAd/Celeste-Emerald/database"
	"github.com/D6nnisAd/Celeste-Emerald/handlers"
	"github.com/D6nnisAd/Celeste-Emerald/middleware"
	"github.com/D6nnisAd/Celeste-Emerald/stats"
	"github.com/D6nnisAd/Celeste-Emerald/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize PostgreSQL Database (users, profiles, settings) ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- Initialize ClickHouse Database (visit log) ---
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	// --- Initialize Stores ---
	userStore := store.NewUserStore(dbClient.DB)
	settingsStore := store.NewSettingsStore(dbClient.DB)
	analyticsStore := store.NewAnalyticsStore(chClient)

	// --- Dashboard poller: refreshes aggregate counts while an admin is
	// viewing the analytics tab, stops on logout. ---
	poller := stats.NewPoller(analyticsStore, stats.DefaultInterval)
	poller.Start()
	defer poller.Stop()

	// --- Initialize Handlers ---
	authHandlers := handlers.NewAuthHandlers(userStore, poller)
	trackHandlers := handlers.NewTrackHandlers(analyticsStore)
	settingsHandlers := handlers.NewSettingsHandlers(settingsStore)
	statsHandlers := handlers.NewStatsHandlers(poller, analyticsStore)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		// Public endpoints: account flows and the page-view tracker
		api.POST("/register", authHandlers.Register)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)
		api.POST("/track", trackHandlers.TrackVisit)

		// Public pages read the payment settings to decide which checkout
		// options to render.
		api.GET("/settings", settingsHandlers.GetSettings)

		// Admin dashboard (requires a valid JWT token)
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired())
		{
			admin.GET("/settings", settingsHandlers.GetSettings)
			admin.PUT("/settings", settingsHandlers.SaveSettings)
			admin.GET("/stats", statsHandlers.GetDashboard)
			admin.GET("/stats/recent", statsHandlers.GetRecentVisits)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Celeste API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Celeste API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
