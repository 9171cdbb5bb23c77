package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pos_backend/internal/database"
	"pos_backend/internal/middleware"
	"pos_backend/internal/router"
	"pos_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, environment variables win either way.
	_ = godotenv.Load()

	utils.InitLogger()

	dbConfig := database.Config{
		Host:         utils.Getenv("DB_HOST", "localhost"),
		Port:         utils.Getenv("DB_PORT", "3306"),
		User:         utils.Getenv("DB_USER", "root"),
		Password:     utils.Getenv("DB_PASSWORD", ""),
		Name:         utils.Getenv("DB_NAME", "pos_db"),
		MaxOpenConns: utils.GetenvInt("DB_MAX_OPEN_CONNS", 10),
	}

	db, err := database.InitDB(dbConfig)
	if err != nil {
		utils.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}
	defer db.Close()
	utils.LogInfo("Database initialized", map[string]interface{}{"host": dbConfig.Host, "name": dbConfig.Name})

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	requestTimeout := time.Duration(utils.GetenvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second
	engine.Use(middleware.RequestTimeout(requestTimeout))

	var allowedOrigins []string
	if originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS"); originsEnv != "" {
		allowedOrigins = strings.Split(originsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:8080", "http://localhost:5173"}
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	engine.Use(cors.New(corsConfig))

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "POS Backend Running")
	})

	router.Setup(engine, db)

	port := utils.Getenv("PORT", "3000")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: engine,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Server stopped unexpectedly")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.LogInfo("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.LogError(err, "Forced shutdown")
	}
	utils.LogInfo("Server exited")
}
