// @title           Vedo Calculator API
// @version         1.0
// @description     Distribution and cutoff calculation backend for precast production planning.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"backend/config"
	_ "backend/docs"
	"backend/handlers"
	"backend/services"
	"backend/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Content-Type", "Content-Disposition", "X-Total-Count",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db := storage.InitDB()
	defer db.Close()
	storage.InitGormDB()

	calcService := services.NewCalculatorService(cfg.Catalog, cfg.Rules)
	handlers.InitCalculatorHandlers(cfg, calcService)

	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(CORSConfig()))

	// ==================== 1. CALCULATOR ====================
	r.POST("/api/calculator/upload", handlers.UploadCalculationFile)
	r.POST("/api/calculator/distribute", handlers.DistributeCalculation)
	r.GET("/api/calculator/catalog", handlers.GetFormCatalog)

	// ==================== 2. RUN HISTORY ====================
	r.GET("/api/calculator/runs", handlers.ListCalculationRuns)
	r.GET("/api/calculator/runs/:uuid", handlers.GetCalculationRun)
	r.DELETE("/api/calculator/runs/:uuid", handlers.DeleteCalculationRun)
	r.GET("/api/calculator/runs/:uuid/download", handlers.DownloadRunFile)
	r.GET("/api/calculator/runs/:uuid/pdf", handlers.GenerateRunPDF)
	r.GET("/api/calculator/runs/:uuid/qr", handlers.GenerateRunQRCodeJPEG)

	// ==================== 3. DASHBOARD ====================
	r.GET("/api/calculator/stats", handlers.CalculatorStats(db))

	// ==================== 4. SWAGGER ====================
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("[server] listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
