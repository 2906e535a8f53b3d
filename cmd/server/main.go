package main

import (
	"log"
	"os"
	"time"

	"go-quote-desk/internal/auth"
	"go-quote-desk/internal/config"
	"go-quote-desk/internal/database"
	"go-quote-desk/internal/event"
	"go-quote-desk/internal/handlers"
	"go-quote-desk/internal/render"
	"go-quote-desk/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}
	cfg := config.Load()

	if err := auth.Configure(cfg.JWTSecret, cfg.TokenTTL); err != nil {
		log.Fatal("❌ ", err)
	}

	database.Connect(cfg.DBDriver, cfg.DBDSN)
	if err := database.SeedAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("❌ Failed to seed admin user: ", err)
	}

	deps := handlers.Deps{
		PDF:          render.PDFOptions{FontPath: cfg.PDFFontPath},
		GeminiAPIKey: cfg.GeminiAPIKey,
	}

	// --- Token revocation: Redis when configured, in-process otherwise ---
	if cfg.Redis.Addr != "" {
		revoker, err := auth.NewRedisRevoker(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("❌ Failed to connect to Redis: ", err)
		}
		defer revoker.Close()
		deps.Revoker = revoker
		log.Println("✅ Token revocation backed by Redis")
	} else {
		deps.Revoker = auth.NewMemoryRevoker()
		log.Println("⚠️ REDIS_ADDR not set: revoked tokens are kept in memory")
	}

	// --- Logo storage: MinIO when configured, local disk otherwise ---
	if cfg.Minio.Endpoint != "" {
		logos, err := storage.NewMinioStore(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.Secure)
		if err != nil {
			log.Fatal("❌ Failed to connect to MinIO: ", err)
		}
		deps.Logos = logos
		log.Println("✅ Logos stored in MinIO bucket " + cfg.Minio.Bucket)
	} else {
		logos, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			log.Fatal("❌ Failed to prepare upload directory: ", err)
		}
		deps.Logos = logos
	}

	// --- Quote events: RabbitMQ is optional ---
	if cfg.RabbitMQURL != "" {
		publisher, err := event.NewRabbitPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Println("⚠️ RabbitMQ unavailable, quote events disabled:", err)
		} else {
			defer publisher.Close()
			deps.Events = publisher
			log.Println("✅ Publishing quote events to " + event.QuoteQueue)
		}
	}

	handlers.Setup(deps)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.RegisterRoutes(r, cfg.AllowRegistration)

	// Serve a built browser front end when one is deployed next to the binary.
	if _, err := os.Stat("./web/index.html"); err == nil {
		r.Static("/assets", "./web/assets")
		r.NoRoute(func(c *gin.Context) {
			c.File("./web/index.html")
		})
	}

	log.Println("🚀 Server starting on " + cfg.BaseURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
