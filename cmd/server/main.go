package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/devlink-app/devlink-backend/internal/config"
	"github.com/devlink-app/devlink-backend/internal/database"
	"github.com/devlink-app/devlink-backend/internal/handlers"
	"github.com/devlink-app/devlink-backend/internal/middleware"
	"github.com/devlink-app/devlink-backend/internal/routes"
	"github.com/devlink-app/devlink-backend/internal/services"
	"github.com/devlink-app/devlink-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Token service first: a missing or weak JWT_SECRET is a hard failure.
	tokens, err := services.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	if err != nil {
		log.Fatal("Invalid JWT configuration: ", err)
	}

	// Connect to PostgreSQL (identities)
	log.Printf("Connecting to PostgreSQL...")
	pg, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL: ", err)
	}
	defer pg.Close()

	// Connect to Redis (rate limiting, listing cache, feed pub/sub)
	log.Printf("Connecting to Redis...")
	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}
	defer rdb.Close()

	// Connect to MongoDB (profile and post aggregates)
	log.Printf("Connecting to MongoDB...")
	mongoDB, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer database.DisconnectMongo(mongoDB)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	if err := store.EnsureProfileIndexes(indexCtx, mongoDB); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure profile indexes: %v", err)
	}
	if err := store.EnsurePostIndexes(indexCtx, mongoDB); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure post indexes: %v", err)
	}

	// Cloudinary is optional; uploads return 503 when it's not configured.
	var uploads *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		uploads, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("File uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. File uploads will not be available")
	}

	// Stores
	identities := store.NewPostgresIdentityStore(pg)
	profiles := store.NewMongoProfileStore(mongoDB)
	posts := store.NewMongoPostStore(mongoDB)

	// Services
	cache := services.NewCacheService(rdb)
	feed := services.NewFeedService(rdb)
	feed.Start(context.Background())

	authService := services.NewAuthService(identities, profiles, posts, tokens)
	profileService := services.NewProfileService(profiles, cache)
	postService := services.NewPostService(posts, identities, feed, cache)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: security headers, host check, per-IP + login rate limiting.
	// Non-production: Redis-based rate limit only.
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, host check, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimit(rdb))
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.Setup(r, routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Profile: handlers.NewProfileHandler(profileService, authService),
		Posts:   handlers.NewPostHandler(postService),
		Upload:  handlers.NewUploadHandler(uploads),
		Feed:    handlers.NewFeedHandler(feed, tokens),
	}, tokens)

	log.Printf("🚀 devlink backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
