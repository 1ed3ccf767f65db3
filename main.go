package main

import (
	"context"
	"log"

	"github.com/Kariqs/confectionary-api/cache"
	"github.com/Kariqs/confectionary-api/events"
	"github.com/Kariqs/confectionary-api/initializers"
	"github.com/Kariqs/confectionary-api/routes"
	"github.com/Kariqs/confectionary-api/services"
	"github.com/Kariqs/confectionary-api/storage"
)

func init() {
	initializers.LoadEnv()
}

func main() {
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if err := initializers.ConnectToDB(cfg); err != nil {
		log.Fatal(err)
	}
	if err := initializers.SyncDatabase(initializers.DB); err != nil {
		log.Fatal("Failed to sync database: ", err)
	}

	ctx := context.Background()

	var productCache cache.ProductCache = cache.NopProductCache{}
	if cfg.RedisAddr != "" {
		client, err := initializers.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		productCache = cache.NewRedisProductCache(client, cache.DefaultTTL)
	}

	var publisher events.Publisher = events.LogPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewKafkaPublisher(cfg.KafkaBrokers)
		if err != nil {
			log.Fatal(err)
		}
		defer producer.Close()
		publisher = producer
	}

	var images storage.ImageStore = storage.NewLocalStore(cfg.ImageDir)
	if cfg.S3Bucket != "" {
		images, err = storage.NewS3Store(ctx, cfg.S3Bucket)
		if err != nil {
			log.Fatal(err)
		}
	}

	users := services.NewUserService(initializers.DB)
	server := routes.SetupRouter(routes.Services{
		DB:         initializers.DB,
		Users:      users,
		Auth:       services.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL),
		Products:   services.NewProductService(initializers.DB, productCache, publisher),
		Categories: services.NewCategoryService(initializers.DB, productCache),
		Carts:      services.NewCartService(initializers.DB, publisher),
		Orders:     services.NewOrderService(initializers.DB, publisher, services.InvoiceRenderer{}),
		Promotions: services.NewPromotionService(initializers.DB, images),
	}, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Mail:           cfg.Mail,
	})

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
