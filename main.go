package main

import (
	"hotel-server/config"
	"hotel-server/kafka"
	"hotel-server/routes"
	"hotel-server/services"
	"hotel-server/storage"
	"hotel-server/utils"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	deps := services.Deps{Logger: logger}

	switch cfg.Store {
	case "memory":
		deps.Store = storage.NewMemoryStore()
	default:
		deps.Store = storage.NewGormStore(storage.InitializeDB(cfg.DatabaseURL, cfg.RunMigrations))
	}

	if cfg.RedisURL != "" {
		deps.Locker = storage.NewRedisLocker(storage.InitializeRedis(cfg.RedisURL, cfg.RedisPassword))
	} else {
		log.Println("REDIS_URL not set, room locks are local to this instance")
	}

	if cfg.KafkaBroker != "" {
		producer, err := kafka.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("failed to create kafka producer: %v", err)
		}
		iris.RegisterOnInterrupt(func() { producer.Close() })
		deps.Publisher = producer
	}

	if cfg.MailjetAPIKey != "" && cfg.MailjetAPISecret != "" {
		deps.Notifier = utils.NewMailer(cfg.MailjetAPIKey, cfg.MailjetAPISecret, cfg.MailFrom, cfg.MailFromName)
	}

	if cfg.CloudinaryURL != "" {
		images, err := storage.NewRoomImages(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatalf("failed to configure cloudinary: %v", err)
		}
		deps.Images = images
	}

	var jwks *utils.JWKSVerifier
	if cfg.JWKSURL != "" {
		verifier, err := utils.NewJWKSVerifier(cfg.JWKSURL)
		if err != nil {
			log.Fatalf("failed to load JWKS from %s: %v", cfg.JWKSURL, err)
		}
		iris.RegisterOnInterrupt(verifier.Close)
		jwks = verifier
	}

	app := iris.New()
	app.Logger().SetLevel(cfg.LogLevel)
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(utils.CORS(cfg.CORSAllowedOrigins))
	app.Use(iris.Compression)

	routes.Mount(app, services.New(deps), utils.AccessTokenMiddleware(cfg.AccessTokenSecret, jwks))

	app.Listen(":" + cfg.ServerPort)
}
