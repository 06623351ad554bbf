package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"giglog/internal/config"
	"giglog/internal/database"
	"giglog/internal/mailer"
	"giglog/internal/middleware"
	"giglog/internal/modules/auth"
	"giglog/internal/modules/company"
	"giglog/internal/modules/job"
	"giglog/internal/modules/payment"
	"giglog/internal/modules/worksession"
	"giglog/internal/pkg/authcode"
	"giglog/internal/pkg/cookies"
	"giglog/internal/pkg/token"
	"giglog/internal/repository"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	var authMailer auth.Mailer
	if cfg.ResendAPIKey != "" {
		authMailer = mailer.NewResendMailer(cfg.ResendAPIKey, cfg.ResendFromEmail)
	} else {
		log.Warn("RESEND_API_KEY not set, auth codes will be logged instead of emailed")
		authMailer = mailer.NewDevConsoleMailer(log)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	} else {
		log.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	codec := token.NewCodec(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	cookieCfg := cookies.Config{Domain: cfg.CookieDomain, Secure: cfg.CookieSecure}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	codeRepo := repository.NewAuthCodeRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	sessionRepo := repository.NewWorkSessionRepository(db)

	authSvc := auth.NewService(db, userRepo, tokenRepo, codeRepo, codec, authcode.NewGenerator(), authMailer, cfg.AuthCodeTTL, log)
	companySvc := company.NewService(companyRepo)
	jobSvc := job.NewService(jobRepo, companyRepo)
	paymentSvc := payment.NewService(paymentRepo, companyRepo)
	sessionSvc := worksession.NewService(sessionRepo, jobRepo)

	authHandler := auth.NewHandler(authSvc, cookieCfg, log)
	companyHandler := company.NewHandler(companySvc, log)
	jobHandler := job.NewHandler(jobSvc, log)
	paymentHandler := payment.NewHandler(paymentSvc, log)
	sessionHandler := worksession.NewHandler(sessionSvc, log)

	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	limited := middleware.RateLimit(redisClient, log, 10, time.Minute)
	public := router.Group("/auth", limited)
	authHandler.RegisterPublic(public)

	protected := router.Group("/", middleware.RequireAuth(codec))
	authHandler.RegisterProtected(protected.Group("/auth"))
	companyHandler.Register(protected)
	jobHandler.Register(protected)
	paymentHandler.Register(protected)
	sessionHandler.Register(protected)

	log.WithField("port", cfg.Port).Info("starting api server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
