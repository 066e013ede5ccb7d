// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	commonaws "github.com/Nishal72/InnoMinds-Code4Good/internal/common/aws"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/config"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/database"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/genai"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/logger"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/common/observability"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/directory"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/greenaudit"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/greenloan"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/registration"
	"github.com/Nishal72/InnoMinds-Code4Good/internal/vatreturn"
)

const genAIMaxRetries = 3

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting green services server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("green-services")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional) with retry ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	} else {
		zapLog.Info("Elasticsearch disabled, directory search unavailable")
	}

	// --- Init External Service Clients ---
	var sesClient *commonaws.SESClient
	if cfg.Integrations.AWS.SES.Enabled {
		sesClient, err = commonaws.NewSESClient(ctx, cfg.Integrations.AWS.Region, cfg.Integrations.AWS.SES.FromEmail)
		if err != nil {
			zapLog.Warn("SES client initialization failed, quote e-mails disabled", zap.Error(err))
			sesClient = nil
		}
	}

	var snsClient *commonaws.SNSClient
	if cfg.Integrations.AWS.SNS.Enabled {
		snsClient, err = commonaws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Warn("SNS client initialization failed, SMS delivery disabled", zap.Error(err))
			snsClient = nil
		}
	}

	generator := genai.NewClient(cfg.APIs.GenAI.BaseURL, cfg.APIs.GenAI.APIKey, genAIMaxRetries)

	zapLog.Info("All external service clients initialized")

	// --- Build Feature Services ---

	dirCfg := directory.ConfigFromGlobal(cfg)
	dirStore := directory.NewStore(dirCfg, pg.DB, redisClient.Client, log)
	var dirSearch *directory.Search
	if esClient != nil {
		dirSearch = directory.NewSearch(dirCfg, esClient.Client, log)
	}
	dirView := directory.NewView(dirCfg, dirStore, log)
	quotes := directory.NewQuoteService(dirCfg, dirStore, generator, sesClient, log)
	dirHandler := directory.NewHandler(dirCfg, dirView, dirStore, dirSearch, quotes, log)

	regCfg := registration.ConfigFromGlobal(cfg)
	picker := registration.NewPicker(regCfg, log)
	regHandler := registration.NewHandler(regCfg, picker, dirStore, dirSearch, log)

	loanCfg := greenloan.ConfigFromGlobal(&cfg.GreenLoan)
	loanClient := greenloan.NewClient(loanCfg, log)
	loanSessions := greenloan.NewSessionManager(loanCfg, redisClient.Client, log)
	loanStore := greenloan.NewStore(pg.DB, log)
	pipeline := greenloan.NewPipeline(loanCfg, loanClient, loanSessions, loanStore, log)
	loanHandler := greenloan.NewHandler(loanCfg, pipeline, loanSessions, loanStore, log)

	vatCfg := vatreturn.ConfigFromGlobal(cfg)
	vatCipher, err := vatreturn.NewCipher(vatCfg.AESKey, vatCfg.AESIV)
	if err != nil {
		zapLog.Fatal("vat return cipher initialization failed", zap.Error(err))
	}
	vatStore := vatreturn.NewStore(pg.DB, log)
	vatService := vatreturn.NewService(vatCfg, vatCipher, vatStore, snsClient, log)
	vatHandler := vatreturn.NewHandler(vatCfg, vatService, vatStore, log)

	auditCfg := greenaudit.ConfigFromGlobal(cfg)
	auditStore := greenaudit.NewStore(pg.DB, log)
	advisor := greenaudit.NewAdvisor(auditCfg, generator, auditStore, log)
	auditHandler := greenaudit.NewHandler(auditCfg, advisor, auditStore, log)

	// --- HTTP Router ---
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	router.GET("/ready", func(c *gin.Context) {
		checkCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := pg.Ping(checkCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": err.Error()})
			return
		}
		if err := redisClient.Ping(checkCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	dirHandler.RegisterRoutes(router)
	regHandler.RegisterRoutes(router)
	loanHandler.RegisterRoutes(router)
	vatHandler.RegisterRoutes(router)
	auditHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
