package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "lending-engine/internal/adapter/http"
	"lending-engine/internal/adapter/middleware"
	notifyadp "lending-engine/internal/adapter/notify"
	"lending-engine/internal/adapter/repository/mysql"
	"lending-engine/internal/adapter/storage"
	"lending-engine/internal/config"
	"lending-engine/internal/infrastructure/cache"
	"lending-engine/internal/infrastructure/db"
	"lending-engine/internal/usecase/lifecycle"
	"lending-engine/internal/usecase/reconcile"
)

func main() {
	_ = godotenv.Load() // optional .env for local runs

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatal("mysql connect failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}

	loans := mysql.NewLoanRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	notifier := notifyadp.NewOutboxNotifier(gdb, log)

	lifecycleUC := lifecycle.NewUsecase(loans, uow, notifier)
	reconcileUC := reconcile.NewUsecase(loans, payments, uow, notifier)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(lifecycleUC)
	paymentH := httpadp.NewPaymentHandler(reconcileUC)
	productH := httpadp.NewProductHandler()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.POST("/loans", loanH.SubmitLoan, idemp)
	api.GET("/loans/:reference", loanH.GetLoan)
	api.POST("/loans/:reference/approve", loanH.ApproveLoan)
	api.POST("/loans/:reference/decline", loanH.DeclineLoan)
	api.POST("/loans/:reference/disburse", loanH.DisburseLoan)
	api.GET("/loans/:reference/schedule", loanH.GetSchedule)
	api.POST("/loans/:reference/payments", paymentH.ApplyPayment, idemp)
	api.GET("/loans/:reference/payments", paymentH.ListPayments)
	api.GET("/products", productH.ListProducts)

	if cfg.CloudinaryEnabled() {
		store, err := storage.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Fatal("cloudinary init failed", zap.Error(err))
		}
		docH := httpadp.NewDocumentHandler(store, log)
		api.POST("/documents", docH.UploadDocument)
	} else {
		log.Info("document upload disabled: cloudinary credentials not set")
	}

	addr := ":" + cfg.AppPort
	log.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
