package main

import (
	"github.com/joho/godotenv"
	"github.com/khirastore/ecommerce-api/config"
	"github.com/khirastore/ecommerce-api/otp"
	"github.com/khirastore/ecommerce-api/routers"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		logger.Fatal("無法讀取設定檔", zap.Error(err))
	}

	db, err := config.SetupMySQLConnection(cfg)
	if err != nil {
		logger.Fatal("無法連接到資料庫", zap.Error(err))
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	rdb, err := config.SetupRedisConnection(cfg)
	if err != nil {
		logger.Fatal("無法連接到Redis", zap.Error(err))
	}
	defer rdb.Close()

	otpStore := otp.NewRedisStore(rdb)
	mailer := otp.NewSMTPMailer(cfg.SMTP)

	router := routers.SetupRouters(db, otpStore, mailer, cfg)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("HTTP伺服器異常結束", zap.Error(err))
	}
}
