package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/handmade-next/internal/app"
	"github.com/handmade-next/internal/config"
	"github.com/handmade-next/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	mode := flag.String("mode", app.ModeAll, "启动模式: all | api | worker")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	printBanner(cfg, *mode)

	if cfg.JWT.WeakJWTSecret() {
		if cfg.Server.IsRelease() {
			stdLog.Fatalf("JWT secret 过弱或仍为示例值，生产环境必须配置强随机密钥")
		}
		logger.Warnw("jwt_secret_weak", "mode", cfg.Server.Mode)
	}
	if cfg.Server.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		DB:      db,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    *mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printBanner(cfg *config.Config, mode string) {
	fmt.Printf("\033[95m\033[1mhandmade-next\033[0m  mode=%s  addr=%s  db=%s\n", mode, cfg.Server.Addr(), cfg.Database.Driver)
}
