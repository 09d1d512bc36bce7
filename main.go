package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"werewolf_web/internal/api"
	"werewolf_web/internal/models"
	"werewolf_web/internal/repository"
	"werewolf_web/internal/service"
	"werewolf_web/internal/storage"
	"werewolf_web/internal/utils"
	"werewolf_web/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息、服務器地址和遊戲階段時長等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化結構化日誌
	logger, err := utils.InitLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化資料庫連接
	// 使用配置中的信息建立到 PostgreSQL 數據庫的連接
	db, err := storage.NewPostgresDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 房間快照整顆存在 Room 表，巢狀欄位以 JSON 序列化
	if err := db.AutoMigrate(&models.Room{}); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories
	repos := repository.NewRepositories(db)

	// 初始化 services
	services := service.NewServices(repos, cfg.Game, logger)

	// 設置 Gin 路由
	r := gin.Default()
	r.Use(utils.RequestLogger(logger))
	api.SetupRoutes(r, services)

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
