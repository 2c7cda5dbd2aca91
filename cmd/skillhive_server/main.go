package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"skillhive_server/internal/config"
	dao "skillhive_server/internal/dao/mysql"
	myredis "skillhive_server/internal/dao/redis"
	"skillhive_server/internal/gateway/websocket"
	"skillhive_server/internal/handler"
	"skillhive_server/internal/https_server"
	"skillhive_server/internal/infrastructure/logger"
	"skillhive_server/internal/infrastructure/mq"
	"skillhive_server/internal/service"
	"skillhive_server/pkg/util/jwt"
	"skillhive_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化雪花算法（消息 ID 生成）
	if err := snowflake.Init(conf.SnowflakeConfig.MachineID); err != nil {
		zap.L().Fatal("雪花算法初始化失败", zap.Error(err))
	}

	// 4. 初始化 JWT
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	zap.L().Info("JWT 初始化成功")

	// 5. 初始化数据库
	dao.Init()
	zap.L().Info("数据库初始化成功")

	// 6. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 7. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 8. 构建网关 Hub 和消息代理
	// channel 模式：Hub 自身就是代理；kafka 模式：上行命令经 Kafka 中转
	hub := websocket.NewHub()
	var broker websocket.MessageBroker = hub

	if conf.KafkaConfig.MessageMode == "kafka" {
		mq.KafkaService.KafkaInit()
		mq.KafkaService.CreateTopics()
		broker = mq.NewKafkaChatBroker(hub)
	}
	websocket.GlobalBroker = broker

	// 9. 初始化 Service 层（依赖注入）
	// Hub 作为 Pusher 注入 Service；Service 再通过 setter 反向注入 Hub
	service.InitServices(dao.Repos, myredis.Cache, hub)
	hub.SetCommandHandler(service.Svc.Chat)
	hub.SetPresenceHandler(service.Svc.Presence)
	zap.L().Info("Service 层初始化成功")

	// 10. kafka 模式下启动社交事件消费者
	if conf.KafkaConfig.MessageMode == "kafka" {
		socialConsumer := mq.NewSocialEventConsumer(service.Svc.Notification)
		go socialConsumer.Start()
	}

	// 11. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(service.Svc)
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 12. 启动消息代理和 HTTP 服务
	go broker.Start()

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")

	if conf.KafkaConfig.MessageMode == "kafka" {
		mq.KafkaService.KafkaClose()
	}
	broker.Close()

	zap.L().Info("服务器已关闭")
}
