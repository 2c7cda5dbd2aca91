// Package redis 提供 Redis 缓存操作的封装
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"strconv"

	"skillhive_server/internal/config"

	"github.com/redis/go-redis/v9"
)

// Cache 全局缓存实例
// Service 层通过构造函数注入使用，此全局变量只供装配入口取用
var Cache *RedisCache

// Init 初始化 Redis 连接和缓存 Worker Pool
func Init() {
	conf := config.GetConfig()
	addr := conf.RedisConfig.Host + ":" + strconv.Itoa(conf.RedisConfig.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,

		// 连接池配置
		PoolSize:     50, // 最大连接数
		MinIdleConns: 15, // 最小空闲连接，与 Worker 数量匹配
	})

	// 15 个 Worker，缓冲区 3000，多 Service 共享
	Cache = NewRedisCache(client, 15, 3000)
}
