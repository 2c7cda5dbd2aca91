// Package snowflake 封装雪花 ID 生成
package snowflake

import (
	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init 初始化雪花算法节点
// machineID 取值 0-1023，分布式部署时每台机器需唯一；应在程序启动时调用一次
func Init(machineID int64) error {
	n, err := snowflake.NewNode(machineID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// GenerateID 生成雪花 ID (int64)
func GenerateID() int64 {
	return node.Generate().Int64()
}
