// Package message_status_enum 定义消息状态常量及状态机
// 状态只能向前推进：DELIVERED -> RECEIVED -> READ，禁止回退
package message_status_enum

const (
	Delivered = "DELIVERED" // 已投递（服务端落库成功）
	Received  = "RECEIVED"  // 已送达（对端客户端确认收到）
	Read      = "READ"      // 已读
)

// rank 状态推进顺序
var rank = map[string]int{
	Delivered: 0,
	Received:  1,
	Read:      2,
}

// Predecessors 返回允许推进到 to 的全部前置状态
// 写库侧把它拼进 WHERE 条件，推进约束随 UPDATE 原子生效，并发下也不会回退
func Predecessors(to string) []string {
	tr, ok := rank[to]
	if !ok {
		return nil
	}
	var from []string
	for s, r := range rank {
		if r < tr {
			from = append(from, s)
		}
	}
	return from
}
