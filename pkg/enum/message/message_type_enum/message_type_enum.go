// Package message_type_enum 定义消息类型常量
package message_type_enum

const (
	Text   = "TEXT"   // 文本消息
	Image  = "IMAGE"  // 图片/视频消息，内容为媒体服务返回的 URL
	System = "SYSTEM" // 系统消息（撤回占位等）
)

// Valid 判断是否为合法的消息类型
func Valid(t string) bool {
	switch t {
	case Text, Image, System:
		return true
	}
	return false
}
