// Package notification_type_enum 定义通知类型常量
package notification_type_enum

const (
	Like    = "LIKE"    // 帖子被点赞/被添加表情回应
	Comment = "COMMENT" // 帖子被评论
	Follow  = "FOLLOW"  // 被关注
)

// Valid 判断是否为合法的通知类型
func Valid(t string) bool {
	switch t {
	case Like, Comment, Follow:
		return true
	}
	return false
}
