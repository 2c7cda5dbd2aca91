// Package chatid 提供会话标识的推导
// 两个用户之间的私聊会话由一个确定性的 key 标识：
// 无论谁是发送方，同一对用户算出的 key 永远相同
package chatid

import (
	"skillhive_server/pkg/errorx"
)

// Separator 拼接两个用户 uuid 的分隔符
// 用户 uuid 只包含字母和数字（'U' 前缀 + 随机串），不会出现下划线，
// 因此拼接结果在无序用户对上是单射的
const Separator = "_"

// ConversationKey 推导两个用户的会话 key
// 对称性保证：ConversationKey(A,B) == ConversationKey(B,A)
// userA == userB 属于调用方违反前置条件（用户不能和自己聊天），直接拒绝
func ConversationKey(userA, userB string) (string, error) {
	if userA == "" || userB == "" {
		return "", errorx.New(errorx.CodeInvalidParam, "用户ID不能为空")
	}
	if userA == userB {
		return "", errorx.New(errorx.CodeInvalidParam, "不能与自己建立会话")
	}
	// 按字典序升序拼接，保证与消息方向无关
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + Separator + userB, nil
}
