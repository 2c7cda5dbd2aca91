package constants

const (
	CHANNEL_SIZE               = 100 // 通道大小
	REDIS_TIMEOUT              = 1   // redis timeout (分钟)
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天

	// MESSAGE_SNIPPET_LEN 评论通知正文截取的最大字符数（按 rune 计）
	MESSAGE_SNIPPET_LEN = 20
)
