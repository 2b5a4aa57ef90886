package ai

import "strings"

// BuildPrompt 将消息按顺序以换行符拼接为一个 prompt
// 空列表返回空字符串，不做去重和校验
func BuildPrompt(messages []string) string {
	return strings.Join(messages, "\n")
}
