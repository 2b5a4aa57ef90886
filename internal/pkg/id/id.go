package id

import (
	"strings"

	"github.com/google/uuid"
)

// New 生成新的UUID（string格式）
func New() string {
	return uuid.New().String()
}

// Short 生成长度为 n 的随机短 ID（十六进制字符），n 取值范围 1-32
func Short(n int) string {
	if n <= 0 {
		return ""
	}
	if n > 32 {
		n = 32
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}
