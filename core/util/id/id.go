package id

import (
	"github.com/google/uuid"
)

// Generate 生成随机 UUID (v4)
func Generate() string {
	return uuid.NewString()
}

// RequestID 生成按时间排序的 UUID (v7)，便于日志中按请求先后检索。
// 时钟不可用时退回 v4
func RequestID() string {
	u, err := uuid.NewV7()
	if err != nil {
		return Generate()
	}
	return u.String()
}

// Valid 判断 s 是否为合法 UUID
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
