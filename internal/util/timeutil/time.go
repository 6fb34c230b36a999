// Package timeutil 提供报告记录使用的时间戳函数。
package timeutil

import (
	"time"
)

var (
	// baseTime 基准时间点（包含单调时钟读数）
	baseTime = time.Now()
	// baseUnixNs 基准时间点对应的 Unix 纳秒时间戳
	baseUnixNs = baseTime.UnixNano()
)

// NowNano 获取当前时间的纳秒时间戳
// 基于单调时钟，同一进程内生成的记录时间戳不会倒退
func NowNano() int64 {
	return baseUnixNs + time.Since(baseTime).Nanoseconds()
}
