package scheduler

import (
	"fmt"
	"strings"
	"time"

	_ "time/tzdata" // 容器镜像可能缺少系统时区库

	"github.com/robfig/cron/v3"
)

// Schedule 五段 cron 表达式 + 时区
type Schedule struct {
	expr     string
	location *time.Location
	spec     cron.Schedule
}

// ParseSchedule 解析 cron 表达式，timezone 为空时使用 UTC
func ParseSchedule(expr, timezone string) (*Schedule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("cron expression is required")
	}
	location := time.UTC
	if tz := strings.TrimSpace(timezone); tz != "" {
		loaded, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", tz, err)
		}
		location = loaded
	}
	spec, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse cron %q: %w", expr, err)
	}
	return &Schedule{expr: expr, location: location, spec: spec}, nil
}

// Next 返回严格晚于 after 的下一个触发时间（位于配置时区）
func (s *Schedule) Next(after time.Time) time.Time {
	return s.spec.Next(after.In(s.location))
}

// Expr 原始 cron 表达式
func (s *Schedule) Expr() string {
	return s.expr
}

// Location 调度所用时区
func (s *Schedule) Location() *time.Location {
	return s.location
}
