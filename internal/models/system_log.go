package models

import "time"

// SystemLog 系统审计日志（同步运行记录等），仅用于审计
type SystemLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`                         // 主键
	Level     string    `gorm:"type:varchar(10);not null;index" json:"level"` // 级别（INFO/WARN/ERROR）
	Message   string    `gorm:"type:text;not null" json:"message"`            // 消息
	Context   string    `gorm:"type:varchar(64);index" json:"context"`        // 来源
	Metadata  JSON      `gorm:"type:json" json:"metadata"`                    // 附加数据
	CreatedAt time.Time `gorm:"index" json:"created_at"`                      // 创建时间
}

// TableName 指定表名
func (SystemLog) TableName() string {
	return "system_logs"
}
