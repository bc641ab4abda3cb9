// internal/model/kv.go
package model

import "time"

// KVEntry はキーバリューストアの1行 (進捗カウンタ、試験の下書きなど)
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
