package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// Config 定義 SQLite 連線配置
type Config struct {
	// 資料庫檔案路徑；":memory:" 為純記憶體資料庫（測試用）
	Path string `yaml:"path"`

	// 寫入遇到鎖定時的等待上限
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// GORM 設定
	LogLevel string `yaml:"log_level"` // Log 等級: "silent", "error", "warn", "info"
}

// DSN (Data Source Name) 產生連線字串
// 格式: path?_busy_timeout=5000
func (c *Config) DSN() string {
	sep := "?"
	if strings.Contains(c.Path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d",
		c.Path,
		sep,
		c.BusyTimeout.Milliseconds(),
	)
}
