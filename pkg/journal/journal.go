package journal

import (
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"sync"
)

// rw-r--r-- (擁有者讀寫，其他人唯讀)
const fileModeReadOnly fs.FileMode = 0644

// Journal 是 append-only 的 CSV 紀錄檔
// 每筆 Append 都會 fsync，程序中斷也不會留下半筆紀錄之後的已確認資料遺失
type Journal struct {
	file *os.File
	w    *csv.Writer
	mu   sync.Mutex
}

// Open 開啟或建立一個 Journal 檔案
// O_RDWR 讀寫模式
// O_APPEND 每次寫入時自動跳到文件末尾
// O_CREATE 如果文件不存在則建立
func Open(path string) (*Journal, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, fileModeReadOnly)
	if err != nil {
		return nil, err
	}
	return &Journal{
		file: file,
		w:    csv.NewWriter(file),
	}, nil
}

// Append 寫入一筆紀錄並刷入硬碟
func (j *Journal) Append(record []string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.w.Write(record); err != nil {
		return err
	}
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.file.Sync()
}

// ReadAll 從頭讀取所有紀錄
// callback 逐筆接收，避免一次將所有資料載入記憶體
func (j *Journal) ReadAll(callback func(record []string) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	// 確保從頭讀取
	if _, err := j.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	r := csv.NewReader(j.file)
	// 各 action 的欄位數不同，交由呼叫端自行檢查
	r.FieldsPerRecord = -1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := callback(record); err != nil {
			return err
		}
	}
	return nil
}

// Close 關閉檔案
func (j *Journal) Close() error {
	return j.file.Close()
}
