package model

// HistoryEntry 复制历史记录
type HistoryEntry struct {
	Command   string    `json:"command"`
	OLTModel  string    `json:"olt_model"`
	Category  string    `json:"category"`
	Timestamp Timestamp `json:"timestamp"`
}

// Favorite 收藏命令
// Command 保存未替换的模板，Params 为收藏时已填写的参数
type Favorite struct {
	ID       string            `json:"id,omitempty"`
	Name     string            `json:"name"`
	Command  string            `json:"command"`
	OLTModel string            `json:"olt_model"`
	Category string            `json:"category"`
	Params   map[string]string `json:"params"`
	AddedOn  Timestamp         `json:"added_on"`
}
