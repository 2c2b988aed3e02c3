package model

// Notification 站内通知
type Notification struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (n Notification) GetID() string { return n.ID }

// DashboardStats GET /stats/dashboard 原始统计，键随角色变化
type DashboardStats map[string]float64

// Get 缺失的键按 0 处理
func (s DashboardStats) Get(key string) float64 {
	return s[key]
}
