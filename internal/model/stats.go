package model

type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalFiles    int64 `json:"totalFiles"`
	TotalAdmins   int64 `json:"totalAdmins"`
	TodayActivity int64 `json:"todayActivity"`
}

type UserStats struct {
	FilesCount int64  `json:"filesCount"`
	ViewsCount int64  `json:"viewsCount"`
	LastLogin  string `json:"lastLogin"`
}
