// internal/model/dashboard.go
package model

// StepLink は現在の領域に対するステップ画面へのリンク
type StepLink struct {
	Step  Step   `json:"step"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// AreaEntry はナビゲーション (サイドバー) 用の領域一覧の1件
type AreaEntry struct {
	*LifeArea
	Current bool `json:"current"`
}

// DashboardView はダッシュボード / デイリーモードのレスポンスDTO
type DashboardView struct {
	Progress ProgressView   `json:"progress"`
	Area     *LifeArea      `json:"area"`
	Areas    []AreaEntry    `json:"areas"`
	Date     string         `json:"date"`
	Actions  []*DailyAction `json:"actions"`
	Counter  DailyProgress  `json:"counter"`
	Steps    []StepLink     `json:"steps"`
}

// OnboardingView はオンボーディング画面のレスポンスDTO (sort_order 順のカタログ)
type OnboardingView struct {
	Progress ProgressView `json:"progress"`
	Areas    []*LifeArea  `json:"areas"`
}
