// Package navigation はルート定義と、進捗状態に基づくルーティング判定を提供します。
package navigation

import (
	"path"
	"strings"

	"go_5s_keep/internal/model"
)

// Route は API プレフィックスを除いたパス
type Route string

const (
	RouteRoot       Route = "/"
	RouteOnboarding Route = "/onboarding"
	RouteDashboard  Route = "/dashboard"
	RouteDaily      Route = "/daily"
	RouteReview     Route = "/review"
	RouteAreas      Route = "/areas"
)

// protectedPrefixes はオンボーディング完了が必要なルート
var protectedPrefixes = []Route{
	RouteDashboard,
	RouteDaily,
	RouteReview,
	"/progress/area",
	"/progress/step",
}

// Trim はリクエストパスから API プレフィックスを取り除き、正規化します
func Trim(prefix, p string) string {
	p = strings.TrimPrefix(p, strings.TrimSuffix(prefix, "/"))
	if p == "" {
		return string(RouteRoot)
	}
	return path.Clean("/" + p)
}

// IsProtected はパスが進捗状態で保護されるかどうか
// /areas (カタログ) は公開、/areas/{slug}/{step} は保護
func IsProtected(p string) bool {
	p = path.Clean("/" + p)
	for _, r := range protectedPrefixes {
		if p == string(r) || strings.HasPrefix(p, string(r)+"/") {
			return true
		}
	}
	if rest, ok := strings.CutPrefix(p, string(RouteAreas)+"/"); ok {
		parts := strings.Split(rest, "/")
		return len(parts) >= 2 && model.Step(parts[1]).Valid()
	}
	return false
}

// Resolve は状態とリクエストされたパスから表示すべきルートを決めます。
// オンボーディング未完了の場合、保護されたルートはすべてオンボーディングになります。
// ルートはオンボーディング状態に応じてオンボーディングかダッシュボードへ振り分けます。
func Resolve(state model.ProgressState, p string) Route {
	p = path.Clean("/" + p)
	switch {
	case p == string(RouteOnboarding):
		return RouteOnboarding
	case p == string(RouteRoot):
		if state.NeedsOnboarding() {
			return RouteOnboarding
		}
		return RouteDashboard
	case IsProtected(p) && state.NeedsOnboarding():
		return RouteOnboarding
	}
	return Route(p)
}

// StepPath は領域スラッグとステップからステップ画面のパスを作ります
func StepPath(slug string, step model.Step) string {
	return string(RouteAreas) + "/" + slug + "/" + string(step)
}

// StepLinks は領域のS1〜S5へのリンクを返します。領域が不明な場合は nil
func StepLinks(area *model.LifeArea) []model.StepLink {
	if area == nil {
		return nil
	}
	links := make([]model.StepLink, 0, len(model.Steps))
	for _, st := range model.Steps {
		links = append(links, model.StepLink{
			Step:  st,
			Title: st.Title(),
			Path:  StepPath(area.Name, st),
		})
	}
	return links
}

// AreaEntries はサイドバー用に現在の領域へ印を付けた一覧を返します
func AreaEntries(areas []*model.LifeArea, current *model.LifeArea) []model.AreaEntry {
	entries := make([]model.AreaEntry, 0, len(areas))
	for _, a := range areas {
		entries = append(entries, model.AreaEntry{
			LifeArea: a,
			Current:  current != nil && a.ID == current.ID,
		})
	}
	return entries
}
