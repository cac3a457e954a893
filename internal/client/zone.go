package client

import (
	"os"
	"strings"
	"time"
)

// zoneName は loc の IANA 名を返します。求められない場合は空文字。
// time.Local は名前が "Local" なので $TZ か /etc/localtime のリンク先から求める
func zoneName(loc *time.Location) string {
	if loc == nil {
		return ""
	}
	if loc != time.Local && loc.String() != "Local" {
		return loc.String()
	}
	return localZoneName(os.Getenv, os.Readlink)
}

func localZoneName(getenv func(string) string, readlink func(string) (string, error)) string {
	candidates := []string{getenv("TZ")}
	if target, err := readlink("/etc/localtime"); err == nil {
		candidates = append(candidates, target)
	}
	for _, c := range candidates {
		name := strings.TrimPrefix(strings.TrimSpace(c), ":")
		if i := strings.LastIndex(name, "zoneinfo/"); i >= 0 {
			name = name[i+len("zoneinfo/"):]
		}
		if name == "" || name == "Local" || strings.HasPrefix(name, "/") {
			continue
		}
		if _, err := time.LoadLocation(name); err == nil {
			return name
		}
	}
	return ""
}
