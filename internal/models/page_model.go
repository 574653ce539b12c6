package models

import (
	"fmt"
	"strings"
)

type Page struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	FollowerCount int    `json:"follower_count"`
}

// Followers renders FollowerCount the way page pickers show it, e.g. 15.2K.
func (p Page) Followers() string {
	switch {
	case p.FollowerCount >= 1_000_000:
		return compact(float64(p.FollowerCount)/1_000_000) + "M"
	case p.FollowerCount >= 1_000:
		return compact(float64(p.FollowerCount)/1_000) + "K"
	default:
		return fmt.Sprintf("%d", p.FollowerCount)
	}
}

func compact(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

var PageCatalog = []Page{
	{ID: "1", DisplayName: "การตลาด บี.เค. หลัก", FollowerCount: 15200},
	{ID: "2", DisplayName: "BK Marketing Solutions", FollowerCount: 8700},
	{ID: "3", DisplayName: "บริการรับทำโฆษณา", FollowerCount: 12500},
	{ID: "4", DisplayName: "เว็บไซต์และการตลาด", FollowerCount: 6300},
}

var EmojiPalette = []string{"😊", "😍", "🎉", "🔥", "💪", "👍", "❤️", "🚀", "💼", "📈"}
