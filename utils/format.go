package utils

import (
	"strconv"
	"strings"

	"github.com/D6nnisAd/Celeste-Emerald/models"
)

// GroupThousands renders n with comma group separators for the stat cards.
func GroupThousands(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ShortVisitorID abbreviates a visitor token for the recent-events table.
func ShortVisitorID(visitorID string) string {
	if len(visitorID) <= 8 {
		return visitorID
	}
	return visitorID[:8] + "..."
}

// TruncateReferrer bounds a referrer string for table display.
func TruncateReferrer(referrer string, max int) string {
	if max <= 0 || len(referrer) <= max {
		return referrer
	}
	return referrer[:max] + "..."
}

// PageLabel picks the human label for an event row: the recorded page type
// when present, otherwise a fallback classification from the page title.
func PageLabel(event *models.VisitEvent) string {
	if event.PageType != "" {
		return event.PageType
	}
	title := strings.ToLower(event.PageName)
	switch {
	case strings.Contains(title, "register"):
		return models.PageTypeRegister
	case strings.Contains(title, "package"), strings.Contains(title, "payment"):
		return models.PageTypeCheckout
	case strings.Contains(title, "home"):
		return models.PageTypeHome
	default:
		return models.PageTypeOther
	}
}
