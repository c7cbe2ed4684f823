// Package tracker holds the pure page-view classification and visitor
// identity logic used by the tracking endpoint.
package tracker

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/D6nnisAd/Celeste-Emerald/models"
)

// Cookie names shared with the tracking snippet. VisitorCookie is durable
// across sessions; the dedup cookie is session-scoped (no Max-Age).
const (
	VisitorCookie   = "celeste_visitor_id"
	dedupPrefix     = "celeste_tracked_"
	ReferrerDefault = "Direct/None"
)

var botTokens = []string{"bot", "googlebot", "crawler", "spider", "robot", "crawling"}

// ClassifyPage maps a URL path to its page type by substring match.
func ClassifyPage(path string) string {
	switch {
	case strings.Contains(path, "register.html"):
		return models.PageTypeRegister
	case strings.Contains(path, "packages.html"), strings.Contains(path, "payment.html"):
		return models.PageTypeCheckout
	case strings.Contains(path, "index.html"), path == "/":
		return models.PageTypeHome
	default:
		return models.PageTypeOther
	}
}

// IsBot reports whether the user agent looks like a crawler. It is a cheap
// substring heuristic, not a real bot detector.
func IsBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, token := range botTokens {
		if strings.Contains(ua, token) {
			return true
		}
	}
	return false
}

// NewVisitorID mints a pseudo-anonymous visitor token. It is random plus
// timestamp, not guaranteed unique and never validated server-side.
func NewVisitorID() string {
	return fmt.Sprintf("vis_%s%s",
		strconv.FormatUint(rand.Uint64(), 36),
		strconv.FormatInt(time.Now().UnixMilli(), 36))
}

// DedupCookieName derives the per-page session cookie name from the path.
// Cookie names cannot contain separators, so path slashes are flattened.
func DedupCookieName(path string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, path)
	return dedupPrefix + sanitized
}

// NormalizeReferrer substitutes the direct-traffic label for empty referrers.
func NormalizeReferrer(referrer string) string {
	if referrer == "" {
		return ReferrerDefault
	}
	return referrer
}
