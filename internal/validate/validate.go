package validate

import (
	"regexp"
	"strings"
)

var (
	reShop  = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)
	reGID   = regexp.MustCompile(`^gid://shopify/Product/[0-9]+$`)
	reVarID = regexp.MustCompile(`^gid://shopify/ProductVariant/[0-9]+$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'&.\-]{1,80}$`)
	reColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)
)

// Shop validates a storefront domain; all data is partitioned by it.
func Shop(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reShop.MatchString(s)
}

// ProductID validates a catalog product gid.
func ProductID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reGID.MatchString(s)
}

// VariantID validates a catalog variant gid.
func VariantID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reVarID.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 80 {
		s = s[:80]
	}
	return s, reQ.MatchString(s)
}

// Color validates a hex button color; empty is allowed (theme default).
func Color(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reColor.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, rePhone.MatchString(s)
}

// Name validates a displayable customer name; empty is allowed.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 60 {
		return "", false
	}
	return s, true
}

// ProductIDs filters a comma-delimited id list down to well-formed gids.
// Malformed entries are dropped, not rejected.
func ProductIDs(csv string) []string {
	var out []string
	for _, raw := range strings.Split(csv, ",") {
		if id, ok := ProductID(raw); ok {
			out = append(out, id)
		}
	}
	return out
}
