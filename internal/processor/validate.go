package processor

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	ErrMissingURL = errors.New("product URL is required")
	ErrInvalidURL = errors.New("product URL is not a marketplace listing")
)

// ValidateURL trims raw and checks that it is an absolute URL whose host
// belongs to the marketplace.
func ValidateURL(raw, marketplaceHost string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMissingURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	if !strings.Contains(strings.ToLower(u.Hostname()), strings.ToLower(marketplaceHost)) {
		return "", fmt.Errorf("%w: host %q is not %s", ErrInvalidURL, u.Hostname(), marketplaceHost)
	}
	return raw, nil
}

// ParseBudget keeps only the digits of a free-form amount such as
// "Rp 2.500.000". It returns nil when no digits remain.
func ParseBudget(raw string) *float64 {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &v
}
