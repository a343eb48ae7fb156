package browser

import (
	"fmt"

	"github.com/gobwas/glob"
)

// URLGuard restricts navigation to a set of glob patterns.
type URLGuard struct {
	patterns []glob.Glob
	raw      []string
}

// NewURLGuard compiles the allowed patterns. An empty list allows every URL.
func NewURLGuard(patterns []string) (*URLGuard, error) {
	g := &URLGuard{}
	for _, pattern := range patterns {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed URL pattern '%s': %w", pattern, err)
		}
		g.patterns = append(g.patterns, compiled)
		g.raw = append(g.raw, pattern)
	}
	return g, nil
}

// Allows reports whether url matches any allowed pattern.
func (g *URLGuard) Allows(url string) bool {
	if g == nil || len(g.patterns) == 0 {
		return true
	}
	for _, pattern := range g.patterns {
		if pattern.Match(url) {
			return true
		}
	}
	return false
}

// Check returns ErrNavigationBlocked when url is not allowed.
func (g *URLGuard) Check(url string) error {
	if g.Allows(url) {
		return nil
	}
	return fmt.Errorf("%w: %s does not match %v", ErrNavigationBlocked, url, g.raw)
}
