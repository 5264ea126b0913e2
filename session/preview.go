package session

import (
	lru "github.com/hashicorp/golang-lru"
)

// Previewer memoizes Preview. A keypad re-previews the whole display on
// every key, and backspacing revisits displays it has already seen. It is
// safe for concurrent use.
type Previewer struct {
	cache *lru.Cache
}

type previewKey struct {
	display  string
	angle    int8
	prec     uint
	limit    int
	trailing string
}

// NewPreviewer creates a Previewer remembering up to size previews.
func NewPreviewer(size int) (*Previewer, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Previewer{cache: c}, nil
}

// Preview is Preview(s, cfg), from the cache when possible.
func (p *Previewer) Preview(s State, cfg Config) string {
	k := previewKey{
		display:  s.Display,
		angle:    int8(cfg.Angle),
		prec:     cfg.Prec,
		limit:    cfg.DigitLimit,
		trailing: cfg.Trailing,
	}
	if v, ok := p.cache.Get(k); ok {
		return v.(string)
	}
	r := Preview(s, cfg)
	p.cache.Add(k, r)
	return r
}

// Screen is Screen(s, cfg) using the cached preview.
func (p *Previewer) Screen(s State, cfg Config) (input, result string) {
	return screen(s, cfg, p.Preview(s, cfg))
}

// Len returns the number of cached previews.
func (p *Previewer) Len() int {
	return p.cache.Len()
}
