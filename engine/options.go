package engine

import "log/slog"

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sends search diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.log = l.With("package", "engine")
		}
	}
}

// WithTieBreak shuffles equally valued moves with a generator seeded by seed.
func WithTieBreak(seed int64) Option {
	return WithOrdering(NewShuffledCaptureOrder(seed))
}

// WithOrdering replaces the move ordering policy.
func WithOrdering(o Orderer) Option {
	return func(s *Searcher) {
		if o != nil {
			s.order = o
		}
	}
}
