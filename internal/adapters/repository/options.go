package repository

// Option applies a configuration option to the TreapBoardIndex.
type Option func(*TreapBoardIndex)

// WithTopCacheSize bounds how many rows the published snapshot keeps
// for lock-free top-of-board reads.
func WithTopCacheSize(n int) Option {
	return func(s *TreapBoardIndex) {
		if n > 0 {
			s.topCacheSize = n
		}
	}
}
