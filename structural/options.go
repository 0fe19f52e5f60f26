package structural

import (
	"deepgraph/descriptor"
	"deepgraph/options"
)

type settings struct {
	cfg   options.Hash
	cache *descriptor.Cache
}

// Option configures Equals and HashCode. Seed and multiplier only affect hashing.
type Option func(*settings)

func newSettings(opts []Option) settings {
	s := settings{cfg: options.DefaultHash(), cache: descriptor.Default()}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// WithEqualsConfig replaces the knobs shared by equality and hashing.
func WithEqualsConfig(cfg options.Equals) Option {
	return func(s *settings) {
		s.cfg.Reflect = cfg.Reflect
	}
}

// WithHashConfig replaces the whole hashing configuration.
func WithHashConfig(cfg options.Hash) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithDeepReflect examines referenced values without Equal or HashCode by
// structure instead of by identity.
func WithDeepReflect(on bool) Option {
	return func(s *settings) {
		s.cfg.DeepReflect = on
	}
}

// WithTestTransients includes transient fields.
func WithTestTransients(on bool) Option {
	return func(s *settings) {
		s.cfg.TestTransients = on
	}
}

// WithExcludeFields skips the named fields at every level.
func WithExcludeFields(names ...string) Option {
	return func(s *settings) {
		s.cfg.ExcludeFields = append(s.cfg.ExcludeFields, names...)
	}
}

// WithSeed sets the initial total and the multiplier of the hash.
func WithSeed(seed, multiplier int32) Option {
	return func(s *settings) {
		s.cfg.Seed = seed
		s.cfg.Multiplier = multiplier
	}
}

// WithCache sets the descriptor cache.
func WithCache(c *descriptor.Cache) Option {
	return func(s *settings) {
		s.cache = c
	}
}
