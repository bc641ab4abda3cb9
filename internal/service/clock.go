package service

import "time"

// Clock は現在時刻の取得元
type Clock func() time.Time

// Options はサービス共通の差し替え可能な依存
type Options struct {
	Now    Clock
	Random RandomSource
}

type Option func(*Options)

func WithClock(now Clock) Option {
	return func(o *Options) { o.Now = now }
}

func WithRandom(r RandomSource) Option {
	return func(o *Options) { o.Random = r }
}

func newOptions(opts []Option) Options {
	o := Options{Now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Random == nil {
		o.Random = NewTimeSeededRandom()
	}
	return o
}
