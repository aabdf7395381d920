package collection

import (
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/logging"
)

type options struct {
	clock    clockwork.Clock
	newID    func() string
	log      logging.Logger
	codec    any
	defaults any
}

type Option func(*options)

func WithClock(c clockwork.Clock) Option { return func(o *options) { o.clock = c } }

// WithIDGenerator replaces the UUIDv4 generator.
func WithIDGenerator(fn func() string) Option { return func(o *options) { o.newID = fn } }

func WithLogger(l logging.Logger) Option { return func(o *options) { o.log = l } }

// WithCodec replaces JSONCodec. The codec's element type must match the
// store's.
func WithCodec[T any](c codec.Codec[T]) Option { return func(o *options) { o.codec = c } }

// WithDefaults supplies the collection used when nothing valid is stored.
func WithDefaults[T any](fn func() []T) Option { return func(o *options) { o.defaults = fn } }

func buildOptions(opts []Option) options {
	o := options{
		clock: clockwork.NewRealClock(),
		newID: uuid.NewString,
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
