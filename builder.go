package sessionkit

import (
	"time"

	"go.uber.org/zap"

	"github.com/novexa/sessionkit/credstore"
	"github.com/novexa/sessionkit/notify"
)

// Builder assembles a [Store]. Configure it once during initialization; a
// Builder cannot be reused after Build.
type Builder struct {
	config   Config
	api      API
	creds    credstore.Store
	notifier *notify.Center
	logger   *zap.Logger

	built bool
}

// New starts a Builder with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the default configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithAPI sets the platform API client. Required.
func (b *Builder) WithAPI(api API) *Builder {
	b.api = api
	return b
}

// WithCredentialStore sets the durable token persistence adapter. Required.
func (b *Builder) WithCredentialStore(store credstore.Store) *Builder {
	b.creds = store
	return b
}

// WithNotifier sets the toast channel. Defaults to a fresh notify.Center
// using the configured toast duration.
func (b *Builder) WithNotifier(center *notify.Center) *Builder {
	b.notifier = center
	return b
}

// WithLogger sets the diagnostic logger. Defaults to a no-op logger; log
// output is never user-facing.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// Build validates the configuration and wiring and returns a Store in the
// bootstrapping state. No I/O happens here.
func (b *Builder) Build() (*Store, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	b.built = true

	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if b.api == nil {
		return nil, ErrAPIRequired
	}
	if b.creds == nil {
		return nil, ErrCredentialStoreRequired
	}

	notifier := b.notifier
	if notifier == nil {
		notifier = notify.NewCenter(b.config.Toast.DefaultDuration)
	}
	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		config:   b.config,
		api:      b.api,
		creds:    b.creds,
		notifier: notifier,
		logger:   logger,
		metrics:  NewMetrics(),
		now:      time.Now,
		loading:  true,
	}, nil
}
