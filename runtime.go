package mirror

import (
	"slices"
	"sync/atomic"

	"github.com/anoideaopen/mirror/core/config"
	"github.com/anoideaopen/mirror/core/logger"
	"github.com/anoideaopen/mirror/core/resolve"
	"github.com/anoideaopen/mirror/core/telemetry"
	"github.com/anoideaopen/mirror/core/types"
	"github.com/sirupsen/logrus"
)

// runtime is the configuration every Handle operation reads.
type runtime struct {
	registry *types.Registry
	resolver *resolve.Resolver
	prefixes []string
	log      *logrus.Entry
}

var current atomic.Pointer[runtime]

func init() {
	r, err := resolve.New(types.Default, resolve.DefaultCacheSize)
	if err != nil {
		panic(err)
	}
	current.Store(&runtime{
		registry: types.Default,
		resolver: r,
		log:      logger.For("mirror"),
	})
}

func env() *runtime {
	return current.Load()
}

// Configure applies cfg: it replaces the resolver caches with ones of the
// configured size, sets the log level, keeps the search prefixes used by Find
// and installs a trace provider when a collector endpoint is set. A nil cfg
// restores the defaults.
func Configure(cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return &Error{Op: opConfigure, Err: err}
	}

	if cfg.LogLevel != "" {
		if err := logger.SetLevel(cfg.LogLevel); err != nil {
			return &Error{Op: opConfigure, Err: err}
		}
	}

	r, err := resolve.New(types.Default, cfg.CacheSize)
	if err != nil {
		return &Error{Op: opConfigure, Err: err}
	}

	if cfg.TracingEndpoint != "" {
		endpoint := &telemetry.CollectorEndpoint{
			Endpoint: cfg.TracingEndpoint,
			CACerts:  cfg.TracingCACerts,
		}
		if err = telemetry.InstallTraceProvider(endpoint, cfg.ServiceName); err != nil {
			return &Error{Op: opConfigure, Err: err}
		}
	}

	log := logger.For("mirror")
	current.Store(&runtime{
		registry: types.Default,
		resolver: r,
		prefixes: slices.Clone(cfg.SearchPrefixes),
		log:      log,
	})

	log.WithFields(logrus.Fields{
		"cache_size": cfg.CacheSize,
		"prefixes":   cfg.SearchPrefixes,
		"tracing":    cfg.TracingEndpoint != "",
	}).Info("mirror configured")

	return nil
}
