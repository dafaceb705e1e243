package telegram

import (
	"time"

	coreconfig "github.com/BerikbaiNurai/Lost-Found/core/config"
	"github.com/BerikbaiNurai/Lost-Found/core/telegram/middleware"
)

// DefaultMiddlewares returns the standard global middleware chain:
// panic recovery, optional per-user rate limiting and update logging.
func DefaultMiddlewares(cfg *coreconfig.Config) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
	}

	if cfg != nil && cfg.RateLimit.IntervalMS > 0 {
		exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, v := range cfg.RateLimit.ExcludeUpdates {
			exclude[v] = struct{}{}
		}
		mws = append(mws, Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
				Exclude:  exclude,
			}),
		})
	}

	mws = append(mws,
		Middleware{Name: "logger", Use: middleware.LoggerMiddleware},
		Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	)
	return mws
}
