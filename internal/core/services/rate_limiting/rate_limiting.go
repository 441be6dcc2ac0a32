package ratelimiting

import (
	"context"
	e "formcaptcha/internal/core/domain/errors"
	"formcaptcha/internal/core/domain/logging"
	ratelimiter "formcaptcha/internal/core/domain/rate_limiter"
	"formcaptcha/internal/core/services"
)

// KeyedInput names the client a call is counted against.
type KeyedInput interface {
	GetRateLimitKey() string
}

type limitedService[T KeyedInput, S any] struct {
	log         logging.Logger
	rateLimiter ratelimiter.RateLimiter
	limit       ratelimiter.Limit
	inner       services.Service[T, S]
}

// WithRateLimiting rejects calls over the limit before they reach inner.
func WithRateLimiting[T KeyedInput, S any](
	log logging.Logger,
	rateLimiter ratelimiter.RateLimiter,
	limit ratelimiter.Limit,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if rateLimiter == nil {
		panic(e.NewNilArgumentError("rateLimiter"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	if limit.Value == 0 {
		panic("rate limit value must be positive")
	}
	return &limitedService[T, S]{log: log, rateLimiter: rateLimiter, limit: limit, inner: inner}
}

func (s *limitedService[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	key := input.GetRateLimitKey()
	if rate := s.rateLimiter.CheckLimit(ctx, key, s.limit); !rate.IsAllowed {
		s.log.Warning(
			ctx,
			"Request rejected by rate limit.",
			logging.Entry("key", key),
			logging.Entry("limit", s.limit.String()),
		)
		return result, ratelimiter.ErrRateLimitExceeded
	}
	return s.inner.Run(ctx, input)
}
