package mid

import (
	"context"
	"net/http"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/web"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests once the limiter runs out of tokens. Every
// accepted write request mines a block, so this bounds the mining work
// clients can queue up.
func RateLimit(limiter *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !limiter.Allow() {
				metrics.limited.Add(1)
				return errs.NewTrustedf(http.StatusTooManyRequests, "rate limit exceeded, try again later")
			}

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
