package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/portfolio-go/internal/ratelimit"
	"go.uber.org/zap"
)

// KeyFunc derives the rate limit identifier for a request.
type KeyFunc func(ctx huma.Context) string

// FixedKey returns a KeyFunc with a constant identifier: every caller of
// the wrapped endpoints draws from one shared budget for the named action.
func FixedKey(action string) KeyFunc {
	return func(_ huma.Context) string {
		return action
	}
}

// ClientKey returns a KeyFunc that buckets requests per client, keyed on
// a hash of client IP and User-Agent.
func ClientKey() KeyFunc {
	return func(ctx huma.Context) string {
		ip := clientIP(ctx)
		ua := ctx.Header("User-Agent")

		hash := sha256.Sum256([]byte(ip + "|" + ua))

		return hex.EncodeToString(hash[:])
	}
}

// rateLimitedBody is the JSON body of a 429 response.
type rateLimitedBody struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
}

// RateLimit returns a Huma middleware that gates requests through the
// limiter before the handler runs. Admitted requests proceed with
// X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset headers
// set; rejected ones get a 429 with a retryAfter hint and the handler is
// never invoked. The limiter itself fails open, so the handler never sees
// a limiter-induced error.
//
// keyFn picks the default identifier (per-client or fixed); individual
// operations can override it with a fixed action budget, or opt out
// entirely, through ratelimit.EndpointConfig metadata.
func RateLimit(limiter ratelimit.Limiter, keyFn KeyFunc, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		identifier := keyFn(ctx)

		if cfg := ratelimit.GetEndpointConfig(ctx); cfg != nil {
			if cfg.Disabled {
				next(ctx)

				return
			}

			if cfg.Action != "" {
				identifier = cfg.Action
			}
		}

		result := limiter.Check(ctx.Context(), identifier)

		if !result.Allowed {
			logger.Warn("rate limit exceeded",
				zap.String("method", ctx.Method()),
				zap.String("client_ip", clientIP(ctx)),
				zap.Time("reset_at", result.ResetAt),
			)

			writeRateLimited(ctx, result)

			return
		}

		limit := limiter.Config().MaxRequests
		ctx.SetHeader("X-RateLimit-Limit", strconv.Itoa(limit))
		ctx.SetHeader("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		ctx.SetHeader("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.UnixMilli(), 10))

		next(ctx)
	}
}

func writeRateLimited(ctx huma.Context, result ratelimit.Result) {
	retryAfter := int(math.Ceil(time.Until(result.ResetAt).Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}

	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(http.StatusTooManyRequests)

	_ = json.NewEncoder(ctx.BodyWriter()).Encode(rateLimitedBody{
		Error:      "Too many requests",
		RetryAfter: retryAfter,
	})
}

// clientIP extracts the client IP from the request, considering proxies.
func clientIP(ctx huma.Context) string {
	// X-Forwarded-For may contain multiple IPs; the first is the client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return ip
}
