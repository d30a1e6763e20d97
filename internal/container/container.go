package container

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/portfolio-go/internal/handlers"
	"github.com/serroba/portfolio-go/internal/health"
	"github.com/serroba/portfolio-go/internal/messaging"
	"github.com/serroba/portfolio-go/internal/middleware"
	"github.com/serroba/portfolio-go/internal/notify"
	"github.com/serroba/portfolio-go/internal/portfolio"
	"github.com/serroba/portfolio-go/internal/ratelimit"
	"github.com/serroba/portfolio-go/internal/store"
	"go.uber.org/zap"
)

// Environment variables for the rate limit window store. Their absence is
// supported: the limiter then runs fail-open instead of refusing to start.
const (
	envRateLimitRedisURL   = "RATE_LIMIT_REDIS_URL"
	envRateLimitRedisToken = "RATE_LIMIT_REDIS_TOKEN"
)

const unsubscribeTokenLength = 21

type Options struct {
	Port            int    `default:"8888"                  help:"Port to listen on"                                        short:"p"`
	BaseURL         string `default:"http://localhost:8888" help:"Public base URL used in unsubscribe links"`
	RedisAddr       string `default:"localhost:6379"        help:"Redis server address (messaging, health)"                 short:"r"`
	PostgresDSN     string `default:""                      help:"Postgres connection string; empty uses in-memory stores"`
	OwnerEmail      string `default:"owner@localhost"       help:"Address receiving contact form notifications"`
	LogFormat       string `default:"console"               enum:"console,json"                                             help:"Log format"`
	RateLimitMax    int    `default:"10"                    help:"Requests admitted per rate limit window"`
	RateLimitWindow int    `default:"60"                    help:"Rate limit window in seconds"`
}

// Repositories bundles the portfolio storage interfaces so providers can
// swap the backing store in one place.
type Repositories struct {
	Projects    portfolio.ProjectRepository
	Posts       portfolio.PostRepository
	Subscribers portfolio.SubscriberRepository
	Contact     portfolio.ContactRepository
}

// LoggerPackage provides the application logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client used for messaging and
// health checks.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: opts.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the pgx pool when a DSN is configured.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres not configured")
		}

		return pgxpool.New(context.Background(), opts.PostgresDSN)
	})
}

// RepositoryPackage provides the portfolio repositories, Postgres-backed
// when a DSN is configured and in-memory otherwise.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (Repositories, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.PostgresDSN == "" {
			mem := store.NewMemoryStore()

			return Repositories{
				Projects:    mem,
				Posts:       mem,
				Subscribers: mem,
				Contact:     mem,
			}, nil
		}

		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return Repositories{}, err
		}

		pg := store.NewPostgresStore(pool)

		return Repositories{
			Projects:    pg,
			Posts:       pg,
			Subscribers: pg,
			Contact:     pg,
		}, nil
	})
}

// RateLimitPackage provides the sliding window limiter protecting public
// endpoints. The window store is built from environment-provided
// connection parameters; when they are missing or invalid the limiter is
// still provided, permanently fail-open.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.SlidingWindowLimiter, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		cfg := ratelimit.Config{
			MaxRequests: opts.RateLimitMax,
			Window:      time.Duration(opts.RateLimitWindow) * time.Second,
			KeyPrefix:   "ratelimit:api:",
		}

		return ratelimit.NewSlidingWindowLimiter(cfg, newWindowStore(logger), logger), nil
	})
}

// newWindowStore builds the Redis window store from the environment, or
// returns nil when the store cannot be configured.
func newWindowStore(logger *zap.Logger) ratelimit.WindowStore {
	url := os.Getenv(envRateLimitRedisURL)
	token := os.Getenv(envRateLimitRedisToken)

	if url == "" || token == "" {
		logger.Warn("rate limit store credentials missing",
			zap.Bool("url_set", url != ""),
			zap.Bool("token_set", token != ""),
		)

		return nil
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid rate limit store URL", zap.Error(err))

		return nil
	}

	redisOpts.Password = token

	return store.NewRedisWindowStore(redis.NewClient(redisOpts))
}

// PublisherPackage provides the watermill publisher group over Redis streams.
func PublisherPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// MailerPackage provides the outbound mailer. Actual delivery is an
// external collaborator; the default implementation only logs.
func MailerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (notify.Mailer, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		return notify.NewLogMailer(logger), nil
	})
}

// ConsumerGroupPackage provides the worker-side consumer group that turns
// contact and newsletter events into email.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		client := do.MustInvoke[*redis.Client](i)
		repos := do.MustInvoke[Repositories](i)
		mailer := do.MustInvoke[notify.Mailer](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "portfolio-worker",
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		dispatcher := notify.NewDispatcher(repos.Subscribers, mailer, opts.OwnerEmail, opts.BaseURL, logger)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, notify.TopicContactMessage, dispatcher.HandleContactMessage, logger))
		group.Add(messaging.NewConsumer(subscriber, notify.TopicNewsletterIssue, dispatcher.HandleNewsletterIssue, logger))

		return group, nil
	})
}

// HTTPPackage provides the router and API with all routes and middleware
// registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		repos := do.MustInvoke[Repositories](i)
		limiter := do.MustInvoke[*ratelimit.SlidingWindowLimiter](i)
		publishers := do.MustInvoke[*messaging.PublisherGroup](i)
		redisClient := do.MustInvoke[*redis.Client](i)

		api := humachi.New(router, huma.DefaultConfig("Portfolio API", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.RateLimit(limiter, middleware.ClientKey(), logger),
		)

		tokenGen, err := nanoid.Standard(unsubscribeTokenLength)
		if err != nil {
			return nil, err
		}

		publishContact := messaging.PublishFuncOf[notify.ContactMessageEvent](
			publishers, notify.TopicContactMessage)
		publishIssue := messaging.PublishFuncOf[notify.NewsletterIssueEvent](
			publishers, notify.TopicNewsletterIssue)

		handlers.RegisterRoutes(api,
			handlers.NewProjectsHandler(repos.Projects),
			handlers.NewPostsHandler(repos.Posts),
			handlers.NewContactHandler(repos.Contact, publishContact, logger),
			handlers.NewNewsletterHandler(repos.Subscribers, tokenGen, publishIssue, logger),
		)

		var pgChecker health.Checker
		if pool, err := do.Invoke[*pgxpool.Pool](i); err == nil {
			pgChecker = health.NewPostgresChecker(pool)
		}

		health.RegisterRoutes(api, health.NewHandler(health.NewRedisChecker(redisClient), pgChecker))

		return api, nil
	})
}
