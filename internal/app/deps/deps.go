package deps

import (
	"context"
	"fmt"
	"formcaptcha/internal/config"
	"formcaptcha/internal/core/domain/captcha"
	"formcaptcha/internal/core/domain/form"
	dl "formcaptcha/internal/core/domain/logging"
	drl "formcaptcha/internal/core/domain/rate_limiter"
	"formcaptcha/internal/core/domain/session"
	validatecaptcha "formcaptcha/internal/core/services/validate_captcha"
	dbform "formcaptcha/internal/db/form"
	calculatingcaptcha "formcaptcha/internal/implementations/calculating_captcha"
	"formcaptcha/internal/implementations/logging"
	ratelimiter "formcaptcha/internal/implementations/rate_limiter"
	sessionid "formcaptcha/internal/implementations/session"
	sessioncaptcha "formcaptcha/internal/implementations/session_captcha"
	sessionstore "formcaptcha/internal/implementations/session_store"
	"formcaptcha/internal/rabbitmq"
	mailpublisher "formcaptcha/internal/rabbitmq/publishers/mail_publisher"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	FormRepository form.Repository
	MailPublisher  form.MailPublisher

	SessionStore       session.Store
	SessionIDGenerator session.IDGenerator

	RateLimiter drl.RateLimiter

	CalculatingCaptcha *calculatingcaptcha.Service
	ChallengeIssuer    captcha.ChallengeIssuer
	CaptchaVerifier    captcha.Verifier
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.FormRepository = dbform.NewPgxFormRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.SessionStore = sessionstore.NewRedis(deps.Redis, deps.Config.SessionTTL)
	deps.SessionIDGenerator = sessionid.NewUUID()

	deps.CalculatingCaptcha = calculatingcaptcha.New(deps.Logger, deps.SessionStore, calculatingcaptcha.NewDriver())
	deps.ChallengeIssuer = deps.initChallengeIssuer()
	deps.CaptchaVerifier = deps.initCaptchaVerifier()

	closeMailPublisher := deps.initRabbitmqMailPublisher()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeMailPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not parse Redis URL.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initRabbitmqMailPublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.DeclareQueue(deps.Config.RabbitmqMailQueue); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	deps.MailPublisher = mailpublisher.NewRabbitMQ(deps.Logger, rabbitmqChannel, "", deps.Config.RabbitmqMailQueue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down mail publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Mail publisher shut down.")
	}
}

func (deps *Deps) initChallengeIssuer() captcha.ChallengeIssuer {
	if deps.Config.CaptchaMode == captcha.SimpleSession {
		return sessioncaptcha.New(deps.SessionStore, sessioncaptcha.NewDriver())
	}
	return deps.CalculatingCaptcha
}

func (deps *Deps) initCaptchaVerifier() captcha.Verifier {
	if deps.Config.IsTestMode {
		return validatecaptcha.NewAllowAlwaysVerifier()
	}
	return validatecaptcha.NewVerifier(
		deps.Logger,
		deps.Config.CaptchaMode,
		deps.SessionStore,
		deps.CalculatingCaptcha,
	)
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
