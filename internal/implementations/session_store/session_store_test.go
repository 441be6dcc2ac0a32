package sessionstore

import (
	"context"
	"formcaptcha/internal/core/domain/session"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/suite"
)

const SESSION_ID = session.ID("test-session-store")

type testSuite struct {
	suite.Suite
	client *redis.Client
	store  *Redis
}

func (suite *testSuite) SetupSuite() {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		suite.T().Skip("TEST_REDIS_URL is not set.")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		suite.FailNow(err.Error())
	}
	suite.client = redis.NewClient(opt)
	suite.store = NewRedis(suite.client, time.Minute)
}

func (suite *testSuite) TearDownTest() {
	suite.client.Del(context.Background(), sessionKey(SESSION_ID))
}

func (suite *testSuite) TearDownSuite() {
	if suite.client != nil {
		suite.client.Close()
	}
}

func TestRedisSessionStore(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestGetMissingSlot() {
	value, err := s.store.Get(context.Background(), SESSION_ID, "captcha_string")

	assert := s.Require()
	assert.Nil(err)
	assert.Equal("", value)
}

func (s *testSuite) TestSetAndGet() {
	ctx := context.Background()

	assert := s.Require()
	assert.Nil(s.store.Set(ctx, SESSION_ID, "captcha_string", "AB12"))
	value, err := s.store.Get(ctx, SESSION_ID, "captcha_string")
	assert.Nil(err)
	assert.Equal("AB12", value)

	ttl, err := s.client.TTL(ctx, sessionKey(SESSION_ID)).Result()
	assert.Nil(err)
	assert.True(ttl > 0 && ttl <= time.Minute)

	assert.Nil(s.store.Set(ctx, SESSION_ID, "captcha_string", ""))
	value, err = s.store.Get(ctx, SESSION_ID, "captcha_string")
	assert.Nil(err)
	assert.Equal("", value)
}

func (s *testSuite) TestEmptySessionID() {
	_, err := s.store.Get(context.Background(), session.ID(""), "captcha_string")
	s.Require().ErrorIs(err, session.ErrInvalidSessionID)

	err = s.store.Set(context.Background(), session.ID(""), "captcha_string", "AB12")
	s.Require().ErrorIs(err, session.ErrInvalidSessionID)
}
