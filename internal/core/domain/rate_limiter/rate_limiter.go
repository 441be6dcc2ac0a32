package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrRateLimitExceeded = errors.New("too many requests from this client")

// Interval is the length of a fixed rate limiting window.
type Interval struct {
	name   string
	length time.Duration
}

var (
	Minute = Interval{name: "minute", length: time.Minute}
	Hour   = Interval{name: "hour", length: time.Hour}
)

func (i Interval) Duration() time.Duration {
	return i.length
}

func (i Interval) String() string {
	return i.name
}

type Limit struct {
	Value    uint16
	Interval Interval
}

func PerMinute(value uint16) Limit {
	return Limit{Value: value, Interval: Minute}
}

func PerHour(value uint16) Limit {
	return Limit{Value: value, Interval: Hour}
}

func (l Limit) String() string {
	return fmt.Sprintf("%d per %s", l.Value, l.Interval)
}

type Result struct {
	IsAllowed bool
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed() Result {
	return Result{IsAllowed: false}
}

// RateLimiter counts calls per key, the key identifies the client.
type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}
