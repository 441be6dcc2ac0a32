package rabbitmq

import (
	"context"
	"fmt"
	"formcaptcha/internal/core/domain/logging"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection redials the broker when the underlying connection drops.
type Connection struct {
	url  string
	log  logging.Logger
	lock sync.RWMutex
	conn *amqp.Connection
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{url: url, log: log, conn: conn}
	go connection.watch(conn)
	return connection, nil
}

func (c *Connection) watch(conn *amqp.Connection) {
	for {
		reason, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1))
		if !ok {
			c.log.Info(context.Background(), "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(context.Background(), "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))
		for {
			time.Sleep(reconnectDelay)
			newConn, err := amqp.Dial(c.url)
			if err != nil {
				c.log.Error(context.Background(), "RabbitMQ reconnect failed.", logging.Entry("err", err))
				continue
			}
			c.lock.Lock()
			c.conn = newConn
			c.lock.Unlock()
			conn = newConn
			c.log.Info(context.Background(), "RabbitMQ reconnect success.")
			break
		}
	}
}

func (c *Connection) current() *amqp.Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conn
}

func (c *Connection) Close() error {
	return c.current().Close()
}

// Channel opens a channel that is recreated after unexpected closes.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{log: c.log, ch: ch}
	go channel.watch(c, ch)
	return channel, nil
}

// DeclareQueue declares a durable queue bound to the default exchange.
func (c *Channel) DeclareQueue(name string) error {
	_, err := c.current().QueueDeclare(name, true, false, false, false, nil)
	return err
}

type Channel struct {
	log    logging.Logger
	closed int32
	lock   sync.RWMutex
	ch     *amqp.Channel
}

func (c *Channel) watch(conn *Connection, ch *amqp.Channel) {
	for {
		reason, ok := <-ch.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || c.IsClosed() {
			return
		}

		c.log.Warning(context.Background(), "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))
		for !c.IsClosed() {
			time.Sleep(reconnectDelay)
			newCh, err := conn.current().Channel()
			if err != nil {
				c.log.Error(context.Background(), "Channel recreate failed.", logging.Entry("err", err))
				continue
			}
			c.lock.Lock()
			c.ch = newCh
			c.lock.Unlock()
			ch = newCh
			c.log.Info(context.Background(), "Channel recreate success.")
			break
		}
	}
}

func (c *Channel) current() *amqp.Channel {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.ch
}

func (c *Channel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	return c.current().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

// IsClosed reports whether the channel was closed on purpose.
func (c *Channel) IsClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

func (c *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return c.current().Close()
}
