package wsbridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phanxgames/collide"
)

const defaultClientQueue = 8

// ErrClosed is returned by Post after the connection has ended.
var ErrClosed = errors.New("wsbridge: connection closed")

// Client is a connection to a Server. It satisfies collide.Simulation.
//
// Incoming messages are queued like a local worker's outbox: when the queue is
// full the oldest message is dropped.
type Client struct {
	conn *websocket.Conn
	out  chan collide.Message

	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
	dropped   atomic.Uint64
}

// Dial connects to a Server at url, e.g. "ws://localhost:8080/ws".
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	conn.SetReadLimit(maxMessageSize)
	c := &Client{
		conn: conn,
		out:  make(chan collide.Message, defaultClientQueue),
		done: make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Post validates msg and sends it to the server.
func (c *Client) Post(msg collide.Message) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("post %s: %w", msg.Kind, err)
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("post %s: %w", msg.Kind, err)
	}
	return nil
}

// Messages returns the frames and errors received from the server. The
// channel is closed when the connection ends.
func (c *Client) Messages() <-chan collide.Message {
	return c.out
}

// Dropped returns how many received messages were discarded because the
// queue was full.
func (c *Client) Dropped() uint64 {
	return c.dropped.Load()
}

// Close sends a close frame and closes the connection. It is safe to call more
// than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		err = c.conn.Close()
	})
	return err
}

func (c *Client) readLoop() {
	defer close(c.out)
	for {
		var msg collide.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.enqueue(msg)
	}
}

func (c *Client) enqueue(msg collide.Message) {
	for {
		select {
		case c.out <- msg:
			return
		default:
		}
		select {
		case <-c.out:
			c.dropped.Add(1)
		default:
		}
	}
}
