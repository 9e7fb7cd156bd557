// internal/writer/tcp/client.go
package tcp

import (
	"errors"
	"net"
	"strings"
	"time"
)

// Scheme prefixes a network serial port ("tcp://host:port"), e.g. ser2net.
const Scheme = "tcp://"

// Client implements writer.Link over a raw TCP stream.
// Bytes go through unmodified: no telnet negotiation, no framing.
type Client struct {
	conn         net.Conn
	writeTimeout time.Duration
	readTimeout  time.Duration
}

type Config struct {
	Endpoint    string // host:port, with or without the tcp:// prefix
	Timeout     time.Duration
	ReadTimeout time.Duration
}

// Dial connects. ONE attempt.
func Dial(cfg Config) (*Client, error) {
	endpoint := strings.TrimPrefix(cfg.Endpoint, Scheme)
	if endpoint == "" {
		return nil, errors.New("tcp link: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 20 * time.Millisecond
	}

	conn, err := net.DialTimeout("tcp", endpoint, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:         conn,
		writeTimeout: cfg.Timeout,
		readTimeout:  cfg.ReadTimeout,
	}, nil
}

// ---- writer.Link ----

func (c *Client) Write(p []byte) (int, error) {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return 0, err
	}
	return c.conn.Write(p)
}

func (c *Client) ReadAvailable(p []byte) (int, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return 0, err
	}
	n, err := c.conn.Read(p)
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return n, nil
	}
	return n, err
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
