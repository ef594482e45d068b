package sdk

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/nicktill/tinyga/pkg/config"
	"github.com/nicktill/tinyga/pkg/log"
	"github.com/nicktill/tinyga/pkg/sdk/hit"
	"github.com/nicktill/tinyga/pkg/sdk/transport"
)

// ClientConfig holds configuration for the client
type ClientConfig struct {
	TrackingID string `json:"tracking_id"`
	ClientID   string `json:"client_id"`
	UserAgent  string `json:"user_agent"`
	Debug      bool   `json:"debug"`
	Proxy      string `json:"proxy"`
	Version    int    `json:"version"`

	// Transport overrides the default HTTP transport. Proxy is ignored when set.
	Transport transport.Transport `json:"-"`
	Logger    log.Logger          `json:"-"`
}

// Client queues hits and dispatches them to the collection endpoint.
//
// A Client is not safe for concurrent use: builder methods mutate the
// queue in place and return the same Client for chaining. Use
// batch.Batcher to share one between goroutines.
type Client struct {
	config    ClientConfig
	factory   hit.Factory
	transport transport.Transport
	logger    log.Logger

	queue []*hit.Tracker
}

// New creates a new client
func New(cfg ClientConfig) (*Client, error) {
	if cfg.TrackingID == "" {
		return nil, fmt.Errorf("tracking id is required")
	}
	if cfg.ClientID == "" {
		cfg.ClientID = uuid.New().String()
	}
	if cfg.Version == 0 {
		cfg.Version = config.DefaultProtocolVersion
	}

	trans := cfg.Transport
	if trans == nil {
		httpTrans, err := transport.NewHTTP(transport.Config{
			Proxy:   cfg.Proxy,
			Timeout: config.HTTPTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create transport: %w", err)
		}
		trans = httpTrans
	}

	logger := cfg.Logger
	if logger == nil {
		leveled := log.NewLeveledLogger(os.Stderr)
		leveled.SetDebug(cfg.Debug)
		logger = leveled
	}

	return &Client{
		config: cfg,
		factory: hit.Factory{
			Version:    cfg.Version,
			TrackingID: cfg.TrackingID,
			ClientID:   cfg.ClientID,
		},
		transport: trans,
		logger:    logger,
	}, nil
}

// ClientID returns the client id stamped on every hit.
func (c *Client) ClientID() string {
	return c.config.ClientID
}

// Track builds a hit from p and queues it.
func (c *Client) Track(p hit.Params) *Client {
	c.push(c.factory.Create(p))
	return c
}

// Pageview queues a pageview hit.
func (c *Client) Pageview(p hit.Pageview) *Client { return c.Track(p) }

// Event queues an event hit.
func (c *Client) Event(p hit.Event) *Client { return c.Track(p) }

// Screenview queues a screenview hit.
func (c *Client) Screenview(p hit.Screenview) *Client { return c.Track(p) }

// Transaction queues a transaction hit.
func (c *Client) Transaction(p hit.Transaction) *Client { return c.Track(p) }

// Social queues a social hit.
func (c *Client) Social(p hit.Social) *Client { return c.Track(p) }

// Exception queues an exception hit.
func (c *Client) Exception(p hit.Exception) *Client { return c.Track(p) }

// Refund queues a refund event.
func (c *Client) Refund(p hit.Refund) *Client { return c.Track(p) }

// Item queues an item hit.
func (c *Client) Item(p hit.Item) *Client { return c.Track(p) }

// TimingTrack queues a timing hit.
func (c *Client) TimingTrack(p hit.Timing) *Client { return c.Track(p) }

// Append merges fields into the most recently queued hit. With an empty
// queue it queues a bare hit made of fields alone.
func (c *Client) Append(fields ...hit.Field) *Client {
	if len(fields) == 0 {
		return c
	}

	if n := len(c.queue); n > 0 {
		c.queue[n-1].Append(fields...)
		return c
	}

	c.push(hit.NewTracker(fields...))
	return c
}

func (c *Client) push(t *hit.Tracker) {
	if t == nil {
		return
	}
	c.queue = append(c.queue, t)
}

// Len returns the number of queued hits.
func (c *Client) Len() int {
	return len(c.queue)
}

// Queue returns a copy of the queue.
func (c *Client) Queue() []*hit.Tracker {
	q := make([]*hit.Tracker, len(c.queue))
	copy(q, c.queue)
	return q
}

// Reset drops every queued hit.
func (c *Client) Reset() {
	c.queue = nil
}

// Body returns the wire lines of the first hits in the queue, at most
// config.MaxHitsPerRequest of them.
func (c *Client) Body() []string {
	return c.BodyOf(c.queue)
}

// BodyOf returns the wire lines of the first hits in trackers, at most
// config.MaxHitsPerRequest of them. Nil trackers are skipped and do not
// count toward the limit.
func (c *Client) BodyOf(trackers []*hit.Tracker) []string {
	lines := make([]string, 0, min(len(trackers), config.MaxHitsPerRequest))
	for _, t := range trackers {
		if len(lines) == config.MaxHitsPerRequest {
			break
		}
		if t == nil {
			continue
		}
		lines = append(lines, t.Body())
	}
	return lines
}

// Send dispatches the head of the queue. The queue is left untouched, so a
// second Send delivers the same hits again; use Flush to drain. An empty
// queue returns ErrNoHits without contacting the endpoint.
func (c *Client) Send(ctx context.Context) (bool, error) {
	return c.SendTrackers(ctx, c.queue)
}

// SendTrackers dispatches the first hits of trackers.
//
// In debug mode the result is the validator's verdict on the first hit.
// Otherwise a 2xx status means true. A rejected request answered with an
// image/gif body yields false; any other rejection is a *DispatchError.
// ErrNoHits is returned when trackers holds nothing to send.
func (c *Client) SendTrackers(ctx context.Context, trackers []*hit.Tracker) (bool, error) {
	lines := c.BodyOf(trackers)
	if len(lines) == 0 {
		return false, ErrNoHits
	}

	url := c.endpoint(len(lines))
	c.logger.Debugf("sending %d hit(s) to %s", len(lines), url)

	resp, err := c.transport.Post(ctx, transport.Request{
		URL:       url,
		Body:      []byte(strings.Join(lines, "\n")),
		UserAgent: c.config.UserAgent,
	})
	if err != nil {
		return false, err
	}

	if resp.Success() {
		if !c.config.Debug {
			return true, nil
		}
		return c.validate(resp.Body), nil
	}

	if isGIF(resp.ContentType) {
		c.logger.Infof("collection endpoint answered %d with %s", resp.StatusCode, resp.ContentType)
		return false, nil
	}

	return false, &DispatchError{
		StatusCode:  resp.StatusCode,
		ContentType: resp.ContentType,
		Body:        string(resp.Body),
	}
}

// Flush sends the whole queue in batches of config.MaxHitsPerRequest,
// removing each batch once it has been delivered. It stops at the first
// error, leaving the undelivered hits queued. The result is true only if
// every batch succeeded.
func (c *Client) Flush(ctx context.Context) (bool, error) {
	ok := true
	for len(c.queue) > 0 {
		n := min(len(c.queue), config.MaxHitsPerRequest)
		sent, err := c.SendTrackers(ctx, c.queue[:n])
		if err != nil {
			return false, err
		}
		ok = ok && sent
		c.queue = c.queue[n:]
	}
	c.queue = nil
	return ok, nil
}

// Requeue puts trackers back at the front of the queue, ahead of anything
// queued since they were taken with Queue and Reset.
func (c *Client) Requeue(trackers []*hit.Tracker) {
	if len(trackers) == 0 {
		return
	}
	q := make([]*hit.Tracker, 0, len(trackers)+len(c.queue))
	for _, t := range trackers {
		if t != nil {
			q = append(q, t)
		}
	}
	c.queue = append(q, c.queue...)
}

func (c *Client) endpoint(hits int) string {
	switch {
	case c.config.Debug:
		return config.DebugCollectURL
	case hits > 1:
		return config.BatchURL
	default:
		return config.CollectURL
	}
}

func (c *Client) validate(body []byte) bool {
	c.logger.Debugf("validation response: %s", body)

	valid, resp, err := parseDebugResponse(body)
	if err != nil {
		c.logger.Errorf("failed to parse validation response: %v", err)
		return false
	}
	if !valid {
		c.logger.Infof("hit rejected by validator: %s", resp.messages())
	}
	return valid
}

// isGIF reports whether a Content-Type header names image/gif, ignoring
// case and parameters.
func isGIF(contentType string) bool {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.EqualFold(strings.TrimSpace(mt), "image/gif")
}
