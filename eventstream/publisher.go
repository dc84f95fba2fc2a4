// Package eventstream publishes navigation change events to NATS so
// external tooling (debug consoles, analytics pipelines) can observe a
// tree's mutations in real time. Publishing is best-effort: failures are
// logged and never propagate into navigation.
package eventstream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	uberatomic "go.uber.org/atomic"
	"golang.org/x/time/rate"

	"github.com/zeroxpunk/navtree/navigator"
)

// Event is the wire form of one navigation change.
type Event struct {
	Timestamp string `json:"timestamp"` // RFC3339 format
	Tree      string `json:"tree"`
	NodeID    string `json:"node_id"`
	NodeName  string `json:"node_name,omitempty"`
	Kind      string `json:"kind"`
	Depth     int    `json:"depth"`
}

// Publisher forwards navigation changes to NATS. It implements
// navigator.Observer and is safe to register on a tree: with no connection
// it is disabled, and bursty navigation is rate limited rather than allowed
// to flood the subject.
type Publisher struct {
	tree          string
	subjectPrefix string
	nc            *nats.Conn
	logger        *slog.Logger
	limiter       *rate.Limiter
	dropped       *uberatomic.Int64
	enabled       bool
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithSubjectPrefix overrides the default "nav" subject prefix.
func WithSubjectPrefix(prefix string) Option {
	return func(p *Publisher) { p.subjectPrefix = prefix }
}

// WithRateLimit caps publishes at perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(p *Publisher) { p.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// NewPublisher creates a publisher for the named tree. A nil connection
// disables publishing entirely.
func NewPublisher(treeName string, nc *nats.Conn, logger *slog.Logger, opts ...Option) *Publisher {
	p := &Publisher{
		tree:          treeName,
		subjectPrefix: "nav",
		nc:            nc,
		logger:        logger,
		limiter:       rate.NewLimiter(rate.Limit(50), 100),
		dropped:       uberatomic.NewInt64(0),
		enabled:       nc != nil,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// NavigationChanged implements navigator.Observer.
func (p *Publisher) NavigationChanged(ch navigator.Change) {
	if !p.enabled {
		return
	}
	if !p.limiter.Allow() {
		p.dropped.Inc()
		return
	}

	event := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Tree:      p.tree,
		NodeID:    ch.NodeID.String(),
		NodeName:  ch.NodeName,
		Kind:      ch.Kind.String(),
		Depth:     ch.Depth,
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal navigation event", "error", err)
		return
	}

	subject := p.subject(ch.Kind)
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("failed to publish navigation event", "error", err, "subject", subject)
	}
}

// Dropped returns the number of events discarded by the rate limiter.
func (p *Publisher) Dropped() int64 {
	return p.dropped.Load()
}

// subject builds the publish subject: {prefix}.{tree}.{kind}
func (p *Publisher) subject(kind navigator.ChangeKind) string {
	return fmt.Sprintf("%s.%s.%s", p.subjectPrefix, p.tree, kind.String())
}
