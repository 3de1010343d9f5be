// Package publish streams stored assessments to a Kafka topic so
// downstream consumers (CRM sync, installer scheduling) can react
// without polling the store. Delivery is asynchronous and best effort:
// the assessment is already persisted before an event is enqueued.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Config holds the Kafka publishing options.
type Config struct {
	Enabled bool
	Brokers []string
	Topic   string
	Acks    string
}

// AssessmentEvent is the message body published for each stored assessment.
type AssessmentEvent struct {
	AssessmentID    string `json:"assessmentId"`
	CreatedAtUnix   int64  `json:"createdAtUnix"`
	ContractVersion int    `json:"contractVersion"`
	Recommendation  string `json:"recommendation"`
	Confidence      string `json:"confidence"`
	RedFlagCount    int    `json:"redFlagCount"`
}

type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaWriteCloser interface {
	Close() error
}

type publishRequest struct {
	key          []byte
	value        []byte
	assessmentID string
}

// Publisher asynchronously delivers assessment events to the configured topic.
type Publisher struct {
	cfg       Config
	log       *slog.Logger
	writer    kafkaMessageWriter
	closer    kafkaWriteCloser
	enabled   bool
	queue     chan publishRequest
	runCtx    context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
}

const (
	publisherQueueSize = 64
	deliverTimeout     = 10 * time.Second
)

// NewPublisher constructs a Publisher backed by a Kafka writer. A disabled
// config yields a no-op publisher so callers never branch on it.
func NewPublisher(cfg Config, log *slog.Logger) (*Publisher, error) {
	if log == nil {
		return nil, fmt.Errorf("publisher requires a logger")
	}
	if !cfg.Enabled {
		log.Info("publisher_disabled")
		return &Publisher{cfg: cfg, log: log, enabled: false}, nil
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, fmt.Errorf("publish topic must not be empty")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	acks, err := resolveAcks(cfg.Acks)
	if err != nil {
		return nil, err
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		RequiredAcks:           acks,
		AllowAutoTopicCreation: false,
		Balancer:               &kafka.Hash{},
	}
	return newPublisherWithWriter(cfg, log, writer, writer)
}

// newPublisherWithWriter wires the provided writer into the publisher. It is used in tests.
func newPublisherWithWriter(cfg Config, log *slog.Logger, writer kafkaMessageWriter, closer kafkaWriteCloser) (*Publisher, error) {
	if log == nil {
		return nil, fmt.Errorf("publisher requires a logger")
	}
	if writer == nil {
		return nil, fmt.Errorf("publisher requires a writer")
	}
	p := &Publisher{
		cfg:     cfg,
		log:     log.With(slog.String("component", "publisher")),
		writer:  writer,
		closer:  closer,
		enabled: cfg.Enabled,
	}
	if p.enabled {
		p.queue = make(chan publishRequest, publisherQueueSize)
	}
	return p, nil
}

// Start launches the background delivery loop.
func (p *Publisher) Start(ctx context.Context) error {
	if !p.enabled {
		p.log.Info("publisher_start_skipped", slog.String("reason", "disabled"))
		return nil
	}
	if ctx == nil {
		return fmt.Errorf("context must not be nil")
	}
	p.startOnce.Do(func() {
		p.runCtx, p.cancel = context.WithCancel(ctx)
		p.started.Store(true)
		p.wg.Add(1)
		go p.run()
		p.log.Info("publisher_started", slog.String("topic", p.cfg.Topic))
	})
	if !p.started.Load() {
		return domain.ErrPublisherStopped
	}
	return nil
}

// Stop requests shutdown and waits for queued events to drain.
func (p *Publisher) Stop(ctx context.Context) error {
	if !p.enabled {
		p.log.Info("publisher_stop_skipped", slog.String("reason", "disabled"))
		return nil
	}
	var stopErr error
	p.stopOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			stopErr = ctx.Err()
		}
		if p.closer != nil {
			if err := p.closer.Close(); err != nil {
				p.log.Error("publisher_close_err", slog.Any("err", err))
			}
		}
		p.log.Info("publisher_stopped")
	})
	return stopErr
}

// Publish queues an assessment event for asynchronous delivery. A disabled
// publisher returns ErrPublisherDisabled, which callers may treat as benign.
func (p *Publisher) Publish(ctx context.Context, ev AssessmentEvent) error {
	if !p.enabled {
		return domain.ErrPublisherDisabled
	}
	if !p.started.Load() {
		return domain.ErrPublisherStopped
	}
	value, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("publish_encode_err", slog.Any("err", err), slog.String("assessment", ev.AssessmentID))
		return err
	}
	req := publishRequest{key: []byte(ev.AssessmentID), value: value, assessmentID: ev.AssessmentID}
	select {
	case p.queue <- req:
		p.log.Info("publish_enqueued", slog.String("assessment", ev.AssessmentID))
		return nil
	case <-ctx.Done():
		p.log.Error("publish_ctx_err", slog.Any("err", ctx.Err()), slog.String("assessment", ev.AssessmentID))
		return ctx.Err()
	case <-p.runCtx.Done():
		p.log.Error("publish_stopped", slog.String("assessment", ev.AssessmentID))
		return domain.ErrPublisherStopped
	}
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.runCtx.Done():
			p.drain()
			p.started.Store(false)
			p.log.Info("publisher_loop_exit")
			return
		case req := <-p.queue:
			p.deliver(req)
		}
	}
}

// drain flushes whatever is already queued before the loop exits.
func (p *Publisher) drain() {
	for {
		select {
		case req := <-p.queue:
			p.deliver(req)
		default:
			return
		}
	}
}

// deliver writes one message with its own deadline. The run context is
// deliberately not used here so queued events still go out during drain.
func (p *Publisher) deliver(req publishRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()
	err := p.writer.WriteMessages(ctx, kafka.Message{Key: req.key, Value: req.value})
	if err != nil {
		p.log.Error("publish_err", slog.Any("err", err), slog.String("assessment", req.assessmentID))
		return
	}
	p.log.Info("publish_success", slog.String("assessment", req.assessmentID))
}

func resolveAcks(acks string) (kafka.RequiredAcks, error) {
	switch acks {
	case "none":
		return kafka.RequireNone, nil
	case "one", "":
		return kafka.RequireOne, nil
	case "all":
		return kafka.RequireAll, nil
	default:
		return 0, fmt.Errorf("unsupported acks mode: %s", acks)
	}
}
