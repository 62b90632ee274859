package mailer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/nkhandel/dietplanner-backend/pkg/config"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
	"github.com/nkhandel/dietplanner-backend/pkg/metrics"
)

// Message is a single outbound email. To carries every recipient; alerts
// fan out to the whole staff list in one message.
type Message struct {
	Kind    string
	To      []string
	Subject string
	Body    string
}

// Sender is the enqueue surface exposed to domain services. Enqueue never
// blocks the caller; delivery happens on the worker pool.
type Sender interface {
	Enqueue(msg Message)
}

// Transport delivers a composed message to the relay.
type Transport interface {
	Send(ctx context.Context, from string, to []string, payload []byte) error
}

// Mailer runs a bounded worker pool draining the message queue.
type Mailer struct {
	smtp      config.SMTPConfig
	cfg       config.MailerConfig
	transport Transport
	logg      *logger.Logger
	metrics   *metrics.MailerMetrics

	queue chan Message
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// New wires a mailer with the default SMTP transport.
func New(smtpCfg config.SMTPConfig, cfg config.MailerConfig, logg *logger.Logger, m *metrics.MailerMetrics) (*Mailer, error) {
	return NewWithTransport(smtpCfg, cfg, logg, m, newSMTPTransport(smtpCfg))
}

// NewWithTransport wires a mailer with a custom transport, used by tests.
func NewWithTransport(smtpCfg config.SMTPConfig, cfg config.MailerConfig, logg *logger.Logger, m *metrics.MailerMetrics, transport Transport) (*Mailer, error) {
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer logger required")
	}
	if transport == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer transport required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 15 * time.Second
	}

	return &Mailer{
		smtp:      smtpCfg,
		cfg:       cfg,
		transport: transport,
		logg:      logg,
		metrics:   m,
		queue:     make(chan Message, cfg.QueueSize),
	}, nil
}

// Start launches the worker pool. Workers exit when Close is called and the
// queue is drained.
func (m *Mailer) Start(ctx context.Context) {
	for i := 0; i < m.cfg.Workers; i++ {
		m.wg.Add(1)
		go m.worker(ctx)
	}
}

// Enqueue hands a message to the pool. A full queue drops the message; mail
// here is best effort and must never stall a checkout.
func (m *Mailer) Enqueue(msg Message) {
	select {
	case m.queue <- msg:
		m.metrics.SetQueueDepth(len(m.queue))
	default:
		m.metrics.IncDropped()
		m.logg.Warn(context.Background(), fmt.Sprintf("mail queue full, dropping %s to %s", msg.Kind, strings.Join(msg.To, ",")))
	}
}

// Close stops accepting messages and waits for in-flight deliveries.
func (m *Mailer) Close() {
	m.closeOnce.Do(func() {
		close(m.queue)
	})
	m.wg.Wait()
}

func (m *Mailer) worker(ctx context.Context) {
	defer m.wg.Done()
	for msg := range m.queue {
		m.metrics.SetQueueDepth(len(m.queue))
		m.deliver(ctx, msg)
	}
}

func (m *Mailer) deliver(ctx context.Context, msg Message) {
	if !m.smtp.Enabled() {
		m.logg.Info(m.logg.WithField(ctx, "mail_kind", msg.Kind), "smtp not configured, dropping message")
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, m.cfg.SendTimeout)
	defer cancel()

	payload := composePayload(m.smtp.FromEmail, msg)

	backoff := retry.WithMaxRetries(uint64(m.cfg.MaxRetries), retry.NewExponential(250*time.Millisecond))
	err := retry.Do(sendCtx, backoff, func(ctx context.Context) error {
		if sendErr := m.transport.Send(ctx, m.smtp.FromEmail, msg.To, payload); sendErr != nil {
			return retry.RetryableError(sendErr)
		}
		return nil
	})
	if err != nil {
		m.metrics.IncFailed(msg.Kind)
		m.logg.Error(m.logg.WithField(ctx, "mail_kind", msg.Kind), "mail delivery failed", err)
		return
	}
	m.metrics.IncSent(msg.Kind)
}

func composePayload(from string, msg Message) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		from, strings.Join(msg.To, ", "), msg.Subject, msg.Body))
}
