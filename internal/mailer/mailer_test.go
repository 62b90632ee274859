package mailer

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nkhandel/dietplanner-backend/pkg/config"
	"github.com/nkhandel/dietplanner-backend/pkg/logger"
	"github.com/nkhandel/dietplanner-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

type fakeTransport struct {
	mu       sync.Mutex
	sent     [][]byte
	failures int
}

func (f *fakeTransport) Send(ctx context.Context, from string, to []string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("relay refused")
	}
	f.sent = append(f.sent, payload)
	return nil
}

func (f *fakeTransport) delivered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestMailer(t *testing.T, transport Transport) *Mailer {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	smtpCfg := config.SMTPConfig{Host: "localhost", Port: 1025, FromEmail: "noreply@dietplanner.test"}
	cfg := config.MailerConfig{Workers: 2, QueueSize: 8, SendTimeout: 2 * time.Second, MaxRetries: 3}
	m, err := NewWithTransport(smtpCfg, cfg, logg, metrics.NewMailerMetrics(nil), transport)
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}
	return m
}

func TestMailerDeliversQueuedMessages(t *testing.T) {
	transport := &fakeTransport{}
	m := newTestMailer(t, transport)
	m.Start(context.Background())

	m.Enqueue(WelcomeMessage("alex@example.com", "Alex"))
	m.Enqueue(LowStockMessage([]string{"staff@example.com", "ops@example.com"}, "Whey Isolate", 4, 10))
	m.Close()

	if got := transport.delivered(); got != 2 {
		t.Fatalf("expected 2 delivered messages, got %d", got)
	}
	found := false
	multi := false
	for _, payload := range transport.sent {
		if bytes.Contains(payload, []byte("To: alex@example.com")) {
			found = true
		}
		if bytes.Contains(payload, []byte("To: staff@example.com, ops@example.com")) {
			multi = true
		}
	}
	if !found {
		t.Fatal("no payload carried the welcome recipient header")
	}
	if !multi {
		t.Fatal("alert payload should list every recipient in the To header")
	}
}

func TestMailerRetriesTransientFailures(t *testing.T) {
	transport := &fakeTransport{failures: 2}
	m := newTestMailer(t, transport)
	m.Start(context.Background())

	m.Enqueue(WelcomeMessage("alex@example.com", "Alex"))
	m.Close()

	if got := transport.delivered(); got != 1 {
		t.Fatalf("expected delivery after retries, got %d", got)
	}
}

func TestMailerSkipsWhenSMTPUnconfigured(t *testing.T) {
	transport := &fakeTransport{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	cfg := config.MailerConfig{Workers: 1, QueueSize: 4, SendTimeout: time.Second}
	m, err := NewWithTransport(config.SMTPConfig{}, cfg, logg, metrics.NewMailerMetrics(nil), transport)
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}
	m.Start(context.Background())
	m.Enqueue(WelcomeMessage("alex@example.com", "Alex"))
	m.Close()

	if got := transport.delivered(); got != 0 {
		t.Fatalf("expected no delivery without smtp config, got %d", got)
	}
}

func TestOrderConfirmationBodyListsLines(t *testing.T) {
	msg := OrderConfirmationMessage("alex@example.com", "ord-1", decimal.NewFromFloat(42.50), []OrderLine{
		{Name: "Whey Isolate", Quantity: 2, Price: decimal.NewFromFloat(15.25)},
		{Name: "Peanut Bar", Quantity: 1, Price: decimal.NewFromFloat(12.00)},
	})
	if msg.Kind != KindOrderConfirmation {
		t.Fatalf("unexpected kind %q", msg.Kind)
	}
	for _, want := range []string{"2x Whey Isolate @ 15.25", "1x Peanut Bar @ 12.00", "Total: 42.50"} {
		if !bytes.Contains([]byte(msg.Body), []byte(want)) {
			t.Fatalf("body missing %q:\n%s", want, msg.Body)
		}
	}
}
