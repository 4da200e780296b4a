//go:build unit || e2e

package authtest

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"rental-booking/internal/infra/notify"

	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

// Mailbox is a notify.Transport that keeps delivered messages in memory.
type Mailbox struct {
	mu       sync.Mutex
	messages []notify.Message
}

func NewMailbox() *Mailbox {
	return &Mailbox{}
}

func (m *Mailbox) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *Mailbox) Close() error { return nil }

func (m *Mailbox) Messages(to string) []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notify.Message
	for _, msg := range m.messages {
		if msg.To == to {
			out = append(out, msg)
		}
	}
	return out
}

func (m *Mailbox) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}

// TakeCode waits for a verification code addressed to `to`, removes every code
// message for that recipient and returns the newest code.
func (m *Mailbox) TakeCode(t *testing.T, to string) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		code = m.takeCode(to)
		return code != ""
	}, 5*time.Second, 10*time.Millisecond, "no verification code delivered to %s", to)
	return code
}

func (m *Mailbox) takeCode(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var code string
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.To == to && msg.Kind == notify.KindVerificationCode {
			code = codePattern.FindString(msg.Body)
			continue
		}
		kept = append(kept, msg)
	}
	m.messages = kept
	return code
}
