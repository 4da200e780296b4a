package notify

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// SMTPTransport submits each message over its own connection. Port 465 uses
// implicit TLS; other ports upgrade with STARTTLS when the server offers it.
type SMTPTransport struct {
	cfg config.MailConfig
}

func NewSMTPTransport(cfg config.MailConfig) *SMTPTransport {
	return &SMTPTransport{cfg: cfg}
}

func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
	dialer := &net.Dialer{}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}

	var (
		conn net.Conn
		err  error
	)
	if t.cfg.Port == 465 {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: t.cfg.Host, MinVersion: tls.VersionTLS12}}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return errs.Wrapf(err, "dial %s", addr)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, t.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return errs.Wrap(err, "smtp handshake")
	}
	defer client.Close()

	if t.cfg.Port != 465 {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: t.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
				return errs.Wrap(err, "starttls")
			}
		}
	}
	if t.cfg.Username != "" {
		if err := client.Auth(smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)); err != nil {
			return errs.Wrap(err, "smtp auth")
		}
	}

	if err := client.Mail(t.cfg.From); err != nil {
		return errs.Wrap(err, "smtp MAIL FROM")
	}
	if err := client.Rcpt(msg.To); err != nil {
		return errs.Wrapf(err, "smtp RCPT TO %s", msg.To)
	}
	w, err := client.Data()
	if err != nil {
		return errs.Wrap(err, "smtp DATA")
	}
	if _, err := w.Write(t.compose(msg)); err != nil {
		_ = w.Close()
		return errs.Wrap(err, "write message")
	}
	if err := w.Close(); err != nil {
		return errs.Wrap(err, "finish message")
	}
	return client.Quit()
}

func (t *SMTPTransport) compose(msg Message) []byte {
	from := t.cfg.From
	if t.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", t.cfg.FromName), t.cfg.From)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

func (t *SMTPTransport) Close() error { return nil }

// LogTransport writes messages to the log instead of sending them. Used when
// no SMTP credentials are configured.
type LogTransport struct{}

func NewLogTransport() *LogTransport {
	return &LogTransport{}
}

func (LogTransport) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "notification (dev mode)",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

func (LogTransport) Close() error { return nil }

// KafkaTransport publishes messages to a topic for an external mail worker.
type KafkaTransport struct {
	writer *kafka.Writer
}

func NewKafkaTransport(cfg config.KafkaConfig) *KafkaTransport {
	return &KafkaTransport{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (t *KafkaTransport) Send(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errs.Wrap(err, "encode notification")
	}
	if err := t.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.To),
		Value: data,
		Time:  time.Now(),
	}); err != nil {
		return errs.Wrapf(err, "publish %s", msg.Kind)
	}
	return nil
}

func (t *KafkaTransport) Close() error {
	return t.writer.Close()
}

// NewTransport picks the transport named by cfg.Notification.Transport. SMTP
// falls back to logging when no password is configured.
func NewTransport(cfg config.Config) (Transport, error) {
	switch cfg.Notification.Transport {
	case "", "smtp":
		if cfg.Mail.DevMode() {
			slog.Warn("SMTP password not set, notifications will be logged")
			return NewLogTransport(), nil
		}
		return NewSMTPTransport(cfg.Mail), nil
	case "log":
		return NewLogTransport(), nil
	case "kafka":
		return NewKafkaTransport(cfg.Kafka), nil
	default:
		return nil, errs.Newf("unknown notification transport %q", cfg.Notification.Transport)
	}
}
