/*
Package transport delivers assembled messages through an SMTP server.

It is a thin wrapper around go-mail: the Message coming in has already
passed every syntax and reachability check, so all that remains is
mapping it onto a MIME message, configuring the client, and running the
SMTP conversation. Any failure past this point is a transport failure.
*/
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wneessen/go-mail"

	"github.com/usawa/mailout/internal/email"
)

// Mailer sends assembled messages over SMTP.
type Mailer struct {
	// Timeout bounds the whole SMTP conversation. Zero means the
	// go-mail default.
	Timeout time.Duration
	// InsecureTLS skips certificate verification. For lab servers with
	// self signed certificates only.
	InsecureTLS bool
}

// Send delivers msg through the server it names. The context bounds the
// dial and the conversation on top of the configured timeout.
func (m *Mailer) Send(ctx context.Context, msg *email.Message) error {
	mm, err := buildMessage(msg)
	if err != nil {
		return &email.Error{Kind: email.KindTransportFailure, Field: "message", Value: msg.Subject, Err: err}
	}

	client, err := m.buildClient(msg.Server, msg.Port, msg.UseTLS, msg.Credential)
	if err != nil {
		return &email.Error{Kind: email.KindTransportFailure, Field: "server", Value: serverAddr(msg), Err: err}
	}

	log.Info("sending message",
		"server", msg.Server,
		"port", msg.Port,
		"recipients", len(msg.To)+len(msg.Cc)+len(msg.Bcc),
		"attachments", len(msg.Attachments))

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return &email.Error{Kind: email.KindTransportFailure, Field: "server", Value: serverAddr(msg), Err: err}
	}

	log.Info("message sent", "server", msg.Server, "subject", msg.Subject)
	return nil
}

// CheckConnection dials the server and runs the SMTP greeting without
// sending anything, then closes the session again.
func (m *Mailer) CheckConnection(ctx context.Context, server string, port int, useTLS bool) error {
	client, err := m.buildClient(server, port, useTLS, nil)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("connection to %s failed: %w", net.JoinHostPort(server, strconv.Itoa(port)), err)
	}
	defer client.Close()

	return nil
}

// buildMessage maps an assembled request onto a go-mail message.
func buildMessage(msg *email.Message) (*mail.Msg, error) {
	mm := mail.NewMsg()

	if err := mm.From(msg.From); err != nil {
		return nil, fmt.Errorf("failed to set sender: %w", err)
	}
	if err := mm.To(msg.To...); err != nil {
		return nil, fmt.Errorf("failed to set recipients: %w", err)
	}
	if len(msg.Cc) > 0 {
		if err := mm.Cc(msg.Cc...); err != nil {
			return nil, fmt.Errorf("failed to set CC recipients: %w", err)
		}
	}
	if len(msg.Bcc) > 0 {
		if err := mm.Bcc(msg.Bcc...); err != nil {
			return nil, fmt.Errorf("failed to set BCC recipients: %w", err)
		}
	}
	if msg.ReplyTo != "" {
		if err := mm.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("failed to set reply-to: %w", err)
		}
	}

	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Body)

	if msg.HighPriority {
		mm.SetImportance(mail.ImportanceHigh)
	}

	for _, path := range msg.Attachments {
		mm.AttachFile(path)
	}

	return mm, nil
}

// buildClient configures the SMTP client for one conversation. Port 465
// always means implicit TLS; otherwise the TLS flag picks between
// mandatory and opportunistic STARTTLS.
func (m *Mailer) buildClient(server string, port int, useTLS bool, cred *email.Credential) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(port),
	}
	if m.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(m.Timeout))
	}

	switch {
	case port == 465:
		opts = append(opts, mail.WithSSL())
	case useTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if cred != nil {
		opts = append(opts,
			mail.WithUsername(cred.Username),
			mail.WithPassword(cred.Password),
			mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
		)
	}

	if m.InsecureTLS {
		opts = append(opts, mail.WithTLSConfig(&tls.Config{
			ServerName:         server,
			InsecureSkipVerify: true,
		}))
	}

	return mail.NewClient(server, opts...)
}

func serverAddr(msg *email.Message) string {
	return net.JoinHostPort(msg.Server, strconv.Itoa(msg.Port))
}
