package email

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/usawa/mailout/internal/probe"
	"github.com/usawa/mailout/internal/validate"
)

// Assemble turns raw options into a validated Message.
//
// Checks run in a fixed order and the first failure aborts the request:
// server host, port, optional reachability probe, sender, recipients,
// CC, BCC, credential pairing, body normalization, attachments. Every
// rejection is an *Error carrying the kind, the flag name, and the
// offending value.
func Assemble(opts Options) (*Message, error) {
	opts, err := withDefaults(opts)
	if err != nil {
		return nil, err
	}

	if !validate.Host(opts.Server) {
		return nil, &Error{Kind: KindInvalidHost, Field: "server", Value: opts.Server}
	}

	if !validate.SMTPPort(opts.Port, opts.EnforcePorts) {
		return nil, &Error{Kind: KindInvalidPort, Field: "port", Value: strconv.Itoa(opts.Port)}
	}

	if opts.TestConnection {
		log.Debug("probing SMTP endpoint", "server", opts.Server, "port", opts.Port, "timeout", opts.ProbeTimeout)
		if res := probe.Check(opts.Server, opts.Port, opts.ProbeTimeout); res != probe.Reachable {
			return nil, &Error{
				Kind:  KindHostUnreachable,
				Field: "server",
				Value: fmt.Sprintf("%s:%d", opts.Server, opts.Port),
			}
		}
	}

	if !validate.Address(opts.From) {
		return nil, &Error{Kind: KindInvalidSender, Field: "from", Value: opts.From}
	}

	to := splitList(opts.To)
	if len(to) == 0 {
		return nil, &Error{Kind: KindInvalidRecipient, Field: "to", Value: opts.To}
	}
	for _, addr := range to {
		if !validate.Address(addr) {
			return nil, &Error{Kind: KindInvalidRecipient, Field: "to", Value: addr}
		}
	}

	cc := splitList(opts.Cc)
	for _, addr := range cc {
		if !validate.Address(addr) {
			return nil, &Error{Kind: KindInvalidCc, Field: "cc", Value: addr}
		}
	}

	bcc := splitList(opts.Bcc)
	for _, addr := range bcc {
		if !validate.Address(addr) {
			return nil, &Error{Kind: KindInvalidBcc, Field: "bcc", Value: addr}
		}
	}

	if opts.ReplyTo != "" && !validate.Address(opts.ReplyTo) {
		return nil, &Error{Kind: KindInvalidSender, Field: "reply-to", Value: opts.ReplyTo}
	}

	// Authentication is all or nothing. A half pair is not an error;
	// the send simply goes out unauthenticated.
	var cred *Credential
	switch {
	case opts.Username != "" && opts.Password != "":
		cred = &Credential{Username: opts.Username, Password: opts.Password}
	case opts.Username != "" || opts.Password != "":
		log.Debug("incomplete credential ignored",
			"username_set", opts.Username != "",
			"password_set", opts.Password != "")
	}

	body := normalizeBody(opts.Body)

	attachments := splitList(opts.Attachments)
	for _, path := range attachments {
		if err := checkReadable(path); err != nil {
			return nil, &Error{Kind: KindAttachmentNotFound, Field: "attachments", Value: path, Err: err}
		}
	}

	msg := &Message{
		Server:       opts.Server,
		Port:         opts.Port,
		From:         opts.From,
		To:           to,
		Cc:           cc,
		Bcc:          bcc,
		ReplyTo:      opts.ReplyTo,
		Subject:      opts.Subject,
		Body:         body,
		Attachments:  attachments,
		UseTLS:       opts.UseTLS,
		HighPriority: opts.HighPriority,
		Credential:   cred,
		SendTimeout:  opts.SendTimeout,
	}

	log.Debug("assembled send request",
		"server", msg.Server,
		"port", msg.Port,
		"recipients", len(msg.To)+len(msg.Cc)+len(msg.Bcc),
		"attachments", len(msg.Attachments),
		"authenticated", msg.Credential != nil)

	return msg, nil
}

// splitList splits a comma separated flag value into trimmed, non-empty
// entries. The to, cc, bcc, and attachments flags all share this shape.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizeBody rewrites the literal two character sequence \n into a
// real line break. Text that already contains real line breaks passes
// through unchanged, so normalizing twice is safe.
func normalizeBody(body string) string {
	return strings.ReplaceAll(body, `\n`, "\n")
}

// checkReadable opens the attachment to prove it exists and is readable
// now, then releases the handle; content is only consumed at send time.
func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
