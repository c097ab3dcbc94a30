package email

import (
	"fmt"
	"strings"
)

// Kind classifies why a send request was rejected. There is one kind per
// rejectable input plus one for the transport itself.
type Kind string

const (
	KindInvalidHost        Kind = "invalid_host"
	KindInvalidPort        Kind = "invalid_port"
	KindHostUnreachable    Kind = "host_unreachable"
	KindInvalidSender      Kind = "invalid_sender"
	KindInvalidRecipient   Kind = "invalid_recipient"
	KindInvalidCc          Kind = "invalid_cc"
	KindInvalidBcc         Kind = "invalid_bcc"
	KindAttachmentNotFound Kind = "attachment_not_found"
	KindTransportFailure   Kind = "transport_failure"
)

// describe returns the human readable form of a kind.
func (k Kind) describe() string {
	switch k {
	case KindInvalidHost:
		return "invalid server host"
	case KindInvalidPort:
		return "invalid port"
	case KindHostUnreachable:
		return "server not reachable"
	case KindInvalidSender:
		return "invalid sender address"
	case KindInvalidRecipient:
		return "invalid recipient address"
	case KindInvalidCc:
		return "invalid CC address"
	case KindInvalidBcc:
		return "invalid BCC address"
	case KindAttachmentNotFound:
		return "attachment not readable"
	case KindTransportFailure:
		return "failed to send message"
	default:
		return string(k)
	}
}

// Error is a rejected send request. Field names the flag whose input was
// refused and Value carries the exact offending input, so the one line
// message always tells the operator what to fix.
type Error struct {
	Kind  Kind
	Field string
	Value string
	Err   error
}

// Error formats the rejection as a single line.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.describe())
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s=%q", e.Field, e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}
