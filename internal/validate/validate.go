/*
Package validate provides syntax validation for send request inputs:
email addresses, SMTP server hosts, and ports.

All checks are pure string inspection. Nothing here touches the network,
so a request can be rejected before any connection is attempted.
*/
package validate

import (
	"net"
	"regexp"
	"strings"
)

// Limits from RFC 1035 for host names.
const (
	maxHostLen  = 255
	maxLabelLen = 63
)

// DefaultSMTPPorts is the allow-list applied when port enforcement is
// requested: classic SMTP, implicit TLS, and STARTTLS submission.
var DefaultSMTPPorts = []int{25, 465, 587}

// addressRe accepts a dot separated local part (no angle brackets,
// parentheses, square brackets, backslashes, commas, semicolons, colons,
// whitespace, extra @ signs, or quotes in a run) or a quoted string,
// followed by a bracketed dotted-quad literal or a dotted host name whose
// top level domain is at least two letters.
var addressRe = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// Address reports whether addr is a syntactically valid email address.
func Address(addr string) bool {
	return addressRe.MatchString(addr)
}

// Host reports whether host names a usable SMTP server: either a fully
// qualified domain name or a dotted-quad IPv4 address.
func Host(host string) bool {
	return IPv4(host) || FQDN(host)
}

// IPv4 reports whether host is a dotted-quad IPv4 address.
func IPv4(host string) bool {
	// ParseIP also accepts IPv6 and v4-mapped forms; only plain dotted
	// quads count here.
	if strings.Contains(host, ":") {
		return false
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.To4() != nil
}

// FQDN reports whether host is a fully qualified domain name: at least
// two dot separated labels of letters, digits, and inner hyphens, at most
// 255 characters overall and 63 per label, and a final label that is not
// purely numeric.
func FQDN(host string) bool {
	if host == "" || len(host) > maxHostLen {
		return false
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !validLabel(label) {
			return false
		}
	}

	// A purely numeric final label would make the name look like a
	// broken IP literal rather than a domain.
	return !numeric(labels[len(labels)-1])
}

// Port reports whether port is inside the valid TCP range.
func Port(port int) bool {
	return port >= 1 && port <= 65535
}

// SMTPPort reports whether port is acceptable for a send: inside the TCP
// range and, when enforce is set, listed in DefaultSMTPPorts.
func SMTPPort(port int, enforce bool) bool {
	return SMTPPortIn(port, enforce, DefaultSMTPPorts)
}

// SMTPPortIn is SMTPPort against a caller supplied allow-list.
func SMTPPortIn(port int, enforce bool, allowed []int) bool {
	if !Port(port) {
		return false
	}
	if !enforce {
		return true
	}
	for _, p := range allowed {
		if p == port {
			return true
		}
	}
	return false
}

func validLabel(label string) bool {
	if label == "" || len(label) > maxLabelLen {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if !isAlphaNum(c) && c != '-' {
			return false
		}
	}
	return true
}

func isAlphaNum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func numeric(label string) bool {
	for i := 0; i < len(label); i++ {
		if label[i] < '0' || label[i] > '9' {
			return false
		}
	}
	return true
}
