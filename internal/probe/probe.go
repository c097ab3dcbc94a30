/*
Package probe provides a TCP reachability check for SMTP endpoints.

The probe only answers one question: does something accept connections at
host:port right now? It speaks no SMTP and sends no bytes, so it can run
before a request is handed to the mail transport.
*/
package probe

import (
	"net"
	"strconv"
	"time"
)

// DefaultTimeout bounds a probe when the caller supplies no timeout of
// its own.
const DefaultTimeout = 500 * time.Millisecond

// dialTimeout is swapped out in tests.
var dialTimeout = net.DialTimeout

// Result is the outcome of a reachability check.
type Result string

const (
	// NotAttempted means no probe ran for this request.
	NotAttempted Result = "not attempted"
	// Reachable means the endpoint accepted a TCP connection in time.
	Reachable Result = "reachable"
	// Unreachable means no connection could be established before the
	// timeout expired.
	Unreachable Result = "unreachable"
)

// Check dials host:port over TCP and reports whether the endpoint
// accepted the connection within timeout. The connection is closed as
// soon as it is established; a refused, filtered, or timed out dial all
// count as Unreachable rather than an error.
func Check(host string, port int, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := dialTimeout("tcp", addr, timeout)
	if err != nil {
		return Unreachable
	}
	conn.Close()

	return Reachable
}
