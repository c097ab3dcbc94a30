/*
Package mailout provides a small command line utility that validates its
inputs and sends a single email through an SMTP server.

Mailout is deliberately narrow: one invocation, one message. It covers:
  - Syntax validation of addresses, host names, and ports before any
    network traffic happens
  - An optional TCP reachability probe of the SMTP endpoint
  - Plain text bodies with attachments, CC/BCC lists, and an optional
    high priority flag
  - STARTTLS or implicit TLS, with optional SMTP authentication

# Usage

Basic usage:

	mailout send --server smtp.example.com --port 587 \
	    --from alice@example.com --to bob@example.com \
	    --subject "Hello" --body "First line\nSecond line"
	mailout send ... --dry-run        # Validate everything, send nothing
	mailout check --server smtp.example.com --port 587
	mailout version

For more information, see the documentation at https://github.com/usawa/mailout
*/
package mailout

// Version is the current version of Mailout
const Version = "1.0.0"

// BuildDate is set at build time
var BuildDate string

// GitCommit is set at build time
var GitCommit string
