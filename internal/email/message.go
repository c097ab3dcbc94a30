/*
Package email assembles validated SMTP send requests.

The package turns the raw flag surface of the CLI (Options) into a
Message: every address, host, and port checked, list flags split, the
body normalized, and every attachment confirmed readable. A Message that
came out of Assemble needs no further validation and is treated as
read-only by everything downstream.
*/
package email

import (
	"fmt"
	"time"

	"dario.cat/mergo"

	"github.com/usawa/mailout/internal/probe"
)

// Credential is an SMTP username and password pair. Requests carry one
// only when both halves were supplied; a lone username or password is
// dropped during assembly.
type Credential struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MarshalYAML hides the password in diagnostic output.
func (c Credential) MarshalYAML() (interface{}, error) {
	return struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	}{Username: c.Username, Password: "[redacted]"}, nil
}

// Message is one fully validated send request.
type Message struct {
	Server       string      `yaml:"server"`
	Port         int         `yaml:"port"`
	From         string      `yaml:"from"`
	To           []string    `yaml:"to"`
	Cc           []string    `yaml:"cc,omitempty"`
	Bcc          []string    `yaml:"bcc,omitempty"`
	ReplyTo      string      `yaml:"reply_to,omitempty"`
	Subject      string      `yaml:"subject"`
	Body         string      `yaml:"body"`
	Attachments  []string    `yaml:"attachments,omitempty"`
	UseTLS       bool        `yaml:"use_tls"`
	HighPriority bool        `yaml:"high_priority"`
	Credential   *Credential `yaml:"credential,omitempty"`

	// SendTimeout bounds the SMTP conversation for this request. It is
	// transport configuration, not message content, so the verbose echo
	// skips it.
	SendTimeout time.Duration `yaml:"-"`
}

// Options is the raw, unvalidated input for one send. The list fields
// (To, Cc, Bcc, Attachments) hold comma separated strings exactly as
// they were typed on the command line.
type Options struct {
	Server         string
	Port           int
	From           string
	To             string
	Cc             string
	Bcc            string
	ReplyTo        string
	Subject        string
	Body           string
	Attachments    string
	Username       string
	Password       string
	UseTLS         bool
	HighPriority   bool
	TestConnection bool
	EnforcePorts   bool
	ProbeTimeout   time.Duration
	SendTimeout    time.Duration
}

// DefaultOptions supplies the values used for anything the flags leave
// unset.
var DefaultOptions = Options{
	ProbeTimeout: probe.DefaultTimeout,
	SendTimeout:  15 * time.Second,
}

// withDefaults layers DefaultOptions under opts. Anything the caller set
// explicitly wins.
func withDefaults(opts Options) (Options, error) {
	if err := mergo.Merge(&opts, DefaultOptions); err != nil {
		return opts, fmt.Errorf("failed to apply default options: %w", err)
	}
	return opts, nil
}
