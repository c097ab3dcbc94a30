package transport

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/usawa/mailout/internal/email"
)

func testMessage() *email.Message {
	return &email.Message{
		Server:  "smtp.example.com",
		Port:    587,
		From:    "sender@example.com",
		To:      []string{"one@example.com", "two@example.com"},
		Subject: "Weekly report",
		Body:    "First line\nSecond line",
	}
}

func TestBuildMessage(t *testing.T) {
	msg := testMessage()
	msg.Cc = []string{"cc@example.com"}
	msg.Bcc = []string{"bcc@example.com"}
	msg.ReplyTo = "replies@example.com"
	msg.HighPriority = true

	mm, err := buildMessage(msg)
	require.NoError(t, err)

	rcpts, err := mm.GetRecipients()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"one@example.com",
		"two@example.com",
		"cc@example.com",
		"bcc@example.com",
	}, rcpts, "envelope covers to, cc, and bcc")

	subject := mm.GetGenHeader(mail.HeaderSubject)
	require.Len(t, subject, 1)
	assert.Equal(t, "Weekly report", subject[0])

	importance := mm.GetGenHeader(mail.HeaderImportance)
	require.Len(t, importance, 1)
	assert.Equal(t, mail.ImportanceHigh.String(), importance[0])
}

func TestBuildMessageWithoutPriority(t *testing.T) {
	mm, err := buildMessage(testMessage())
	require.NoError(t, err)
	assert.Empty(t, mm.GetGenHeader(mail.HeaderImportance))
}

func TestBuildMessageAttachments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0644))

	msg := testMessage()
	msg.Attachments = []string{path}

	mm, err := buildMessage(msg)
	require.NoError(t, err)
	assert.Len(t, mm.GetAttachments(), 1)
}

func TestBuildClientTLSPolicy(t *testing.T) {
	m := &Mailer{}

	tests := []struct {
		name   string
		port   int
		useTLS bool
		want   string
	}{
		{"submission with tls flag", 587, true, mail.TLSMandatory.String()},
		{"classic smtp without tls flag", 25, false, mail.TLSOpportunistic.String()},
		{"alternate port with tls flag", 2525, true, mail.TLSMandatory.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := m.buildClient("smtp.example.com", tt.port, tt.useTLS, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.TLSPolicy())
			assert.Equal(t, "smtp.example.com:"+strconv.Itoa(tt.port), client.ServerAddr())
		})
	}
}

func TestBuildClientWithCredential(t *testing.T) {
	m := &Mailer{Timeout: 10 * time.Second}
	cred := &email.Credential{Username: "mailer", Password: "hunter2"}

	client, err := m.buildClient("smtp.example.com", 587, true, cred)
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestSendWrapsDialFailure(t *testing.T) {
	host, port, portStr := deadEndpoint(t)

	msg := testMessage()
	msg.Server = host
	msg.Port = port

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	m := &Mailer{Timeout: 2 * time.Second}
	err := m.Send(ctx, msg)
	require.Error(t, err)

	var reqErr *email.Error
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, email.KindTransportFailure, reqErr.Kind)
	assert.Equal(t, host+":"+portStr, reqErr.Value)
}

func TestCheckConnectionRefused(t *testing.T) {
	host, port, _ := deadEndpoint(t)

	m := &Mailer{Timeout: 2 * time.Second}
	err := m.CheckConnection(context.Background(), host, port, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection")
}

// deadEndpoint returns a loopback address that refuses connections.
func deadEndpoint(t *testing.T) (string, int, string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	ln.Close()
	return host, port, portStr
}
