package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/usawa/mailout/internal/email"
	"github.com/usawa/mailout/internal/transport"
)

var (
	server         string
	port           int
	from           string
	to             string
	cc             string
	bcc            string
	replyTo        string
	subject        string
	body           string
	attachments    string
	username       string
	password       string
	useTLS         bool
	highPriority   bool
	testConnection bool
	dryRun         bool
	enforcePorts   bool
	insecureTLS    bool
	sendTimeout    time.Duration
	probeTimeout   time.Duration
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Validate inputs and send one email",
	Long: `Validate every input and send a single email through the given
SMTP server.

The checks run in a fixed order and the first failure stops the run:
server host, port, optional reachability probe, sender, recipients,
CC, BCC, credentials, and attachments. Use --dry-run to run every
check without sending anything.

The to, cc, bcc, and attachments flags take comma separated lists.
A literal \n in the body becomes a line break. Credentials are only
used when both --user and --password are given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		opts := email.Options{
			Server:         server,
			Port:           port,
			From:           from,
			To:             to,
			Cc:             cc,
			Bcc:            bcc,
			ReplyTo:        replyTo,
			Subject:        subject,
			Body:           body,
			Attachments:    attachments,
			Username:       username,
			Password:       password,
			UseTLS:         useTLS,
			HighPriority:   highPriority,
			TestConnection: testConnection,
			EnforcePorts:   enforcePorts,
			ProbeTimeout:   probeTimeout,
			SendTimeout:    sendTimeout,
		}

		msg, err := email.Assemble(opts)
		if err != nil {
			return err
		}

		if verbose {
			if err := echoMessage(msg); err != nil {
				return err
			}
		}

		if dryRun {
			fmt.Println("✓ Dry run: all inputs are valid, nothing was sent")
			return nil
		}

		mailer := &transport.Mailer{
			Timeout:     msg.SendTimeout,
			InsecureTLS: insecureTLS,
		}
		if err := mailer.Send(ctx, msg); err != nil {
			return err
		}

		fmt.Printf("✓ Message sent to %d recipient(s) via %s:%d\n",
			len(msg.To)+len(msg.Cc)+len(msg.Bcc), msg.Server, msg.Port)
		return nil
	},
}

// echoMessage prints the assembled request to stdout, secrets redacted.
func echoMessage(msg *email.Message) error {
	out, err := yaml.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to render send request: %w", err)
	}
	fmt.Println("Assembled send request:")
	fmt.Print(string(out))
	return nil
}

func init() {
	sendCmd.Flags().StringVar(&server, "server", "", "SMTP server host name or IPv4 address")
	sendCmd.Flags().IntVar(&port, "port", 0, "SMTP server port")
	sendCmd.Flags().StringVar(&from, "from", "", "sender address")
	sendCmd.Flags().StringVar(&to, "to", "", "recipient addresses, comma separated")
	sendCmd.Flags().StringVar(&subject, "subject", "", "message subject")
	sendCmd.Flags().StringVar(&body, "body", "", "plain text message body")
	sendCmd.Flags().StringVar(&cc, "cc", "", "CC addresses, comma separated")
	sendCmd.Flags().StringVar(&bcc, "bcc", "", "BCC addresses, comma separated")
	sendCmd.Flags().StringVar(&replyTo, "reply-to", "", "reply-to address")
	sendCmd.Flags().StringVar(&attachments, "attachments", "", "attachment paths, comma separated")
	sendCmd.Flags().StringVar(&username, "user", "", "SMTP username")
	sendCmd.Flags().StringVar(&password, "password", "", "SMTP password")
	sendCmd.Flags().BoolVar(&useTLS, "use-tls", false, "require STARTTLS for the SMTP session")
	sendCmd.Flags().BoolVar(&highPriority, "high-priority", false, "mark the message as high priority")
	sendCmd.Flags().BoolVar(&testConnection, "test-connection", false, "probe the server over TCP before assembling the send")
	sendCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate all inputs but do not send")
	sendCmd.Flags().BoolVar(&enforcePorts, "enforce-port-allowlist", false, "only accept ports 25, 465, and 587")
	sendCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	sendCmd.Flags().DurationVar(&sendTimeout, "timeout", 0, "timeout for the SMTP conversation (default 15s)")
	sendCmd.Flags().DurationVar(&probeTimeout, "probe-timeout", 0, "timeout for the TCP probe (default 500ms)")

	sendCmd.MarkFlagRequired("server")
	sendCmd.MarkFlagRequired("port")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("subject")
	sendCmd.MarkFlagRequired("body")
}
