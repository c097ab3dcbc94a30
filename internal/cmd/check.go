package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/usawa/mailout"
	"github.com/usawa/mailout/internal/email"
	"github.com/usawa/mailout/internal/probe"
	"github.com/usawa/mailout/internal/transport"
	"github.com/usawa/mailout/internal/validate"
)

var (
	checkServer  string
	checkPort    int
	checkEnforce bool
	checkSMTP    bool
	checkTLS     bool
	checkTimeout time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that an SMTP endpoint looks usable",
	Long: `Check an SMTP endpoint without sending anything.

This validates:
  - Host name or IPv4 address syntax
  - Port range, optionally against the standard SMTP ports
  - TCP reachability within the probe timeout
  - The SMTP greeting itself, with --smtp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validate.Host(checkServer) {
			return &email.Error{Kind: email.KindInvalidHost, Field: "server", Value: checkServer}
		}
		if !validate.SMTPPort(checkPort, checkEnforce) {
			return &email.Error{Kind: email.KindInvalidPort, Field: "port", Value: strconv.Itoa(checkPort)}
		}

		addr := fmt.Sprintf("%s:%d", checkServer, checkPort)
		if res := probe.Check(checkServer, checkPort, checkTimeout); res != probe.Reachable {
			return &email.Error{Kind: email.KindHostUnreachable, Field: "server", Value: addr}
		}
		fmt.Printf("✓ %s accepts TCP connections\n", addr)

		if checkSMTP {
			mailer := &transport.Mailer{Timeout: 10 * time.Second}
			if err := mailer.CheckConnection(cmd.Context(), checkServer, checkPort, checkTLS); err != nil {
				return err
			}
			fmt.Printf("✓ %s answers SMTP\n", addr)
		}

		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit, and build date of Mailout.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Mailout %s\n", mailout.Version)
		if mailout.GitCommit != "" {
			fmt.Printf("  Commit: %s\n", mailout.GitCommit)
		}
		if mailout.BuildDate != "" {
			fmt.Printf("  Built:  %s\n", mailout.BuildDate)
		}
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkServer, "server", "", "SMTP server host name or IPv4 address")
	checkCmd.Flags().IntVar(&checkPort, "port", 0, "SMTP server port")
	checkCmd.Flags().BoolVar(&checkEnforce, "enforce-port-allowlist", false, "only accept ports 25, 465, and 587")
	checkCmd.Flags().BoolVar(&checkSMTP, "smtp", false, "also run the SMTP greeting")
	checkCmd.Flags().BoolVar(&checkTLS, "use-tls", false, "require STARTTLS during the --smtp check")
	checkCmd.Flags().DurationVar(&checkTimeout, "probe-timeout", probe.DefaultTimeout, "timeout for the TCP probe")

	checkCmd.MarkFlagRequired("server")
	checkCmd.MarkFlagRequired("port")
}
