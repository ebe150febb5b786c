package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/mockapi"
	"github.com/crossorg/hrconsole/internal/server"
	"github.com/crossorg/hrconsole/internal/version"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Local stand-in for the platform backend",
}

var mockServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the mock backend",
	Long: `Serve an in-memory copy of the platform API under /api, seeded with demo
companies, employees, evaluations and accounts:

  admin / admin123    system administrator
  company1 / pwd123   company administrator
  hr1 / pwd123        HR
  user1 / pwd123      employee

The server drains connections on SIGTERM or SIGINT.

Example:
  hrconsole mock serve --addr :8123
  hrconsole --api-url http://localhost:8123/api login -u admin`,
	Args: cobra.NoArgs,
	RunE: runMockServe,
}

var (
	mockAddr            string
	mockTokenTTL        time.Duration
	mockShutdownTimeout time.Duration
)

func init() {
	mockServeCmd.Flags().StringVar(&mockAddr, "addr", "", "listen address (default mock.addr)")
	mockServeCmd.Flags().DurationVar(&mockTokenTTL, "token-ttl", 24*time.Hour, "lifetime of issued tokens")
	mockServeCmd.Flags().DurationVar(&mockShutdownTimeout, "shutdown-timeout", 10*time.Second, "maximum time to drain connections")

	mockCmd.AddCommand(mockServeCmd)
	rootCmd.AddCommand(mockCmd)
}

func runMockServe(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	logger := cc.Logger()

	addr := mockAddr
	if addr == "" {
		addr = cc.Config.Mock.Addr
	}

	backend, err := mockapi.New(mockapi.Options{
		JWTSecret: cc.Config.Mock.JWTSecret,
		TokenTTL:  mockTokenTTL,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	srv := server.NewServer(backend.Handler(), server.Config{
		Address:         addr,
		ShutdownTimeout: mockShutdownTimeout,
		Logger:          logger,
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	base := "http://" + displayAddr(ln.Addr())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s mock backend %s\n", version.Name, version.GetInfo().Short())
	fmt.Fprintf(out, "Listening on: %s/api\n", base)
	fmt.Fprintf(out, "Readiness:    %s/healthz\n", base)
	fmt.Fprintf(out, "Metrics:      %s/metrics\n\n", base)
	fmt.Fprintf(out, "Press Ctrl+C to stop the server\n")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx, ln); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	fmt.Fprintln(out, "Server stopped gracefully")
	return nil
}

// displayAddr turns a wildcard listen address into one a browser can open.
func displayAddr(a net.Addr) string {
	tcp, ok := a.(*net.TCPAddr)
	if !ok || !tcp.IP.IsUnspecified() {
		return a.String()
	}
	return net.JoinHostPort("localhost", strconv.Itoa(tcp.Port))
}
