package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/sync/cio"
	"github.com/cenkalti/backoff/v4"
	logp "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "alarmctl",
})

var (
	addr    string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "alarmctl",
	Short:         "Talk to a running alarmd over its TCP console.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var alarmCmd = &cobra.Command{
	Use:   "alarm",
	Short: "Ask whether the alarm is latched.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return query('1')
	},
}

var gasCmd = &cobra.Command{
	Use:   "gas",
	Short: "Ask for the gas sensor status.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return query('2')
	},
}

var tempCmd = &cobra.Command{
	Use:   "temp",
	Short: "Ask for the temperature sensor status.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return query('3')
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the command menu the monitor offers.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return query('?')
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream console output until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		conn, err := dial()
		if err != nil {
			return err
		}
		go func() {
			<-ctx.Done()
			_ = conn.Close()
		}()

		if _, err := io.Copy(os.Stdout, conn); err != nil && ctx.Err() == nil {
			return fmt.Errorf("connection lost: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().
		StringVarP(&addr, "addr", "a", "localhost:2323", "console address of the alarmd daemon")
	rootCmd.PersistentFlags().
		DurationVarP(&timeout, "timeout", "t", 2*time.Second, "how long to mirror replies")
	rootCmd.AddCommand(alarmCmd, gasCmd, tempCmd, menuCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("command failed", "err", err)
	}
}

// query sends one command byte and mirrors whatever the console says
// back within the reply window. With a hazard active that includes the
// warning lines, which is the point.
func query(b byte) error {
	conn, err := dial()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	if _, err := conn.Write([]byte{b}); err != nil {
		return fmt.Errorf("could not send command: %w", err)
	}

	deadline := time.Now().Add(timeout)
	var total int
	for {
		left := time.Until(deadline)
		if left <= 0 {
			break
		}
		buf := make([]byte, 256)
		n, err := cio.TimeoutReader(conn, left).Read(buf)
		if n > 0 {
			total += n
			_, _ = os.Stdout.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	if total == 0 {
		return fmt.Errorf("no reply from %s", addr)
	}
	return nil
}

func dial() (net.Conn, error) {
	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4)
	var conn net.Conn
	if err := backoff.Retry(func() (err error) {
		conn, err = net.DialTimeout("tcp", addr, timeout)
		return
	}, bo); err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", addr, err)
	}
	return conn, nil
}
