package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/exoscale/syslog-canary/pkg/canary"
	"github.com/exoscale/syslog-canary/pkg/probe"
	"github.com/exoscale/syslog-canary/pkg/recovery"
)

var (
	debug     bool
	silent    bool
	logSocket string
	frequency int
	timeout   int
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "log debug messages")
	rootCmd.PersistentFlags().BoolVarP(&silent, "silent", "s", false, "only log warnings and errors")
	rootCmd.Flags().StringVarP(&logSocket, "log", "l", "/dev/log", "socket path to probe")
	rootCmd.Flags().IntVarP(&frequency, "frequency", "f", 30, "seconds between probe cycle starts")
	rootCmd.Flags().IntVarP(&timeout, "timeout", "t", 5, "maximum seconds for each readiness wait")

	// everything after the first positional token belongs to the
	// recovery command, not to us
	rootCmd.Flags().SetInterspersed(false)
}

var rootCmd = &cobra.Command{
	Use:   "syslog-canary [flags] command [args...]",
	Short: "Liveness canary for a local syslog socket",
	Long: "syslog-canary periodically checks that a local datagram socket accepts " +
		"a connection and is writable within a bounded time, and runs the given " +
		"recovery command (typically a daemon restart) whenever it is not.",
	Version: Version,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFlags()
	},
	Run: func(cmd *cobra.Command, args []string) {
		switch {
		case debug:
			log.SetLevel(log.DebugLevel)
		case silent:
			log.SetLevel(log.WarnLevel)
		}

		invoker, err := recovery.New(args)
		if err != nil {
			log.Fatal(err)
		}

		c := &canary.Canary{
			Frequency: time.Duration(frequency) * time.Second,
			Probe: &probe.UnixgramProbe{
				Path:     logSocket,
				Timeout:  time.Duration(timeout) * time.Second,
				Recovery: invoker,
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		signals := make(chan os.Signal, 1)
		signal.Notify(signals,
			syscall.SIGTERM,
			syscall.SIGINT,
		)

		go func() {
			s := <-signals
			log.Infof("received signal %s", s.String())
			cancel()
		}()

		log.Infof("probing %s every %ds with a %ds timeout", logSocket, frequency, timeout)

		if err := c.Run(ctx); err != nil {
			log.Fatal(err)
		}
	},
}

func validateFlags() error {
	if debug && silent {
		return errors.New("--debug and --silent are mutually exclusive")
	}

	if frequency <= 0 {
		return errors.Errorf("--frequency must be positive, got %d", frequency)
	}

	if timeout <= 0 {
		return errors.Errorf("--timeout must be positive, got %d", timeout)
	}

	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
