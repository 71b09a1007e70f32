package recovery

import (
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Invoker runs the configured recovery command to completion. The child
// inherits the canary's standard streams and runs without a timeout: a
// hung recovery stalls the probe loop instead of triggering recovery a
// second time.
type Invoker struct {
	command []string
}

func New(command []string) (*Invoker, error) {
	if len(command) == 0 {
		return nil, errors.New("recovery command must not be empty")
	}

	return &Invoker{command: command}, nil
}

func (i *Invoker) Recover() error {
	cmdline := strings.Join(i.command, " ")
	log.Infof("running recovery command: %s", cmdline)

	cmd := exec.Command(i.command[0], i.command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "recovery command %q failed", cmdline)
	}

	log.Debug("recovery command completed")
	return nil
}
