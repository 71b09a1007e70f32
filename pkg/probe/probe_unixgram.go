package probe

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// UnixgramProbe checks that a local datagram socket accepts a connection
// and becomes writable within a bounded time. Write readiness is the
// signal that matters: a syslog daemon that stopped draining its socket
// leaves the kernel-side receive buffer full, and the probe socket never
// polls writable.
type UnixgramProbe struct {
	Path     string
	Timeout  time.Duration
	Recovery Recoverer
}

// Exec runs one probe cycle. A connect or write timeout invokes the
// recoverer exactly once and is reported through the returned Status;
// any other failure is returned as an error without touching the
// recoverer. The probe socket is private to the call and closed on
// every exit path.
func (p *UnixgramProbe) Exec() (Status, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_DGRAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return StatusUnknown, errors.Wrap(err, "failed to create probe socket")
	}

	defer func() {
		_ = unix.Close(fd)
	}()

	err = unix.Connect(fd, &unix.SockaddrUnix{Name: p.Path})
	switch err {
	case nil:
		// datagram connects to an existing path complete synchronously,
		// no remote accept is involved
	case unix.EINPROGRESS, unix.EAGAIN:
		writable, err := waitWritable(fd, p.Timeout)
		if err != nil {
			return StatusUnknown, err
		}

		if !writable {
			log.WithField("path", p.Path).Warnf("socket did not accept a connection within %s", p.Timeout)
			return StatusConnectTimeout, p.Recovery.Recover()
		}

		// the connect completed while we waited; a pending socket error
		// means it completed unsuccessfully
		soerr, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
		if err != nil {
			return StatusUnknown, errors.Wrapf(err, "failed to read pending error state of %q", p.Path)
		}

		if soerr != 0 {
			return StatusUnknown, errors.Wrapf(unix.Errno(soerr), "connect to %q failed", p.Path)
		}
	default:
		return StatusUnknown, errors.Wrapf(err, "failed to connect to %q", p.Path)
	}

	writable, err := waitWritable(fd, p.Timeout)
	if err != nil {
		return StatusUnknown, err
	}

	if !writable {
		log.WithField("path", p.Path).Warnf("socket did not become writable within %s", p.Timeout)
		return StatusWriteTimeout, p.Recovery.Recover()
	}

	log.WithField("path", p.Path).Debug("socket is accepting writes")
	return StatusHealthy, nil
}

// waitWritable waits up to timeout for fd to become ready for writing.
// It returns false when the wait elapses without readiness.
func waitWritable(fd int, timeout time.Duration) (bool, error) {
	wset := &unix.FdSet{}
	wset.Set(fd)

	tv := unix.NsecToTimeval(timeout.Nanoseconds())

	n, err := unix.Select(fd+1, nil, wset, nil, &tv)
	if err != nil {
		return false, errors.Wrap(err, "failed to wait for socket writability")
	}

	return n > 0, nil
}
