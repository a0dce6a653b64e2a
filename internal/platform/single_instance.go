package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another timer window already holds the lock.
var ErrAlreadyRunning = errors.New("magictimer already running")

const (
	minGuardPort = 20000
	maxGuardPort = 39999

	activateCommand = "activate"
	activateReply   = "ok"
	activateTimeout = time.Second
)

// InstanceGuard holds the single-instance lock and answers activation
// requests from later launches.
type InstanceGuard struct {
	listener net.Listener
	once     sync.Once
}

// AcquireSingleInstance binds a localhost port derived from appName so that
// only one GUI timer runs per user session.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := guardAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s in use", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener}, nil
}

// OnActivate calls handler whenever another launch asks the running timer to
// come forward. Only the first call installs a handler.
func (guard *InstanceGuard) OnActivate(handler func()) {
	if guard == nil || guard.listener == nil || handler == nil {
		return
	}
	guard.once.Do(func() {
		go guard.serve(handler)
	})
}

// Release frees the lock. It is safe on a nil guard.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

// ActivateRunning asks the timer holding the lock for appName to show its
// window.
func ActivateRunning(appName string) error {
	conn, err := net.DialTimeout("tcp", guardAddress(appName), activateTimeout)
	if err != nil {
		return fmt.Errorf("contact running timer: %w", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(activateTimeout))

	if _, err := fmt.Fprintln(conn, activateCommand); err != nil {
		return fmt.Errorf("send activate: %w", err)
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("read activate reply: %w", err)
	}
	if strings.TrimSpace(reply) != activateReply {
		return fmt.Errorf("unexpected activate reply %q", strings.TrimSpace(reply))
	}
	return nil
}

func (guard *InstanceGuard) serve(handler func()) {
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		if handleActivate(conn) {
			handler()
		}
	}
}

func handleActivate(conn net.Conn) bool {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(activateTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil || strings.TrimSpace(line) != activateCommand {
		return false
	}
	_, _ = fmt.Fprintln(conn, activateReply)
	return true
}

func guardAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	span := uint32(maxGuardPort - minGuardPort + 1)
	return minGuardPort + int(hash.Sum32()%span)
}
