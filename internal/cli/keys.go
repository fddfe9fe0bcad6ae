package cli

import (
	"context"
	"os"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/logger"
	"golang.org/x/term"
)

// Key bytes that trigger cancellation.
const (
	keyEsc   = 0x1b
	keyCtrlC = 0x03
)

// watchKeys puts stdin into raw mode and cancels when Esc, q, or Ctrl+C
// is pressed. The returned function restores the terminal and must be
// called on every exit path. When stdin is not a terminal (e.g. running
// under a service manager) the watcher is skipped and signals remain
// the only cancellation trigger.
func watchKeys(cancel context.CancelFunc, log logger.Logger) func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		log.Debug("stdin is not a terminal; Esc cancellation disabled")
		return func() {}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		log.Warn("failed to enter raw mode, Esc cancellation disabled: %v", err)
		return func() {}
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 1 && (buf[0] == keyEsc || buf[0] == 'q' || buf[0] == keyCtrlC) {
				log.Info("Esc pressed")
				cancel()
				return
			}
		}
	}()

	return func() {
		_ = term.Restore(fd, oldState)
	}
}
