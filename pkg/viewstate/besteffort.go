package viewstate

import "github.com/sirupsen/logrus"

// bestEffort runs fn detached from the caller. Failure is logged and never
// surfaced: last-viewed bookkeeping is a convenience, not a correctness
// path, and must never block or fail a load. This is a named policy so
// tests can assert the call site does not wait.
func bestEffort(log *logrus.Logger, op string, fn func() error) {
	go func() {
		if err := fn(); err != nil && log != nil {
			log.WithError(err).Warnf("best-effort %s failed", op)
		}
	}()
}
