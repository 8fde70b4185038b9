package viewstate

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestBestEffort_NeverBlocksCaller(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	done := make(chan struct{})

	start := time.Now()
	bestEffort(nil, "slow write", func() error {
		<-release
		close(done)
		return nil
	})
	require.Less(t, time.Since(start), 100*time.Millisecond)

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("detached work never ran")
	}
}

func TestBestEffort_FailureIsLoggedOnly(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	done := make(chan struct{})
	bestEffort(log, "pref write", func() error {
		defer close(done)
		return errors.New("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("detached work never ran")
	}
	require.Eventually(t, func() bool {
		return len(hook.AllEntries()) == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
