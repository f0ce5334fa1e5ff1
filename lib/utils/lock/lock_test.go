package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`second caller times out while first holds the key`, func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		var firstOk bool
		var firstErr error
		wg := sync.WaitGroup{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			firstOk, firstErr = WithDelay(context.Background(), "sync", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		require.True(t, IsLocked("sync"))

		ok, err := WithDelay(context.Background(), "sync", 120*time.Millisecond, func() error {
			return nil
		})
		require.False(t, ok)
		require.Nil(t, err)

		close(release)
		wg.Wait()
		require.True(t, firstOk)
		require.Nil(t, firstErr)
		require.False(t, IsLocked("sync"))
	})

	t.Run(`different keys do not block`, func(t *testing.T) {
		ok, err := WithDelay(context.Background(), "a", time.Millisecond, func() error {
			inner, innerErr := WithDelay(context.Background(), "b", time.Millisecond, func() error { return nil })
			require.True(t, inner)
			return innerErr
		})
		require.True(t, ok)
		require.Nil(t, err)
	})
}
