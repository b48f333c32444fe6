package panel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyReplacesAndExpires(t *testing.T) {
	s := newTestSession(t, newFakeHost(), WithNotificationTTL(200*time.Millisecond))

	s.Notify("first", "Burger Shot")
	time.Sleep(120 * time.Millisecond)
	s.Notify("second", "Pearls")

	// The first notification's timer would have fired by now.
	time.Sleep(120 * time.Millisecond)
	n, ok := s.Notification()
	require.True(t, ok)
	assert.Equal(t, "second", n.Message)
	assert.Equal(t, "Pearls", n.SourceLabel)

	assert.Eventually(t, func() bool {
		_, ok := s.Notification()
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestDismissNotification(t *testing.T) {
	s := newTestSession(t, newFakeHost())

	s.Notify("ready", "Burger Shot")
	s.DismissNotification()

	_, ok := s.Notification()
	assert.False(t, ok)

	// Dismissing an empty slot is harmless.
	s.DismissNotification()
}

func TestNotificationChangesAreBroadcast(t *testing.T) {
	s := newTestSession(t, newFakeHost(), WithNotificationTTL(20*time.Millisecond))
	changes := make(chan ChangeKind, 4)
	s.Subscribe(func(k ChangeKind) { changes <- k })

	s.Notify("ready", "Burger Shot")

	assert.Equal(t, ChangeNotification, <-changes)
	select {
	case k := <-changes:
		assert.Equal(t, ChangeNotification, k)
	case <-time.After(time.Second):
		t.Fatal("expiry was not broadcast")
	}
}
