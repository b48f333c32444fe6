package panel

import (
	"time"

	"go-order-panel/models"
)

// Notify shows a notification, replacing the current one and restarting the expiry timer.
func (s *Session) Notify(message, sourceLabel string) {
	s.mu.Lock()
	s.stopNotifyTimerLocked()
	s.notifySeq++
	seq := s.notifySeq
	s.notification = &models.Notification{
		Message:     message,
		SourceLabel: sourceLabel,
		ShownAt:     s.now(),
	}
	s.notifyTimer = time.AfterFunc(s.notificationTTL, func() { s.expireNotification(seq) })
	s.mu.Unlock()

	s.emit(ChangeNotification)
}

func (s *Session) DismissNotification() {
	s.mu.Lock()
	if s.notification == nil {
		s.mu.Unlock()
		return
	}
	s.stopNotifyTimerLocked()
	s.notifySeq++
	s.notification = nil
	s.mu.Unlock()

	s.emit(ChangeNotification)
}

func (s *Session) Notification() (models.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notification == nil {
		return models.Notification{}, false
	}
	return *s.notification, true
}

// expireNotification clears the slot only if it still holds notification seq.
func (s *Session) expireNotification(seq uint64) {
	s.mu.Lock()
	if s.notifySeq != seq || s.notification == nil {
		s.mu.Unlock()
		return
	}
	s.notification = nil
	s.notifyTimer = nil
	s.mu.Unlock()

	s.emit(ChangeNotification)
}

func (s *Session) stopNotifyTimerLocked() {
	if s.notifyTimer != nil {
		s.notifyTimer.Stop()
		s.notifyTimer = nil
	}
}
