// file: internals/features/attendance/events/notifier.go
//
// Sink notifikasi fire-and-forget. Kegagalan kirim TIDAK PERNAH memengaruhi
// hasil transaksi core — event dikirim setelah commit, di goroutine sendiri.
package events

import (
	"log"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventSessionOpened        EventKind = "session_opened"
	EventVerificationAccepted EventKind = "verification_accepted"
	EventVerificationRejected EventKind = "verification_rejected"
)

type Event struct {
	Kind      EventKind
	CompanyID uuid.UUID
	SessionID uuid.UUID
	StudentID uuid.UUID // Nil untuk event level sesi
	Detail    string
}

type Notifier interface {
	Notify(ev Event)
}

// LogNotifier: default — cuma tulis ke log aplikasi.
type LogNotifier struct{}

func (LogNotifier) Notify(ev Event) {
	log.Printf("[NOTIFY] kind=%s company=%s session=%s student=%s detail=%q",
		ev.Kind, ev.CompanyID, ev.SessionID, ev.StudentID, ev.Detail)
}

// Dispatch: kirim async; panic di notifier pun ditelan supaya core aman.
func Dispatch(n Notifier, ev Event) {
	if n == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[NOTIFY] panic ditelan: %v", r)
			}
		}()
		n.Notify(ev)
	}()
}
