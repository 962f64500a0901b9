package cli

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cube3d"
	"github.com/SeamusWaldron/cube3d/internal/storage"
)

// sessionRecorder writes completed turns of one session to the database.
// Turns are recorded when their animation finishes, so cancelled and
// dropped requests never reach the history.
type sessionRecorder struct {
	sessions *storage.SessionRepository
	turns    *storage.TurnRepository
	log      logrus.FieldLogger

	id     string
	offset float64
	index  int
	now    func() time.Time
}

func newSessionRecorder(db *storage.DB, source, notes, device string, offset float64, log logrus.FieldLogger) (*sessionRecorder, error) {
	r := &sessionRecorder{
		sessions: storage.NewSessionRepository(db),
		turns:    storage.NewTurnRepository(db),
		offset:   offset,
		now:      time.Now,
	}

	id, err := r.sessions.Create(source, notes, device)
	if err != nil {
		return nil, err
	}
	r.id = id
	r.log = log.WithField("session", id)
	r.log.Info("recording session")
	return r, nil
}

// ID returns the session ID.
func (r *sessionRecorder) ID() string {
	return r.id
}

// Count returns the number of turns recorded so far.
func (r *sessionRecorder) Count() int {
	return r.index
}

// Record stores one completed turn. It has the signature of a turn
// completion observer; requests that moved nothing are skipped.
func (r *sessionRecorder) Record(rot cube3d.Rotation, moved int) {
	if moved == 0 {
		return
	}
	if _, err := r.turns.Create(r.id, r.index, r.now(), rot, rot.Notation(r.offset)); err != nil {
		r.log.WithError(err).Error("failed to record turn")
		return
	}
	r.index++
}

// Close ends the session.
func (r *sessionRecorder) Close() error {
	return r.sessions.End(r.id)
}
