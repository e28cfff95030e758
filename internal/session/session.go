package session

import (
	"context"
	"time"

	"calculator-backend/internal/calc"
	"calculator-backend/internal/display"
	"calculator-backend/internal/modal"
	"calculator-backend/internal/parse"
	"calculator-backend/internal/runloop"
)

// Session is one calculator bound to its own screen and run loop.
// Engine and modal state are only touched from the loop goroutine.
type Session struct {
	ID        string
	CreatedAt time.Time

	screen *display.Screen
	loop   *runloop.Loop
	engine *calc.Engine

	modalOpen bool
}

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	ID              string `json:"id"`
	Display         string `json:"display"`
	CurrentOperand  string `json:"currentOperand"`
	PreviousOperand string `json:"previousOperand"`
	Operation       string `json:"operation"`
	Mode            string `json:"mode"`
	ModalOpen       bool   `json:"modalOpen"`
}

func newSession(id string, queueSize int, opts calc.Options) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		screen:    display.NewScreen(),
		loop:      runloop.New(id, queueSize),
	}
	s.engine = calc.New(s.screen, s.loop, opts)
	s.loop.Start()
	return s
}

// Exec applies cmd on the session's loop and returns the resulting state.
func (s *Session) Exec(ctx context.Context, cmd parse.Command) (Snapshot, error) {
	var snap Snapshot
	err := s.loop.Do(ctx, func() {
		cmd.Apply(s.engine)
		snap = s.snapshot()
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Snapshot reads the session state on its loop.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.loop.Do(ctx, func() { snap = s.snapshot() })
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Subscribe streams every display write. Call the returned func to stop.
func (s *Session) Subscribe() (<-chan string, func()) {
	return s.screen.Subscribe()
}

// OpenModal shows the session's modal.
func (s *Session) OpenModal(ctx context.Context) (*modal.View, error) {
	var v *modal.View
	err := s.loop.Do(ctx, func() {
		s.modalOpen = true
		v = s.renderModal()
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CloseModal presses the modal's close control. Closing a closed modal is a no-op.
func (s *Session) CloseModal(ctx context.Context) error {
	return s.loop.Do(ctx, func() {
		if v := s.renderModal(); v != nil {
			v.ClickClose()
		}
	})
}

// Modal renders the modal; nil means it is closed.
func (s *Session) Modal(ctx context.Context) (*modal.View, error) {
	var v *modal.View
	err := s.loop.Do(ctx, func() { v = s.renderModal() })
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Session) renderModal() *modal.View {
	return modal.Render(modal.Props{
		Open:    s.modalOpen,
		OnClose: func() { s.modalOpen = false },
	})
}

func (s *Session) snapshot() Snapshot {
	st := s.engine.State()
	return Snapshot{
		ID:              s.ID,
		Display:         s.screen.Text(),
		CurrentOperand:  st.CurrentOperand,
		PreviousOperand: st.PreviousOperand,
		Operation:       string(st.Operation),
		Mode:            st.Mode.String(),
		ModalOpen:       s.modalOpen,
	}
}

func (s *Session) stopped() bool {
	select {
	case <-s.loop.Done():
		return true
	default:
		return false
	}
}

func (s *Session) close() {
	s.loop.Stop()
	s.screen.Close()
}
