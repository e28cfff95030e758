package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calculator-backend/config"
	"calculator-backend/internal/calc"
	"calculator-backend/internal/parse"
	"calculator-backend/internal/runloop"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	cfg := config.Default()
	cfg.Calculator.GreetingDelay = 20 * time.Millisecond
	cfg.Calculator.FarewellDelay = 20 * time.Millisecond
	r := NewRegistry(cfg)
	t.Cleanup(r.Close)
	return r
}

func exec(t *testing.T, s *Session, name, token string) Snapshot {
	t.Helper()
	cmd, err := parse.ParseCommand(name, token)
	require.NoError(t, err)
	snap, err := s.Exec(context.Background(), cmd)
	require.NoError(t, err)
	return snap
}

func TestRegistry_CreateGetDelete(t *testing.T) {
	r := newTestRegistry(t)

	s, err := r.Create()
	require.NoError(t, err)
	assert.Len(t, s.ID, 32)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, r.Delete(s.ID))
	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Delete(s.ID), ErrNotFound)

	// A deleted session's loop is stopped.
	_, err = s.Snapshot(context.Background())
	assert.ErrorIs(t, err, runloop.ErrStopped)
}

func TestRegistry_SessionsAreIndependent(t *testing.T) {
	r := newTestRegistry(t)
	a, err := r.Create()
	require.NoError(t, err)
	b, err := r.Create()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	exec(t, a, "digit", "3")
	snap := exec(t, b, "digit", "9")
	assert.Equal(t, "9", snap.Display)

	snap, err = a.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3", snap.Display)
}

func TestSession_Exec(t *testing.T) {
	r := newTestRegistry(t)
	s, err := r.Create()
	require.NoError(t, err)

	exec(t, s, "digit", "3")
	exec(t, s, "operation", "+")
	snap := exec(t, s, "digit", "4")
	assert.Equal(t, Snapshot{
		ID:              s.ID,
		Display:         "3 + 4",
		CurrentOperand:  "4",
		PreviousOperand: "3",
		Operation:       "+",
		Mode:            "active",
	}, snap)

	snap = exec(t, s, "equals", "")
	assert.Equal(t, "7", snap.Display)
}

func TestSession_ByeBlanksScreenLater(t *testing.T) {
	r := newTestRegistry(t)
	s, err := r.Create()
	require.NoError(t, err)

	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()

	exec(t, s, "digit", "5")
	snap := exec(t, s, "bye", "")
	assert.Equal(t, calc.FarewellMessage, snap.Display)
	assert.Equal(t, "disabled", snap.Mode)

	require.Equal(t, "5", <-updates)
	require.Equal(t, calc.FarewellMessage, <-updates)
	select {
	case text := <-updates:
		assert.Equal(t, "", text)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for the screen to blank")
	}

	snap = exec(t, s, "digit", "1")
	assert.Equal(t, "", snap.Display)
	assert.Equal(t, "5", snap.CurrentOperand)
}

func TestSession_HelloRestoresDisplay(t *testing.T) {
	r := newTestRegistry(t)
	s, err := r.Create()
	require.NoError(t, err)

	exec(t, s, "digit", "8")
	snap := exec(t, s, "hello", "")
	assert.Contains(t, calc.Greetings(), snap.Display)

	assert.Eventually(t, func() bool {
		snap, err := s.Snapshot(context.Background())
		return err == nil && snap.Display == "8"
	}, time.Second, 5*time.Millisecond)
}

func TestSession_Modal(t *testing.T) {
	r := newTestRegistry(t)
	s, err := r.Create()
	require.NoError(t, err)
	ctx := context.Background()

	v, err := s.Modal(ctx)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = s.OpenModal(ctx)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "Close", v.CloseLabel)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.ModalOpen)

	require.NoError(t, s.CloseModal(ctx))
	require.NoError(t, s.CloseModal(ctx))
	v, err = s.Modal(ctx)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRegistry_Expiry(t *testing.T) {
	cfg := config.Default()
	cfg.Session.TTL = 20 * time.Millisecond
	cfg.Session.Cleanup = 10 * time.Millisecond
	r := NewRegistry(cfg)
	defer r.Close()

	s, err := r.Create()
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		select {
		case <-s.loop.Done():
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSession_ExecSkipsExpiredCommand(t *testing.T) {
	r := newTestRegistry(t)
	s, err := r.Create()
	require.NoError(t, err)
	exec(t, s, "digit", "4")

	started, release := make(chan struct{}), make(chan struct{})
	go func() {
		_ = s.loop.Do(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started
	time.AfterFunc(50*time.Millisecond, func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	cmd, err := parse.ParseCommand("digit", "2")
	require.NoError(t, err)

	snap, err := s.Exec(ctx, cmd)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Snapshot{}, snap)

	snap, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4", snap.CurrentOperand, "an expired command must not reach the engine")
	assert.Equal(t, "4", snap.Display)
}

func TestRegistry_GetDropsStoppedSession(t *testing.T) {
	r := newTestRegistry(t)
	s, err := r.Create()
	require.NoError(t, err)

	// Same effect as an eviction landing between lookup and refresh.
	s.close()

	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, r.Len())
}
