package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestInterruptHandler_Message(t *testing.T) {
	buf := &syncBuffer{}
	h := NewInterruptHandler(buf, "Tabs already written are kept.")

	assert.False(t, h.WasInterrupted())

	h.interrupt()
	h.interrupt()

	assert.True(t, h.WasInterrupted())
	out := buf.String()
	assert.Contains(t, out, "Interrupted!")
	assert.Contains(t, out, "Tabs already written are kept.")
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("Interrupted!")), "message is shown once")
}

func TestInterruptHandler_StopCancels(t *testing.T) {
	h := NewInterruptHandler(&syncBuffer{}, "")

	ctx, stop := h.HandleInterrupts(context.Background())
	assert.NoError(t, ctx.Err())

	stop()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, h.WasInterrupted())
}

func TestNewInterruptHandler_DefaultWriter(t *testing.T) {
	h := NewInterruptHandler(nil, "")
	assert.NotNil(t, h.writer)
}
