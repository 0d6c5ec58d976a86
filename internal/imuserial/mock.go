package imuserial

import (
	"bytes"
	"errors"
	"sync"
)

// TestablePort implements Porter with configurable behaviour for testing.
// Reads drain a buffer that tests fill with AddReadData; closing the port
// wakes any blocked reader.
type TestablePort struct {
	mu sync.Mutex

	// ReadBuffer holds data to be returned by Read calls.
	ReadBuffer *bytes.Buffer

	// ReadError is returned by the next Read call if set.
	ReadError error

	// CloseError is returned by Close if set.
	CloseError error

	// Closed indicates whether Close was called.
	Closed bool

	// BlockReads causes Read to block until data is added or Close is called.
	BlockReads bool

	readCond *sync.Cond
}

// NewTestablePort creates a TestablePort for testing.
func NewTestablePort() *TestablePort {
	tp := &TestablePort{ReadBuffer: bytes.NewBuffer(nil)}
	tp.readCond = sync.NewCond(&tp.mu)
	return tp
}

// Read drains the read buffer, optionally blocking until data arrives.
func (t *TestablePort) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Closed {
		return 0, errors.New("serial port closed")
	}

	if t.ReadError != nil {
		err := t.ReadError
		t.ReadError = nil
		return 0, err
	}

	if t.BlockReads && t.ReadBuffer.Len() == 0 {
		for !t.Closed && t.ReadBuffer.Len() == 0 {
			t.readCond.Wait()
		}
		if t.Closed {
			return 0, errors.New("serial port closed")
		}
	}

	return t.ReadBuffer.Read(p)
}

// Close marks the port as closed and wakes blocked readers.
func (t *TestablePort) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Closed = true
	t.readCond.Broadcast()
	return t.CloseError
}

// AddReadData appends data for subsequent Read calls.
func (t *TestablePort) AddReadData(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ReadBuffer.Write(data)
	t.readCond.Signal()
}
