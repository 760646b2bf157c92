// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds sensitive data in memory that is locked against
// swapping, excluded from core dumps, and zeroed on close.
//
// A Buffer must not be copied after creation.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	closed bool
}

// New allocates a zero-filled secret buffer of size bytes. The caller
// must call Close when the secret is no longer needed.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}
	data, err := mapLocked(size)
	if err != nil {
		return nil, err
	}
	return &Buffer{data: data}, nil
}

// mapLocked maps an anonymous private region that is pinned in RAM
// and left out of core dumps.
func mapLocked(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mapping %d bytes: %w", size, err)
	}
	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: locking %d bytes (check RLIMIT_MEMLOCK): %w", size, err)
	}
	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unmapLocked(data)
		return nil, fmt.Errorf("secret: excluding from core dumps: %w", err)
	}
	return data, nil
}

// unmapLocked releases a region from mapLocked. The first failure is
// returned; both steps always run.
func unmapLocked(data []byte) error {
	unlockErr := unix.Munlock(data)
	unmapErr := unix.Munmap(data)
	switch {
	case unlockErr != nil:
		return fmt.Errorf("secret: unlocking: %w", unlockErr)
	case unmapErr != nil:
		return fmt.Errorf("secret: unmapping: %w", unmapErr)
	}
	return nil
}

// NewFromBytes copies source into a new buffer and zeros source in
// place.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}
	buffer, err := New(len(source))
	if err != nil {
		return nil, err
	}
	copy(buffer.data, source)
	Zero(source)
	return buffer, nil
}

// ReadFile loads a secret from path with surrounding whitespace
// trimmed. Fails when the file is empty after trimming. The bytes read
// from disk are zeroed before returning.
func ReadFile(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}
	defer Zero(data)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("secret: %s is empty", path)
	}
	return NewFromBytes(trimmed)
}

// Zero overwrites data with zeros.
func Zero(data []byte) {
	for index := range data {
		data[index] = 0
	}
}

// Bytes returns the secret data. The slice points into the locked
// region and must not outlive the Buffer. Panics after Close.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		panic("secret: read from closed buffer")
	}
	return b.data
}

// String returns a heap copy of the secret, for API boundaries that
// need a string. Panics after Close.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		panic("secret: read from closed buffer")
	}
	return string(b.data)
}

// Len returns the size of the secret data.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Close zeros, unlocks, and unmaps the buffer. Close is idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	Zero(b.data)
	err := unmapLocked(b.data)
	b.data = nil
	return err
}
