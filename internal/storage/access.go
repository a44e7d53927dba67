package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"time"

	"github.com/RacoonMediaServer/rms-covers/internal/config"
	"go-micro.dev/v4/logger"
)

const retryDelay = 200 * time.Millisecond

type access struct {
	timeout time.Duration
	retries int
}

func newAccess(cfg config.Access) access {
	a := access{
		timeout: time.Duration(cfg.Timeout) * time.Second,
		retries: cfg.Retries,
	}
	if a.timeout <= 0 {
		a.timeout = 30 * time.Second
	}
	if a.retries < 0 {
		a.retries = 0
	}
	return a
}

type outcome[T any] struct {
	value T
	err   error
}

// retry runs attempt until it succeeds or fails with a permanent error. Every attempt runs
// in the calling goroutine, so state of a failed attempt is never shared with the next one.
func (a access) retry(ctx context.Context, op, path string, attempt func() error) error {
	delay := retryDelay
	var err error

	for i := 0; i <= a.retries; i++ {
		if i != 0 {
			logger.Debugf("Retry %s '%s' (attempt %d): %s", op, path, i+1, err)
			select {
			case <-ctx.Done():
				return &FilesystemError{Op: op, Path: path, Err: ctx.Err()}
			case <-time.After(delay):
			}
			delay *= 2
		}

		if err = attempt(); err == nil {
			return nil
		}
		if !isTransient(ctx, err) {
			break
		}
	}

	return &FilesystemError{Op: op, Path: path, Err: err}
}

// call runs fs operation with a bounded timeout and retries transient failures
func call[T any](ctx context.Context, a access, op, path string, fn func() (T, error)) (T, error) {
	var result T
	err := a.retry(ctx, op, path, func() error {
		v, err := once(ctx, a.timeout, fn)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}

// once runs fn bounded by the timeout. On timeout fn keeps running in background,
// its value is dropped and never reaches the caller.
func once[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		v, err := fn()
		done <- outcome[T]{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// timedReader bounds every read by the timeout. Data is read to a private buffer and copied
// out only when the read completes in time, an abandoned read never touches the caller memory.
type timedReader struct {
	ctx     context.Context
	r       io.Reader
	timeout time.Duration

	// err is the first read failure except io.EOF
	err error
}

func (t *timedReader) Read(p []byte) (int, error) {
	if t.err != nil {
		return 0, t.err
	}
	size := len(p)
	chunk, err := once(t.ctx, t.timeout, func() ([]byte, error) {
		buf := make([]byte, size)
		n, err := t.r.Read(buf)
		return buf[:n], err
	})
	n := copy(p, chunk)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	return n, err
}

// processError is a failure of data processing which must not be retried or reported as file system error
type processError struct {
	err error
}

func (e *processError) Error() string {
	return e.err.Error()
}

func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var perr *processError
	switch {
	case errors.As(err, &perr):
		return false
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrInvalid):
		return false
	}
	return true
}
