package main

import (
	"io"
	"os"
	"path/filepath"
	"sync"
)

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// cappedLog is an append-only log file that drops its oldest bytes once it
// grows past max, keeping the newest keep bytes.
type cappedLog struct {
	mu   sync.Mutex
	file *os.File
	max  int64
	keep int64
}

func openCappedLog(path string, max, keep int64) (*cappedLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	l := &cappedLog{file: file, max: max, keep: keep}
	if err := l.trim(); err != nil {
		file.Close()
		return nil, err
	}
	return l, nil
}

func (l *cappedLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, l.trim()
}

func (l *cappedLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

func (l *cappedLog) trim() error {
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= l.max || size <= l.keep {
		return nil
	}

	buf := make([]byte, l.keep)
	n, err := l.file.ReadAt(buf, size-l.keep)
	if err != nil && err != io.EOF {
		return err
	}
	if err := l.file.Truncate(0); err != nil {
		return err
	}
	if _, err := l.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err = l.file.Write(buf[:n])
	return err
}
