// Package source loads the Python files shown in the code panel.
package source

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"sync"
	"time"
)

// Unreadable is shown in place of a file that cannot be read.
const Unreadable = "could not read file"

type entry struct {
	modTime time.Time
	size    int64
	lines   []string
}

// Cache holds file contents, reloading a file when its size or modification
// time changes. It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Lines returns the lines of path. On failure it returns a single
// Unreadable line and the error.
func (c *Cache) Lines(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.forget(path)
		return []string{Unreadable}, err
	}
	c.mu.Lock()
	cached, ok := c.entries[path]
	c.mu.Unlock()
	if ok && cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
		return cached.lines, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.forget(path)
		return []string{Unreadable}, err
	}
	lines := split(data)
	c.mu.Lock()
	c.entries[path] = entry{modTime: info.ModTime(), size: info.Size(), lines: lines}
	c.mu.Unlock()
	return lines, nil
}

// Window returns up to height lines of path positioned so line (1-based)
// sits in the middle, along with the 1-based number of the first line.
func (c *Cache) Window(path string, line, height int) ([]string, int, error) {
	lines, err := c.Lines(path)
	if err != nil {
		return lines, 1, err
	}
	start := Center(len(lines), line-1, height)
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end], start + 1, nil
}

func (c *Cache) forget(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Center returns the first visible index of a height-row window over total
// rows that keeps target centred, clamped to the valid range.
func Center(total, target, height int) int {
	if height <= 0 || total <= height {
		return 0
	}
	start := target - height/2
	if start < 0 {
		start = 0
	}
	if max := total - height; start > max {
		start = max
	}
	return start
}

func split(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines
}
