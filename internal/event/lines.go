package event

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/stefvonb/lazy-pdb/internal/logging/events"
)

// maxLineSize bounds a single output line. Longer lines are cut at the
// limit and the remainder up to the newline is discarded.
const maxLineSize = 1 << 20

// ReadLines emits one event per line read from r until EOF or a read error.
// Neither end condition is reported as an event.
func ReadLines(r io.Reader, sender Sender, stream Stream) {
	br := bufio.NewReaderSize(r, 64*1024)
	count := 0
	var err error
	for {
		var line string
		line, err = readLine(br)
		if line == "" && err != nil {
			break
		}
		if !sender.Send(Line(stream, line)) {
			break
		}
		count++
		if err != nil {
			break
		}
	}
	if errors.Is(err, io.EOF) {
		err = nil
	}
	events.Stream.End(stream.String(), count, err)
}

// readLine returns the next line without its terminator. The error is
// non-nil only when the line was ended by EOF or a read failure.
func readLine(br *bufio.Reader) (string, error) {
	var (
		buf       []byte
		truncated bool
	)
	for {
		chunk, err := br.ReadSlice('\n')
		if room := maxLineSize - len(buf); room >= len(chunk) {
			buf = append(buf, chunk...)
		} else {
			buf = append(buf, chunk[:max(room, 0)]...)
			truncated = true
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		line := strings.TrimSuffix(strings.TrimSuffix(string(buf), "\n"), "\r")
		if truncated {
			line = strings.ToValidUTF8(line, "")
		}
		return line, err
	}
}
