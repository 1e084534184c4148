package driver

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MaxLineBytes bounds a single input line.
const MaxLineBytes = 1 << 20

// ReadLines splits r into lines without terminators. Both "\n" and "\r\n"
// are accepted; a final line without a newline is kept.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), MaxLineBytes)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}
