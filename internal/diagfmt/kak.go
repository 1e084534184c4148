package diagfmt

import (
	"bufio"
	"io"
	"strconv"

	"errfmt/internal/diag"
)

// AppendKak appends one entry in editor line syntax, without a newline:
//
//	<file>:<line>:<column>: <kind>: <message>
func AppendKak(dst []byte, e Entry) []byte {
	dst = append(dst, e.File...)
	dst = append(dst, ':')
	dst = strconv.AppendUint(dst, e.Line, 10)
	dst = append(dst, ':')
	dst = strconv.AppendUint(dst, e.Column, 10)
	dst = append(dst, ": "...)
	dst = append(dst, e.Kind...)
	dst = append(dst, ": "...)
	dst = append(dst, e.Message...)
	return dst
}

// Kak writes one line per diagnostic. Nothing is written for an empty bag.
func Kak(w io.Writer, bag *diag.Bag, opts Opts) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, e := range Entries(bag, opts) {
		buf = AppendKak(buf[:0], e)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
