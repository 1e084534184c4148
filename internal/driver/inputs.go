package driver

import (
	"fmt"
	"io"
	"os"
)

// StdinName names the standard input stream in diagnostics, traces and
// progress events.
const StdinName = "<stdin>"

// OpenInputs maps command-line arguments to inputs. No arguments, or a
// "-" argument, mean stdin. The returned func closes the opened files and
// leaves stdin alone; it is safe to call after an error.
func OpenInputs(args []string, stdin io.Reader) ([]Input, func(), error) {
	if len(args) == 0 {
		return []Input{{Name: StdinName, Reader: stdin}}, func() {}, nil
	}
	inputs := make([]Input, 0, len(args))
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	for _, arg := range args {
		if arg == "-" {
			inputs = append(inputs, Input{Name: StdinName, Reader: stdin})
			continue
		}
		// #nosec G304 -- paths come from the command line
		f, err := os.Open(arg)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open input: %w", err)
		}
		files = append(files, f)
		inputs = append(inputs, Input{Name: arg, Reader: f})
	}
	return inputs, closeAll, nil
}
