package testutil

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// FileLineNumber is a "file:line: " prefix for test failure messages, or empty when the
// location is not known.
type FileLineNumber string

func (fln FileLineNumber) String() string {
	return string(fln)
}

// MakeFileLineNumber records where its caller was called from. Tests wrap it in a local fln()
// so that each entry of a command table carries the line it was written on.
func MakeFileLineNumber() FileLineNumber {
	_, fn, ln, ok := runtime.Caller(2)
	if !ok || fn == "" || ln == 0 {
		return ""
	}
	return FileLineNumber(fmt.Sprintf("%s:%d: ", filepath.Base(fn), ln))
}
