package repl

import (
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/leftmike/txkv/flags"
)

type lineReader struct {
	line *liner.State
	ses  *Session
}

func (lr lineReader) prompt() string {
	if lr.ses.Flags.GetFlag(flags.ShowDepth) && lr.ses.DB.Depth() > 0 {
		return fmt.Sprintf("txkv(%d)> ", lr.ses.DB.Depth())
	}
	return "txkv> "
}

func (lr lineReader) ReadLine() (string, error) {
	s, err := lr.line.Prompt(lr.prompt())
	if err == liner.ErrPromptAborted {
		return "", io.EOF
	} else if err != nil {
		return "", err
	}
	if s != "" {
		lr.line.AppendHistory(s)
	}
	return s, nil
}

// Interact runs ses against the console with line editing, keeping history in the named file
// if it is not empty.
func Interact(ses *Session, history string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	err := ses.Run(lineReader{line: line, ses: ses})

	if history != "" {
		if f, err := os.Create(history); err != nil {
			fmt.Fprintf(os.Stderr, "txkv: error writing history file, %s: %s\n", history, err)
		} else {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return err
}
