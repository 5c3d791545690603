package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"

	"github.com/leftmike/txkv/flags"
	"github.com/leftmike/txkv/kv"
)

// LineReader returns one line at a time without the trailing newline, and io.EOF at the end.
type LineReader interface {
	ReadLine() (string, error)
}

type scanReader struct {
	scanner *bufio.Scanner
}

func NewLineReader(r io.Reader) LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanReader{scanner}
}

func (sr scanReader) ReadLine() (string, error) {
	if !sr.scanner.Scan() {
		if err := sr.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return sr.scanner.Text(), nil
}

// Session connects one command stream to a DB; the DB is owned by the caller.
type Session struct {
	DB    *kv.DB
	Flags flags.Flags
	Out   io.Writer
	Src   string
}

func (ses *Session) logger() *log.Entry {
	return log.WithFields(log.Fields{
		"src":   ses.Src,
		"depth": ses.DB.Depth(),
	})
}

// Run reads and executes commands until END or the end of the input.
func (ses *Session) Run(lr LineReader) error {
	for {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if ses.Flags.GetFlag(flags.Echo) {
			fmt.Fprintln(ses.Out, line)
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			ses.logger().WithField("line", line).Debug(err)
			fmt.Fprintln(ses.Out, err)
			continue
		}

		ses.logger().WithField("cmd", cmd.Op).Debug("command")
		if cmd.Op == OpEnd {
			return nil
		}

		err = ses.Execute(cmd)
		if errors.Is(err, kv.ErrNoTransaction) {
			fmt.Fprintln(ses.Out, "NO TRANSACTION")
		} else if err != nil {
			ses.logger().WithField("cmd", cmd.Op).Info(err)
			fmt.Fprintln(ses.Out, err)
		}
	}
}

func (ses *Session) Execute(cmd Command) error {
	switch cmd.Op {
	case OpSet:
		ses.DB.Set(cmd.Key, cmd.Value)
	case OpGet:
		val, ok := ses.DB.Get(cmd.Key)
		if !ok {
			val = "NULL"
		}
		fmt.Fprintln(ses.Out, val)
	case OpUnset:
		return ses.DB.Unset(cmd.Key)
	case OpNumEqualTo:
		fmt.Fprintln(ses.Out, ses.DB.NumEqualTo(cmd.Value))
	case OpBegin:
		ses.DB.Begin()
	case OpRollback:
		return ses.DB.Rollback()
	case OpCommit:
		return ses.DB.Commit()
	case OpShow:
		ses.show()
	case OpEnd:
	default:
		panic(fmt.Sprintf("repl: unexpected command: %d", cmd.Op))
	}
	return nil
}

func (ses *Session) show() {
	tw := tablewriter.NewWriter(ses.Out)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeader([]string{"key", "value"})

	ses.DB.Ascend(
		func(key, val string) bool {
			tw.Append([]string{key, val})
			return true
		})
	tw.Render()
	fmt.Fprintf(ses.Out, "(%d keys)\n", tw.NumLines())
}
