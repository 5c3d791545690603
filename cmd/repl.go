package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/leftmike/txkv/kv"
	"github.com/leftmike/txkv/repl"
	"github.com/leftmike/txkv/storage"
)

var (
	replCmd = &cobra.Command{
		Use:   "repl [file ...]",
		Short: "Run commands from files, --cmd arguments, or an interactive console",
		RunE:  replRun,
	}

	store   = "btree"
	history = ".txkv_history"
	cmdArgs = []string{}
)

func init() {
	fs := replCmd.Flags()

	fs.StringVar(&store, "store", store, "storage backend to use: btree or pebble")
	cfg.Var("store", fs.Lookup("store"))

	fs.StringVar(&history, "history", history, "`file` to keep console history in")
	cfg.Var("history", fs.Lookup("history"))

	fs.StringArrayVar(&cmdArgs, "cmd", cmdArgs, "command `line` to execute; multiple allowed")
	cfg.Var("cmd", fs.Lookup("cmd"))

	txkvCmd.AddCommand(replCmd)
}

func replRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(store, log.StandardLogger())
	if err != nil {
		return fmt.Errorf("txkv: %s", err)
	}
	db := kv.New(st)
	defer db.Close()

	ses := &repl.Session{
		DB:    db,
		Flags: cfg.Flags(),
		Out:   os.Stdout,
	}

	for idx, arg := range cmdArgs {
		ses.Src = "cmd-arg:" + strconv.Itoa(idx)
		err = ses.Run(repl.NewLineReader(strings.NewReader(arg)))
		if err != nil {
			return fmt.Errorf("txkv: %s: %s", ses.Src, err)
		}
	}

	for _, arg := range args {
		f, err := os.Open(arg)
		if err != nil {
			return fmt.Errorf("txkv: command file: %s", err)
		}
		ses.Src = arg
		err = ses.Run(repl.NewLineReader(bufio.NewReader(f)))
		f.Close()
		if err != nil {
			return fmt.Errorf("txkv: %s: %s", arg, err)
		}
	}

	if len(args) > 0 || len(cmdArgs) > 0 {
		return nil
	}

	if terminal.IsTerminal(int(os.Stdin.Fd())) {
		ses.Src = "console"
		err = repl.Interact(ses, history)
	} else {
		ses.Src = "stdin"
		err = ses.Run(repl.NewLineReader(os.Stdin))
	}
	if err != nil {
		return fmt.Errorf("txkv: %s: %s", ses.Src, err)
	}
	return nil
}
