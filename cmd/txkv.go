package cmd

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leftmike/txkv/config"
	"github.com/leftmike/txkv/flags"
)

var (
	txkvCmd = &cobra.Command{
		Use:               "txkv",
		Short:             "An in-memory key-value store with nested transactions",
		Long:              "Txkv is an in-memory key-value store with nested transactions.",
		PersistentPreRunE: txkvPreRun,
		PersistentPostRun: txkvPostRun,
		SilenceUsage:      true,
	}

	logFile   = "txkv.log"
	logLevel  = "info"
	logStderr = false
	logWriter io.WriteCloser

	configFile = "txkv.hcl"
	noConfig   = false

	cfg = config.NewConfig(flags.Default())
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		DisableLevelTruncation: true,
	})

	fs := txkvCmd.PersistentFlags()

	fs.StringVar(&logFile, "log-file", logFile, "`file` to use for logging")
	cfg.Var("log-file", fs.Lookup("log-file"))

	fs.StringVar(&logLevel, "log-level", logLevel,
		"log level: trace, debug, info, warn, error, fatal, or panic")
	cfg.Var("log-level", fs.Lookup("log-level"))

	fs.BoolVarP(&logStderr, "log-stderr", "s", logStderr, "log to standard error")

	fs.StringVar(&configFile, "config-file", configFile, "`file` to load config from")
	fs.BoolVar(&noConfig, "no-config", noConfig, "don't load config file")
}

func Execute() error {
	return txkvCmd.Execute()
}

func txkvPreRun(cmd *cobra.Command, args []string) error {
	cfg.Visit(cmd.Flags())

	if configFile != "" && !noConfig {
		err := cfg.Load(configFile)
		if os.IsNotExist(err) && !cmd.Flags().Changed("config-file") {
			err = nil
		}
		if err != nil {
			return fmt.Errorf("txkv: %s", err)
		}
	}

	if logStderr {
		log.SetOutput(os.Stderr)
	} else if logFile != "" {
		var err error
		logWriter, err = os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			logWriter = nil
			return fmt.Errorf("txkv: %s", err)
		}
		log.SetOutput(logWriter)
	}

	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("txkv: %s", err)
	}
	log.SetLevel(ll)

	log.WithField("pid", os.Getpid()).Info("txkv starting")
	return nil
}

func txkvPostRun(cmd *cobra.Command, args []string) {
	log.WithField("pid", os.Getpid()).Info("txkv done")

	if logWriter != nil {
		logWriter.Close()
	}
}
