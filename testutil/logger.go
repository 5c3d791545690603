package testutil

import (
	"flag"
	"io/ioutil"
	"os"

	log "github.com/sirupsen/logrus"
)

var (
	logFile   = ""
	logLevel  = "debug"
	logStderr = false
)

func init() {
	flag.StringVar(&logFile, "log-file", logFile, "`file` to use for logging")
	flag.StringVar(&logLevel, "log-level", logLevel,
		"log level: trace, debug, info, warn, error, fatal, or panic")
	flag.BoolVar(&logStderr, "log-stderr", logStderr, "log to standard error")
}

// SetupLogger points the standard logrus logger at the -log-file flag, at standard error, or
// nowhere, and returns it.
func SetupLogger() *log.Logger {
	if logStderr {
		log.SetOutput(os.Stderr)
	} else if logFile != "" {
		w, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			panic(err)
		}
		log.SetOutput(w)
	} else {
		log.SetOutput(ioutil.Discard)
	}

	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		panic(err)
	}
	log.SetLevel(ll)

	log.WithField("pid", os.Getpid()).Info("tests starting")
	return log.StandardLogger()
}
