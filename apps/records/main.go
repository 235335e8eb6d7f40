package main

import (
	"log"
	"os"

	"golang.org/x/term"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/services/email"
	"github.com/vku/studentrecords/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "RECORDS : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	defer logger.Close()

	emails := emailsvc.New(log.New(os.Stderr, "EMAIL : ", log.LstdFlags), logger, conf)
	app, err := newApplication(conf, logger, emails)
	if err != nil {
		logger.Fatal(err.Error())
	}

	cli := newCommandLine(app, os.Stdin, os.Stdout)
	cli.interactive = term.IsTerminal(int(os.Stdin.Fd()))
	if err := cli.loop(); err != nil {
		logger.Error("reading input", err)
		os.Exit(1)
	}
}
