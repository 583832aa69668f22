package main

import (
	"log/slog"
	"os"

	"github.com/df-mc/dragonfly/server/player/chat"
	"github.com/getsentry/sentry-go"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol"
)

// init ...
func init() {
	chat.Global.Subscribe(chat.StdoutSubscriber{})
}

// main ...
func main() {
	conf, err := patrol.ReadConfig()
	if err != nil {
		panic(err)
	}

	level, err := patrol.ParseLogLevel(conf.Patrol.LogLevel)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if err != nil {
		log.Warn("falling back to info log level", "error", err)
	}

	if dsn := conf.Patrol.SentryDsn; dsn != "" {
		if err = sentry.Init(sentry.ClientOptions{Dsn: dsn, AttachStacktrace: true}); err != nil {
			log.Error("failed to initialise sentry", "error", err)
		}
		defer sentry.Flush(patrol.SentryFlushTimeout)
	}

	p, err := patrol.NewPatrol(log, conf)
	if err != nil {
		panic(err)
	}

	p.Start()
}
