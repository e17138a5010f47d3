package main

import (
	"context"
	"crypto/tls"

	"github.com/sirupsen/logrus"

	moqt "github.com/yobol/go-moqt"
	"github.com/yobol/go-moqt/internal/transport"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	moqt.SetLogger(logger)

	cert, err := tls.LoadX509KeyPair("relay.crt", "relay.key")
	if err != nil {
		panic(any(err))
	}

	opt, err := moqt.NewEndpointOption(":4433", transport.ProtoQuic)
	if err != nil {
		panic(any(err))
	}
	opt.SetTLS(&tls.Config{Certificates: []tls.Certificate{cert}})
	opt.SetOnSessionHandler(func(s *moqt.Session) {
		logger.Infof("session %s established", s.ID)
		go relay(s)
	})

	endpoint := moqt.NewEndpoint(opt)
	if err := endpoint.Listen(context.Background()); err != nil {
		panic(any(err))
	}
}

// relay drains a session's outbound mailbox, logging inbound control
// messages and the terminal error that precedes supervisor exit.
func relay(s *moqt.Session) {
	for m := range s.Outbound() {
		if m.Err != nil {
			logrus.StandardLogger().Errorf("session %s ended: %v", s.ID, m.Err)
			return
		}
		logrus.StandardLogger().Debugf("session %s: tag=%#x", s.ID, m.Control.Tag)
	}
}
