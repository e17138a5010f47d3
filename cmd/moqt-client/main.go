package main

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/sirupsen/logrus"

	moqt "github.com/yobol/go-moqt"
	"github.com/yobol/go-moqt/internal/transport"
	"github.com/yobol/go-moqt/internal/wire"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	moqt.SetLogger(logger)

	opt, err := moqt.NewEndpointOption("relay.example.com:4433", transport.ProtoQuic)
	if err != nil {
		panic(any(err))
	}
	opt.SetTLS(&tls.Config{InsecureSkipVerify: true})

	session, err := moqt.Dial(context.Background(), opt)
	if err != nil {
		panic(any(err))
	}

	ns, err := wire.NewNamespace("example", "clock")
	if err != nil {
		panic(any(err))
	}
	reqID, err := session.NextRequestID()
	if err != nil {
		panic(any(err))
	}
	subscribe := wire.ControlMessage{
		Tag: wire.TagSubscribe,
		Payload: wire.Subscribe{
			RequestID:  reqID,
			Namespace:  ns,
			Name:       wire.Name("seconds"),
			GroupOrder: wire.GroupOrderOriginal,
			Forward:    wire.ForwardEnabled,
			FilterType: wire.FilterTypeNextGroupStart,
		},
	}
	session.Inbound() <- moqt.SessionCommand{Send: &subscribe}

	go func() {
		time.Sleep(30 * time.Second)
		session.Inbound() <- moqt.SessionCommand{Close: &moqt.CloseRequest{
			Code:   wire.TerminationNoError,
			Reason: "client done",
		}}
	}()

	for m := range session.Outbound() {
		if m.Err != nil {
			logger.Errorf("session ended: %v", m.Err)
			return
		}
		logger.Debugf("received control message tag=%#x", m.Control.Tag)
	}
}
