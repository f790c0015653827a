// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"
	"strconv"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/barterd/messagebus"
	"github.com/bitmark-inc/logger"
)

const (
	heartbeatInterval = 60 * time.Second
	heartbeatTopic    = "heart"
)

type broadcaster struct {
	log      *logger.L
	socket   *zmq.Socket
	sequence uint64
}

// initialise the broadcaster
func (brdc *broadcaster) initialise(broadcast []string) error {

	log := logger.New("broadcaster")
	brdc.log = log

	log.Info("initialising…")

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		log.Errorf("socket create error: %s", err)
		return err
	}
	socket.SetLinger(0)

	for _, address := range broadcast {
		if err := socket.Bind(address); nil != err {
			log.Errorf("bind: %q  error: %s", address, err)
			socket.Close()
			return err
		}
		log.Infof("bind to: %q", address)
	}

	brdc.socket = socket
	return nil
}

// wait for notifications and rebroadcast them
//
// a topic frame carrying the notification kind precedes the JSON
// payload so subscribers can set prefix filters; a periodic heartbeat
// lets them detect a stalled feed
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

	queue := messagebus.Chan()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(heartbeatInterval):
			brdc.sequence += 1
			brdc.send(heartbeatTopic, []byte(strconv.FormatUint(brdc.sequence, 10)))
		case item := <-queue:
			brdc.process(item)
		}
	}
	if nil != brdc.socket {
		brdc.socket.Close()
		brdc.socket = nil
	}
}

func (brdc *broadcaster) process(item messagebus.Notification) {
	data, err := json.Marshal(item)
	if nil != err {
		brdc.log.Errorf("marshal: %v  error: %s", item, err)
		return
	}
	brdc.log.Infof("sending: %s  data: %s", item.Kind, data)
	brdc.send(item.Kind.String(), data)
}

// two frame send: topic then payload; a slow subscriber loses
// messages rather than ever stalling the engine
func (brdc *broadcaster) send(topic string, data []byte) {
	if nil == brdc.socket {
		return
	}
	if _, err := brdc.socket.Send(topic, zmq.SNDMORE|zmq.DONTWAIT); nil != err {
		brdc.log.Errorf("send topic: %q  error: %s", topic, err)
		return
	}
	if _, err := brdc.socket.SendBytes(data, zmq.DONTWAIT); nil != err {
		brdc.log.Errorf("send data error: %s", err)
	}
}
