// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/asset"
	"github.com/bitmark-inc/barterd/fault"
	"github.com/bitmark-inc/logger"
)

// Configuration - a block of configuration data
// this is read from the configuration file
type Configuration struct {
	Connect string `gluamapper:"connect" json:"connect"`
	Timeout int    `gluamapper:"timeout" json:"timeout"`
}

const defaultRequestTimeout = 30 * time.Second

// one custody operation sent to the transfer agent
type transferRequest struct {
	Operation string           `json:"operation"` // "pull" or "push"
	Account   account.Account  `json:"account"`
	Asset     asset.Descriptor `json:"asset"`
}

type transferReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Client - remote transfer agent reached over a ZeroMQ REQ socket
//
// one operation is in flight at a time; the engine serialises its
// calls anyway but the mutex also covers direct treasury payouts
type Client struct {
	sync.Mutex
	log     *logger.L
	connect string
	timeout time.Duration
	socket  *zmq.Socket
}

// NewClient - connect to a transfer agent
func NewClient(configuration *Configuration) (*Client, error) {

	log := logger.New("gateway")

	if "" == configuration.Connect {
		log.Error("missing gateway connect")
		return nil, fault.MissingParameters
	}

	timeout := defaultRequestTimeout
	if configuration.Timeout > 0 {
		timeout = time.Duration(configuration.Timeout) * time.Second
	}

	client := &Client{
		log:     log,
		connect: configuration.Connect,
		timeout: timeout,
	}
	if err := client.dial(); nil != err {
		return nil, err
	}

	log.Infof("transfer agent: %q", configuration.Connect)
	return client, nil
}

// Close - release the socket
func (client *Client) Close() {
	client.Lock()
	defer client.Unlock()
	if nil != client.socket {
		client.socket.Close()
		client.socket = nil
	}
}

// PullIn - take custody of one descriptor from its owner
func (client *Client) PullIn(from account.Account, d asset.Descriptor) error {
	return client.transfer("pull", from, d)
}

// PushOut - release one descriptor to a recipient
func (client *Client) PushOut(to account.Account, d asset.Descriptor) error {
	return client.transfer("push", to, d)
}

func (client *Client) transfer(operation string, owner account.Account, d asset.Descriptor) error {

	client.Lock()
	defer client.Unlock()

	data, err := json.Marshal(transferRequest{
		Operation: operation,
		Account:   owner,
		Asset:     d,
	})
	if nil != err {
		return err
	}

	client.log.Debugf("%s: %s", operation, data)

	if _, err := client.socket.SendBytes(data, 0); nil != err {
		client.log.Errorf("%s send error: %s", operation, err)
		client.redial()
		return err
	}

	buffer, err := client.socket.RecvBytes(0)
	if nil != err {
		client.log.Errorf("%s receive error: %s", operation, err)
		client.redial()
		return err
	}

	var reply transferReply
	if err := json.Unmarshal(buffer, &reply); nil != err {
		return err
	}
	if !reply.OK {
		client.log.Warnf("%s refused: %s", operation, reply.Error)
		return fmt.Errorf("transfer refused: %s", reply.Error)
	}
	return nil
}

func (client *Client) dial() error {
	socket, err := zmq.NewSocket(zmq.REQ)
	if nil != err {
		return err
	}
	socket.SetLinger(0)
	socket.SetSndtimeo(client.timeout)
	socket.SetRcvtimeo(client.timeout)
	if err := socket.Connect(client.connect); nil != err {
		socket.Close()
		return err
	}
	client.socket = socket
	return nil
}

// a REQ socket is stuck after a timeout so replace it
func (client *Client) redial() {
	if nil != client.socket {
		client.socket.Close()
		client.socket = nil
	}
	if err := client.dial(); nil != err {
		client.log.Errorf("redial error: %s", err)
	}
}
