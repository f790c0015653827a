// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/rpc"
	"net/rpc/jsonrpc"
)

// client - jsonrpc connection to a barterd
type client struct {
	conn    *tls.Conn
	client  *rpc.Client
	verbose bool
	w       io.Writer
}

// connect to a barterd
//
// the daemon uses a self-signed certificate so verification is by
// fingerprint out of band, not by chain
func newClient(address string, verbose bool, w io.Writer) (*client, error) {

	conn, err := tls.Dial("tcp", address, &tls.Config{
		InsecureSkipVerify: true,
	})
	if nil != err {
		return nil, err
	}

	return &client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		w:       w,
	}, nil
}

func (c *client) close() {
	c.client.Close()
}

// call a method and print the JSON reply
func (c *client) call(method string, arguments interface{}, reply interface{}) error {

	if c.verbose {
		data, _ := json.Marshal(arguments)
		fmt.Fprintf(c.w, "%s: %s\n", method, data)
	}

	if err := c.client.Call(method, arguments, reply); nil != err {
		return err
	}

	data, err := json.MarshalIndent(reply, "", "  ")
	if nil != err {
		return err
	}
	fmt.Fprintf(c.w, "%s\n", data)
	return nil
}
