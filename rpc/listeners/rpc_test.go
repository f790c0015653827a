// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/barterd/counter"
	"github.com/bitmark-inc/barterd/fault"
	"github.com/bitmark-inc/barterd/rpc/fixtures"
	"github.com/bitmark-inc/barterd/rpc/listeners"
	"github.com/bitmark-inc/logger"
)

const testListenAddress = "127.0.0.1:23130"

func TestNewRPCRejectsBadConfiguration(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	var connections counter.Counter

	_, err := listeners.NewRPC(
		&listeners.RPCConfiguration{
			MaximumConnections: 0,
			Listen:             []string{testListenAddress},
		},
		log, &connections, rpc.NewServer(), nil, [32]byte{},
	)
	assert.Equal(t, fault.MissingParameters, err, "zero connection limit")

	_, err = listeners.NewRPC(
		&listeners.RPCConfiguration{
			MaximumConnections: 5,
			Listen:             []string{},
		},
		log, &connections, rpc.NewServer(), nil, [32]byte{},
	)
	assert.Equal(t, fault.MissingParameters, err, "missing listen")
}

func TestServeAndClose(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)

	cert, key, err := certgen.NewTLSCertPair("listener test", time.Now().Add(time.Hour), false, nil)
	assert.NoError(t, err, "certificate generation")
	keyPair, err := tls.X509KeyPair(cert, key)
	assert.NoError(t, err, "keypair")

	var connections counter.Counter
	l, err := listeners.NewRPC(
		&listeners.RPCConfiguration{
			MaximumConnections: 5,
			Listen:             []string{testListenAddress},
			Certificate:        string(cert),
			PrivateKey:         string(key),
		},
		log,
		&connections,
		rpc.NewServer(),
		&tls.Config{Certificates: []tls.Certificate{keyPair}},
		[32]byte{},
	)
	assert.NoError(t, err, "new listener")

	assert.NoError(t, l.Serve(), "serve")

	// the port accepts while serving
	conn, err := net.DialTimeout("tcp", testListenAddress, time.Second)
	assert.NoError(t, err, "dial while serving")
	if nil != conn {
		conn.Close()
	}

	l.Close()

	// a closed listener refuses new connections
	conn, err = net.DialTimeout("tcp", testListenAddress, time.Second)
	assert.Error(t, err, "dial after close")
	if nil != conn {
		conn.Close()
	}
}
