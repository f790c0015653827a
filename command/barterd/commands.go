// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/exitwithstatus"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

// setup command handler
//
// commands that run to create the certificate files; these commands
// cannot access any internal database or states or the configuration
// file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "version":
		fmt.Println(version)

	default:
		switch command {
		case "help", "h", "?":
		default:
			fmt.Printf("error: no such command: %s\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)
		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                             (h)      - display this message\n\n")
		fmt.Printf("  version                          (v)      - display version string\n\n")
		fmt.Printf("  gen-rpc-cert [DIR [IPs...]]      (rpc)    - create private key and\n")
		fmt.Printf("                                              self-signed certificate\n\n")
		fmt.Printf("  fingerprint                      (f)      - display the certificate\n")
		fmt.Printf("                                              fingerprint (needs config)\n\n")
		fmt.Printf("  start                                     - run the daemon (default)\n\n")
	}

	switch command {
	case "start":
		return false // continue into the daemon
	}
	return true
}

// configuration command handler
//
// commands that perform enquiries on the parsed configuration
func processConfigCommand(arguments []string, configuration *Configuration) bool {

	command := arguments[0]

	switch command {
	case "fingerprint", "f":
		keyPair, err := tls.X509KeyPair([]byte(configuration.ClientRPC.Certificate), []byte(configuration.ClientRPC.PrivateKey))
		if nil != err {
			fmt.Printf("certificate error: %s\n", err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("SHA3-256 fingerprint: %x\n", sha3.Sum256(keyPair.Certificate[0]))

	case "start":
		return false // continue into the daemon

	default:
		return false
	}
	return true
}

func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) >= 1 && "" != arguments[0] {
		directory = arguments[0]
	}
	return filepath.Join(directory, name)
}

// the listener needs PEM contents; the configuration may already
// carry them (Lua read_file) or just name the files
func loadCertificateFiles(configuration *Configuration) error {

	certificate, err := resolvePEM(configuration.DataDirectory, configuration.ClientRPC.Certificate)
	if nil != err {
		return err
	}
	key, err := resolvePEM(configuration.DataDirectory, configuration.ClientRPC.PrivateKey)
	if nil != err {
		return err
	}

	configuration.ClientRPC.Certificate = certificate
	configuration.ClientRPC.PrivateKey = key
	return nil
}

func resolvePEM(directory string, value string) (string, error) {
	if strings.Contains(value, "-----BEGIN") {
		return value, nil
	}
	data, err := ioutil.ReadFile(ensureAbsolute(directory, value))
	if nil != err {
		return "", err
	}
	return string(data), nil
}
