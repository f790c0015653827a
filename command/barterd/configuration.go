// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/barterd/account"
	"github.com/bitmark-inc/barterd/configuration"
	"github.com/bitmark-inc/barterd/gateway"
	"github.com/bitmark-inc/barterd/publish"
	"github.com/bitmark-inc/barterd/rpc/listeners"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the
// directory holding the configuration file)
const (
	defaultPidFile = "barterd.pid"

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultDatabase = "barter"

	defaultLogDirectory = "log"
	defaultLogFile      = "barterd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
)

// TreasuryType - fee collection configuration
type TreasuryType struct {
	Administrator string `gluamapper:"administrator" json:"administrator"`
	FeeContract   string `gluamapper:"fee_contract" json:"fee_contract"`
	Fee           uint64 `gluamapper:"fee" json:"fee"`
}

// Configuration - the daemon configuration
type Configuration struct {
	DataDirectory string `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string `gluamapper:"pidfile" json:"pidfile"`
	Database      string `gluamapper:"database" json:"database"`

	Treasury   TreasuryType               `gluamapper:"treasury" json:"treasury"`
	Gateway    gateway.Configuration      `gluamapper:"gateway" json:"gateway"`
	ClientRPC  listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Publishing publish.Configuration      `gluamapper:"publishing" json:"publishing"`
	Logging    logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: dataDirectory,
		PidFile:       "", // no PidFile by default
		Database:      defaultDatabase,

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}
	if "" != options.PidFile {
		options.PidFile = ensureAbsolute(options.DataDirectory, options.PidFile)
	}

	return options, nil
}

// administratorAccount - decode the configured administrator
func (c *Configuration) administratorAccount() (account.Account, error) {
	return account.AccountFromBase58(c.Treasury.Administrator)
}

// feeContractAccount - decode the configured fee contract
func (c *Configuration) feeContractAccount() (account.Account, error) {
	return account.AccountFromBase58(c.Treasury.FeeContract)
}

// ensureAbsolute - convert a relative path to one anchored at the
// data directory
func ensureAbsolute(directory string, filePath string) string {
	if filepath.IsAbs(filePath) {
		return filepath.Clean(filePath)
	}
	return filepath.Clean(filepath.Join(directory, filePath))
}
