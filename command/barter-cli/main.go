// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "barter-cli"
	app.Usage = "command line interface to a barterd"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:2130",
			Usage: " barterd host/IP and port, `HOST:PORT`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "show daemon status",
			Action: runInfo,
		},
		{
			Name:   "fee",
			Usage:  "show the creation fee and unswept balance",
			Action: runFee,
		},
		{
			Name:      "create",
			Usage:     "escrow an offered basket against a requested one",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "requester, r",
					Value: "",
					Usage: "*requester account `BASE58`",
				},
				cli.StringFlag{
					Name:  "offered, o",
					Value: "",
					Usage: "*offered basket `JSON`",
				},
				cli.StringFlag{
					Name:  "requested, q",
					Value: "[]",
					Usage: " requested basket `JSON`",
				},
				cli.Uint64Flag{
					Name:  "payment, p",
					Value: 0,
					Usage: "*fee payment `N`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "cancel",
			Usage:     "cancel a pending request",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				callerFlag,
				requestIdFlag,
			},
			Action: runCancel,
		},
		{
			Name:      "accept",
			Usage:     "complete a pending request with a matching proposal",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				callerFlag,
				requestIdFlag,
				cli.StringFlag{
					Name:  "proposal, p",
					Value: "",
					Usage: "*proposed basket `JSON`",
				},
			},
			Action: runAccept,
		},
		{
			Name:      "get",
			Usage:     "fetch one request record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				requestIdFlag,
			},
			Action: runGet,
		},
		{
			Name:      "index",
			Usage:     "list request ids created by an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " first record number `N`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 10,
					Usage: " number of records `N`",
				},
			},
			Action: runIndex,
		},
		{
			Name:   "next",
			Usage:  "show the id the next created request will get",
			Action: runNext,
		},
		{
			Name:      "ledger",
			Usage:     "show the withdrawable assets held for an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
			},
			Action: runLedger,
		},
		{
			Name:      "withdraw",
			Usage:     "release chosen ledger entries",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				callerFlag,
				cli.StringFlag{
					Name:  "indices, i",
					Value: "",
					Usage: "*ascending slot indices `N,N,…`",
				},
			},
			Action: runWithdraw,
		},
		{
			Name:      "drain",
			Usage:     "release every ledger entry",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				callerFlag,
			},
			Action: runDrain,
		},
		{
			Name:      "set-fee",
			Usage:     "change the creation fee, administrator only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				callerFlag,
				cli.Uint64Flag{
					Name:  "fee, f",
					Value: 0,
					Usage: "*new fee `N`",
				},
			},
			Action: runSetFee,
		},
		{
			Name:      "sweep",
			Usage:     "transfer the accumulated fees, administrator only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				callerFlag,
				cli.StringFlag{
					Name:  "recipient, r",
					Value: "",
					Usage: "*recipient account `BASE58`",
				},
			},
			Action: runSweep,
		},
	}

	if err := app.Run(os.Args); nil != err {
		cli.HandleExitCoder(err)
	}
}

// flags shared by several commands
var (
	callerFlag = cli.StringFlag{
		Name:  "caller, a",
		Value: "",
		Usage: "*calling account `BASE58`",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner, a",
		Value: "",
		Usage: "*owner account `BASE58`",
	}
	requestIdFlag = cli.Uint64Flag{
		Name:  "id, i",
		Value: 0,
		Usage: "*request id `N`",
	}
)
