// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/urfave/cli"
)

// argument blocks mirror the daemon's JSON; numbers that the daemon
// declares as ",string" travel as JSON strings

type createArguments struct {
	Requester string          `json:"requester"`
	Offered   json.RawMessage `json:"offered"`
	Requested json.RawMessage `json:"requested"`
	Payment   string          `json:"payment"`
}

type callerIdArguments struct {
	Caller    string `json:"caller"`
	RequestId string `json:"requestId"`
}

type acceptArguments struct {
	Caller    string          `json:"caller"`
	RequestId string          `json:"requestId"`
	Proposal  json.RawMessage `json:"proposal"`
}

type getArguments struct {
	RequestId string `json:"requestId"`
}

type indexArguments struct {
	Owner string `json:"owner"`
	Start string `json:"start"`
	Count int    `json:"count"`
}

type ownerArguments struct {
	Owner string `json:"owner"`
}

type withdrawArguments struct {
	Caller  string   `json:"caller"`
	Indices []uint64 `json:"indices"`
}

type callerArguments struct {
	Caller string `json:"caller"`
}

type setFeeArguments struct {
	Caller string `json:"caller"`
	Fee    string `json:"fee"`
}

type sweepArguments struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
}

func dial(c *cli.Context) (*client, error) {
	cl, err := newClient(c.GlobalString("connect"), c.GlobalBool("verbose"), c.App.Writer)
	if nil != err {
		return nil, cli.NewExitError("connect error: "+err.Error(), 1)
	}
	return cl, nil
}

func call(c *cli.Context, method string, arguments interface{}) error {
	cl, err := dial(c)
	if nil != err {
		return err
	}
	defer cl.close()

	var reply map[string]interface{}
	if err := cl.call(method, arguments, &reply); nil != err {
		return cli.NewExitError(method+" error: "+err.Error(), 1)
	}
	return nil
}

func requireString(c *cli.Context, name string) (string, error) {
	value := c.String(name)
	if "" == value {
		return "", cli.NewExitError("missing argument: "+name, 1)
	}
	return value, nil
}

func runInfo(c *cli.Context) error {
	return call(c, "Node.Info", struct{}{})
}

func runFee(c *cli.Context) error {
	return call(c, "Treasury.Fee", struct{}{})
}

func runCreate(c *cli.Context) error {
	requester, err := requireString(c, "requester")
	if nil != err {
		return err
	}
	offered, err := requireString(c, "offered")
	if nil != err {
		return err
	}
	return call(c, "Request.Create", &createArguments{
		Requester: requester,
		Offered:   json.RawMessage(offered),
		Requested: json.RawMessage(c.String("requested")),
		Payment:   strconv.FormatUint(c.Uint64("payment"), 10),
	})
}

func runCancel(c *cli.Context) error {
	caller, err := requireString(c, "caller")
	if nil != err {
		return err
	}
	return call(c, "Request.Cancel", &callerIdArguments{
		Caller:    caller,
		RequestId: strconv.FormatUint(c.Uint64("id"), 10),
	})
}

func runAccept(c *cli.Context) error {
	caller, err := requireString(c, "caller")
	if nil != err {
		return err
	}
	proposal, err := requireString(c, "proposal")
	if nil != err {
		return err
	}
	return call(c, "Request.Accept", &acceptArguments{
		Caller:    caller,
		RequestId: strconv.FormatUint(c.Uint64("id"), 10),
		Proposal:  json.RawMessage(proposal),
	})
}

func runGet(c *cli.Context) error {
	return call(c, "Request.Get", &getArguments{
		RequestId: strconv.FormatUint(c.Uint64("id"), 10),
	})
}

func runIndex(c *cli.Context) error {
	owner, err := requireString(c, "owner")
	if nil != err {
		return err
	}
	return call(c, "Request.Index", &indexArguments{
		Owner: owner,
		Start: strconv.FormatUint(c.Uint64("start"), 10),
		Count: c.Int("count"),
	})
}

func runNext(c *cli.Context) error {
	return call(c, "Request.Next", struct{}{})
}

func runLedger(c *cli.Context) error {
	owner, err := requireString(c, "owner")
	if nil != err {
		return err
	}
	return call(c, "Ledger.List", &ownerArguments{Owner: owner})
}

func runWithdraw(c *cli.Context) error {
	caller, err := requireString(c, "caller")
	if nil != err {
		return err
	}
	list, err := requireString(c, "indices")
	if nil != err {
		return err
	}

	indices := []uint64{}
	for _, s := range strings.Split(list, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if nil != err {
			return cli.NewExitError("invalid index: "+s, 1)
		}
		indices = append(indices, n)
	}

	return call(c, "Ledger.Withdraw", &withdrawArguments{
		Caller:  caller,
		Indices: indices,
	})
}

func runDrain(c *cli.Context) error {
	caller, err := requireString(c, "caller")
	if nil != err {
		return err
	}
	return call(c, "Ledger.Drain", &callerArguments{Caller: caller})
}

func runSetFee(c *cli.Context) error {
	caller, err := requireString(c, "caller")
	if nil != err {
		return err
	}
	return call(c, "Treasury.SetFee", &setFeeArguments{
		Caller: caller,
		Fee:    strconv.FormatUint(c.Uint64("fee"), 10),
	})
}

func runSweep(c *cli.Context) error {
	caller, err := requireString(c, "caller")
	if nil != err {
		return err
	}
	recipient, err := requireString(c, "recipient")
	if nil != err {
		return err
	}
	return call(c, "Treasury.Sweep", &sweepArguments{
		Caller:    caller,
		Recipient: recipient,
	})
}
