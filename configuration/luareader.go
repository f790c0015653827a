// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"io/ioutil"
	"path/filepath"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
)

// ParseConfigurationFile - execute a Lua configuration script and map
// the table it returns onto a configuration structure
//
// the script sees:
//   arg[0]          - the configuration file name
//   read_file(name) - contents of a file, or nil if unreadable;
//                     relative names resolve against the directory
//                     holding the configuration file
func ParseConfigurationFile(fileName string, config interface{}) error {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	// create the global "arg" table
	// arg[0] = config file
	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	directory := filepath.Dir(fileName)
	L.SetGlobal("read_file", L.NewFunction(func(l *lua.LState) int {
		name := l.CheckString(1)
		if !filepath.IsAbs(name) {
			name = filepath.Join(directory, name)
		}
		data, err := ioutil.ReadFile(name)
		if nil != err {
			l.Push(lua.LNil)
			return 1
		}
		l.Push(lua.LString(data))
		return 1
	}))

	// execute configuration
	if err := L.DoFile(fileName); nil != err {
		return err
	}

	mapperOption := gluamapper.Option{
		NameFunc: func(s string) string {
			return s
		},
		TagName: "gluamapper",
	}
	mapper := gluamapper.Mapper{Option: mapperOption}
	return mapper.Map(L.Get(L.GetTop()).(*lua.LTable), config)
}
