// Copyright (c) 2026, The OT Duty-MAC Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// This file defines the format of all CLI commands and their flags.

package cli

import (
	"github.com/alecthomas/participle"
)

type command struct {
	Counters  *CountersCmd  `  @@` //nolint
	Downlink  *DownlinkCmd  `| @@` //nolint
	DutyCycle *DutyCycleCmd `| @@` //nolint
	Exit      *ExitCmd      `| @@` //nolint
	Help      *HelpCmd      `| @@` //nolint
	Interval  *IntervalCmd  `| @@` //nolint
	Log       *LogCmd       `| @@` //nolint
	Radio     *RadioCmd     `| @@` //nolint
	Send      *SendCmd      `| @@` //nolint
	Status    *StatusCmd    `| @@` //nolint
}

// CountersCmd defines the `counters` command format.
type CountersCmd struct {
	Cmd struct{} `"counters"` //nolint
}

// DownlinkCmd defines the `downlink` command format.
type DownlinkCmd struct {
	Cmd      struct{}      `"downlink"` //nolint
	Count    *int          `[ @Int ]`   //nolint
	DataSize *DataSizeFlag `[ @@ ]`     //nolint
}

// DutyCycleCmd defines the `dutycycle` command format.
type DutyCycleCmd struct {
	Cmd struct{} `"dutycycle"`       //nolint
	On  *OnFlag  `[ ( @@`            //nolint
	Off *OffFlag `  | @@ ) ]`        //nolint
}

// OnFlag defines the `on` flag format.
type OnFlag struct {
	Dummy struct{} `"on"` //nolint
}

// OffFlag defines the `off` flag format.
type OffFlag struct {
	Dummy struct{} `"off"` //nolint
}

// ExitCmd defines the `exit` command format.
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

// HelpCmd defines the `help` command format.
type HelpCmd struct {
	Cmd     struct{} `"help"`      //nolint
	Command *string  `[ @Ident ]`  //nolint
}

// IntervalCmd defines the `interval` command format.
type IntervalCmd struct {
	Cmd struct{} `"interval"` //nolint
}

// LogCmd defines the `log` command format.
type LogCmd struct {
	Cmd   struct{} `"log"`       //nolint
	Level *string  `[ @Ident ]`  //nolint
}

// RadioCmd defines the `radio` command format.
type RadioCmd struct {
	Cmd  struct{}         `"radio"` //nolint
	Fail *RadioFailParams `[ @@ ]`  //nolint
}

// RadioFailParams defines the simulated failure rate parameters.
type RadioFailParams struct {
	Dummy   struct{} `"fail"`         //nolint
	NoAck   float64  `(@Int|@Float)`  //nolint
	CcaFail float64  `(@Int|@Float)`  //nolint
}

// SendCmd defines the `send` command format.
type SendCmd struct {
	Cmd      struct{}      `"send"`  //nolint
	Count    *int          `[ @Int ]` //nolint
	DataSize *DataSizeFlag `[ @@ ]`   //nolint
}

// DataSizeFlag defines the `datasize` flag format for specifying data size.
type DataSizeFlag struct {
	Val int `("datasize"|"ds") @Int` //nolint
}

// StatusCmd defines the `status` command format.
type StatusCmd struct {
	Cmd struct{} `"status"` //nolint
}

var (
	commandParser = participle.MustBuild(&command{})
)

func parseCmdBytes(b []byte, cmd *command) error {
	return commandParser.ParseBytes(b, cmd)
}
