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

package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/openthread/ot-dutymac/logger"
	"github.com/openthread/ot-dutymac/mac"
	"github.com/openthread/ot-dutymac/netdev"
	"github.com/openthread/ot-dutymac/progctx"
	"github.com/openthread/ot-dutymac/types"
)

const (
	Prompt = "> "

	defaultDataSize = 32
)

// CmdRunner executes console commands against the duty-MAC controller.
type CmdRunner struct {
	ctx  *progctx.ProgCtx
	ctrl *mac.Controller
	sim  *netdev.SimDevice // nil when the device is not simulated
	help Help
}

// NewCmdRunner creates the command runner. sim may be nil.
func NewCmdRunner(ctx *progctx.ProgCtx, ctrl *mac.Controller, sim *netdev.SimDevice) *CmdRunner {
	return &CmdRunner{
		ctx:  ctx,
		ctrl: ctrl,
		sim:  sim,
		help: newHelp(),
	}
}

type commandContext struct {
	*command
	out io.Writer
	err error
}

func (cc *commandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.out, format, args...)
}

func (cc *commandContext) errorf(format string, args ...interface{}) {
	cc.err = errors.Errorf(format, args...)
}

func (cc *commandContext) error(err error) {
	cc.err = err
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	cmd := &command{}
	if err := parseCmdBytes([]byte(cmdline), cmd); err != nil {
		if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
			return err
		}
		return nil
	}

	cc := rt.execute(cmd, output)
	if cc.err != nil {
		if _, err := fmt.Fprintf(output, "Error: %v\n", cc.err); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(output, "Done\n"); err != nil {
			return err
		}
	}
	return nil
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

func (rt *CmdRunner) execute(cmd *command, output io.Writer) *commandContext {
	cc := &commandContext{command: cmd, out: output}

	switch {
	case cmd.Counters != nil:
		rt.executeCounters(cc)
	case cmd.Downlink != nil:
		rt.executeDownlink(cc, cmd.Downlink)
	case cmd.DutyCycle != nil:
		rt.executeDutyCycle(cc, cmd.DutyCycle)
	case cmd.Exit != nil:
		rt.ctx.Cancel("exit")
	case cmd.Help != nil:
		rt.executeHelp(cc, cmd.Help)
	case cmd.Interval != nil:
		rt.executeInterval(cc)
	case cmd.Log != nil:
		rt.executeLog(cc, cmd.Log)
	case cmd.Radio != nil:
		rt.executeRadio(cc, cmd.Radio)
	case cmd.Send != nil:
		rt.executeSend(cc, cmd.Send)
	case cmd.Status != nil:
		rt.executeStatus(cc)
	default:
		cc.errorf("unimplemented command")
	}

	return cc
}

func (rt *CmdRunner) executeCounters(cc *commandContext) {
	s := rt.ctrl.Status()
	cc.outputf("tx-data          %d\n", s.Counters.TxData)
	cc.outputf("tx-beacons       %d\n", s.Counters.TxBeacons)
	cc.outputf("tx-failures      %d\n", s.Counters.TxFailures)
	cc.outputf("rx-frames        %d\n", s.Counters.RxFrames)
	cc.outputf("queue-overflows  %d\n", s.Counters.QueueOverflows)
	cc.outputf("frames-dropped   %d\n", s.Counters.FramesDropped)
	cc.outputf("ticks            %d\n", s.Counters.Ticks)
	cc.outputf("lost-interrupts  %d\n", s.Counters.LostInterrupts)
}

func (rt *CmdRunner) executeDownlink(cc *commandContext, cmd *DownlinkCmd) {
	if rt.sim == nil {
		cc.errorf("no simulated parent attached")
		return
	}
	count, size := 1, defaultDataSize
	if cmd.Count != nil {
		count = *cmd.Count
	}
	if cmd.DataSize != nil {
		size = cmd.DataSize.Val
	}
	for i := 0; i < count; i++ {
		rt.sim.QueueDownlink(types.NewFrame(types.FrameTypeData, make([]byte, size)))
	}
	cc.outputf("%d frame(s) queued at parent\n", count)
}

func (rt *CmdRunner) executeDutyCycle(cc *commandContext, cmd *DutyCycleCmd) {
	if cmd.On == nil && cmd.Off == nil {
		v, err := rt.ctrl.Get(types.OptDutyCycle)
		if err != nil {
			cc.error(err)
			return
		}
		if on, _ := v.(bool); on {
			cc.outputf("on\n")
		} else {
			cc.outputf("off\n")
		}
		return
	}
	cc.error(rt.ctrl.Set(types.OptDutyCycle, cmd.On != nil))
}

func (rt *CmdRunner) executeHelp(cc *commandContext, cmd *HelpCmd) {
	if cmd.Command != nil {
		cc.outputf("%s", rt.help.outputCommandHelp(*cmd.Command))
	} else {
		cc.outputf("%s", rt.help.outputGeneralHelp())
	}
}

func (rt *CmdRunner) executeInterval(cc *commandContext) {
	s := rt.ctrl.Status()
	cc.outputf("sleep interval %v (shift %d)\n", s.SleepInterval, s.SleepShift)
}

func (rt *CmdRunner) executeLog(cc *commandContext, cmd *LogCmd) {
	if cmd.Level == nil {
		cc.outputf("log level %d\n", logger.GetLevel())
		return
	}
	lv, err := logger.ParseLevel(*cmd.Level)
	if err != nil {
		cc.error(err)
		return
	}
	logger.SetLevel(lv)
}

func (rt *CmdRunner) executeRadio(cc *commandContext, cmd *RadioCmd) {
	if rt.sim == nil {
		cc.errorf("no simulated radio attached")
		return
	}
	if cmd.Fail == nil {
		cc.outputf("%d downlink frame(s) pending at parent\n", rt.sim.DownlinkDepth())
		return
	}
	if cmd.Fail.NoAck < 0 || cmd.Fail.NoAck > 1 || cmd.Fail.CcaFail < 0 || cmd.Fail.CcaFail > 1 {
		cc.errorf("failure rates must be within [0, 1]")
		return
	}
	rt.sim.SetFailRates(cmd.Fail.NoAck, cmd.Fail.CcaFail)
}

func (rt *CmdRunner) executeSend(cc *commandContext, cmd *SendCmd) {
	count, size := 1, defaultDataSize
	if cmd.Count != nil {
		count = *cmd.Count
	}
	if cmd.DataSize != nil {
		size = cmd.DataSize.Val
	}
	sent := 0
	for i := 0; i < count; i++ {
		frame := types.NewFrame(types.FrameTypeData, make([]byte, size))
		if err := rt.ctrl.Send(frame); err != nil {
			cc.errorf("enqueued %d of %d frame(s): %v", sent, count, err)
			return
		}
		sent++
	}
	cc.outputf("%d frame(s) enqueued\n", sent)
}

func (rt *CmdRunner) executeStatus(cc *commandContext) {
	s := rt.ctrl.Status()
	cc.outputf("state           %v\n", s.State)
	cc.outputf("duty-cycling    %v\n", s.DutyCycling)
	cc.outputf("radio-busy      %v\n", s.RadioBusy)
	cc.outputf("beacon-pending  %v\n", s.BeaconPending)
	cc.outputf("queue-len       %d\n", s.QueueLen)
	cc.outputf("sleep-interval  %v\n", s.SleepInterval)
}
