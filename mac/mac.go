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

// Package mac implements the duty-cycled link-layer controller for a
// battery-powered leaf node. The controller is a single-goroutine actor: it
// owns the duty-cycle state machine, the TX queue and the wake timer, and it
// communicates with interrupt context, timer context and upper layers only
// through its mailbox.
package mac

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/openthread/ot-dutymac/logger"
	"github.com/openthread/ot-dutymac/macmetrics"
	"github.com/openthread/ot-dutymac/netdev"
	"github.com/openthread/ot-dutymac/prng"
	"github.com/openthread/ot-dutymac/types"
)

// Errors surfaced through the upper-layer API.
var (
	ErrQueueFull = errors.New("tx queue full")
	ErrStopped   = errors.New("mac controller stopped")
	ErrBadValue  = errors.New("bad option value")
)

type msgKind int

const (
	msgDutyEvent msgKind = iota // drive the duty-cycle state machine
	msgTick                     // wake-timer expiry
	msgCheckQueue               // re-evaluate the submission policy
	msgRemoveQueue              // drop the queue head after a terminal TX outcome
	msgLinkRetransmit           // retry/CSMA layer requests a (re)submission
	msgRadioISR                 // run the radio driver's ISR hook
	msgSend                     // upper layer enqueues a frame
	msgSet                      // upper layer sets a device option
	msgGet                      // upper layer reads a device option
	msgStatus                   // upper layer reads a controller snapshot
)

type message struct {
	kind    msgKind
	tickGen uint32
	frame   *types.Frame
	rexmit  bool
	opt     types.NetOpt
	value   interface{}
	reply   chan apiReply
}

type apiReply struct {
	value interface{}
	err   error
}

// FrameListener consumes received frames of a registered type and takes
// ownership of them.
type FrameListener func(*types.Frame)

// Counters holds the L2 statistics of the controller.
type Counters struct {
	TxData         uint64 // data frames acknowledged
	TxBeacons      uint64 // beacons transmitted
	TxFailures     uint64 // frames or beacons abandoned after final retry
	RxFrames       uint64 // frames received and dispatched
	QueueOverflows uint64 // SEND rejections
	FramesDropped  uint64 // frames released on terminal TX failure
	Ticks          uint64 // wake-timer expiries processed
	LostInterrupts uint64 // ISR posts dropped on a full mailbox
}

// Status is a consistent snapshot of the controller, taken on the MAC
// goroutine.
type Status struct {
	State         types.DutyState
	DutyCycling   bool
	RadioBusy     bool
	BeaconPending bool
	QueueLen      int
	SleepShift    uint
	SleepInterval time.Duration
	Counters      Counters
}

// Controller is the duty-MAC actor. Create with NewController, drive with
// Run, and talk to it through Send/Set/Get/Status.
type Controller struct {
	cfg     Config
	dev     netdev.Device
	clock   clockwork.Clock
	metrics *macmetrics.Collector

	mailbox chan message
	stopCh  chan struct{}
	doneCh  chan struct{}
	stop    sync.Once

	// state below is owned by the MAC goroutine
	state            types.DutyState
	dutyCycling      bool
	radioBusy        bool
	sendingBeacon    bool
	beaconPending    bool
	additionalWakeup bool
	headFailed       bool
	counters         Counters

	irqPending     atomic.Bool
	lostInterrupts atomic.Uint64

	queue   *txQueue
	timer   *wakeTimer
	backoff *sleepBackoff
	csma    *csmaSender
	retry   *retrySender

	listenersMu sync.Mutex
	listeners   map[types.FrameType]FrameListener
	onDropped   func(*types.Frame)
}

// NewController creates a duty-MAC controller for the given device. A nil
// clock selects the real clock; a nil collector disables metrics.
func NewController(cfg Config, dev netdev.Device, clock clockwork.Clock, metrics *macmetrics.Collector) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	c := &Controller{
		cfg:       cfg,
		dev:       dev,
		clock:     clock,
		metrics:   metrics,
		mailbox:   make(chan message, cfg.MailboxCap),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		state:     types.DutyInit,
		queue:     newTxQueue(cfg.QueueCap),
		backoff:   newSleepBackoff(cfg.MinInterval, cfg.MaxInterval),
		csma:      newCsmaSender(clock, cfg),
		retry:     &retrySender{},
		listeners: map[types.FrameType]FrameListener{},
	}
	c.timer = newWakeTimer(clock, c.postTick)
	return c, nil
}

// Run initializes the device and processes mailbox messages until Stop is
// called. It must run on its own goroutine.
func (c *Controller) Run() error {
	defer close(c.doneCh)

	if err := c.dev.Init(c); err != nil {
		return errors.Wrap(err, "device init")
	}
	logger.Debugf("mac: controller started")

	for {
		select {
		case m := <-c.mailbox:
			c.dispatch(m)
		case <-c.stopCh:
			c.shutdown()
			return nil
		}
	}
}

// Stop terminates the Run loop, disarms the timer and releases every queued
// frame. It may be called from any goroutine, and more than once; it returns
// after the loop has exited.
func (c *Controller) Stop() {
	c.stop.Do(func() {
		close(c.stopCh)
	})
	<-c.doneCh
}

func (c *Controller) shutdown() {
	c.timer.Disarm()
	// answer pending callers and release any frames still in the mailbox
	for {
		select {
		case m := <-c.mailbox:
			if m.reply != nil {
				m.reply <- apiReply{err: ErrStopped}
			}
			if m.kind == msgSend {
				m.frame.Release()
			}
		default:
			c.queue.Flush()
			logger.Debugf("mac: controller stopped")
			return
		}
	}
}

func (c *Controller) dispatch(m message) {
	switch m.kind {
	case msgDutyEvent:
		c.handleDutyEvent()
	case msgTick:
		c.handleTick(m.tickGen)
	case msgCheckQueue:
		c.handleCheckQueue()
	case msgRemoveQueue:
		c.handleRemoveQueue()
	case msgLinkRetransmit:
		c.handleLinkRetransmit(m)
	case msgRadioISR:
		c.handleRadioISR()
	case msgSend:
		c.handleSend(m)
	case msgSet:
		c.handleSet(m)
	case msgGet:
		c.handleGet(m)
	case msgStatus:
		m.reply <- apiReply{value: c.snapshot()}
	default:
		logger.Debugf("mac: unknown message kind %d", m.kind)
	}
}

// post delivers a message without blocking; it reports delivery. Used from
// interrupt/timer context and for self-posts.
func (c *Controller) post(m message) bool {
	select {
	case c.mailbox <- m:
		return true
	default:
		return false
	}
}

func (c *Controller) postSelf(m message) {
	if !c.post(m) {
		logger.Debugf("mac: mailbox full, dropping self message kind %d", m.kind)
	}
}

func (c *Controller) postTick(gen uint32) {
	if !c.post(message{kind: msgTick, tickGen: gen}) {
		logger.Debugf("mac: mailbox full, dropping tick")
	}
}

// apiCall delivers a request message and waits for the reply.
func (c *Controller) apiCall(m message) apiReply {
	m.reply = make(chan apiReply, 1)
	select {
	case c.mailbox <- m:
	case <-c.stopCh:
		return apiReply{err: ErrStopped}
	}
	select {
	case r := <-m.reply:
		return r
	case <-c.doneCh:
		return apiReply{err: ErrStopped}
	}
}

// Send hands a frame to the MAC for transmission. On ErrQueueFull the caller
// retains ownership of the frame; otherwise the queue owns it until terminal
// TX outcome.
func (c *Controller) Send(frame *types.Frame) error {
	return c.apiCall(message{kind: msgSend, frame: frame}).err
}

// Set sets a device option. OptDutyCycle is owned by the controller and
// never forwarded to the driver.
func (c *Controller) Set(opt types.NetOpt, value interface{}) error {
	return c.apiCall(message{kind: msgSet, opt: opt, value: value}).err
}

// Get reads a device option.
func (c *Controller) Get(opt types.NetOpt) (interface{}, error) {
	r := c.apiCall(message{kind: msgGet, opt: opt})
	return r.value, r.err
}

// Status returns a consistent snapshot of the controller state.
func (c *Controller) Status() Status {
	r := c.apiCall(message{kind: msgStatus})
	if r.err != nil {
		return Status{}
	}
	return r.value.(Status)
}

// RegisterListener registers the listener receiving frames of type t,
// replacing any previous one.
func (c *Controller) RegisterListener(t types.FrameType, l FrameListener) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.listeners[t] = l
}

// SetFrameDropHandler registers an observer for frames released on terminal
// TX failure. The drop itself stays silent toward the sender.
func (c *Controller) SetFrameDropHandler(fn func(*types.Frame)) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.onDropped = fn
}

func (c *Controller) frameDropHandler() func(*types.Frame) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	return c.onDropped
}

func (c *Controller) snapshot() Status {
	counters := c.counters
	counters.LostInterrupts = c.lostInterrupts.Load()
	return Status{
		State:         c.state,
		DutyCycling:   c.dutyCycling,
		RadioBusy:     c.radioBusy,
		BeaconPending: c.beaconPending,
		QueueLen:      c.queue.Len(),
		SleepShift:    c.backoff.Shift(),
		SleepInterval: c.backoff.Interval(),
		Counters:      counters,
	}
}

// setState performs a duty-state transition.
func (c *Controller) setState(next types.DutyState) {
	if c.state == next {
		return
	}
	logger.Tracef("mac: %v -> %v", c.state, next)
	c.metrics.ObserveStateChange(c.state, next)
	c.state = next
}

// setRadioState powers the radio per the duty state.
func (c *Controller) setRadioState(st types.DeviceState) {
	if err := c.dev.Set(types.OptState, st); err != nil {
		logger.Errorf("mac: set radio state %v: %v", st, err)
	}
}

// canSubmit is the submission policy: a frame may be handed to the radio
// only when no frame is in flight, no interrupt is pending and the radio is
// not receiving.
func (c *Controller) canSubmit() bool {
	return !c.radioBusy && !c.irqPending.Load() && !netdev.IsReceiving(c.dev)
}

// submitHead starts transmission of the queue head through the retry/CSMA
// helpers. The radio is powered up on every submission path.
func (c *Controller) submitHead() {
	frame := c.queue.PeekHead()
	if frame == nil {
		return
	}
	c.setRadioState(types.DeviceStateIdle)
	c.radioBusy = true
	c.sendingBeacon = false
	c.retry.Send(c.cfg.MaxRetries, func(rexmit bool) {
		c.csma.Send(func() {
			c.postSelf(message{kind: msgLinkRetransmit, frame: frame, rexmit: rexmit})
		})
	})
}

// launchBeacon starts a beacon transmission through the retry/CSMA helpers.
func (c *Controller) launchBeacon() {
	c.setRadioState(types.DeviceStateIdle)
	c.radioBusy = true
	c.sendingBeacon = true
	c.retry.Send(c.cfg.MaxRetries, func(rexmit bool) {
		c.csma.Send(func() {
			c.postSelf(message{kind: msgLinkRetransmit, rexmit: rexmit})
		})
	})
}

// sendBeaconSafely launches the beacon if the radio is free, and otherwise
// records the desire; it is re-evaluated after the next interrupt drain.
func (c *Controller) sendBeaconSafely() {
	if c.radioBusy || c.irqPending.Load() || netdev.IsReceiving(c.dev) {
		c.beaconPending = true
		return
	}
	c.launchBeacon()
}

// handleDutyEvent drives the state machine; the work to do is a function of
// the current state.
func (c *Controller) handleDutyEvent() {
	if !c.dutyCycling {
		logger.Debugf("mac: duty event while duty-cycling disabled")
		return
	}
	switch c.state {
	case types.DutyInit:
		// duty-cycling starts from sleep, de-phased from sibling nodes
		c.setState(types.DutySleep)
		c.setRadioState(types.DeviceStateSleep)
		if err := c.dev.Set(types.OptSrcLen, types.ShortAddrLen); err != nil {
			logger.Errorf("mac: set src-len: %v", err)
		}
		c.armTimer(prng.WakeJitter(c.cfg.MaxInterval))
	case types.DutyTxBeacon:
		c.timer.Disarm()
		c.sendBeaconSafely()
	case types.DutyTxData:
		// queue drained; the wake timer keeps running toward the next cycle
		c.setState(types.DutySleep)
		c.setRadioState(types.DeviceStateSleep)
	case types.DutyTxDataBeforeBeacon:
		c.timer.Disarm()
		if !c.queue.Empty() && c.canSubmit() {
			c.submitHead()
		}
	case types.DutyListen:
		c.setRadioState(types.DeviceStateIdle)
		c.armTimer(c.cfg.WakeupInterval)
	case types.DutySleep:
		c.setRadioState(types.DeviceStateSleep)
		c.armTimer(c.backoff.Interval())
	}
}

// handleTick runs on wake-timer expiry. A tick whose generation was overtaken
// by a disarm is stale and ignored.
func (c *Controller) handleTick(gen uint32) {
	if c.timer.Stale(gen) {
		logger.Tracef("mac: stale tick dropped")
		return
	}
	c.counters.Ticks++
	switch c.state {
	case types.DutySleep:
		if !c.queue.Empty() {
			c.setState(types.DutyTxDataBeforeBeacon)
		} else {
			c.setState(types.DutyTxBeacon)
		}
		c.handleDutyEvent()
	case types.DutyListen:
		if !c.queue.Empty() {
			c.armTimer(c.backoff.Interval())
			c.setState(types.DutyTxData)
			c.handleCheckQueue()
		} else {
			c.setState(types.DutySleep)
			c.handleDutyEvent()
		}
	case types.DutyTxData:
		// sleep deadline elapsed mid-TX; only the follow-up changes
		c.setState(types.DutyTxDataBeforeBeacon)
	default:
	}
}

// handleCheckQueue re-evaluates the submission policy per the draining
// rules: submit in SLEEP/TX_DATA/TX_DATA_BEFORE_BEACON, never preempt the
// listen window or an outstanding beacon.
func (c *Controller) handleCheckQueue() {
	switch c.state {
	case types.DutySleep, types.DutyTxData, types.DutyTxDataBeforeBeacon:
	default:
		return
	}
	if c.queue.Empty() || !c.canSubmit() {
		return
	}
	if c.state == types.DutySleep {
		c.setState(types.DutyTxData)
	}
	c.submitHead()
}

// handleRemoveQueue drops the queue head after a terminal TX outcome and
// keeps the pipeline moving.
func (c *Controller) handleRemoveQueue() {
	failed := c.headFailed
	c.headFailed = false
	if frame := c.queue.DropHead(); frame != nil {
		if failed {
			c.counters.FramesDropped++
			c.metrics.ObserveFrameDropped()
			if fn := c.frameDropHandler(); fn != nil {
				fn(frame)
			}
		}
		frame.Release()
	}
	c.metrics.ObserveQueueDepth(c.queue.Len())

	if !c.queue.Empty() {
		if c.canSubmit() {
			c.submitHead()
		}
		return
	}
	switch c.state {
	case types.DutyTxDataBeforeBeacon:
		c.setState(types.DutyTxBeacon)
		c.sendBeaconSafely()
	case types.DutyTxData:
		c.setState(types.DutySleep)
		c.setRadioState(types.DeviceStateSleep)
	}
}

// handleLinkRetransmit hands the current attempt to the radio, unless an
// interrupt or reception is in the way, in which case the attempt is
// re-posted.
func (c *Controller) handleLinkRetransmit(m message) {
	if c.irqPending.Load() || netdev.IsReceiving(c.dev) {
		c.postSelf(message{kind: msgLinkRetransmit, frame: m.frame, rexmit: m.rexmit})
		return
	}
	var err error
	switch {
	case c.sendingBeacon:
		err = c.dev.SendBeacon()
	case m.rexmit:
		err = c.dev.Resend(m.frame, false)
	default:
		err = c.dev.Send(m.frame, false)
	}
	if err != nil {
		// immediate rejection counts as a failed channel access
		c.OnRadioEvent(types.EventTxMediumBusy)
	}
}

// handleRadioISR drains the device interrupt, then launches a deferred
// beacon and conservatively re-checks the queue.
func (c *Controller) handleRadioISR() {
	c.irqPending.Store(false)
	c.dev.ISR()
	if c.beaconPending && !c.radioBusy {
		c.beaconPending = false
		c.launchBeacon()
	}
	c.postSelf(message{kind: msgCheckQueue})
}

func (c *Controller) handleSend(m message) {
	if err := c.queue.Enqueue(m.frame); err != nil {
		c.counters.QueueOverflows++
		c.metrics.ObserveQueueOverflow()
		logger.Debugf("mac: tx queue overflow")
		m.reply <- apiReply{err: err}
		return
	}
	c.metrics.ObserveQueueDepth(c.queue.Len())
	m.reply <- apiReply{}

	switch {
	case c.state == types.DutyInit:
		// duty-cycling disabled: send right away when the radio is free
		if c.queue.Len() == 1 && c.canSubmit() {
			c.submitHead()
		}
	case c.queue.Len() > 1 || c.radioBusy:
		// deferred until the next wake or queue check
	case c.state == types.DutySleep && c.canSubmit():
		c.setState(types.DutyTxData)
		c.submitHead()
	}
}

func (c *Controller) handleSet(m message) {
	if m.opt != types.OptDutyCycle {
		m.reply <- apiReply{err: c.dev.Set(m.opt, m.value)}
		return
	}
	enable, ok := m.value.(bool)
	if !ok {
		m.reply <- apiReply{err: ErrBadValue}
		return
	}
	c.dutyCycling = enable
	c.timer.Disarm()
	if enable {
		c.setState(types.DutySleep)
		c.armTimer(prng.WakeJitter(c.cfg.MaxInterval))
		logger.Debugf("mac: duty-cycling enabled")
	} else {
		c.setState(types.DutyInit)
		c.beaconPending = false
		logger.Debugf("mac: duty-cycling disabled")
	}
	// short addresses while duty-cycling; the radio sleeps either way
	if err := c.dev.Set(types.OptSrcLen, types.ShortAddrLen); err != nil {
		logger.Errorf("mac: set src-len: %v", err)
	}
	m.reply <- apiReply{err: c.dev.Set(types.OptState, types.DeviceStateSleep)}
}

func (c *Controller) handleGet(m message) {
	if m.opt == types.OptDutyCycle {
		m.reply <- apiReply{value: c.dutyCycling}
		return
	}
	v, err := c.dev.Get(m.opt)
	m.reply <- apiReply{value: v, err: err}
}

// armTimer arms the wake timer and mirrors the interval to the metrics.
func (c *Controller) armTimer(d time.Duration) {
	c.timer.Arm(d)
	c.metrics.ObserveSleepInterval(c.backoff.Interval())
}

// passOnFrame dispatches a received frame to the registered listener, which
// takes ownership; an unclaimed frame is released.
func (c *Controller) passOnFrame(frame *types.Frame) {
	c.listenersMu.Lock()
	l := c.listeners[frame.Type]
	c.listenersMu.Unlock()
	if l == nil {
		logger.Debugf("mac: no listener for %v frame, releasing", frame.Type)
		frame.Release()
		return
	}
	l(frame)
}
