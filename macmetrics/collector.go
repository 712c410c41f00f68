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

// Package macmetrics exports duty-MAC statistics as Prometheus metrics.
package macmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/openthread/ot-dutymac/types"
)

const (
	namespace = "dutymac"
	subsystem = "leaf"
)

const (
	labelFromState = "from_state"
	labelToState   = "to_state"
)

// Collector holds the duty-MAC Prometheus metrics. A nil *Collector is valid
// and records nothing, so the controller never has to guard its calls.
type Collector struct {
	// StateTransitions counts duty-state transitions, labeled from/to.
	StateTransitions *prometheus.CounterVec

	// TxData counts acknowledged data frame transmissions.
	TxData prometheus.Counter

	// TxBeacons counts transmitted wake-up beacons.
	TxBeacons prometheus.Counter

	// TxFailures counts frames and beacons abandoned after the final retry.
	TxFailures prometheus.Counter

	// RxFrames counts received frames handed to upper layers.
	RxFrames prometheus.Counter

	// QueueDepth tracks the current TX queue depth.
	QueueDepth prometheus.Gauge

	// QueueOverflows counts SEND rejections on a full TX queue.
	QueueOverflows prometheus.Counter

	// FramesDropped counts frames released on terminal TX failure.
	FramesDropped prometheus.Counter

	// SleepInterval tracks the current backed-off sleep interval in seconds.
	SleepInterval prometheus.Gauge
}

// NewCollector creates a Collector registered against reg. If reg is nil,
// prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.StateTransitions,
		c.TxData,
		c.TxBeacons,
		c.TxFailures,
		c.RxFrames,
		c.QueueDepth,
		c.QueueOverflows,
		c.FramesDropped,
		c.SleepInterval,
	)

	return c
}

func newMetrics() *Collector {
	return &Collector{
		StateTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "state_transitions_total",
			Help:      "Duty-cycle state transitions.",
		}, []string{labelFromState, labelToState}),

		TxData: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tx_data_total",
			Help:      "Acknowledged data frame transmissions.",
		}),

		TxBeacons: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tx_beacons_total",
			Help:      "Transmitted wake-up beacons.",
		}),

		TxFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tx_failures_total",
			Help:      "Transmissions abandoned after the final retry.",
		}),

		RxFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rx_frames_total",
			Help:      "Received frames handed to upper layers.",
		}),

		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tx_queue_depth",
			Help:      "Current TX queue depth in frames.",
		}),

		QueueOverflows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tx_queue_overflows_total",
			Help:      "SEND rejections on a full TX queue.",
		}),

		FramesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_dropped_total",
			Help:      "Frames released on terminal TX failure.",
		}),

		SleepInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sleep_interval_seconds",
			Help:      "Current backed-off sleep interval.",
		}),
	}
}

func (c *Collector) ObserveStateChange(from, to types.DutyState) {
	if c == nil {
		return
	}
	c.StateTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

func (c *Collector) ObserveTxData() {
	if c == nil {
		return
	}
	c.TxData.Inc()
}

func (c *Collector) ObserveTxBeacon() {
	if c == nil {
		return
	}
	c.TxBeacons.Inc()
}

func (c *Collector) ObserveTxFailure() {
	if c == nil {
		return
	}
	c.TxFailures.Inc()
}

func (c *Collector) ObserveRx() {
	if c == nil {
		return
	}
	c.RxFrames.Inc()
}

func (c *Collector) ObserveQueueDepth(depth int) {
	if c == nil {
		return
	}
	c.QueueDepth.Set(float64(depth))
}

func (c *Collector) ObserveQueueOverflow() {
	if c == nil {
		return
	}
	c.QueueOverflows.Inc()
}

func (c *Collector) ObserveFrameDropped() {
	if c == nil {
		return
	}
	c.FramesDropped.Inc()
}

func (c *Collector) ObserveSleepInterval(d time.Duration) {
	if c == nil {
		return
	}
	c.SleepInterval.Set(d.Seconds())
}
