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

package mac

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the duty-MAC parameters. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// MinInterval is the shortest sleep interval between wake-ups.
	MinInterval time.Duration `yaml:"min-interval"`
	// MaxInterval caps the backed-off sleep interval.
	MaxInterval time.Duration `yaml:"max-interval"`
	// WakeupInterval is the guard time of the idle-listen window.
	WakeupInterval time.Duration `yaml:"wakeup-interval"`

	// QueueCap is the TX queue capacity in frames.
	QueueCap int `yaml:"queue-cap"`
	// MailboxCap is the MAC mailbox capacity in messages.
	MailboxCap int `yaml:"mailbox-cap"`

	// MaxRetries is the link-layer retry limit per frame; -1 selects the
	// 802.15.4 default of 3.
	MaxRetries int `yaml:"max-retries"`

	// CSMA/CA parameters (802.15.4 unslotted CSMA).
	CsmaMinBE       uint          `yaml:"csma-min-be"`
	CsmaMaxBE       uint          `yaml:"csma-max-be"`
	CsmaMaxBackoffs int           `yaml:"csma-max-backoffs"`
	CsmaUnitBackoff time.Duration `yaml:"csma-unit-backoff"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MinInterval:     100 * time.Millisecond,
		MaxInterval:     25600 * time.Millisecond,
		WakeupInterval:  50 * time.Millisecond,
		QueueCap:        128,
		MailboxCap:      16,
		MaxRetries:      -1,
		CsmaMinBE:       3,
		CsmaMaxBE:       5,
		CsmaMaxBackoffs: 4,
		CsmaUnitBackoff: 320 * time.Microsecond,
	}
}

// yamlConfig mirrors Config for yaml parsing; durations are given as strings
// like "200ms", and absent fields keep their defaults.
type yamlConfig struct {
	MinInterval     *string `yaml:"min-interval"`
	MaxInterval     *string `yaml:"max-interval"`
	WakeupInterval  *string `yaml:"wakeup-interval"`
	QueueCap        *int    `yaml:"queue-cap"`
	MailboxCap      *int    `yaml:"mailbox-cap"`
	MaxRetries      *int    `yaml:"max-retries"`
	CsmaMinBE       *uint   `yaml:"csma-min-be"`
	CsmaMaxBE       *uint   `yaml:"csma-max-be"`
	CsmaMaxBackoffs *int    `yaml:"csma-max-backoffs"`
	CsmaUnitBackoff *string `yaml:"csma-unit-backoff"`
}

// LoadConfig reads a yaml config file and merges it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	for _, field := range []struct {
		src *string
		dst *time.Duration
		key string
	}{
		{yc.MinInterval, &cfg.MinInterval, "min-interval"},
		{yc.MaxInterval, &cfg.MaxInterval, "max-interval"},
		{yc.WakeupInterval, &cfg.WakeupInterval, "wakeup-interval"},
		{yc.CsmaUnitBackoff, &cfg.CsmaUnitBackoff, "csma-unit-backoff"},
	} {
		if field.src == nil {
			continue
		}
		d, err := time.ParseDuration(*field.src)
		if err != nil {
			return cfg, errors.Wrapf(err, "parse %s", field.key)
		}
		*field.dst = d
	}
	if yc.QueueCap != nil {
		cfg.QueueCap = *yc.QueueCap
	}
	if yc.MailboxCap != nil {
		cfg.MailboxCap = *yc.MailboxCap
	}
	if yc.MaxRetries != nil {
		cfg.MaxRetries = *yc.MaxRetries
	}
	if yc.CsmaMinBE != nil {
		cfg.CsmaMinBE = *yc.CsmaMinBE
	}
	if yc.CsmaMaxBE != nil {
		cfg.CsmaMaxBE = *yc.CsmaMaxBE
	}
	if yc.CsmaMaxBackoffs != nil {
		cfg.CsmaMaxBackoffs = *yc.CsmaMaxBackoffs
	}
	return cfg, cfg.Validate()
}

// Validate checks the config for usable values.
func (cfg Config) Validate() error {
	if cfg.MinInterval <= 0 {
		return errors.Errorf("min-interval must be positive, got %v", cfg.MinInterval)
	}
	if cfg.MaxInterval < cfg.MinInterval {
		return errors.Errorf("max-interval %v below min-interval %v", cfg.MaxInterval, cfg.MinInterval)
	}
	if cfg.WakeupInterval <= 0 {
		return errors.Errorf("wakeup-interval must be positive, got %v", cfg.WakeupInterval)
	}
	if cfg.QueueCap < 1 {
		return errors.Errorf("queue-cap must be at least 1, got %d", cfg.QueueCap)
	}
	if cfg.MailboxCap < 1 {
		return errors.Errorf("mailbox-cap must be at least 1, got %d", cfg.MailboxCap)
	}
	if cfg.CsmaMinBE > cfg.CsmaMaxBE {
		return errors.Errorf("csma-min-be %d above csma-max-be %d", cfg.CsmaMinBE, cfg.CsmaMaxBE)
	}
	if cfg.CsmaMaxBE > 8 {
		return errors.Errorf("csma-max-be %d out of range", cfg.CsmaMaxBE)
	}
	if cfg.CsmaMaxBackoffs < 0 {
		return errors.Errorf("csma-max-backoffs must not be negative, got %d", cfg.CsmaMaxBackoffs)
	}
	if cfg.CsmaUnitBackoff < 0 {
		return errors.Errorf("csma-unit-backoff must not be negative, got %v", cfg.CsmaUnitBackoff)
	}
	return nil
}

// maxRetries resolves the configured retry limit.
func (cfg Config) maxRetries() int {
	if cfg.MaxRetries < 0 {
		return defaultMaxFrameRetries
	}
	return cfg.MaxRetries
}
