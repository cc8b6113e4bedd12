// Copyright (c) 2024, The OTNS Authors.
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

// Package dimensioning combines the calculator packages into one dimensioning result per
// technology. It owns the caller-side policies the calculators deliberately leave out: the UMTS
// fallback radius, recovery of failed computations into errors, result memoisation and call
// accounting.
package dimensioning

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/openthread/netdim/logger"
	. "github.com/openthread/netdim/types"
	"github.com/openthread/netdim/umts"
)

const (
	DefaultCacheSize            = 256
	DefaultUmtsFallbackRadiusKm = 0.8
)

// Config configures an Engine.
type Config struct {
	CacheSize            int                  // number of memoised results; 0 disables the cache
	UmtsFallbackRadiusKm float64              // radius used when the UMTS coverage radius is invalid
	Registry             *prometheus.Registry // metrics registry; a private one is created if nil
}

func DefaultConfig() *Config {
	return &Config{
		CacheSize:            DefaultCacheSize,
		UmtsFallbackRadiusKm: DefaultUmtsFallbackRadiusKm,
	}
}

// ComputationError reports a calculation that failed with a panic or an explicit error.
type ComputationError struct {
	Technology Technology
	Op         string
	Message    string
	Err        error // the underlying error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Technology, e.Op, e.Message)
}

// Cause returns the underlying error, for errors.Cause.
func (e *ComputationError) Cause() error {
	return e.Err
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

type metrics struct {
	requests  *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

func newMetrics(reg *prometheus.Registry) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netdim",
			Name:      "dimensioning_requests_total",
			Help:      "Dimensioning requests by technology and outcome.",
		}, []string{"technology", "outcome"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netdim",
			Name:      "dimensioning_fallbacks_total",
			Help:      "Caller-side substitutions of degenerate results.",
		}, []string{"technology", "kind"}),
	}
}

// Engine runs dimensioning requests. It is safe for concurrent use.
type Engine struct {
	cfg      Config
	cache    *lru.Cache
	registry *prometheus.Registry
	metrics  *metrics
}

// NewEngine creates an engine. A nil cfg uses DefaultConfig().
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		cfg:      *cfg,
		registry: cfg.Registry,
	}
	if e.registry == nil {
		e.registry = prometheus.NewRegistry()
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New(cfg.CacheSize)
		if err != nil {
			return nil, errors.Wrapf(err, "create result cache")
		}
		e.cache = cache
	}
	e.metrics = newMetrics(e.registry)
	return e, nil
}

// Gather returns the engine's metric families.
func (e *Engine) Gather() ([]*dto.MetricFamily, error) {
	return e.registry.Gather()
}

// PurgeCache drops all memoised results.
func (e *Engine) PurgeCache() {
	if e.cache != nil {
		e.cache.Purge()
	}
}

func cacheKey(tech Technology, req interface{}) string {
	return fmt.Sprintf("%s/%+v", tech, req)
}

// run looks up req in the cache, or calls compute and caches its result on success.
func (e *Engine) run(tech Technology, req interface{}, compute func() (interface{}, error)) (interface{}, error) {
	key := cacheKey(tech, req)
	if e.cache != nil {
		if res, ok := e.cache.Get(key); ok {
			e.metrics.requests.WithLabelValues(tech.String(), "cached").Inc()
			return detach(res), nil
		}
	}

	logger.Named(tech.String()).Debugf("dimensioning %+v", req)
	res, err := e.safely(tech, "dimensioning", compute)
	if err != nil {
		e.metrics.requests.WithLabelValues(tech.String(), "error").Inc()
		return nil, err
	}
	e.metrics.requests.WithLabelValues(tech.String(), "ok").Inc()
	if e.cache != nil {
		e.cache.Add(key, detach(res))
	}
	return res, nil
}

// detach copies the slices of a result so that the cached entry shares no memory with callers.
func detach(res interface{}) interface{} {
	if r, ok := res.(UMTSResult); ok {
		r.Uplink.Services = append([]umts.ServiceLoad(nil), r.Uplink.Services...)
		r.Downlink.Services = append([]umts.ServiceLoad(nil), r.Downlink.Services...)
		return r
	}
	return res
}

// safely calls compute, turning a panic or an error into a *ComputationError.
func (e *Engine) safely(tech Technology, op string, compute func() (interface{}, error)) (res interface{}, err error) {
	defer func() {
		if rerr := recover(); rerr != nil {
			logger.Named(tech.String()).Warnf("%s panicked: %v", op, rerr)
			res = nil
			err = &ComputationError{Technology: tech, Op: op, Message: fmt.Sprint(rerr),
				Err: errors.Errorf("panic: %v", rerr)}
		}
	}()

	res, err = compute()
	if err != nil {
		err = &ComputationError{Technology: tech, Op: op, Message: err.Error(), Err: err}
	}
	return
}

func (e *Engine) fallback(tech Technology, kind string) {
	e.metrics.fallbacks.WithLabelValues(tech.String(), kind).Inc()
}
