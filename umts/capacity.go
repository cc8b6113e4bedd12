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

// Package umts implements WCDMA cell dimensioning: uplink and downlink load-factor capacity,
// cell coverage by COST-231-Hata inversion, and carrier planning.
package umts

import (
	"math"

	"gonum.org/v1/gonum/floats"

	. "github.com/openthread/netdim/types"
)

const (
	ChipRate          = 3.84e6 // chips/s
	DefaultLoadFactor = 0.75   // planned cell load

	interferenceFactor  = 0.65 // other-to-own cell interference ratio i
	orthogonalityFactor = 0.6  // downlink orthogonality alpha
)

// Service describes one bearer service offered in a cell.
type Service struct {
	Type           ServiceType `yaml:"type" json:"type"`
	BitRate        float64     `yaml:"bitRate" json:"bitRate"`               // bit/s, or kbit/s when < 1000
	ActivityFactor float64     `yaml:"activityFactor" json:"activityFactor"` // in [0,1]
}

// CapacityOptions holds the tunable inputs of a capacity calculation.
type CapacityOptions struct {
	LoadFactor float64 // target cell load, default DefaultLoadFactor
}

func DefaultCapacityOptions() CapacityOptions {
	return CapacityOptions{
		LoadFactor: DefaultLoadFactor,
	}
}

// ServiceLoad is the load contribution of a single service.
type ServiceLoad struct {
	Type           ServiceType `yaml:"type" json:"type"`
	BitRate        float64     `yaml:"bitRate" json:"bitRate"` // bit/s
	ActivityFactor float64     `yaml:"activityFactor" json:"activityFactor"`
	ProcessingGain float64     `yaml:"processingGain" json:"processingGain"`
	LoadFactor     float64     `yaml:"loadFactor" json:"loadFactor"`
}

// CapacityResult is the result of an uplink or downlink capacity calculation.
// MaxUsers is +Inf when the total load factor is zero; NoiseRise is +Inf or NaN once the total
// load factor reaches 1 (pole capacity).
type CapacityResult struct {
	Services         []ServiceLoad `yaml:"services" json:"services"`
	EbNoLinear       float64       `yaml:"ebnoLinear" json:"ebnoLinear"`
	LoadFactorTarget float64       `yaml:"loadFactorTarget" json:"loadFactorTarget"`
	TotalLoadFactor  float64       `yaml:"totalLoadFactor" json:"totalLoadFactor"`
	MaxUsers         float64       `yaml:"maxUsers" json:"maxUsers"`
	NoiseRise        DbValue       `yaml:"noiseRise" json:"noiseRise"`
}

// normalizeBitRate returns the rate in bit/s. Rates below 1000 are taken as kbit/s.
func normalizeBitRate(rate float64) float64 {
	if rate < 1000 {
		return rate * 1000
	}
	return rate
}

type loadFunc func(ebnoLinear float64, activityFactor float64, processingGain float64) float64

// UplinkCapacity computes the uplink load factor of the services for the required Eb/N0 (dB).
func UplinkCapacity(services []Service, ebno DbValue, opts CapacityOptions) CapacityResult {
	return computeCapacity(services, ebno, opts, func(ebnoLinear, af, gp float64) float64 {
		return (1 + interferenceFactor) * ebnoLinear * af / gp
	})
}

// DownlinkCapacity computes the downlink load factor of the services for the required Eb/N0 (dB).
func DownlinkCapacity(services []Service, ebno DbValue, opts CapacityOptions) CapacityResult {
	return computeCapacity(services, ebno, opts, func(ebnoLinear, af, gp float64) float64 {
		return ebnoLinear * af / gp * ((1 - orthogonalityFactor) + interferenceFactor)
	})
}

func computeCapacity(services []Service, ebno DbValue, opts CapacityOptions, load loadFunc) CapacityResult {
	ebnoLinear := math.Pow(10, ebno/10)

	loads := make([]float64, len(services))
	details := make([]ServiceLoad, len(services))
	for i, svc := range services {
		rate := normalizeBitRate(svc.BitRate)
		gp := ChipRate / rate
		loads[i] = load(ebnoLinear, svc.ActivityFactor, gp)
		details[i] = ServiceLoad{
			Type:           svc.Type,
			BitRate:        Round2(rate),
			ActivityFactor: Round2(svc.ActivityFactor),
			ProcessingGain: Round2(gp),
			LoadFactor:     Round2(loads[i]),
		}
	}

	total := floats.Sum(loads)
	return CapacityResult{
		Services:         details,
		EbNoLinear:       Round2(ebnoLinear),
		LoadFactorTarget: Round2(opts.LoadFactor),
		TotalLoadFactor:  Round2(total),
		MaxUsers:         math.Floor(opts.LoadFactor / total),
		NoiseRise:        Round2(-10 * math.Log10(1-total)),
	}
}
