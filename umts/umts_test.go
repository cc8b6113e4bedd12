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

package umts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/openthread/netdim/types"
)

func voiceService() Service {
	return Service{Type: ServiceVoice, BitRate: 12.2, ActivityFactor: 0.5}
}

func TestUplinkCapacitySingleVoice(t *testing.T) {
	res := UplinkCapacity([]Service{voiceService()}, 5, DefaultCapacityOptions())

	ebnoLinear := math.Pow(10, 0.5)
	load := 1.65 * ebnoLinear * 0.5 / (ChipRate / 12200)

	assert.Greater(t, res.TotalLoadFactor, 0.0)
	assert.Equal(t, math.Floor(0.75/load), res.MaxUsers)
	assert.Equal(t, 90.0, res.MaxUsers)
	assert.Equal(t, 3.16, res.EbNoLinear)
	assert.Equal(t, 0.75, res.LoadFactorTarget)
	assert.Equal(t, 0.04, res.NoiseRise)

	assert.Equal(t, 1, len(res.Services))
	assert.Equal(t, ServiceVoice, res.Services[0].Type)
	assert.Equal(t, 12200.0, res.Services[0].BitRate)
	assert.Equal(t, 314.75, res.Services[0].ProcessingGain)
}

func TestDownlinkCapacitySingleVoice(t *testing.T) {
	res := DownlinkCapacity([]Service{voiceService()}, 5, DefaultCapacityOptions())
	assert.Equal(t, 142.0, res.MaxUsers)

	// downlink voice load is lower than uplink for the same Eb/N0
	ul := UplinkCapacity([]Service{voiceService()}, 5, DefaultCapacityOptions())
	assert.Greater(t, res.MaxUsers, ul.MaxUsers)
}

func TestCapacityBitRateUnits(t *testing.T) {
	kbps := UplinkCapacity([]Service{{Type: ServiceData, BitRate: 64, ActivityFactor: 1}}, 3, DefaultCapacityOptions())
	bps := UplinkCapacity([]Service{{Type: ServiceData, BitRate: 64000, ActivityFactor: 1}}, 3, DefaultCapacityOptions())
	assert.Equal(t, kbps, bps)
	assert.Equal(t, 64000.0, kbps.Services[0].BitRate)
}

func TestCapacityOrderIrrelevant(t *testing.T) {
	a := []Service{voiceService(), {Type: ServiceVideo, BitRate: 384, ActivityFactor: 1}}
	b := []Service{a[1], a[0]}
	ra := UplinkCapacity(a, 5, DefaultCapacityOptions())
	rb := UplinkCapacity(b, 5, DefaultCapacityOptions())
	assert.Equal(t, ra.TotalLoadFactor, rb.TotalLoadFactor)
	assert.Equal(t, ra.MaxUsers, rb.MaxUsers)
	assert.Equal(t, ra.NoiseRise, rb.NoiseRise)
}

func TestCapacityPoleExceeded(t *testing.T) {
	svcs := []Service{
		voiceService(),
		{Type: ServiceData, BitRate: 64, ActivityFactor: 1},
		{Type: ServiceVideo, BitRate: 384000, ActivityFactor: 1},
	}
	res := UplinkCapacity(svcs, 5, DefaultCapacityOptions())
	assert.Equal(t, 0.62, res.TotalLoadFactor)
	assert.Equal(t, 4.17, res.NoiseRise)

	// twice the video load pushes the cell beyond pole capacity
	svcs = append(svcs, svcs[2])
	res = UplinkCapacity(svcs, 5, DefaultCapacityOptions())
	assert.Greater(t, res.TotalLoadFactor, 1.0)
	assert.True(t, math.IsNaN(res.NoiseRise))
	assert.Equal(t, 0.0, res.MaxUsers)
}

func TestCapacityNoServices(t *testing.T) {
	res := UplinkCapacity(nil, 5, DefaultCapacityOptions())
	assert.Equal(t, 0.0, res.TotalLoadFactor)
	assert.True(t, math.IsInf(res.MaxUsers, 1))
	assert.Equal(t, 0.0, res.NoiseRise)
}

func TestCellCoverage(t *testing.T) {
	res := CellCoverage(43, -110, 10, DefaultPropagationParams())
	assert.Equal(t, 143.0, res.MaxPathLoss)
	assert.Equal(t, 1.41, res.CellRadius)
	assert.Equal(t, 5.14, res.CellArea)
	assert.InDelta(t, 143.0, PathLoss(res.CellRadius, DefaultPropagationParams()), 0.1)

	params := DefaultPropagationParams()
	params.Metropolitan = true
	metro := CellCoverage(43, -110, 10, params)
	assert.Equal(t, 1.16, metro.CellRadius)
	assert.Less(t, metro.CellRadius, res.CellRadius)
}

func TestCellCoverageLowFrequency(t *testing.T) {
	params := DefaultPropagationParams()
	params.Frequency = 300
	a, _ := regression(params)
	assert.InDelta(t, 109.89, a, 0.01)
}

func TestCellCoverageDegenerate(t *testing.T) {
	params := DefaultPropagationParams()
	params.BaseHeight = 0
	res := CellCoverage(43, -110, 10, params)
	assert.True(t, math.IsNaN(res.CellRadius))
	assert.True(t, math.IsNaN(res.CellArea))
}

func TestFrequencyPlanning(t *testing.T) {
	plan := FrequencyPlanning(15, DefaultCarrierBandwidthMHz)
	assert.Equal(t, 3.0, plan.Carriers)
	assert.Equal(t, 300.0, plan.Capacity)

	plan = FrequencyPlanning(14.9, DefaultCarrierBandwidthMHz)
	assert.Equal(t, 2.0, plan.Carriers)
}
