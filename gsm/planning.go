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

package gsm

import (
	"math"

	. "github.com/openthread/netdim/types"
)

// HexCellArea is the area (km2) of a hexagonal cell with radius r (km).
func HexCellArea(r float64) float64 {
	return 3 * math.Sqrt(3) / 2 * r * r
}

// BtsCount returns the number of hexagonal cells of the given radius (km) needed to cover the
// area (km2). A radius <= 0 yields +Inf or NaN.
func BtsCount(coverageArea float64, cellRadius float64) float64 {
	return math.Ceil(coverageArea / HexCellArea(cellRadius))
}

// BtsCountForCapacity returns the number of BTS needed to carry totalTraffic (Erl) when one BTS
// carries trafficPerBts (Erl).
func BtsCountForCapacity(totalTraffic float64, trafficPerBts float64) float64 {
	return math.Ceil(totalTraffic / trafficPerBts)
}

// TrafficCapacity returns the carried traffic (Erl) of channelCount channels at the given
// occupancy rate.
func TrafficCapacity(channelCount int, occupancyRate float64) float64 {
	return Round2(float64(channelCount) * occupancyRate)
}

// FrequencyPlan is the result of a frequency reuse plan.
type FrequencyPlan struct {
	ChannelsPerCell     float64 `yaml:"channelsPerCell" json:"channelsPerCell"`
	ReuseFactor         float64 `yaml:"reuseFactor" json:"reuseFactor"`
	CoChannelReuseRatio float64 `yaml:"coChannelReuseRatio" json:"coChannelReuseRatio"` // D/R
}

// FrequencyPlanning splits totalChannels over a reuse cluster of clusterSize cells.
func FrequencyPlanning(totalChannels int, clusterSize int) FrequencyPlan {
	n := float64(clusterSize)
	return FrequencyPlan{
		ChannelsPerCell:     math.Floor(float64(totalChannels) / n),
		ReuseFactor:         Round2(1 / n),
		CoChannelReuseRatio: Round2(math.Sqrt(3 * n)),
	}
}

// CarrierToInterference estimates C/I (dB) for a reuse cluster, assuming the six first-tier
// co-channel interferers and path-loss exponent gamma.
func CarrierToInterference(clusterSize int, gamma float64) DbValue {
	q := math.Sqrt(3 * float64(clusterSize))
	return Round2(10 * math.Log10(math.Pow(q, gamma)/6))
}
