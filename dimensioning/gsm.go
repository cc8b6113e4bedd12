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

package dimensioning

import (
	"math"

	"github.com/openthread/netdim/gsm"
	. "github.com/openthread/netdim/types"
)

// path-loss exponent used for the C/I estimate of a reuse plan
const gsmInterferencePathLossExponent = 4.0

// GSMRequest holds the inputs of a GSM network dimensioning.
type GSMRequest struct {
	Frequency            float64          `yaml:"frequency" json:"frequency"` // MHz
	BtsPower             DbValue          `yaml:"btsPower" json:"btsPower"`   // dBm
	MobileThreshold      DbValue          `yaml:"mobileThreshold" json:"mobileThreshold"`
	Model                PropagationModel `yaml:"model" json:"model"`
	CoverageArea         float64          `yaml:"coverageArea" json:"coverageArea"` // km2
	Subscribers          float64          `yaml:"subscribers" json:"subscribers"`
	TrafficPerSubscriber float64          `yaml:"trafficPerSubscriber" json:"trafficPerSubscriber"` // Erl
	ChannelsPerBts       int              `yaml:"channelsPerBts" json:"channelsPerBts"`
	BlockingProbability  float64          `yaml:"blockingProbability" json:"blockingProbability"`
	OccupancyRate        float64          `yaml:"occupancyRate" json:"occupancyRate"`
	TotalChannels        int              `yaml:"totalChannels" json:"totalChannels"`
	ClusterSize          int              `yaml:"clusterSize" json:"clusterSize"`
}

// GSMResult is the outcome of a GSM dimensioning.
type GSMResult struct {
	CellRadius        float64           `yaml:"cellRadius" json:"cellRadius"` // km
	CellArea          float64           `yaml:"cellArea" json:"cellArea"`     // km2
	CoverageBtsCount  float64           `yaml:"coverageBtsCount" json:"coverageBtsCount"`
	TotalTraffic      float64           `yaml:"totalTraffic" json:"totalTraffic"`   // Erl
	TrafficPerBts     float64           `yaml:"trafficPerBts" json:"trafficPerBts"` // Erl at the blocking target
	CapacityBtsCount  float64           `yaml:"capacityBtsCount" json:"capacityBtsCount"`
	BtsCount          float64           `yaml:"btsCount" json:"btsCount"`
	ChannelsPerBts    int               `yaml:"channelsPerBts" json:"channelsPerBts"` // Erlang-B requirement
	CarriedTraffic    float64           `yaml:"carriedTraffic" json:"carriedTraffic"` // Erl per BTS at the occupancy rate
	FrequencyPlan     gsm.FrequencyPlan `yaml:"frequencyPlan" json:"frequencyPlan"`
	CoChannelDistance float64           `yaml:"coChannelDistance" json:"coChannelDistance"` // km
	CarrierToInterf   DbValue           `yaml:"carrierToInterference" json:"carrierToInterference"`
}

// DimensionGSM sizes a GSM network for coverage and capacity; the BTS count is the larger of
// the two. Erlang-B non-convergence is returned as an error.
func (e *Engine) DimensionGSM(req GSMRequest) (GSMResult, error) {
	res, err := e.run(TechnologyGSM, req, func() (interface{}, error) {
		return dimensionGSM(req)
	})
	if err != nil {
		return GSMResult{}, err
	}
	return res.(GSMResult), nil
}

func dimensionGSM(req GSMRequest) (GSMResult, error) {
	radius := gsm.CellRadius(req.Frequency, req.BtsPower, req.MobileThreshold, req.Model)
	coverageBts := gsm.BtsCount(req.CoverageArea, radius)

	totalTraffic := req.Subscribers * req.TrafficPerSubscriber
	trafficPerBts := gsm.ErlangBTraffic(req.ChannelsPerBts, req.BlockingProbability)
	capacityBts := gsm.BtsCountForCapacity(totalTraffic, trafficPerBts)
	btsCount := math.Max(coverageBts, capacityBts)

	// no traffic or no BTS means no load per BTS, not a failed search
	offered := 0.0
	if totalTraffic != 0 && btsCount != 0 {
		offered = totalTraffic / btsCount
	}
	channels, err := gsm.ErlangB(offered, req.BlockingProbability)
	if err != nil {
		return GSMResult{}, err
	}

	plan := gsm.FrequencyPlanning(req.TotalChannels, req.ClusterSize)
	return GSMResult{
		CellRadius:        radius,
		CellArea:          Round2(gsm.HexCellArea(radius)),
		CoverageBtsCount:  coverageBts,
		TotalTraffic:      Round2(totalTraffic),
		TrafficPerBts:     trafficPerBts,
		CapacityBtsCount:  capacityBts,
		BtsCount:          btsCount,
		ChannelsPerBts:    channels,
		CarriedTraffic:    gsm.TrafficCapacity(req.ChannelsPerBts, req.OccupancyRate),
		FrequencyPlan:     plan,
		CoChannelDistance: Round2(plan.CoChannelReuseRatio * radius),
		CarrierToInterf:   gsm.CarrierToInterference(req.ClusterSize, gsmInterferencePathLossExponent),
	}, nil
}
