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
	"github.com/openthread/netdim/hertzian"
	. "github.com/openthread/netdim/types"
)

// HertzianRequest holds the inputs of a microwave hop dimensioning.
type HertzianRequest struct {
	Frequency         float64 `yaml:"frequency" json:"frequency"` // GHz
	Distance          float64 `yaml:"distance" json:"distance"`   // km
	TxPower           DbValue `yaml:"txPower" json:"txPower"`     // dBm
	TxAntennaGain     DbValue `yaml:"txAntennaGain" json:"txAntennaGain"`
	RxAntennaGain     DbValue `yaml:"rxAntennaGain" json:"rxAntennaGain"`
	ReceiverThreshold DbValue `yaml:"receiverThreshold" json:"receiverThreshold"` // dBm
	AdditionalLosses  DbValue `yaml:"additionalLosses" json:"additionalLosses"`   // feeders, branching
	RainZone          string  `yaml:"rainZone" json:"rainZone"`
	Obstructed        bool    `yaml:"obstructed" json:"obstructed"` // a mid-path obstacle is present
	Clearance         float64 `yaml:"clearance" json:"clearance"`   // m, obstacle height relative to the line of sight
}

// HertzianResult is the outcome of a microwave hop dimensioning.
type HertzianResult struct {
	FreeSpaceLoss     DbValue                     `yaml:"freeSpaceLoss" json:"freeSpaceLoss"`
	DiffractionLoss   DbValue                     `yaml:"diffractionLoss" json:"diffractionLoss"`
	SystemGain        DbValue                     `yaml:"systemGain" json:"systemGain"`
	TotalLosses       DbValue                     `yaml:"totalLosses" json:"totalLosses"`
	ReceivedPower     DbValue                     `yaml:"receivedPower" json:"receivedPower"`
	LinkMargin        DbValue                     `yaml:"linkMargin" json:"linkMargin"`
	Availability      hertzian.AvailabilityResult `yaml:"availability" json:"availability"`
	MaxDistance       float64                     `yaml:"maxDistance" json:"maxDistance"`             // km
	FresnelZoneRadius float64                     `yaml:"fresnelZoneRadius" json:"fresnelZoneRadius"` // m, at mid-path
	Feasible          bool                        `yaml:"feasible" json:"feasible"`                   // fade margin left after rain
}

// DimensionHertzian evaluates a microwave hop.
func (e *Engine) DimensionHertzian(req HertzianRequest) (HertzianResult, error) {
	res, err := e.run(TechnologyHertzian, req, func() (interface{}, error) {
		return dimensionHertzian(req), nil
	})
	if err != nil {
		return HertzianResult{}, err
	}
	return res.(HertzianResult), nil
}

func dimensionHertzian(req HertzianRequest) HertzianResult {
	fsl := hertzian.FreeSpaceLoss(req.Frequency, req.Distance)
	diffraction := DbValue(0)
	if req.Obstructed {
		diffraction = hertzian.DiffractionLoss(req.Frequency, req.Clearance, req.Distance)
	}
	gain := hertzian.SystemGain(req.TxPower, req.TxAntennaGain, req.RxAntennaGain)
	otherLosses := diffraction + req.AdditionalLosses
	totalLosses := Round2(fsl + otherLosses)

	margin := hertzian.LinkMargin(gain, req.ReceiverThreshold, totalLosses)
	avail := hertzian.LinkAvailability(margin, req.Frequency, req.Distance, req.RainZone)

	return HertzianResult{
		FreeSpaceLoss:     fsl,
		DiffractionLoss:   diffraction,
		SystemGain:        gain,
		TotalLosses:       totalLosses,
		ReceivedPower:     hertzian.ReceivedPower(gain, fsl, otherLosses),
		LinkMargin:        margin,
		Availability:      avail,
		MaxDistance:       hertzian.MaxDistance(gain, req.ReceiverThreshold, req.Frequency, otherLosses),
		FresnelZoneRadius: hertzian.FresnelZoneRadius(req.Frequency, req.Distance/2, req.Distance/2),
		Feasible:          avail.FadeMargin >= 0,
	}
}
