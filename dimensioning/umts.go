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

	"github.com/openthread/netdim/logger"
	. "github.com/openthread/netdim/types"
	"github.com/openthread/netdim/umts"
)

// UMTSRequest holds the inputs of a UMTS network dimensioning.
type UMTSRequest struct {
	Services         []umts.Service         `yaml:"services" json:"services"`
	EbNoUplink       DbValue                `yaml:"ebnoUplink" json:"ebnoUplink"`
	EbNoDownlink     DbValue                `yaml:"ebnoDownlink" json:"ebnoDownlink"`
	Capacity         umts.CapacityOptions   `yaml:"capacity" json:"capacity"`
	TransmitPower    DbValue                `yaml:"transmitPower" json:"transmitPower"` // dBm
	Sensitivity      DbValue                `yaml:"sensitivity" json:"sensitivity"`     // dBm
	Margin           DbValue                `yaml:"margin" json:"margin"`               // dB
	Propagation      umts.PropagationParams `yaml:"propagation" json:"propagation"`
	CoverageArea     float64                `yaml:"coverageArea" json:"coverageArea"`         // km2
	TotalBandwidth   float64                `yaml:"totalBandwidth" json:"totalBandwidth"`     // MHz
	CarrierBandwidth float64                `yaml:"carrierBandwidth" json:"carrierBandwidth"` // MHz
}

// UMTSResult is the outcome of a UMTS dimensioning.
type UMTSResult struct {
	Uplink         umts.CapacityResult `yaml:"uplink" json:"uplink"`
	Downlink       umts.CapacityResult `yaml:"downlink" json:"downlink"`
	Coverage       umts.CoverageResult `yaml:"coverage" json:"coverage"`
	RadiusFallback bool                `yaml:"radiusFallback" json:"radiusFallback"`
	SiteCount      float64             `yaml:"siteCount" json:"siteCount"`
	UsersPerCell   float64             `yaml:"usersPerCell" json:"usersPerCell"` // limited by the worse link
	FrequencyPlan  umts.FrequencyPlan  `yaml:"frequencyPlan" json:"frequencyPlan"`
}

// DimensionUMTS computes capacity and coverage of a UMTS cell. When the coverage radius comes
// out invalid (NaN or <= 0) the configured fallback radius is used and flagged.
func (e *Engine) DimensionUMTS(req UMTSRequest) (UMTSResult, error) {
	res, err := e.run(TechnologyUMTS, req, func() (interface{}, error) {
		return e.dimensionUMTS(req), nil
	})
	if err != nil {
		return UMTSResult{}, err
	}
	return res.(UMTSResult), nil
}

func (e *Engine) dimensionUMTS(req UMTSRequest) UMTSResult {
	res := UMTSResult{
		Uplink:        umts.UplinkCapacity(req.Services, req.EbNoUplink, req.Capacity),
		Downlink:      umts.DownlinkCapacity(req.Services, req.EbNoDownlink, req.Capacity),
		Coverage:      umts.CellCoverage(req.TransmitPower, req.Sensitivity, req.Margin, req.Propagation),
		FrequencyPlan: umts.FrequencyPlanning(req.TotalBandwidth, req.CarrierBandwidth),
	}

	if r := res.Coverage.CellRadius; IsDegenerate(r) || r <= 0 {
		logger.Named(TechnologyUMTS.String()).Warnf("cell radius %v is invalid, using %v km", r, e.cfg.UmtsFallbackRadiusKm)
		res.Coverage.CellRadius = e.cfg.UmtsFallbackRadiusKm
		res.Coverage.CellArea = Round2(umts.CellArea(e.cfg.UmtsFallbackRadiusKm))
		res.RadiusFallback = true
		e.fallback(TechnologyUMTS, "radius")
	}

	res.SiteCount = math.Ceil(req.CoverageArea / res.Coverage.CellArea)
	res.UsersPerCell = math.Min(res.Uplink.MaxUsers, res.Downlink.MaxUsers)
	return res
}
