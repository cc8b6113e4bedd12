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
	"github.com/openthread/netdim/optical"
	. "github.com/openthread/netdim/types"
)

// OpticalRequest holds the inputs of a fiber link dimensioning.
type OpticalRequest struct {
	FiberType      FiberType           `yaml:"fiberType" json:"fiberType"`
	Length         float64             `yaml:"length" json:"length"`         // km
	Wavelength     float64             `yaml:"wavelength" json:"wavelength"` // nm
	TxPower        DbValue             `yaml:"txPower" json:"txPower"`       // dBm
	RxSensitivity  DbValue             `yaml:"rxSensitivity" json:"rxSensitivity"`
	ConnectorCount int                 `yaml:"connectorCount" json:"connectorCount"`
	SpliceCount    int                 `yaml:"spliceCount" json:"spliceCount"`
	Losses         optical.LossOptions `yaml:"losses" json:"losses"`
	BitRate        float64             `yaml:"bitRate" json:"bitRate"`             // Gbit/s
	SpectralWidth  float64             `yaml:"spectralWidth" json:"spectralWidth"` // nm
	NoiseFigure    DbValue             `yaml:"noiseFigure" json:"noiseFigure"`
	AmplifierCount int                 `yaml:"amplifierCount" json:"amplifierCount"`
}

// OpticalResult is the outcome of a fiber link dimensioning.
type OpticalResult struct {
	Budget            DbValue                  `yaml:"budget" json:"budget"`
	Losses            optical.LossesResult     `yaml:"losses" json:"losses"`
	PowerMargin       DbValue                  `yaml:"powerMargin" json:"powerMargin"`
	ReceivedPower     DbValue                  `yaml:"receivedPower" json:"receivedPower"`
	MaxRange          float64                  `yaml:"maxRange" json:"maxRange"` // km
	Dispersion        optical.DispersionResult `yaml:"dispersion" json:"dispersion"`
	DispersionPenalty DbValue                  `yaml:"dispersionPenalty" json:"dispersionPenalty"`
	OSNR              DbValue                  `yaml:"osnr" json:"osnr"`
	Feasible          bool                     `yaml:"feasible" json:"feasible"`
}

// DimensionOptical evaluates a fiber link. The link is feasible when the power margin, after
// subtracting the dispersion penalty, is not negative and the length is within range.
func (e *Engine) DimensionOptical(req OpticalRequest) (OpticalResult, error) {
	res, err := e.run(TechnologyOptical, req, func() (interface{}, error) {
		return dimensionOptical(req), nil
	})
	if err != nil {
		return OpticalResult{}, err
	}
	return res.(OpticalResult), nil
}

func dimensionOptical(req OpticalRequest) OpticalResult {
	budget := optical.OpticalBudget(req.TxPower, req.RxSensitivity)
	losses := optical.TotalLosses(req.FiberType, req.Length, req.Wavelength, req.ConnectorCount, req.SpliceCount, req.Losses)
	margin := optical.PowerMargin(budget, losses.Total)
	received := Round2(req.TxPower - losses.FiberLoss - losses.ConnectionLoss)
	maxRange := optical.MaxRange(budget, losses.Attenuation, losses.ConnectionLoss, req.Losses.SafetyMarginDb)
	dispersion := optical.ChromaticDispersion(req.Wavelength, req.Length, req.SpectralWidth)
	penalty := optical.DispersionPenalty(req.BitRate, dispersion.Total)

	return OpticalResult{
		Budget:            budget,
		Losses:            losses,
		PowerMargin:       margin,
		ReceivedPower:     received,
		MaxRange:          maxRange,
		Dispersion:        dispersion,
		DispersionPenalty: penalty,
		OSNR:              optical.OSNR(req.TxPower, received, req.NoiseFigure, req.AmplifierCount),
		Feasible:          margin-penalty >= 0 && req.Length <= maxRange,
	}
}
