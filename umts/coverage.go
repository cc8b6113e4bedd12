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

	. "github.com/openthread/netdim/types"
)

const (
	DefaultFrequencyMHz  = 2000.0
	DefaultBaseHeightM   = 30.0
	DefaultMobileHeightM = 1.5

	metropolitanOffsetDb DbValue = 3.0
	cellAreaFactor               = 2.6 // three-sector hexagon, area = 2.6 R^2
)

// PropagationParams are the COST-231-Hata inputs.
type PropagationParams struct {
	Frequency    float64 `yaml:"frequency" json:"frequency"`       // MHz
	BaseHeight   float64 `yaml:"baseHeight" json:"baseHeight"`     // m
	MobileHeight float64 `yaml:"mobileHeight" json:"mobileHeight"` // m
	Metropolitan bool    `yaml:"metropolitan" json:"metropolitan"` // adds the 3 dB metropolitan offset
}

func DefaultPropagationParams() PropagationParams {
	return PropagationParams{
		Frequency:    DefaultFrequencyMHz,
		BaseHeight:   DefaultBaseHeightM,
		MobileHeight: DefaultMobileHeightM,
		Metropolitan: false,
	}
}

// CoverageResult is the result of a cell coverage calculation.
type CoverageResult struct {
	MaxPathLoss DbValue `yaml:"maxPathLoss" json:"maxPathLoss"` // dB
	CellRadius  float64 `yaml:"cellRadius" json:"cellRadius"`   // km
	CellArea    float64 `yaml:"cellArea" json:"cellArea"`       // km2
}

func mobileCorrection(params PropagationParams) DbValue {
	hm := params.MobileHeight
	if params.Frequency >= 400 {
		lg := math.Log10(11.75 * hm)
		return 3.2*lg*lg - 4.97
	}
	lf := math.Log10(params.Frequency)
	return (1.1*lf-0.7)*hm - (1.56*lf - 0.8)
}

// regression returns intercept a and slope b of L = a + b*log10(dKm).
func regression(params PropagationParams) (DbValue, DbValue) {
	lhb := math.Log10(params.BaseHeight)
	a := 46.3 + 33.9*math.Log10(params.Frequency) - 13.82*lhb - mobileCorrection(params)
	if params.Metropolitan {
		a += metropolitanOffsetDb
	}
	b := 44.9 - 6.55*lhb
	return a, b
}

// PathLoss is the COST-231-Hata path loss (dB) at distance (km).
func PathLoss(distance float64, params PropagationParams) DbValue {
	a, b := regression(params)
	return a + b*math.Log10(distance)
}

// CellArea is the cell area (km2) for radius r (km).
func CellArea(r float64) float64 {
	return cellAreaFactor * r * r
}

// CellCoverage computes the maximum allowable path loss txPower - sensitivity - margin and the
// radius at which COST-231-Hata reaches it. The radius is returned as computed; an invalid
// radius (NaN or <= 0) is left for the caller to handle.
func CellCoverage(transmitPower DbValue, sensitivity DbValue, margin DbValue, params PropagationParams) CoverageResult {
	mapl := transmitPower - sensitivity - margin
	a, b := regression(params)
	r := math.Pow(10, (mapl-a)/b)
	return CoverageResult{
		MaxPathLoss: Round2(mapl),
		CellRadius:  Round2(r),
		CellArea:    Round2(CellArea(r)),
	}
}
