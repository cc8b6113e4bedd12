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

// Package gsm implements GSM cell dimensioning: cell radius from a link budget, BTS counts,
// Erlang-B channel sizing and frequency reuse planning.
//
// All functions are pure. Degenerate inputs yield NaN or infinite results which are returned
// as-is; callers must check for them.
package gsm

import (
	"math"

	. "github.com/openthread/netdim/types"
)

// default antenna heights used by the Hata-family models
const (
	DefaultBaseHeightM   = 30.0
	DefaultMobileHeightM = 1.5
	// city-size offset for COST-231 (medium city / suburban)
	cost231CityOffsetDb DbValue = 0.0
)

// pathLossRegression is a path-loss model in the form L = InterceptDb + SlopeDb*log10(dKm).
type pathLossRegression struct {
	InterceptDb DbValue
	SlopeDb     DbValue
}

// mobileHeightCorrection is the large-city mobile antenna correction a(hm).
func mobileHeightCorrection(mobileHeight float64) DbValue {
	lg := math.Log10(11.75 * mobileHeight)
	return 3.2*lg*lg - 4.97
}

// newRegression returns the regression for the given model at frequency f (MHz), or false if the
// model is not a Hata-family model.
func newRegression(frequency float64, model PropagationModel) (pathLossRegression, bool) {
	hb := DefaultBaseHeightM
	ahm := mobileHeightCorrection(DefaultMobileHeightM)
	slope := 44.9 - 6.55*math.Log10(hb)

	switch model {
	case OkumuraHata:
		return pathLossRegression{
			InterceptDb: 69.55 + 26.16*math.Log10(frequency) - 13.82*math.Log10(hb) - ahm,
			SlopeDb:     slope,
		}, true
	case Cost231:
		return pathLossRegression{
			InterceptDb: 46.3 + 33.9*math.Log10(frequency) - 13.82*math.Log10(hb) - ahm + cost231CityOffsetDb,
			SlopeDb:     slope,
		}, true
	default:
		return pathLossRegression{}, false
	}
}

func freeSpaceIntercept(frequency float64) DbValue {
	return 32.45 + 20*math.Log10(frequency)
}

// PathLoss computes the path loss (dB) at distance (km) for frequency (MHz) with the given model.
// Unknown models use free-space loss.
func PathLoss(frequency float64, distance float64, model PropagationModel) DbValue {
	if reg, ok := newRegression(frequency, model); ok {
		return reg.InterceptDb + reg.SlopeDb*math.Log10(distance)
	}
	return freeSpaceIntercept(frequency) + 20*math.Log10(distance)
}

// CellRadius returns the cell radius (km) at which the path loss equals the link budget
// btsPower - mobileThreshold (dBm). frequency is in MHz.
// The raw inverted value is returned: when the budget is below the model intercept the radius
// is a small positive number, and degenerate inputs give NaN or +Inf. No clamping is done.
func CellRadius(frequency float64, btsPower DbValue, mobileThreshold DbValue, model PropagationModel) float64 {
	linkBudget := btsPower - mobileThreshold

	var d float64
	if reg, ok := newRegression(frequency, model); ok {
		d = math.Pow(10, (linkBudget-reg.InterceptDb)/reg.SlopeDb)
	} else {
		d = math.Pow(10, (linkBudget-freeSpaceIntercept(frequency))/20)
	}
	return Round2(d)
}
