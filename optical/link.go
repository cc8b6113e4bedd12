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

// Package optical implements fiber link calculations: power budget, attenuation and losses,
// maximum range, chromatic dispersion and OSNR.
package optical

import (
	"math"

	. "github.com/openthread/netdim/types"
)

const (
	DefaultSafetyMarginDb DbValue = 3.0

	osnrReferenceDb DbValue = 58.0
)

// attenuationBand is one wavelength window of the attenuation table. A band applies to
// wavelengths below UpperNm.
type attenuationBand struct {
	UpperNm        float64
	AttenuationDbK float64 // dB/km
}

var (
	monomodeBands = []attenuationBand{
		{1400, 0.35}, // O-band, 1310 nm
		{1580, 0.25}, // C-band, 1550 nm
		{1650, 0.30}, // L-band, 1625 nm
		{math.Inf(1), 0.40},
	}
	multimodeBands = []attenuationBand{
		{1000, 3.0}, // 850 nm
		{1400, 1.0}, // 1300 nm
		{math.Inf(1), 3.5},
	}
)

// FiberAttenuation returns the linear attenuation (dB/km) of the fiber type at the wavelength
// (nm). This is a step lookup without interpolation.
func FiberAttenuation(fiberType FiberType, wavelength float64) float64 {
	bands := monomodeBands
	if fiberType == Multimode {
		bands = multimodeBands
	}
	for _, b := range bands {
		if wavelength < b.UpperNm {
			return b.AttenuationDbK
		}
	}
	return bands[len(bands)-1].AttenuationDbK
}

// OpticalBudget is txPower - rxSensitivity (dB).
func OpticalBudget(txPower DbValue, rxSensitivity DbValue) DbValue {
	return Round2(txPower - rxSensitivity)
}

// PowerMargin is what remains of the optical budget after the link losses (dB).
func PowerMargin(opticalBudget DbValue, totalLosses DbValue) DbValue {
	return Round2(opticalBudget - totalLosses)
}

// MaxRange returns the reach (km) of a link: (budget - connectionLosses - safetyMargin) divided by
// the linear attenuation (dB/km). The reach is never negative: a non-positive available budget or
// attenuation gives 0.
func MaxRange(opticalBudget DbValue, linearAttenuation float64, connectionLosses DbValue, safetyMargin DbValue) float64 {
	available := opticalBudget - connectionLosses - safetyMargin
	if available <= 0 {
		return 0
	}
	r := available / linearAttenuation
	if !(r > 0) {
		return 0
	}
	return Round2(r)
}

// OSNR returns the optical signal-to-noise ratio (dB) after amplifierCount amplifiers.
// receivedPower does not enter the estimate.
func OSNR(launchPower DbValue, receivedPower DbValue, noiseFigure DbValue, amplifierCount int) DbValue {
	return Round2(launchPower - noiseFigure - 10*math.Log10(float64(amplifierCount)) - osnrReferenceDb)
}
