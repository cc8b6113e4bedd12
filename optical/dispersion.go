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

package optical

import (
	"math"

	. "github.com/openthread/netdim/types"
)

// DispersionResult is the chromatic dispersion of a fiber link.
type DispersionResult struct {
	Coefficient float64 `yaml:"coefficient" json:"coefficient"` // ps/(nm.km)
	Total       float64 `yaml:"total" json:"total"`             // ps
}

// DispersionCoefficient returns the chromatic dispersion coefficient (ps/(nm.km)) at the
// wavelength (nm).
func DispersionCoefficient(wavelength float64) float64 {
	switch {
	case wavelength < 1300:
		return -100
	case wavelength < 1500:
		return 2
	default:
		return 17
	}
}

// ChromaticDispersion returns the dispersion accumulated over length (km) by a source of the
// given spectral width (nm).
func ChromaticDispersion(wavelength float64, length float64, spectralWidth float64) DispersionResult {
	c := DispersionCoefficient(wavelength)
	return DispersionResult{
		Coefficient: c,
		Total:       Round2(math.Abs(c) * spectralWidth * length),
	}
}

// DispersionPenalty returns the power penalty (dB) of the dispersion (ps) at bitRate (Gbit/s).
func DispersionPenalty(bitRate float64, dispersion float64) DbValue {
	bitPeriod := 1000 / bitRate // ps
	ratio := dispersion / bitPeriod
	return Round2(5 * math.Log10(1+ratio*ratio))
}
