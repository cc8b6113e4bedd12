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

package hertzian

import (
	"math"

	. "github.com/openthread/netdim/types"
)

// FresnelKirchhoffParameter returns the diffraction parameter v for an obstacle of clearance
// height h (m) at mid-path, frequency in GHz and path length in km.
func FresnelKirchhoffParameter(frequency float64, clearance float64, distance float64) float64 {
	lambda := 0.3 / frequency // m
	d1 := distance / 2
	d2 := distance / 2
	return clearance * math.Sqrt(2*distance/(lambda*d1*d2*1000))
}

// DiffractionLoss returns the knife-edge diffraction loss (dB) of a mid-path obstacle.
func DiffractionLoss(frequency float64, clearance float64, distance float64) DbValue {
	v := FresnelKirchhoffParameter(frequency, clearance, distance)

	var loss DbValue
	switch {
	case v <= -0.7:
		loss = 0
	case v <= 2.4:
		loss = 6.9 + 20*math.Log10(math.Sqrt((v-0.1)*(v-0.1)+1)+v-0.1)
	default:
		loss = 13 + 20*math.Log10(v)
	}
	return Round2(loss)
}

// FresnelZoneRadius returns the first Fresnel zone radius (m) at distances d1 and d2 (km) from
// the link ends, frequency in GHz.
func FresnelZoneRadius(frequency float64, d1 float64, d2 float64) float64 {
	return Round2(17.32 * math.Sqrt(d1*d2/(frequency*(d1+d2))))
}
