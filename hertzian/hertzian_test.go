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
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeSpaceLoss(t *testing.T) {
	assert.Equal(t, 118.47, FreeSpaceLoss(2, 10))
	assert.InDelta(t, 32.45+20*math.Log10(2000)+20*math.Log10(10), FreeSpaceLoss(2, 10), 0.01)
	assert.True(t, math.IsInf(FreeSpaceLoss(2, 0), -1))
}

func TestLinkMarginThresholdSign(t *testing.T) {
	assert.Equal(t, -40.0, LinkMargin(50, -80, 10))
	assert.Equal(t, LinkMargin(50, -80, 10), LinkMargin(50, 80, 10))
	assert.Equal(t, 25.5, LinkMargin(120, -75, 19.5))
}

func TestSystemGainAndReceivedPower(t *testing.T) {
	g := SystemGain(20, 38, 38)
	assert.Equal(t, 96.0, g)
	assert.Equal(t, -42.47, ReceivedPower(g, FreeSpaceLoss(2, 10)+20, 0))
}

func TestMaxDistance(t *testing.T) {
	d := MaxDistance(140, -80, 18, 0)
	assert.Equal(t, 0.0, d) // only 60 dB allowed, less than 1 m at 18 GHz

	d = MaxDistance(200, -60, 18, 2)
	assert.Greater(t, d, 0.0)
	// the free-space loss at that distance equals the allowable path loss
	assert.InDelta(t, 200-60-2, FreeSpaceLoss(18, d), 0.05)

	// the threshold sign does not matter
	assert.Equal(t, d, MaxDistance(200, 60, 18, 2))
}

func TestRainRate(t *testing.T) {
	assert.Equal(t, 42.0, RainRate("K"))
	assert.Equal(t, 145.0, RainRate("P"))
	assert.Equal(t, RainRate("K"), RainRate("Z"))
	assert.Equal(t, RainRate("K"), RainRate(""))
	assert.Equal(t, len(rainRates), len(RainZones))
}

func TestRainCoefficients(t *testing.T) {
	for _, f := range []float64{1, 2.4, 2.5, 7, 18, 38, 53.9, 54, 80} {
		k, alpha := RainCoefficients(f)
		assert.Greater(t, k, 0.0)
		assert.Greater(t, alpha, 0.0)
	}
}

func TestLinkAvailability(t *testing.T) {
	res := LinkAvailability(40, 18, 10, "K")
	assert.Equal(t, 42.0, res.RainRate)
	assert.Equal(t, 3.09, res.SpecificAttenuation)
	assert.Equal(t, 6.51, res.EffectiveDistance)
	assert.Equal(t, 20.08, res.RainAttenuation)
	assert.Equal(t, 19.92, res.FadeMargin)
	assert.Equal(t, 0.01, res.Unavailability)
	assert.Equal(t, 99.99, res.Availability)
	assert.Equal(t, 69.45, res.DowntimeMinutesPerYear)

	assert.Equal(t, res, LinkAvailability(40, 18, 10, "unknown"))
}

func TestRainAttenuationNonNegativeAndMonotonic(t *testing.T) {
	zones := append([]string(nil), RainZones...)
	sort.Slice(zones, func(i, j int) bool {
		return RainRate(zones[i]) < RainRate(zones[j])
	})

	for _, f := range []float64{1, 2.4, 7, 11, 18, 23, 38, 60, 80} {
		for _, d := range []float64{0.5, 1, 5, 10, 20} {
			prev := 0.0
			for _, z := range zones {
				_, _, att := rainAttenuation(f, d, RainRate(z))
				assert.GreaterOrEqual(t, att, 0.0)
				assert.GreaterOrEqual(t, att, prev, "f=%v d=%v zone=%s", f, d, z)
				prev = att
			}
		}
	}
}

func TestLinkAvailabilityNegativeFadeMargin(t *testing.T) {
	res := LinkAvailability(5, 38, 20, "P")
	assert.Less(t, float64(res.FadeMargin), 0.0)
	assert.Less(t, res.Availability, 100.0)
	assert.Greater(t, res.DowntimeMinutesPerYear, 0.0)
}

func TestDiffractionLoss(t *testing.T) {
	assert.InDelta(t, 1.1547, FresnelKirchhoffParameter(10, 10, 20), 1e-4)
	assert.Equal(t, 14.89, DiffractionLoss(10, 10, 20))
	assert.Equal(t, 0.0, DiffractionLoss(10, -20, 20))
	assert.Equal(t, 29.81, DiffractionLoss(10, 60, 20))
	assert.Equal(t, 6.03, DiffractionLoss(10, 0, 20))
}

func TestFresnelZoneRadius(t *testing.T) {
	assert.Equal(t, 8.66, FresnelZoneRadius(10, 5, 5))
}
