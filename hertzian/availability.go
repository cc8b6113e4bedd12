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

// Vigants-Barnett factors, fixed for all links
const (
	climateFactor      = 4.0
	terrainFactor      = 1.0
	minutesPerYear     = 365 * 24 * 60
	DefaultRainZone    = "K"
	rainRateReduceCapR = 100.0 // mm/h; d0 stops shrinking above it so rain attenuation stays non-decreasing in R (ITU-R P.530)
)

// rain rates (mm/h) exceeded 0.01% of the time, per ITU-R P.837 climatic zone
var rainRates = map[string]float64{
	"A": 8,
	"B": 12,
	"C": 15,
	"D": 19,
	"E": 22,
	"F": 28,
	"G": 30,
	"H": 32,
	"J": 35,
	"K": 42,
	"L": 60,
	"M": 63,
	"N": 95,
	"P": 145,
	"Q": 115,
}

// RainZones lists the known zones in table order.
var RainZones = []string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K", "L", "M", "N", "P", "Q"}

// RainRate returns the 0.01% rain rate (mm/h) of a zone. Unknown zones get zone K's rate.
func RainRate(zone string) float64 {
	if r, ok := rainRates[zone]; ok {
		return r
	}
	return rainRates[DefaultRainZone]
}

// RainCoefficients returns the power-law coefficients k and alpha of the specific rain
// attenuation k*R^alpha (dB/km) at frequency (GHz).
func RainCoefficients(frequency float64) (k float64, alpha float64) {
	switch {
	case frequency < 2.5:
		k = 6.39e-5 * math.Pow(frequency, 2.03)
		alpha = 0.851 * math.Pow(frequency, 0.158)
	case frequency < 54:
		k = 4.21e-5 * math.Pow(frequency, 2.42)
		alpha = 1.41 * math.Pow(frequency, -0.0779)
	default:
		k = 4.09e-2 * math.Pow(frequency, 0.699)
		alpha = 2.63 * math.Pow(frequency, -0.272)
	}
	return
}

// AvailabilityResult is the result of a link availability calculation.
type AvailabilityResult struct {
	RainRate               float64 `yaml:"rainRate" json:"rainRate"`                       // mm/h
	SpecificAttenuation    float64 `yaml:"specificAttenuation" json:"specificAttenuation"` // dB/km
	EffectiveDistance      float64 `yaml:"effectiveDistance" json:"effectiveDistance"`     // km
	RainAttenuation        DbValue `yaml:"rainAttenuation" json:"rainAttenuation"`         // dB
	FadeMargin             DbValue `yaml:"fadeMargin" json:"fadeMargin"`                   // dB
	Unavailability         float64 `yaml:"unavailability" json:"unavailability"`           // %
	Availability           float64 `yaml:"availability" json:"availability"`               // %
	DowntimeMinutesPerYear float64 `yaml:"downtimeMinutesPerYear" json:"downtimeMinutesPerYear"`
}

// rainAttenuation returns the specific attenuation (dB/km), effective path length (km) and path
// rain attenuation (dB) for the given rain rate.
func rainAttenuation(frequency float64, distance float64, rainRate float64) (float64, float64, DbValue) {
	k, alpha := RainCoefficients(frequency)
	gamma := k * math.Pow(rainRate, alpha)

	d0 := 35 * math.Exp(-0.015*math.Min(rainRate, rainRateReduceCapR))
	r := 1 / (1 + distance/d0)
	deff := distance * r
	return gamma, deff, gamma * deff
}

// LinkAvailability derives the rain fade margin and the resulting availability of a link with
// the given clear-sky margin (dB), frequency (GHz), distance (km) and rain zone.
func LinkAvailability(linkMargin DbValue, frequency float64, distance float64, rainZone string) AvailabilityResult {
	rate := RainRate(rainZone)
	gamma, deff, rainAtt := rainAttenuation(frequency, distance, rate)

	fadeMargin := linkMargin - rainAtt
	unavailability := climateFactor * terrainFactor * math.Pow(10, -fadeMargin/10) *
		math.Pow(distance, 3) * math.Pow(frequency, 2) / 1e6

	return AvailabilityResult{
		RainRate:               Round2(rate),
		SpecificAttenuation:    Round2(gamma),
		EffectiveDistance:      Round2(deff),
		RainAttenuation:        Round2(rainAtt),
		FadeMargin:             Round2(fadeMargin),
		Unavailability:         Round2(unavailability),
		Availability:           Round2(100 - unavailability),
		DowntimeMinutesPerYear: Round2(unavailability / 100 * minutesPerYear),
	}
}
