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

// Package hertzian implements point-to-point microwave link calculations: free-space loss,
// link margin, rain fading and availability, obstacle diffraction and maximum hop length.
package hertzian

import (
	"math"

	. "github.com/openthread/netdim/types"
)

// FreeSpaceLoss returns the free-space loss (dB) for frequency (GHz) and distance (km).
func FreeSpaceLoss(frequency float64, distance float64) DbValue {
	return Round2(freeSpaceLoss(frequency, distance))
}

func freeSpaceLoss(frequency float64, distance float64) DbValue {
	return 32.45 + 20*math.Log10(frequency*1000) + 20*math.Log10(distance)
}

// SystemGain is the transmit power plus both antenna gains (dB).
func SystemGain(txPower DbValue, txAntennaGain DbValue, rxAntennaGain DbValue) DbValue {
	return Round2(txPower + txAntennaGain + rxAntennaGain)
}

// ReceivedPower returns the nominal receive level (dBm) for the given system gain and losses.
func ReceivedPower(systemGain DbValue, pathLoss DbValue, otherLosses DbValue) DbValue {
	return Round2(systemGain - pathLoss - otherLosses)
}

// LinkMargin returns systemGain - |receiverThreshold| - totalLosses (dB).
// The threshold is used by magnitude so it may be given with either sign.
func LinkMargin(systemGain DbValue, receiverThreshold DbValue, totalLosses DbValue) DbValue {
	return Round2(systemGain - math.Abs(receiverThreshold) - totalLosses)
}

// MaxDistance returns the hop length (km) at which the free-space loss uses up the allowable
// path loss systemGain - |receiverThreshold| - additionalLosses. frequency is in GHz.
func MaxDistance(systemGain DbValue, receiverThreshold DbValue, frequency float64, additionalLosses DbValue) float64 {
	maxPathLoss := systemGain - math.Abs(receiverThreshold) - additionalLosses
	d := math.Pow(10, (maxPathLoss-32.45-20*math.Log10(frequency*1000))/20)
	return Round2(d)
}
