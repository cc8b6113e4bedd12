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
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/openthread/netdim/types"
)

func TestFiberAttenuation(t *testing.T) {
	assert.Equal(t, 0.35, FiberAttenuation(Monomode, 1310))
	assert.Equal(t, 0.25, FiberAttenuation(Monomode, 1550))
	assert.Equal(t, 0.30, FiberAttenuation(Monomode, 1625))
	assert.Equal(t, 0.40, FiberAttenuation(Monomode, 1700))

	assert.Equal(t, 3.0, FiberAttenuation(Multimode, 850))
	assert.Equal(t, 1.0, FiberAttenuation(Multimode, 1300))
	assert.Equal(t, 3.5, FiberAttenuation(Multimode, 1550))

	// no interpolation inside a window
	assert.Equal(t, FiberAttenuation(Monomode, 1260), FiberAttenuation(Monomode, 1399))
	// unknown fiber types use the monomode table
	assert.Equal(t, 0.35, FiberAttenuation(FiberType("PLASTIC"), 1310))
}

func TestOpticalBudget(t *testing.T) {
	assert.Equal(t, 28.0, OpticalBudget(0, -28))
	assert.Equal(t, 15.4, PowerMargin(28, 12.6))
}

func TestTotalLosses(t *testing.T) {
	res := TotalLosses(Monomode, 20, 1310, 4, 6, DefaultLossOptions(Monomode))
	assert.Equal(t, 0.35, res.Attenuation)
	assert.Equal(t, 7.0, res.FiberLoss)
	assert.Equal(t, 2.0, res.ConnectorLoss)
	assert.Equal(t, 0.6, res.SpliceLoss)
	assert.Equal(t, 2.6, res.ConnectionLoss)
	assert.Equal(t, 3.0, res.SafetyMargin)
	assert.Equal(t, 12.6, res.Total)

	res = TotalLosses(Multimode, 2, 850, 2, 1, DefaultLossOptions(Multimode))
	assert.Equal(t, 11.3, res.Total)

	opts := DefaultLossOptions(Monomode)
	opts.ConnectorLossDb = 0.75
	opts.SafetyMarginDb = 0
	res = TotalLosses(Monomode, 20, 1310, 4, 6, opts)
	assert.Equal(t, 10.6, res.Total)
}

func TestMaxRange(t *testing.T) {
	assert.Equal(t, 89.6, MaxRange(28, 0.25, 2.6, DefaultSafetyMarginDb))

	assert.Equal(t, 0.0, MaxRange(5, 0.25, 2, 3))
	assert.Equal(t, 0.0, MaxRange(5, 0.25, 4, 3))
	assert.Equal(t, 0.0, MaxRange(-10, 0.35, 0, 0))
	for budget := -20.0; budget <= 5.0; budget += 0.5 {
		assert.Equal(t, 0.0, MaxRange(budget, 0.35, 2, 3))
	}

	assert.True(t, math.IsInf(MaxRange(28, 0, 2.6, 3), 1))
	assert.Equal(t, 0.0, MaxRange(10, -0.25, 0, 3))
	assert.Equal(t, 0.0, MaxRange(10, math.NaN(), 0, 3))
}

func TestChromaticDispersion(t *testing.T) {
	res := ChromaticDispersion(1550, 80, 0.1)
	assert.Equal(t, 17.0, res.Coefficient)
	assert.Equal(t, 136.0, res.Total)

	res = ChromaticDispersion(850, 5, 2)
	assert.Equal(t, -100.0, res.Coefficient)
	assert.Equal(t, 1000.0, res.Total)

	assert.Equal(t, 10.0, ChromaticDispersion(1310, 10, 0.5).Total)
}

func TestDispersionPenalty(t *testing.T) {
	assert.Equal(t, 2.27, DispersionPenalty(10, 136))
	assert.Equal(t, 0.24, DispersionPenalty(2.5, 136))
	assert.Equal(t, 0.0, DispersionPenalty(10, 0))
}

func TestOSNR(t *testing.T) {
	assert.Equal(t, -66.02, OSNR(3, -20, 5, 4))
	assert.Equal(t, OSNR(3, -20, 5, 4), OSNR(3, -10, 5, 4))
	assert.True(t, math.IsInf(OSNR(3, -20, 5, 0), 1))
}
