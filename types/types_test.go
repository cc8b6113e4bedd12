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

package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 118.47, Round2(118.4706))
	assert.Equal(t, -0.5, Round2(-0.499))
	assert.True(t, math.IsNaN(Round2(math.NaN())))
	assert.True(t, math.IsInf(Round2(math.Inf(-1)), -1))
	assert.True(t, IsDegenerate(math.Inf(1)))
	assert.False(t, IsDegenerate(0.0))
}

func TestParseTechnology(t *testing.T) {
	assert.Equal(t, TechnologyGSM, ParseTechnology("GSM"))
	assert.Equal(t, TechnologyHertzian, ParseTechnology("hz"))
	assert.Equal(t, TechnologyOptical, ParseTechnology(" optical "))
	assert.Equal(t, TechnologyInvalid, ParseTechnology("lte"))
	assert.Equal(t, "umts", TechnologyUMTS.String())
	assert.Panics(t, func() {
		_ = TechnologyInvalid.String()
	})
}

func TestParsePropagationModel(t *testing.T) {
	assert.Equal(t, OkumuraHata, ParsePropagationModel("okumura-hata"))
	assert.Equal(t, Cost231, ParsePropagationModel("cost231"))
	assert.Equal(t, FreeSpace, ParsePropagationModel("walfisch"))
	assert.Equal(t, Multimode, ParseFiberType("mm"))
	assert.Equal(t, Monomode, ParseFiberType("whatever"))
	assert.Equal(t, ServiceData, ParseServiceType("data"))
}
