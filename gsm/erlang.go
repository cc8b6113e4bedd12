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

package gsm

import (
	"math"

	"github.com/pkg/errors"

	. "github.com/openthread/netdim/types"
)

// MaxErlangBChannels bounds the Erlang-B channel search.
const MaxErlangBChannels = 1000

var ErrErlangBNotConverged = errors.New("erlang-b channel search did not converge")

// ErlangBBlocking returns the Erlang-B blocking probability for the offered traffic (Erl) on
// the given number of channels, using the forward recursion E(i) = A*E(i-1) / (i + A*E(i-1)).
func ErlangBBlocking(traffic float64, channels int) float64 {
	b := 1.0
	for i := 1; i <= channels; i++ {
		b = traffic * b / (float64(i) + traffic*b)
	}
	return b
}

// ErlangB returns the minimal channel count for which the blocking probability of the offered
// traffic is at most blockingProbability. If no count up to MaxErlangBChannels satisfies the
// target, an error wrapping ErrErlangBNotConverged is returned.
func ErlangB(traffic float64, blockingProbability float64) (int, error) {
	b := 1.0
	for n := 1; n <= MaxErlangBChannels; n++ {
		b = traffic * b / (float64(n) + traffic*b)
		if b <= blockingProbability {
			return n, nil
		}
	}
	return 0, errors.Wrapf(ErrErlangBNotConverged, "traffic %g Erl, blocking %g, bound %d channels",
		traffic, blockingProbability, MaxErlangBChannels)
}

// ErlangBTraffic returns the largest offered traffic (Erl) that the given number of channels can
// carry with a blocking probability of at most blockingProbability.
func ErlangBTraffic(channels int, blockingProbability float64) float64 {
	if blockingProbability >= 1.0 {
		return math.Inf(1)
	}
	if channels <= 0 || blockingProbability <= 0.0 {
		return 0.0
	}

	lo, hi := 0.0, float64(channels)
	for i := 0; i < 64 && ErlangBBlocking(hi, channels) <= blockingProbability; i++ {
		hi *= 2
	}
	for hi-lo > 1e-6 {
		mid := (lo + hi) / 2
		if ErlangBBlocking(mid, channels) <= blockingProbability {
			lo = mid
		} else {
			hi = mid
		}
	}
	return Round2(lo)
}
