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
	. "github.com/openthread/netdim/types"
)

// LossOptions are the per-unit loss figures of a fiber link.
type LossOptions struct {
	ConnectorLossDb DbValue // per connector
	SpliceLossDb    DbValue // per splice
	SafetyMarginDb  DbValue
}

// DefaultLossOptions returns the typical figures for the fiber type:
// monomode 0.5 dB/connector and 0.1 dB/splice, multimode 1.0 and 0.3, 3 dB safety margin.
func DefaultLossOptions(fiberType FiberType) LossOptions {
	opts := LossOptions{
		ConnectorLossDb: 0.5,
		SpliceLossDb:    0.1,
		SafetyMarginDb:  DefaultSafetyMarginDb,
	}
	if fiberType == Multimode {
		opts.ConnectorLossDb = 1.0
		opts.SpliceLossDb = 0.3
	}
	return opts
}

// LossesResult itemises the losses of a fiber link.
type LossesResult struct {
	Attenuation    float64 `yaml:"attenuation" json:"attenuation"` // dB/km
	FiberLoss      DbValue `yaml:"fiberLoss" json:"fiberLoss"`
	ConnectorLoss  DbValue `yaml:"connectorLoss" json:"connectorLoss"`
	SpliceLoss     DbValue `yaml:"spliceLoss" json:"spliceLoss"`
	SafetyMargin   DbValue `yaml:"safetyMargin" json:"safetyMargin"`
	ConnectionLoss DbValue `yaml:"connectionLoss" json:"connectionLoss"` // connectors + splices
	Total          DbValue `yaml:"total" json:"total"`
}

// TotalLosses sums fiber attenuation over length (km), connector and splice losses and the safety
// margin.
func TotalLosses(fiberType FiberType, length float64, wavelength float64, connectorCount int, spliceCount int, opts LossOptions) LossesResult {
	att := FiberAttenuation(fiberType, wavelength)
	fiberLoss := att * length
	connectorLoss := float64(connectorCount) * opts.ConnectorLossDb
	spliceLoss := float64(spliceCount) * opts.SpliceLossDb

	return LossesResult{
		Attenuation:    Round2(att),
		FiberLoss:      Round2(fiberLoss),
		ConnectorLoss:  Round2(connectorLoss),
		SpliceLoss:     Round2(spliceLoss),
		SafetyMargin:   Round2(opts.SafetyMarginDb),
		ConnectionLoss: Round2(connectorLoss + spliceLoss),
		Total:          Round2(fiberLoss + connectorLoss + spliceLoss + opts.SafetyMarginDb),
	}
}
