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

// Package types holds the value types shared by the calculator packages.
package types

import (
	"strings"

	"github.com/simonlingoogle/go-simplelogger"
)

// DbValue is a value in dB or dBm.
type DbValue = float64

// Technology identifies one of the four dimensioned network technologies.
type Technology int

const (
	TechnologyGSM      Technology = 0
	TechnologyUMTS     Technology = 1
	TechnologyHertzian Technology = 2
	TechnologyOptical  Technology = 3
	TechnologyInvalid  Technology = -1
)

var TechnologiesList = []Technology{TechnologyGSM, TechnologyUMTS, TechnologyHertzian, TechnologyOptical}
var TechnologyNamesList = []string{"gsm", "umts", "hertzian", "optical"}

func (t Technology) String() string {
	switch t {
	case TechnologyGSM, TechnologyUMTS, TechnologyHertzian, TechnologyOptical:
		return TechnologyNamesList[t]
	default:
		simplelogger.Panicf("invalid technology: %d", int(t))
		return "invalid"
	}
}

// ParseTechnology parses a technology name (case-insensitive). "hz" is accepted for hertzian.
func ParseTechnology(name string) Technology {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "hz" {
		return TechnologyHertzian
	}
	for i, n := range TechnologyNamesList {
		if n == name {
			return TechnologiesList[i]
		}
	}
	return TechnologyInvalid
}

// PropagationModel selects the path-loss model used for a cell radius calculation.
// Any value other than OkumuraHata or Cost231 selects the free-space model.
type PropagationModel string

const (
	OkumuraHata PropagationModel = "OKUMURA_HATA"
	Cost231     PropagationModel = "COST231"
	FreeSpace   PropagationModel = "FREE_SPACE"
)

// ParsePropagationModel maps user input onto a model. Unknown names map to FreeSpace.
func ParsePropagationModel(s string) PropagationModel {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "OKUMURA_HATA", "OKUMURA", "HATA":
		return OkumuraHata
	case "COST231", "COST_231", "COST":
		return Cost231
	default:
		return FreeSpace
	}
}

// FiberType is the optical fiber kind. Anything other than Multimode is treated as Monomode.
type FiberType string

const (
	Monomode  FiberType = "MONOMODE"
	Multimode FiberType = "MULTIMODE"
)

func ParseFiberType(s string) FiberType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MULTIMODE", "MM":
		return Multimode
	default:
		return Monomode
	}
}

// ServiceType is a UMTS bearer service class.
type ServiceType string

const (
	ServiceVoice ServiceType = "VOICE"
	ServiceData  ServiceType = "DATA"
	ServiceVideo ServiceType = "VIDEO"
)

func ParseServiceType(s string) ServiceType {
	return ServiceType(strings.ToUpper(strings.TrimSpace(s)))
}
