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

// Package project reads and writes YAML project files holding named dimensioning scenarios, and
// turns them into dimensioning requests. Omitted scenario fields take the defaults below.
package project

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openthread/netdim/dimensioning"
	"github.com/openthread/netdim/hertzian"
	"github.com/openthread/netdim/optical"
	. "github.com/openthread/netdim/types"
	"github.com/openthread/netdim/umts"
)

// GSM scenario defaults.
const (
	DefaultGsmFrequency            = 900.0
	DefaultGsmBtsPower             = 43.0
	DefaultGsmMobileThreshold      = -102.0
	DefaultGsmModel                = OkumuraHata
	DefaultGsmCoverageArea         = 100.0
	DefaultGsmSubscribers          = 10000.0
	DefaultGsmTrafficPerSubscriber = 0.025
	DefaultGsmChannelsPerBts       = 30
	DefaultGsmBlockingProbability  = 0.02
	DefaultGsmOccupancyRate        = 0.8
	DefaultGsmTotalChannels        = 124
	DefaultGsmClusterSize          = 7
)

// UMTS scenario defaults.
const (
	DefaultUmtsEbNoUplink     = 5.0
	DefaultUmtsEbNoDownlink   = 5.0
	DefaultUmtsTransmitPower  = 43.0
	DefaultUmtsSensitivity    = -110.0
	DefaultUmtsMargin         = 10.0
	DefaultUmtsCoverageArea   = 100.0
	DefaultUmtsTotalBandwidth = 15.0
)

// Hertzian scenario defaults.
const (
	DefaultHzFrequency         = 18.0
	DefaultHzDistance          = 10.0
	DefaultHzTxPower           = 20.0
	DefaultHzAntennaGain       = 38.0
	DefaultHzReceiverThreshold = -70.0
)

// Optical scenario defaults.
const (
	DefaultOpticalFiberType      = Monomode
	DefaultOpticalLength         = 20.0
	DefaultOpticalWavelength     = 1550.0
	DefaultOpticalTxPower        = 0.0
	DefaultOpticalRxSensitivity  = -28.0
	DefaultOpticalConnectorCount = 2
	DefaultOpticalBitRate        = 10.0
	DefaultOpticalSpectralWidth  = 0.1
	DefaultOpticalNoiseFigure    = 5.0
	DefaultOpticalAmplifiers     = 1
)

// File is the top-level structure of a project file.
type File struct {
	Name      string     `yaml:"name,omitempty"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is a named dimensioning case. Exactly one technology section must be set.
type Scenario struct {
	Name     string            `yaml:"name"`
	GSM      *GSMScenario      `yaml:"gsm,omitempty"`
	UMTS     *UMTSScenario     `yaml:"umts,omitempty"`
	Hertzian *HertzianScenario `yaml:"hertzian,omitempty"`
	Optical  *OpticalScenario  `yaml:"optical,omitempty"`
}

type GSMScenario struct {
	Frequency            *float64 `yaml:"frequency,omitempty"`
	BtsPower             *float64 `yaml:"bts-power,omitempty"`
	MobileThreshold      *float64 `yaml:"mobile-threshold,omitempty"`
	Model                *string  `yaml:"model,omitempty"`
	CoverageArea         *float64 `yaml:"coverage-area,omitempty"`
	Subscribers          *float64 `yaml:"subscribers,omitempty"`
	TrafficPerSubscriber *float64 `yaml:"traffic-per-subscriber,omitempty"`
	ChannelsPerBts       *int     `yaml:"channels-per-bts,omitempty"`
	BlockingProbability  *float64 `yaml:"blocking,omitempty"`
	OccupancyRate        *float64 `yaml:"occupancy,omitempty"`
	TotalChannels        *int     `yaml:"total-channels,omitempty"`
	ClusterSize          *int     `yaml:"cluster-size,omitempty"`
}

type ServiceEntry struct {
	Type           string  `yaml:"type"`
	BitRate        float64 `yaml:"bitrate"`
	ActivityFactor float64 `yaml:"activity"`
}

type UMTSScenario struct {
	Services         []ServiceEntry `yaml:"services,omitempty"`
	EbNoUplink       *float64       `yaml:"ebno-uplink,omitempty"`
	EbNoDownlink     *float64       `yaml:"ebno-downlink,omitempty"`
	LoadFactor       *float64       `yaml:"load-factor,omitempty"`
	TransmitPower    *float64       `yaml:"tx-power,omitempty"`
	Sensitivity      *float64       `yaml:"sensitivity,omitempty"`
	Margin           *float64       `yaml:"margin,omitempty"`
	Frequency        *float64       `yaml:"frequency,omitempty"`
	BaseHeight       *float64       `yaml:"base-height,omitempty"`
	MobileHeight     *float64       `yaml:"mobile-height,omitempty"`
	Metropolitan     *bool          `yaml:"metropolitan,omitempty"`
	CoverageArea     *float64       `yaml:"coverage-area,omitempty"`
	TotalBandwidth   *float64       `yaml:"total-bandwidth,omitempty"`
	CarrierBandwidth *float64       `yaml:"carrier-bandwidth,omitempty"`
}

type HertzianScenario struct {
	Frequency         *float64 `yaml:"frequency,omitempty"`
	Distance          *float64 `yaml:"distance,omitempty"`
	TxPower           *float64 `yaml:"tx-power,omitempty"`
	TxAntennaGain     *float64 `yaml:"tx-gain,omitempty"`
	RxAntennaGain     *float64 `yaml:"rx-gain,omitempty"`
	ReceiverThreshold *float64 `yaml:"threshold,omitempty"`
	AdditionalLosses  *float64 `yaml:"losses,omitempty"`
	RainZone          *string  `yaml:"rain-zone,omitempty"`
	Clearance         *float64 `yaml:"clearance,omitempty"` // set only when a mid-path obstacle exists
}

type OpticalScenario struct {
	FiberType      *string  `yaml:"fiber,omitempty"`
	Length         *float64 `yaml:"length,omitempty"`
	Wavelength     *float64 `yaml:"wavelength,omitempty"`
	TxPower        *float64 `yaml:"tx-power,omitempty"`
	RxSensitivity  *float64 `yaml:"rx-sensitivity,omitempty"`
	ConnectorCount *int     `yaml:"connectors,omitempty"`
	SpliceCount    *int     `yaml:"splices,omitempty"`
	ConnectorLoss  *float64 `yaml:"connector-loss,omitempty"`
	SpliceLoss     *float64 `yaml:"splice-loss,omitempty"`
	SafetyMargin   *float64 `yaml:"safety-margin,omitempty"`
	BitRate        *float64 `yaml:"bitrate,omitempty"`
	SpectralWidth  *float64 `yaml:"spectral-width,omitempty"`
	NoiseFigure    *float64 `yaml:"noise-figure,omitempty"`
	Amplifiers     *int     `yaml:"amplifiers,omitempty"`
}

// Parse decodes and validates a project file.
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, errors.Wrapf(err, "parse project")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads a project file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load project")
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return f, nil
}

// Save writes the project file to disk.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return errors.Wrapf(err, "encode project")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "save project")
}

// Validate checks that scenario names are unique ignoring case and non-empty and that each scenario has exactly
// one technology section.
func (f *File) Validate() error {
	seen := map[string]struct{}{}
	for i := range f.Scenarios {
		sc := &f.Scenarios[i]
		if sc.Name == "" {
			return errors.Errorf("scenario #%d has no name", i+1)
		}
		key := strings.ToLower(sc.Name)
		if _, ok := seen[key]; ok {
			return errors.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[key] = struct{}{}
		if _, err := sc.Technology(); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the scenario with the given name, or nil.
func (f *File) Find(name string) *Scenario {
	for i := range f.Scenarios {
		if strings.EqualFold(f.Scenarios[i].Name, name) {
			return &f.Scenarios[i]
		}
	}
	return nil
}

// Technology returns the technology of the scenario's single section.
func (sc *Scenario) Technology() (Technology, error) {
	tech := TechnologyInvalid
	count := 0
	if sc.GSM != nil {
		tech, count = TechnologyGSM, count+1
	}
	if sc.UMTS != nil {
		tech, count = TechnologyUMTS, count+1
	}
	if sc.Hertzian != nil {
		tech, count = TechnologyHertzian, count+1
	}
	if sc.Optical != nil {
		tech, count = TechnologyOptical, count+1
	}
	if count != 1 {
		return TechnologyInvalid, errors.Errorf("scenario %q must have exactly one of gsm, umts, hertzian, optical (has %d)", sc.Name, count)
	}
	return tech, nil
}

func floatOr(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func intOr(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func (s *GSMScenario) Request() dimensioning.GSMRequest {
	model := DefaultGsmModel
	if s.Model != nil {
		model = ParsePropagationModel(*s.Model)
	}
	return dimensioning.GSMRequest{
		Frequency:            floatOr(s.Frequency, DefaultGsmFrequency),
		BtsPower:             floatOr(s.BtsPower, DefaultGsmBtsPower),
		MobileThreshold:      floatOr(s.MobileThreshold, DefaultGsmMobileThreshold),
		Model:                model,
		CoverageArea:         floatOr(s.CoverageArea, DefaultGsmCoverageArea),
		Subscribers:          floatOr(s.Subscribers, DefaultGsmSubscribers),
		TrafficPerSubscriber: floatOr(s.TrafficPerSubscriber, DefaultGsmTrafficPerSubscriber),
		ChannelsPerBts:       intOr(s.ChannelsPerBts, DefaultGsmChannelsPerBts),
		BlockingProbability:  floatOr(s.BlockingProbability, DefaultGsmBlockingProbability),
		OccupancyRate:        floatOr(s.OccupancyRate, DefaultGsmOccupancyRate),
		TotalChannels:        intOr(s.TotalChannels, DefaultGsmTotalChannels),
		ClusterSize:          intOr(s.ClusterSize, DefaultGsmClusterSize),
	}
}

// Request resolves the scenario. Without services a single 12.2 kbit/s voice bearer is assumed.
func (s *UMTSScenario) Request() dimensioning.UMTSRequest {
	services := make([]umts.Service, 0, len(s.Services))
	for _, e := range s.Services {
		services = append(services, umts.Service{
			Type:           ParseServiceType(e.Type),
			BitRate:        e.BitRate,
			ActivityFactor: e.ActivityFactor,
		})
	}
	if len(services) == 0 {
		services = append(services, umts.Service{Type: ServiceVoice, BitRate: 12.2, ActivityFactor: 0.5})
	}

	capacity := umts.DefaultCapacityOptions()
	capacity.LoadFactor = floatOr(s.LoadFactor, capacity.LoadFactor)

	prop := umts.DefaultPropagationParams()
	prop.Frequency = floatOr(s.Frequency, prop.Frequency)
	prop.BaseHeight = floatOr(s.BaseHeight, prop.BaseHeight)
	prop.MobileHeight = floatOr(s.MobileHeight, prop.MobileHeight)
	if s.Metropolitan != nil {
		prop.Metropolitan = *s.Metropolitan
	}

	return dimensioning.UMTSRequest{
		Services:         services,
		EbNoUplink:       floatOr(s.EbNoUplink, DefaultUmtsEbNoUplink),
		EbNoDownlink:     floatOr(s.EbNoDownlink, DefaultUmtsEbNoDownlink),
		Capacity:         capacity,
		TransmitPower:    floatOr(s.TransmitPower, DefaultUmtsTransmitPower),
		Sensitivity:      floatOr(s.Sensitivity, DefaultUmtsSensitivity),
		Margin:           floatOr(s.Margin, DefaultUmtsMargin),
		Propagation:      prop,
		CoverageArea:     floatOr(s.CoverageArea, DefaultUmtsCoverageArea),
		TotalBandwidth:   floatOr(s.TotalBandwidth, DefaultUmtsTotalBandwidth),
		CarrierBandwidth: floatOr(s.CarrierBandwidth, umts.DefaultCarrierBandwidthMHz),
	}
}

func (s *HertzianScenario) Request() dimensioning.HertzianRequest {
	zone := hertzian.DefaultRainZone
	if s.RainZone != nil {
		zone = strings.ToUpper(*s.RainZone)
	}
	return dimensioning.HertzianRequest{
		Frequency:         floatOr(s.Frequency, DefaultHzFrequency),
		Distance:          floatOr(s.Distance, DefaultHzDistance),
		TxPower:           floatOr(s.TxPower, DefaultHzTxPower),
		TxAntennaGain:     floatOr(s.TxAntennaGain, DefaultHzAntennaGain),
		RxAntennaGain:     floatOr(s.RxAntennaGain, DefaultHzAntennaGain),
		ReceiverThreshold: floatOr(s.ReceiverThreshold, DefaultHzReceiverThreshold),
		AdditionalLosses:  floatOr(s.AdditionalLosses, 0),
		RainZone:          zone,
		Obstructed:        s.Clearance != nil,
		Clearance:         floatOr(s.Clearance, 0),
	}
}

func (s *OpticalScenario) Request() dimensioning.OpticalRequest {
	fiber := DefaultOpticalFiberType
	if s.FiberType != nil {
		fiber = ParseFiberType(*s.FiberType)
	}
	losses := optical.DefaultLossOptions(fiber)
	losses.ConnectorLossDb = floatOr(s.ConnectorLoss, losses.ConnectorLossDb)
	losses.SpliceLossDb = floatOr(s.SpliceLoss, losses.SpliceLossDb)
	losses.SafetyMarginDb = floatOr(s.SafetyMargin, losses.SafetyMarginDb)

	return dimensioning.OpticalRequest{
		FiberType:      fiber,
		Length:         floatOr(s.Length, DefaultOpticalLength),
		Wavelength:     floatOr(s.Wavelength, DefaultOpticalWavelength),
		TxPower:        floatOr(s.TxPower, DefaultOpticalTxPower),
		RxSensitivity:  floatOr(s.RxSensitivity, DefaultOpticalRxSensitivity),
		ConnectorCount: intOr(s.ConnectorCount, DefaultOpticalConnectorCount),
		SpliceCount:    intOr(s.SpliceCount, 0),
		Losses:         losses,
		BitRate:        floatOr(s.BitRate, DefaultOpticalBitRate),
		SpectralWidth:  floatOr(s.SpectralWidth, DefaultOpticalSpectralWidth),
		NoiseFigure:    floatOr(s.NoiseFigure, DefaultOpticalNoiseFigure),
		AmplifierCount: intOr(s.Amplifiers, DefaultOpticalAmplifiers),
	}
}
