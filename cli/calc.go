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

package cli

import (
	"strings"

	"github.com/openthread/netdim/gsm"
	"github.com/openthread/netdim/hertzian"
	"github.com/openthread/netdim/optical"
	. "github.com/openthread/netdim/types"
	"github.com/openthread/netdim/umts"
)

func (rt *CmdRunner) executeGsm(cc *CommandContext, cmd *GsmCmd) {
	switch {
	case cmd.Radius != nil:
		c := cmd.Radius
		model := OkumuraHata
		if c.Model != "" {
			model = ParsePropagationModel(c.Model)
		}
		cc.outputRows([]row{
			{"model", string(model), ""},
			{"cellRadius", gsm.CellRadius(c.Frequency.Value(), c.BtsPower.Value(), c.MobileThreshold.Value(), model), "km"},
		})
	case cmd.Bts != nil:
		c := cmd.Bts
		r := c.CellRadius.Value()
		cc.outputRows([]row{
			{"cellArea", Round2(gsm.HexCellArea(r)), "km2"},
			{"btsCount", gsm.BtsCount(c.CoverageArea.Value(), r), ""},
		})
	case cmd.Traffic != nil:
		c := cmd.Traffic
		cc.outputRows([]row{
			{"trafficCapacity", gsm.TrafficCapacity(c.Channels, c.OccupancyRate.Value()), "Erl"},
		})
	case cmd.Erlang != nil:
		c := cmd.Erlang
		channels, err := gsm.ErlangB(c.Traffic.Value(), c.BlockingProbability.Value())
		if err != nil {
			cc.error(err)
			return
		}
		cc.outputRows([]row{
			{"channels", channels, ""},
			{"blocking", gsm.ErlangBBlocking(c.Traffic.Value(), channels), ""},
		})
	case cmd.Plan != nil:
		c := cmd.Plan
		plan := gsm.FrequencyPlanning(c.TotalChannels, c.ClusterSize)
		cc.outputRows([]row{
			{"channelsPerCell", plan.ChannelsPerCell, ""},
			{"reuseFactor", plan.ReuseFactor, ""},
			{"coChannelReuseRatio", plan.CoChannelReuseRatio, "D/R"},
		})
	}
}

func (rt *CmdRunner) executeUmts(cc *CommandContext, cmd *UmtsCmd) {
	switch {
	case cmd.Uplink != nil:
		rt.outputCapacity(cc, umts.UplinkCapacity, cmd.Uplink)
	case cmd.Downlink != nil:
		rt.outputCapacity(cc, umts.DownlinkCapacity, cmd.Downlink)
	case cmd.Coverage != nil:
		c := cmd.Coverage
		params := umts.DefaultPropagationParams()
		if c.Frequency != nil {
			params.Frequency = c.Frequency.Value()
		}
		if c.BaseHeight != nil {
			params.BaseHeight = c.BaseHeight.Value()
		}
		if c.MobileHeight != nil {
			params.MobileHeight = c.MobileHeight.Value()
		}
		params.Metropolitan = c.Metropolitan != nil
		res := umts.CellCoverage(c.TransmitPower.Value(), c.Sensitivity.Value(), c.Margin.Value(), params)
		cc.outputRows([]row{
			{"maxPathLoss", res.MaxPathLoss, "dB"},
			{"cellRadius", res.CellRadius, "km"},
			{"cellArea", res.CellArea, "km2"},
		})
	case cmd.Plan != nil:
		c := cmd.Plan
		carrier := umts.DefaultCarrierBandwidthMHz
		if c.CarrierBandwidth != nil {
			carrier = c.CarrierBandwidth.Value()
		}
		plan := umts.FrequencyPlanning(c.TotalBandwidth.Value(), carrier)
		cc.outputRows([]row{
			{"carriers", plan.Carriers, ""},
			{"capacity", plan.Capacity, "users"},
		})
	}
}

type capacityFunc func(services []umts.Service, ebno DbValue, opts umts.CapacityOptions) umts.CapacityResult

func (rt *CmdRunner) outputCapacity(cc *CommandContext, capacity capacityFunc, cmd *UmtsCapacityCmd) {
	opts := umts.DefaultCapacityOptions()
	if cmd.LoadFactor != nil {
		opts.LoadFactor = cmd.LoadFactor.Value()
	}
	services := make([]umts.Service, 0, len(cmd.Services))
	for _, s := range cmd.Services {
		services = append(services, umts.Service{
			Type:           ParseServiceType(s.Type),
			BitRate:        s.BitRate.Value(),
			ActivityFactor: s.ActivityFactor.Value(),
		})
	}

	res := capacity(services, cmd.EbNo.Value(), opts)
	if rt.format == OutputYaml {
		cc.outputItemsAsYaml(res)
		return
	}
	rows := []row{
		{"ebnoLinear", res.EbNoLinear, ""},
		{"loadFactorTarget", res.LoadFactorTarget, ""},
		{"totalLoadFactor", res.TotalLoadFactor, ""},
		{"maxUsers", res.MaxUsers, ""},
		{"noiseRise", res.NoiseRise, "dB"},
	}
	for _, s := range res.Services {
		rows = append(rows, row{string(s.Type) + " load", s.LoadFactor, formatValue(s.BitRate) + " bit/s"})
	}
	cc.outputRows(rows)
}

func (rt *CmdRunner) executeHertzian(cc *CommandContext, cmd *HzCmd) {
	switch {
	case cmd.Fsl != nil:
		c := cmd.Fsl
		cc.outputRows([]row{
			{"freeSpaceLoss", hertzian.FreeSpaceLoss(c.Frequency.Value(), c.Distance.Value()), "dB"},
		})
	case cmd.Margin != nil:
		c := cmd.Margin
		cc.outputRows([]row{
			{"linkMargin", hertzian.LinkMargin(c.SystemGain.Value(), c.ReceiverThreshold.Value(), c.TotalLosses.Value()), "dB"},
		})
	case cmd.Avail != nil:
		c := cmd.Avail
		zone := hertzian.DefaultRainZone
		if c.RainZone != "" {
			zone = strings.ToUpper(c.RainZone)
		}
		res := hertzian.LinkAvailability(c.LinkMargin.Value(), c.Frequency.Value(), c.Distance.Value(), zone)
		if rt.format == OutputYaml {
			cc.outputItemsAsYaml(res)
			return
		}
		cc.outputRows([]row{
			{"rainRate", res.RainRate, "mm/h"},
			{"specificAttenuation", res.SpecificAttenuation, "dB/km"},
			{"effectiveDistance", res.EffectiveDistance, "km"},
			{"rainAttenuation", res.RainAttenuation, "dB"},
			{"fadeMargin", res.FadeMargin, "dB"},
			{"unavailability", res.Unavailability, "%"},
			{"availability", res.Availability, "%"},
			{"downtime", res.DowntimeMinutesPerYear, "min/year"},
		})
	case cmd.Diffraction != nil:
		c := cmd.Diffraction
		f, h, d := c.Frequency.Value(), c.Clearance.Value(), c.Distance.Value()
		cc.outputRows([]row{
			{"v", Round2(hertzian.FresnelKirchhoffParameter(f, h, d)), ""},
			{"diffractionLoss", hertzian.DiffractionLoss(f, h, d), "dB"},
			{"fresnelZoneRadius", hertzian.FresnelZoneRadius(f, d/2, d/2), "m"},
		})
	case cmd.MaxDist != nil:
		c := cmd.MaxDist
		losses := 0.0
		if c.AdditionalLosses != nil {
			losses = c.AdditionalLosses.Value()
		}
		cc.outputRows([]row{
			{"maxDistance", hertzian.MaxDistance(c.SystemGain.Value(), c.ReceiverThreshold.Value(), c.Frequency.Value(), losses), "km"},
		})
	}
}

func (rt *CmdRunner) executeOptical(cc *CommandContext, cmd *OpticalCmd) {
	switch {
	case cmd.Budget != nil:
		c := cmd.Budget
		cc.outputRows([]row{
			{"opticalBudget", optical.OpticalBudget(c.TxPower.Value(), c.RxSensitivity.Value()), "dB"},
		})
	case cmd.Atten != nil:
		c := cmd.Atten
		cc.outputRows([]row{
			{"attenuation", optical.FiberAttenuation(ParseFiberType(c.Fiber.Type), c.Wavelength.Value()), "dB/km"},
		})
	case cmd.Losses != nil:
		c := cmd.Losses
		fiber := ParseFiberType(c.Fiber.Type)
		opts := optical.DefaultLossOptions(fiber)
		if c.ConnectorLoss != nil {
			opts.ConnectorLossDb = c.ConnectorLoss.Value()
		}
		if c.SpliceLoss != nil {
			opts.SpliceLossDb = c.SpliceLoss.Value()
		}
		if c.SafetyMargin != nil {
			opts.SafetyMarginDb = c.SafetyMargin.Value()
		}
		res := optical.TotalLosses(fiber, c.Length.Value(), c.Wavelength.Value(), c.ConnectorCount, c.SpliceCount, opts)
		cc.outputRows([]row{
			{"attenuation", res.Attenuation, "dB/km"},
			{"fiberLoss", res.FiberLoss, "dB"},
			{"connectorLoss", res.ConnectorLoss, "dB"},
			{"spliceLoss", res.SpliceLoss, "dB"},
			{"safetyMargin", res.SafetyMargin, "dB"},
			{"total", res.Total, "dB"},
		})
	case cmd.Range != nil:
		c := cmd.Range
		margin := optical.DefaultSafetyMarginDb
		if c.SafetyMargin != nil {
			margin = c.SafetyMargin.Value()
		}
		cc.outputRows([]row{
			{"maxRange", optical.MaxRange(c.Budget.Value(), c.LinearAttenuation.Value(), c.ConnectionLosses.Value(), margin), "km"},
		})
	case cmd.Dispersion != nil:
		c := cmd.Dispersion
		res := optical.ChromaticDispersion(c.Wavelength.Value(), c.Length.Value(), c.SpectralWidth.Value())
		cc.outputRows([]row{
			{"coefficient", res.Coefficient, "ps/(nm.km)"},
			{"dispersion", res.Total, "ps"},
		})
	case cmd.Penalty != nil:
		c := cmd.Penalty
		cc.outputRows([]row{
			{"penalty", optical.DispersionPenalty(c.BitRate.Value(), c.Dispersion.Value()), "dB"},
		})
	case cmd.Osnr != nil:
		c := cmd.Osnr
		cc.outputRows([]row{
			{"osnr", optical.OSNR(c.LaunchPower.Value(), c.ReceivedPower.Value(), c.NoiseFigure.Value(), c.AmplifierCount), "dB"},
		})
	}
}
