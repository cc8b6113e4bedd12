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
	"github.com/alecthomas/participle"
)

// noinspection GoStructTag
type Command struct {
	Exit     *ExitCmd     `  @@` //nolint
	Format   *FormatCmd   `| @@` //nolint
	Gsm      *GsmCmd      `| @@` //nolint
	Help     *HelpCmd     `| @@` //nolint
	Hz       *HzCmd       `| @@` //nolint
	Load     *LoadCmd     `| @@` //nolint
	LogLevel *LogLevelCmd `| @@` //nolint
	Optical  *OpticalCmd  `| @@` //nolint
	Run      *RunCmd      `| @@` //nolint
	Save     *SaveCmd     `| @@` //nolint
	Stats    *StatsCmd    `| @@` //nolint
	Umts     *UmtsCmd     `| @@` //nolint
}

// Number is a signed real argument. The lexer splits "-102" into "-" and "102".
// noinspection GoStructTag
type Number struct {
	Sign string  `[ @"-" ]`      //nolint
	Val  float64 `(@Int|@Float)` //nolint
}

func (n Number) Value() float64 {
	if n.Sign == "-" {
		return -n.Val
	}
	return n.Val
}

// noinspection GoStructTag
type GsmCmd struct {
	Cmd     struct{}       `"gsm"`  //nolint
	Radius  *GsmRadiusCmd  `( @@`   //nolint
	Bts     *GsmBtsCmd     `| @@`   //nolint
	Traffic *GsmTrafficCmd `| @@`   //nolint
	Erlang  *GsmErlangCmd  `| @@`   //nolint
	Plan    *GsmPlanCmd    `| @@ )` //nolint
}

// noinspection GoStructTag
type GsmRadiusCmd struct {
	Cmd             struct{} `"radius"`   //nolint
	Frequency       Number   `@@`         //nolint
	BtsPower        Number   `@@`         //nolint
	MobileThreshold Number   `@@`         //nolint
	Model           string   `[ @Ident ]` //nolint
}

// noinspection GoStructTag
type GsmBtsCmd struct {
	Cmd          struct{} `"bts"` //nolint
	CoverageArea Number   `@@`    //nolint
	CellRadius   Number   `@@`    //nolint
}

// noinspection GoStructTag
type GsmTrafficCmd struct {
	Cmd           struct{} `"traffic"` //nolint
	Channels      int      `@Int`      //nolint
	OccupancyRate Number   `@@`        //nolint
}

// noinspection GoStructTag
type GsmErlangCmd struct {
	Cmd                 struct{} `"erlang"` //nolint
	Traffic             Number   `@@`       //nolint
	BlockingProbability Number   `@@`       //nolint
}

// noinspection GoStructTag
type GsmPlanCmd struct {
	Cmd           struct{} `"plan"` //nolint
	TotalChannels int      `@Int`   //nolint
	ClusterSize   int      `@Int`   //nolint
}

// noinspection GoStructTag
type UmtsCmd struct {
	Cmd      struct{}         `"umts"`          //nolint
	Uplink   *UmtsCapacityCmd `( "uplink" @@`   //nolint
	Downlink *UmtsCapacityCmd `| "downlink" @@` //nolint
	Coverage *UmtsCoverageCmd `| @@`            //nolint
	Plan     *UmtsPlanCmd     `| @@ )`          //nolint
}

// noinspection GoStructTag
type UmtsCapacityCmd struct {
	EbNo       Number       `@@`            //nolint
	LoadFactor *Number      `[ "load" @@ ]` //nolint
	Services   []ServiceArg `( @@ )+`       //nolint
}

// noinspection GoStructTag
type ServiceArg struct {
	Type           string `@( "voice" | "data" | "video" )` //nolint
	BitRate        Number `@@`                              //nolint
	ActivityFactor Number `@@`                              //nolint
}

// noinspection GoStructTag
type UmtsCoverageCmd struct {
	Cmd           struct{}  `"coverage"`  //nolint
	TransmitPower Number    `@@`          //nolint
	Sensitivity   Number    `@@`          //nolint
	Margin        Number    `@@`          //nolint
	Frequency     *Number   `( "freq" @@` //nolint
	BaseHeight    *Number   `| "hb" @@`   //nolint
	MobileHeight  *Number   `| "hm" @@`   //nolint
	Metropolitan  *MetroArg `| @@ )*`     //nolint
}

// noinspection GoStructTag
type MetroArg struct {
	Dummy struct{} `"metro"` //nolint
}

// noinspection GoStructTag
type UmtsPlanCmd struct {
	Cmd              struct{} `"plan"` //nolint
	TotalBandwidth   Number   `@@`     //nolint
	CarrierBandwidth *Number  `[ @@ ]` //nolint
}

// noinspection GoStructTag
type HzCmd struct {
	Cmd         struct{}          `("hz"|"hertzian")` //nolint
	Fsl         *HzFslCmd         `( @@`              //nolint
	Margin      *HzMarginCmd      `| @@`              //nolint
	Avail       *HzAvailCmd       `| @@`              //nolint
	Diffraction *HzDiffractionCmd `| @@`              //nolint
	MaxDist     *HzMaxDistCmd     `| @@ )`            //nolint
}

// noinspection GoStructTag
type HzFslCmd struct {
	Cmd       struct{} `"fsl"` //nolint
	Frequency Number   `@@`    //nolint
	Distance  Number   `@@`    //nolint
}

// noinspection GoStructTag
type HzMarginCmd struct {
	Cmd               struct{} `"margin"` //nolint
	SystemGain        Number   `@@`       //nolint
	ReceiverThreshold Number   `@@`       //nolint
	TotalLosses       Number   `@@`       //nolint
}

// noinspection GoStructTag
type HzAvailCmd struct {
	Cmd        struct{} `"avail"`    //nolint
	LinkMargin Number   `@@`         //nolint
	Frequency  Number   `@@`         //nolint
	Distance   Number   `@@`         //nolint
	RainZone   string   `[ @Ident ]` //nolint
}

// noinspection GoStructTag
type HzDiffractionCmd struct {
	Cmd       struct{} `"diffraction"` //nolint
	Frequency Number   `@@`            //nolint
	Clearance Number   `@@`            //nolint
	Distance  Number   `@@`            //nolint
}

// noinspection GoStructTag
type HzMaxDistCmd struct {
	Cmd               struct{} `"maxdist"` //nolint
	SystemGain        Number   `@@`        //nolint
	ReceiverThreshold Number   `@@`        //nolint
	Frequency         Number   `@@`        //nolint
	AdditionalLosses  *Number  `[ @@ ]`    //nolint
}

// noinspection GoStructTag
type OpticalCmd struct {
	Cmd        struct{}              `("optical"|"opt")` //nolint
	Budget     *OpticalBudgetCmd     `( @@`              //nolint
	Atten      *OpticalAttenCmd      `| @@`              //nolint
	Losses     *OpticalLossesCmd     `| @@`              //nolint
	Range      *OpticalRangeCmd      `| @@`              //nolint
	Dispersion *OpticalDispersionCmd `| @@`              //nolint
	Penalty    *OpticalPenaltyCmd    `| @@`              //nolint
	Osnr       *OpticalOsnrCmd       `| @@ )`            //nolint
}

// noinspection GoStructTag
type OpticalBudgetCmd struct {
	Cmd           struct{} `"budget"` //nolint
	TxPower       Number   `@@`       //nolint
	RxSensitivity Number   `@@`       //nolint
}

// noinspection GoStructTag
type FiberArg struct {
	Type string `@( "mono" | "monomode" | "multi" | "multimode" | "mm" )` //nolint
}

// noinspection GoStructTag
type OpticalAttenCmd struct {
	Cmd        struct{} `"atten"` //nolint
	Fiber      FiberArg `@@`      //nolint
	Wavelength Number   `@@`      //nolint
}

// noinspection GoStructTag
type OpticalLossesCmd struct {
	Cmd            struct{} `"losses"`     //nolint
	Fiber          FiberArg `@@`           //nolint
	Length         Number   `@@`           //nolint
	Wavelength     Number   `@@`           //nolint
	ConnectorCount int      `@Int`         //nolint
	SpliceCount    int      `@Int`         //nolint
	ConnectorLoss  *Number  `( "cl" @@`    //nolint
	SpliceLoss     *Number  `| "sl" @@`    //nolint
	SafetyMargin   *Number  `| "sm" @@ )*` //nolint
}

// noinspection GoStructTag
type OpticalRangeCmd struct {
	Cmd               struct{} `"range"` //nolint
	Budget            Number   `@@`      //nolint
	LinearAttenuation Number   `@@`      //nolint
	ConnectionLosses  Number   `@@`      //nolint
	SafetyMargin      *Number  `[ @@ ]`  //nolint
}

// noinspection GoStructTag
type OpticalDispersionCmd struct {
	Cmd           struct{} `"dispersion"` //nolint
	Wavelength    Number   `@@`           //nolint
	Length        Number   `@@`           //nolint
	SpectralWidth Number   `@@`           //nolint
}

// noinspection GoStructTag
type OpticalPenaltyCmd struct {
	Cmd        struct{} `"penalty"` //nolint
	BitRate    Number   `@@`        //nolint
	Dispersion Number   `@@`        //nolint
}

// noinspection GoStructTag
type OpticalOsnrCmd struct {
	Cmd            struct{} `"osnr"` //nolint
	LaunchPower    Number   `@@`     //nolint
	ReceivedPower  Number   `@@`     //nolint
	NoiseFigure    Number   `@@`     //nolint
	AmplifierCount int      `@Int`   //nolint
}

// noinspection GoStructTag
type LoadCmd struct {
	Cmd  struct{} `"load"`  //nolint
	Path string   `@String` //nolint
}

// noinspection GoStructTag
type SaveCmd struct {
	Cmd  struct{} `"save"`  //nolint
	Path string   `@String` //nolint
}

// noinspection GoStructTag
type RunCmd struct {
	Cmd       struct{} `"run"`                     //nolint
	Scenarios []string `[ ( @Ident | @String )+ ]` //nolint
}

// noinspection GoStructTag
type StatsCmd struct {
	Cmd struct{} `"stats"` //nolint
}

// noinspection GoStructTag
type FormatCmd struct {
	Cmd    struct{} `"format"`                  //nolint
	Format string   `[ @( "table" | "yaml" ) ]` //nolint
}

// noinspection GoStructTag
type LogLevelCmd struct {
	Cmd   struct{} `"log"`                                                                  //nolint
	Level string   `[@( "trace"|"debug"|"info"|"warn"|"error"|"off"|"T"|"D"|"I"|"W"|"E" )]` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `"help"`       //nolint
	HelpTopic string   `[ (@Ident) ]` //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `( "exit" | "quit" )` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func parseBytes(b []byte, cmd *Command) error {
	return commandParser.ParseBytes(b, cmd)
}
