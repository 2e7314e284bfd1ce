package plant

import "math"

// TripCause identifies which protection fired.
type TripCause string

const (
	TripNone      TripCause = ""
	TripOverTemp  TripCause = "boiler_overtemp"
	TripDrumLevel TripCause = "drum_level"
	TripOverspeed TripCause = "turbine_overspeed"
	TripShutdown  TripCause = "operator_shutdown"
)

// SystemState is one snapshot of the whole unit. The primary group
// carries inertia between ticks; everything in the derived group is
// recomputed from primaries and levers on every step.
type SystemState struct {
	// primary
	MainSteamFlow     float64 // t/h
	MainSteamPressure float64 // MPa
	MainSteamTemp     float64 // deg C
	TurbineSpeed      float64 // RPM
	Load              float64 // MW

	// derived
	Frequency            float64 // Hz
	ThermalEfficiency    float64 // 0-1
	HeatRate             float64 // kJ/kWh
	CombustionEfficiency float64 // 0-1
	AirFuelRatio         float64
	FlueGasTemp          float64 // deg C
	FlueGasO2            float64 // percent
	CO2Rate              float64 // t/h
	SO2Rate              float64 // kg/h
	NOxRate              float64 // kg/h
	DrumLevel            float64 // mm relative to normal water line
	FeedwaterFlow        float64 // t/h
	FeedwaterTemp        float64 // deg C
	FeedwaterPressure    float64 // MPa
	CondensateFlow       float64 // t/h
	CondenserVacuum      float64 // kPa
	CondenserOutletTemp  float64 // deg C
	CirculatingWaterFlow float64 // t/h
	CoolingWaterInTemp   float64 // deg C
	CoolingWaterOutTemp  float64 // deg C
	HPHeaterTemp         float64 // deg C
	LPHeaterTemp         float64 // deg C
	ReheatSteamTemp      float64 // deg C
	GeneratorWindingTemp float64 // deg C
	LubeOilTemp          float64 // deg C
	LubeOilTankLevel     float64 // percent
	BearingVibration     float64 // mm/s

	// bookkeeping
	Running           bool
	Tripped           bool
	TripCause         TripCause
	ShutdownRemaining float64 // seconds left of commanded shutdown
	RunSeconds        float64
	TotalEarnings     float64
}

// Baseline is the cold-standby state the unit resets to: boiler warm,
// turbine on barring gear, no generation.
func Baseline() SystemState {
	return SystemState{
		MainSteamFlow:     0,
		MainSteamPressure: 1.2,
		MainSteamTemp:     300,
		TurbineSpeed:      0,
		Load:              0,

		Frequency:            50,
		CondenserVacuum:      60,
		CoolingWaterInTemp:   20,
		CoolingWaterOutTemp:  20,
		FeedwaterTemp:        150,
		FeedwaterPressure:    3.4,
		HPHeaterTemp:         170,
		LPHeaterTemp:         80,
		ReheatSteamTemp:      294,
		GeneratorWindingTemp: 40,
		LubeOilTemp:          35,
		LubeOilTankLevel:     100,
		BearingVibration:     0.5,
		FlueGasO2:            21,
	}
}

// PrimaryVector returns the inertial fields in a fixed order, used by
// the shutdown decay rule and the CSV writer.
func (s *SystemState) PrimaryVector() []float64 {
	return []float64{s.MainSteamFlow, s.MainSteamPressure, s.MainSteamTemp, s.TurbineSpeed, s.Load}
}

func (s *SystemState) IsValid() bool {
	for _, v := range s.PrimaryVector() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
