package physics

// Params holds every tuning constant of the unit model. All fields
// are overridable through the yaml config; DefaultParams documents
// the canonical set.
type Params struct {
	// combustion
	StoichRatio       float64 `yaml:"stoich_ratio"`        // optimal air/fuel mass ratio
	AirFuelSpan       float64 `yaml:"air_fuel_span"`       // ratio delivered at equal lever fractions
	RatioPenalty      float64 `yaml:"ratio_penalty"`       // efficiency loss per unit relative deviation
	MinCombustionEff  float64 `yaml:"min_combustion_eff"`  // efficiency floor
	MaxCombustionEff  float64 `yaml:"max_combustion_eff"`  // boiler base efficiency
	InjectionBoost    float64 `yaml:"injection_boost"`     // support-fuel efficiency gain at full injection
	CoalCalorific     float64 `yaml:"coal_calorific"`      // MW thermal at full feed and unity efficiency
	HeatLossCoeff     float64 `yaml:"heat_loss_coeff"`     // MW lost per deg C of steam temp
	WaterHeatCapacity float64 `yaml:"water_heat_capacity"` // MW per (deg C per second) of boiler inventory

	// steam circuit
	SatPressureCoeff float64 `yaml:"sat_pressure_coeff"` // MPa at 100 deg C in the power law
	SatPressureExp   float64 `yaml:"sat_pressure_exp"`
	PressureBoost    float64 `yaml:"pressure_boost"`     // extra pressure per unit fuel fraction
	ReliefFactor     float64 `yaml:"relief_factor"`      // pressure shed at full emergency valve
	MaxSteamFlow     float64 `yaml:"max_steam_flow"`     // t/h
	BaselineTemp     float64 `yaml:"baseline_temp"`      // deg C reference for flow scaling
	MinSteamTemp     float64 `yaml:"min_steam_temp"`     // deg C clamp floor
	MaxSteamTemp     float64 `yaml:"max_steam_temp"`     // deg C clamp ceiling
	MinSteamPressure float64 `yaml:"min_steam_pressure"` // MPa clamp floor
	MaxSteamPressure float64 `yaml:"max_steam_pressure"` // MPa clamp ceiling
	RatedPressure    float64 `yaml:"rated_pressure"`     // MPa for the pressure-ratio term

	// turbine and generator
	TurbineBaseEff    float64 `yaml:"turbine_base_eff"`
	GeneratorEff      float64 `yaml:"generator_eff"`
	EnthalpyPerDegC   float64 `yaml:"enthalpy_per_deg_c"`  // kJ/kg per deg C of superheat
	CondenserRefTemp  float64 `yaml:"condenser_ref_temp"`  // deg C back-pressure reference
	RatedCapacity     float64 `yaml:"rated_capacity"`      // MW
	RatedSpeed        float64 `yaml:"rated_speed"`         // RPM
	MaxSpeedClamp     float64 `yaml:"max_speed_clamp"`     // RPM hard bound
	GridFrequency     float64 `yaml:"grid_frequency"`      // Hz
	FrequencyPerRPM   float64 `yaml:"frequency_per_rpm"`   // Hz deviation per RPM off rated
	ThrottleFloorTerm float64 `yaml:"throttle_floor_term"` // partial-opening efficiency floor

	// water and auxiliaries
	MaxFeedwaterFlow  float64 `yaml:"max_feedwater_flow"`  // t/h
	CondensatePerMW   float64 `yaml:"condensate_per_mw"`   // t/h per MW
	MaxCircWaterFlow  float64 `yaml:"max_circ_water_flow"` // t/h
	AmbientWaterTemp  float64 `yaml:"ambient_water_temp"`  // deg C
	CondenserRiseMax  float64 `yaml:"condenser_rise_max"`  // deg C at rated load, no cooling
	MaxVacuum         float64 `yaml:"max_vacuum"`          // kPa below atmosphere
	OilConsumption    float64 `yaml:"oil_consumption"`     // percent of tank per load-hour
	DrumLevelSpan     float64 `yaml:"drum_level_span"`     // mm of lever authority each side
	DrumImbalanceGain float64 `yaml:"drum_imbalance_gain"` // mm per unit feed/steam mismatch

	// smoothing rates (1/s), one per primary field
	TempRate     float64 `yaml:"temp_rate"`
	PressureRate float64 `yaml:"pressure_rate"`
	FlowRate     float64 `yaml:"flow_rate"`
	SpeedRate    float64 `yaml:"speed_rate"`
	LoadRate     float64 `yaml:"load_rate"`
	LeverRate    float64 `yaml:"lever_rate"`    // fallback for levers without a response time

	// protection
	MaxBoilerTemp   float64 `yaml:"max_boiler_temp"`    // deg C trip ceiling
	DrumLevelBand   float64 `yaml:"drum_level_band"`    // mm each side of normal
	DrumTripMinFlow float64 `yaml:"drum_trip_min_flow"` // t/h below which level trips are masked
	OverspeedTrip   float64 `yaml:"overspeed_trip"`     // RPM

	// shutdown and revenue
	ShutdownSeconds float64 `yaml:"shutdown_seconds"`
	ShutdownDecay   float64 `yaml:"shutdown_decay"`   // per-second multiplicative decay
	RevenueRate     float64 `yaml:"revenue_rate"`     // currency per MWh

	// emissions
	CO2Factor   float64 `yaml:"co2_factor"`   // t/h at full fuel, perfect combustion
	SO2Factor   float64 `yaml:"so2_factor"`   // kg/h at full fuel, no scrubbing
	NOxFactor   float64 `yaml:"nox_factor"`   // kg/h at full fuel, on-ratio
	ScrubberEff float64 `yaml:"scrubber_eff"` // removal at full exhaust-gas treatment
}

// Epsilon floors near-zero denominators (fuel fraction, heat input).
const Epsilon = 1e-6

func DefaultParams() Params {
	return Params{
		StoichRatio:       15.5,
		AirFuelSpan:       15.5,
		RatioPenalty:      0.8,
		MinCombustionEff:  0.45,
		MaxCombustionEff:  0.95,
		InjectionBoost:    0.05,
		CoalCalorific:     1520,
		HeatLossCoeff:     2.0,
		WaterHeatCapacity: 9.5,

		SatPressureCoeff: 0.55,
		SatPressureExp:   2.0,
		PressureBoost:    0.10,
		ReliefFactor:     0.40,
		MaxSteamFlow:     2000,
		BaselineTemp:     540,
		MinSteamTemp:     20,
		MaxSteamTemp:     700,
		MinSteamPressure: 0.1,
		MaxSteamPressure: 30,
		RatedPressure:    16.7,

		TurbineBaseEff:    0.88,
		GeneratorEff:      0.985,
		EnthalpyPerDegC:   1.2,
		CondenserRefTemp:  40,
		RatedCapacity:     600,
		RatedSpeed:        3000,
		MaxSpeedClamp:     3600,
		GridFrequency:     50,
		FrequencyPerRPM:   1.0 / 60.0,
		ThrottleFloorTerm: 0.7,

		MaxFeedwaterFlow:  2200,
		CondensatePerMW:   2.8,
		MaxCircWaterFlow:  70000,
		AmbientWaterTemp:  20,
		CondenserRiseMax:  14,
		MaxVacuum:         95,
		OilConsumption:    0.8,
		DrumLevelSpan:     400,
		DrumImbalanceGain: 150,

		TempRate:     0.035,
		PressureRate: 0.06,
		FlowRate:     0.08,
		SpeedRate:    0.05,
		LoadRate:     0.04,
		LeverRate:    0.25,

		MaxBoilerTemp:   620,
		DrumLevelBand:   300,
		DrumTripMinFlow: 100,
		OverspeedTrip:   3300,

		ShutdownSeconds: 10,
		ShutdownDecay:   0.60,
		RevenueRate:     48.0,

		CO2Factor:   520,
		SO2Factor:   1400,
		NOxFactor:   900,
		ScrubberEff: 0.85,
	}
}
