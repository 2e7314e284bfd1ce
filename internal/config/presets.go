package config

// Presets are named lever setups for headless runs and quick starts
// in the live view. Percent values; unlisted levers keep their
// registry defaults.
var Presets = map[string]*Config{
	"baseline": {
		Dt: 1.0, Duration: 300,
		Levers: map[string]float64{},
	},
	"full_load": {
		Dt: 1.0, Duration: 600,
		Levers: map[string]float64{
			"coal_feed":       80,
			"air_supply":      80,
			"feedwater":       60,
			"steam_turbine":   70,
			"steam_flow":      70,
			"fuel_injection":  50,
			"condenser":       50,
			"cooling_water":   50,
			"boiler_pressure": 50,
			"water_level":     50,
			"exhaust_gas":     50,
			"emergency_valve": 0,
		},
	},
	"overfire": {
		Dt: 1.0, Duration: 600,
		Levers: map[string]float64{
			"coal_feed":     100,
			"air_supply":    80,
			"feedwater":     60,
			"steam_turbine": 70,
			"steam_flow":    70,
			"cooling_water": 50,
			"condenser":     50,
			"water_level":   50,
		},
	},
	"starved_air": {
		Dt: 1.0, Duration: 600,
		Levers: map[string]float64{
			"coal_feed":     80,
			"air_supply":    25,
			"feedwater":     60,
			"steam_turbine": 70,
			"steam_flow":    70,
			"cooling_water": 50,
			"condenser":     50,
			"water_level":   50,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
