package cave

import (
	"strconv"

	"cavegen/internal/core"
)

// Parameters reports the configuration and the live state of the run.
func (c *Cave) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", c.cfg.Width),
				intParam("h", "Height", c.cfg.Height),
				int64Param("seed", "Seed", c.seed),
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				intParam("wall_pct", "Wall %", c.cfg.WallPercent),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				intParam("generation", "Generation", c.generation),
				intParam("walls", "Walls", c.grid.Count(core.Wall)),
				boolParam("stable", "Stable", c.Stable()),
			},
		},
	}}
}

// ParameterControls lists the values the HUD may adjust.
func (c *Cave) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "wall_pct", Label: "Wall %", Step: 1, Min: 0, Max: 100},
	}
}

// SetIntParameter updates a tunable. Seeding parameters apply on the next reset.
func (c *Cave) SetIntParameter(key string, value int) bool {
	switch key {
	case "wall_pct":
		c.cfg.WallPercent = ClampPercent(value)
		return true
	default:
		return false
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
