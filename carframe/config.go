package carframe

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TypeConfig names the object types the processor cares about. The defaults
// cover the standard playlists; a YAML override file can extend them when a
// patch introduces new archetypes without a code change.
type TypeConfig struct {
	BallTypes       []string `yaml:"ball_types"`
	CarTypes        []string `yaml:"car_types"`
	BoostTypes      []string `yaml:"boost_types"`
	JumpTypes       []string `yaml:"jump_types"`
	DoubleJumpTypes []string `yaml:"double_jump_types"`
	DodgeTypes      []string `yaml:"dodge_types"`
	PlayerInfoTypes []string `yaml:"player_info_types"`
	GameEventTypes  []string `yaml:"game_event_types"`
	TeamTypes       []string `yaml:"team_types"` // index in this list is the team number

	// SpawnTrajectories maps a normalized object name to the positional
	// shape its actors carry at spawn: none, location, or
	// location_and_rotation. Types not listed spawn with no trajectory.
	SpawnTrajectories map[string]string `yaml:"spawn_trajectories"`
}

// DefaultTypeConfig returns the built-in class tables.
func DefaultTypeConfig() TypeConfig {
	return TypeConfig{
		BallTypes: []string{
			"Archetypes.Ball.Ball_Default",
			"Archetypes.Ball.Ball_Basketball",
			"Archetypes.Ball.Ball_BasketBall",
			"Archetypes.Ball.Ball_Puck",
			"Archetypes.Ball.CubeBall",
			"Archetypes.Ball.Ball_Breakout",
			"Archetypes.Ball.Ball_Anniversary",
			"Archetypes.Ball.Ball_Haunted",
		},
		CarTypes: []string{
			"Archetypes.Car.Car_Default",
		},
		BoostTypes: []string{
			"Archetypes.CarComponents.CarComponent_Boost",
		},
		JumpTypes: []string{
			"Archetypes.CarComponents.CarComponent_Jump",
		},
		DoubleJumpTypes: []string{
			"Archetypes.CarComponents.CarComponent_DoubleJump",
		},
		DodgeTypes: []string{
			"Archetypes.CarComponents.CarComponent_Dodge",
		},
		PlayerInfoTypes: []string{
			"TAGame.Default__PRI_TA",
		},
		GameEventTypes: []string{
			"Archetypes.GameEvent.GameEvent_Soccar",
			"Archetypes.GameEvent.GameEvent_SoccarPrivate",
			"Archetypes.GameEvent.GameEvent_SoccarSplitscreen",
			"Archetypes.GameEvent.GameEvent_Basketball",
			"Archetypes.GameEvent.GameEvent_Hockey",
			"Archetypes.GameEvent.GameEvent_Breakout",
			"Archetypes.GameEvent.GameEvent_Season",
		},
		TeamTypes: []string{
			"Archetypes.Teams.Team0",
			"Archetypes.Teams.Team1",
		},
		SpawnTrajectories: map[string]string{
			"Archetypes.Ball.Ball_Default":                       "location",
			"Archetypes.Ball.Ball_Basketball":                    "location",
			"Archetypes.Ball.Ball_BasketBall":                    "location",
			"Archetypes.Ball.Ball_Puck":                          "location",
			"Archetypes.Ball.CubeBall":                           "location",
			"Archetypes.Ball.Ball_Breakout":                      "location",
			"Archetypes.Ball.Ball_Anniversary":                   "location",
			"Archetypes.Ball.Ball_Haunted":                       "location",
			"Archetypes.Car.Car_Default":                         "location_and_rotation",
			"TheWorld:PersistentLevel.VehiclePickup_Boost_TA":    "location",
			"TheWorld:PersistentLevel.CrowdActor_TA":             "location",
			"TheWorld:PersistentLevel.CrowdManager_TA":           "location",
			"TheWorld:PersistentLevel.BreakOutActor_Platform_TA": "location",
			"TheWorld:PersistentLevel.InMapScoreboard_TA":        "location",
		},
	}
}

// LoadTypeConfig loads the class tables, starting from the defaults and
// overlaying a YAML file when a path is given. Lists in the file replace
// the defaults wholesale; spawn trajectory entries merge over them.
func LoadTypeConfig(path string) (TypeConfig, error) {
	cfg := DefaultTypeConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var over TypeConfig
	if err := yaml.Unmarshal(b, &over); err != nil {
		return cfg, fmt.Errorf("types.yaml: %w", err)
	}
	cfg.merge(over)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("types.yaml: %w", err)
	}
	return cfg, nil
}

func (c *TypeConfig) merge(over TypeConfig) {
	for dst, src := range map[*[]string][]string{
		&c.BallTypes:       over.BallTypes,
		&c.CarTypes:        over.CarTypes,
		&c.BoostTypes:      over.BoostTypes,
		&c.JumpTypes:       over.JumpTypes,
		&c.DoubleJumpTypes: over.DoubleJumpTypes,
		&c.DodgeTypes:      over.DodgeTypes,
		&c.PlayerInfoTypes: over.PlayerInfoTypes,
		&c.GameEventTypes:  over.GameEventTypes,
		&c.TeamTypes:       over.TeamTypes,
	} {
		if len(src) > 0 {
			*dst = src
		}
	}
	for name, shape := range over.SpawnTrajectories {
		c.SpawnTrajectories[name] = shape
	}
}

// Validate rejects configs the processor cannot work with.
func (c TypeConfig) Validate() error {
	for name, lst := range map[string][]string{
		"ball_types":        c.BallTypes,
		"car_types":         c.CarTypes,
		"boost_types":       c.BoostTypes,
		"player_info_types": c.PlayerInfoTypes,
		"game_event_types":  c.GameEventTypes,
	} {
		if len(lst) == 0 {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	if len(c.TeamTypes) != 2 {
		return fmt.Errorf("team_types must list exactly two types, got %d", len(c.TeamTypes))
	}
	for name, shape := range c.SpawnTrajectories {
		switch shape {
		case "none", "location", "location_and_rotation":
		default:
			return fmt.Errorf("spawn_trajectories[%s]: unknown shape %q", name, shape)
		}
	}
	return nil
}

// SpawnTrajectoryFor returns the spawn shape for a raw object name.
func (c TypeConfig) SpawnTrajectoryFor(name string) SpawnTrajectory {
	switch c.SpawnTrajectories[NormalizeObjectName(name)] {
	case "location":
		return SpawnLocation
	case "location_and_rotation":
		return SpawnLocationAndRotation
	}
	return SpawnNone
}
