package config

// LayoutConfig controls deterministic spatial placement. All distances are
// in engine units (1 unit = 1 cm in the target engine).
type LayoutConfig struct {
	// NPCSpacing is the fixed separation between adjacent NPCs on the grid.
	NPCSpacing float64 `yaml:"npc_spacing"`

	// GridColumns is the number of NPCs per grid row before wrapping.
	GridColumns int `yaml:"grid_columns"`

	// QuestSpacing is the separation between adjacent quest markers.
	QuestSpacing float64 `yaml:"quest_spacing"`

	// QuestLaneOffset shifts the quest marker row away from the NPC grid.
	QuestLaneOffset float64 `yaml:"quest_lane_offset"`

	// QuestMarkerHeight lifts quest markers off ground level so they never
	// collide with NPC placement.
	QuestMarkerHeight float64 `yaml:"quest_marker_height"`
}

// DefaultLayoutConfig returns defaults for spatial placement.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		NPCSpacing:        200,
		GridColumns:       5,
		QuestSpacing:      300,
		QuestLaneOffset:   -400,
		QuestMarkerHeight: 150,
	}
}
