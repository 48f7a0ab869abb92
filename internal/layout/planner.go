// Package layout computes deterministic spatial placement for world
// entities. The planner is the sole authority for final coordinates:
// location hints in the source model are ignored, and placement is a pure
// function of entity kind and ordinal position so re-planning the same
// world always yields identical coordinates.
package layout

import (
	"worldforge/internal/config"
	"worldforge/internal/logging"
	"worldforge/internal/model"
)

// Planner assigns 3-D positions to NPCs and quest markers.
type Planner struct {
	cfg config.LayoutConfig
}

// NewPlanner returns a Planner using the given spacing configuration.
func NewPlanner(cfg config.LayoutConfig) *Planner {
	return &Planner{cfg: cfg}
}

// Plan returns a coordinate for every NPC and quest marker in the world,
// keyed by model.NPCKey / model.QuestKey. NPCs sit on a ground-level grid
// with fixed separation; quest markers occupy a separate lane, lifted off
// the ground so the two placements never collide.
func (p *Planner) Plan(world *model.WorldModel) map[string]model.Coordinate {
	coords := make(map[string]model.Coordinate, len(world.NPCs)+len(world.Quests))

	for i := range world.NPCs {
		coords[model.NPCKey(i)] = p.npcPosition(i)
	}
	for i := range world.Quests {
		coords[model.QuestKey(i)] = p.questPosition(i)
	}

	logging.Layout("planned %d NPC and %d quest placements for world %q",
		len(world.NPCs), len(world.Quests), world.ID)

	return coords
}

// npcPosition places the i-th NPC on the grid: columns advance along X,
// rows along Y, all at ground level.
func (p *Planner) npcPosition(i int) model.Coordinate {
	col := i % p.cfg.GridColumns
	row := i / p.cfg.GridColumns
	return model.Coordinate{
		X: float64(col) * p.cfg.NPCSpacing,
		Y: float64(row) * p.cfg.NPCSpacing,
		Z: 0,
	}
}

// questPosition places the i-th quest marker in its own lane, offset from
// the NPC grid on Y and raised on Z.
func (p *Planner) questPosition(i int) model.Coordinate {
	return model.Coordinate{
		X: float64(i) * p.cfg.QuestSpacing,
		Y: p.cfg.QuestLaneOffset,
		Z: p.cfg.QuestMarkerHeight,
	}
}
