package emit

import (
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"worldforge/internal/logging"
	"worldforge/internal/model"
)

// Placement is one entity position inside the scene descriptor.
type Placement struct {
	Kind     string           `yaml:"kind"` // npc or quest_marker
	Name     string           `yaml:"name"`
	Class    string           `yaml:"class,omitempty"`
	Position model.Coordinate `yaml:"position"`
}

// SceneSettings carries world-level environment settings into the scene.
type SceneSettings struct {
	Theme      string   `yaml:"theme"`
	Lighting   string   `yaml:"lighting"`
	Weather    string   `yaml:"weather"`
	Atmosphere string   `yaml:"atmosphere,omitempty"`
	Terrain    []string `yaml:"terrain,omitempty"`
}

// SceneDescriptor is the single level file for one world. It only
// serializes what the layout planner computed - the scene never invents
// coordinates, which keeps it consistent with the generated classes and
// records sharing the same coordinate set.
type SceneDescriptor struct {
	World      string        `yaml:"world"`
	WorldID    string        `yaml:"world_id"`
	Level      string        `yaml:"level"`
	GameMode   string        `yaml:"game_mode"`
	Settings   SceneSettings `yaml:"settings"`
	Placements []Placement   `yaml:"placements"`
}

// EmitScene renders the scene descriptor from the planner's coordinates.
// Placements list NPCs in model order, then quest markers in model order.
func EmitScene(world *model.WorldModel, ids *Identifiers, coords map[string]model.Coordinate) (File, error) {
	desc := SceneDescriptor{
		World:    world.Name,
		WorldID:  world.ID,
		Level:    ids.World + "_Level",
		GameMode: ids.World + "GameMode",
		Settings: SceneSettings{
			Theme:      string(world.Environment.Theme),
			Lighting:   world.Environment.Lighting,
			Weather:    world.Environment.Weather,
			Atmosphere: world.Environment.Atmosphere,
			Terrain:    world.Environment.Terrain,
		},
		Placements: make([]Placement, 0, len(world.NPCs)+len(world.Quests)),
	}

	for i, npc := range world.NPCs {
		desc.Placements = append(desc.Placements, Placement{
			Kind:     "npc",
			Name:     npc.Name,
			Class:    ids.World + ids.NPCs[i] + "NPC",
			Position: coords[model.NPCKey(i)],
		})
	}
	for i, quest := range world.Quests {
		desc.Placements = append(desc.Placements, Placement{
			Kind:     "quest_marker",
			Name:     quest.Name,
			Position: coords[model.QuestKey(i)],
		})
	}

	data, err := yaml.Marshal(&desc)
	if err != nil {
		return File{}, fmt.Errorf("failed to serialize scene descriptor: %w", err)
	}

	logging.Scene("rendered scene descriptor with %d placements for world %q",
		len(desc.Placements), world.ID)

	return File{
		Path:    path.Join("scene", ids.World+"_Level.scene.yaml"),
		Content: data,
	}, nil
}
