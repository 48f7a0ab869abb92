package emit

import (
	"encoding/json"
	"fmt"
	"path"
	"time"

	"worldforge/internal/logging"
	"worldforge/internal/model"
)

// Record serialization. Every record is self-contained: the full field set
// is embedded directly, and no record carries a path or reference to any
// other file. The host environment auto-classifies loose data files it
// finds next to generated assets, so a record that pointed at an external
// data source would be silently imported as the wrong asset kind.
// Reference-style exports exist only on the debug mirror (mirror.go).

// NPCRecord is the self-contained data record for one NPC.
type NPCRecord struct {
	RecordType    string   `json:"record_type"`
	SelfContained bool     `json:"self_contained"`
	WorldID       string   `json:"world_id"`
	Identifier    string   `json:"identifier"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Dialogue      []string `json:"dialogue"`
	Health        int      `json:"health"`
	Attack        int      `json:"attack"`
	Defense       int      `json:"defense"`
	Inventory     []string `json:"inventory,omitempty"`
}

// QuestRecordEntry is one quest inside the aggregate quest record.
type QuestRecordEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Objectives  []string `json:"objectives"`
	Rewards     []string `json:"rewards"`
}

// QuestsRecord aggregates every quest of the world into one record.
type QuestsRecord struct {
	RecordType    string             `json:"record_type"`
	SelfContained bool               `json:"self_contained"`
	WorldID       string             `json:"world_id"`
	Quests        []QuestRecordEntry `json:"quests"`
}

// EnvironmentRecord mirrors the environment model.
type EnvironmentRecord struct {
	Theme      string   `json:"theme"`
	Terrain    []string `json:"terrain,omitempty"`
	Lighting   string   `json:"lighting"`
	Weather    string   `json:"weather"`
	Atmosphere string   `json:"atmosphere"`
	Assets     []string `json:"assets,omitempty"`
}

// WorldRecord is the aggregate record for world and environment settings.
type WorldRecord struct {
	RecordType    string            `json:"record_type"`
	SelfContained bool              `json:"self_contained"`
	WorldID       string            `json:"world_id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Theme         string            `json:"theme"`
	CreatedAt     *time.Time        `json:"created_at,omitempty"`
	NPCCount      int               `json:"npc_count"`
	QuestCount    int               `json:"quest_count"`
	Environment   EnvironmentRecord `json:"environment"`
}

// EmitRecords renders one record per NPC plus the quest and world
// aggregates. Output is stable: field order is fixed by the record
// structs and entities keep their model order.
func EmitRecords(world *model.WorldModel, ids *Identifiers) ([]File, error) {
	timer := logging.StartTimer(logging.CategoryRecords, "EmitRecords")
	defer timer.Stop()

	files := make([]File, 0, len(world.NPCs)+2)

	for i, npc := range world.NPCs {
		rec := NPCRecord{
			RecordType:    "npc",
			SelfContained: true,
			WorldID:       world.ID,
			Identifier:    ids.NPCs[i],
			Name:          npc.Name,
			Role:          string(npc.Role),
			Dialogue:      npc.Dialogue,
			Health:        npc.Health,
			Attack:        npc.Attack,
			Defense:       npc.Defense,
			Inventory:     npc.Inventory,
		}
		f, err := recordFile(path.Join("records", "npc_"+fileStem(ids.NPCs[i])+".record.json"), rec)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	quests := QuestsRecord{
		RecordType:    "quests",
		SelfContained: true,
		WorldID:       world.ID,
		Quests:        make([]QuestRecordEntry, 0, len(world.Quests)),
	}
	for _, q := range world.Quests {
		quests.Quests = append(quests.Quests, QuestRecordEntry{
			Name:        q.Name,
			Description: q.Description,
			Objectives:  q.Objectives,
			Rewards:     q.Rewards,
		})
	}
	f, err := recordFile(path.Join("records", "quests.record.json"), quests)
	if err != nil {
		return nil, err
	}
	files = append(files, f)

	wr := WorldRecord{
		RecordType:    "world",
		SelfContained: true,
		WorldID:       world.ID,
		Name:          world.Name,
		Description:   world.Description,
		Theme:         string(world.Theme),
		NPCCount:      len(world.NPCs),
		QuestCount:    len(world.Quests),
		Environment: EnvironmentRecord{
			Theme:      string(world.Environment.Theme),
			Terrain:    world.Environment.Terrain,
			Lighting:   world.Environment.Lighting,
			Weather:    world.Environment.Weather,
			Atmosphere: world.Environment.Atmosphere,
			Assets:     world.Environment.Assets,
		},
	}
	if !world.CreatedAt.IsZero() {
		created := world.CreatedAt
		wr.CreatedAt = &created
	}
	f, err = recordFile(path.Join("records", "world.record.json"), wr)
	if err != nil {
		return nil, err
	}
	files = append(files, f)

	logging.Records("rendered %d record files for world %q", len(files), world.ID)
	return files, nil
}

func recordFile(rel string, v any) (File, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return File{}, fmt.Errorf("failed to serialize record %s: %w", rel, err)
	}
	return File{Path: rel, Content: append(data, '\n')}, nil
}
