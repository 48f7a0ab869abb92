package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"worldforge/internal/model"
)

// Debug mirror exports. These are the only reference-style artifacts the
// system produces, and they are written through an independent sink whose
// root lives outside the tree the host engine scans. Nothing here may
// ever land in the primary artifact tree.

var integrationTpl = template.Must(template.New("integration").Parse(`# {{.World}} Integration Guide

World: {{.Name}} ({{.Theme}})
Identifier: {{.ID}}

## Generated classes
- A{{.World}}BaseNPC - shared NPC fields (dialogue cursor, interaction state, stat block)
{{- range .NPCClasses}}
- A{{.}} - role-specialized NPC subclass
{{- end}}
- A{{.World}}QuestManager - quest data and lifecycle
- A{{.World}}WorldManager - world settings
- A{{.World}}EnvironmentController - environment settings
- A{{.World}}GameMode - spawns the managers on BeginPlay

## How to use
1. Compile the generated sources with the project.
2. Open the level described by scene/{{.World}}_Level.scene.yaml.
3. Record files under records/ embed all entity data; the engine never
   needs this mirror directory at runtime.
`))

type integrationData struct {
	World      string
	Name       string
	Theme      string
	ID         string
	NPCClasses []string
}

// EmitMirror renders the debug/reference exports: the validated model as
// plain JSON and a human-readable integration guide.
func EmitMirror(world *model.WorldModel, ids *Identifiers) ([]File, error) {
	modelJSON, err := json.MarshalIndent(world, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize reference model: %w", err)
	}

	data := integrationData{
		World: ids.World,
		Name:  world.Name,
		Theme: string(world.Theme),
		ID:    world.ID,
	}
	for _, npc := range ids.NPCs {
		data.NPCClasses = append(data.NPCClasses, ids.World+npc+"NPC")
	}

	var guide bytes.Buffer
	if err := integrationTpl.Execute(&guide, data); err != nil {
		return nil, fmt.Errorf("failed to render integration guide: %w", err)
	}

	return []File{
		{Path: "model.reference.json", Content: append(modelJSON, '\n')},
		{Path: "INTEGRATION.md", Content: guide.Bytes()},
	}, nil
}
