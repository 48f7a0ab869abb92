package emit

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"worldforge/internal/model"
)

// =============================================================================
// SCENE DESCRIPTOR TESTS
// =============================================================================

func TestEmitScene_RoundTrip(t *testing.T) {
	t.Parallel()

	world := testWorld()
	ids := testIdentifiers(t, world)
	coords := testCoords(world)

	file, err := EmitScene(world, ids, coords)
	if err != nil {
		t.Fatalf("EmitScene: %v", err)
	}
	if file.Path != "scene/MysticForest_Level.scene.yaml" {
		t.Errorf("scene path = %q", file.Path)
	}

	var desc SceneDescriptor
	if err := yaml.Unmarshal(file.Content, &desc); err != nil {
		t.Fatalf("unmarshal scene: %v", err)
	}

	if desc.World != "Mystic Forest" || desc.WorldID != "mystic-forest" {
		t.Errorf("world identity mismatch: %q / %q", desc.World, desc.WorldID)
	}
	if desc.GameMode != "MysticForestGameMode" {
		t.Errorf("game mode = %q", desc.GameMode)
	}
	if desc.Settings.Theme != "forest" || desc.Settings.Weather != "misty" {
		t.Errorf("settings not carried: %+v", desc.Settings)
	}
}

func TestEmitScene_PlacementsMatchPlanner(t *testing.T) {
	t.Parallel()

	world := testWorld()
	ids := testIdentifiers(t, world)
	coords := testCoords(world)

	file, err := EmitScene(world, ids, coords)
	if err != nil {
		t.Fatalf("EmitScene: %v", err)
	}
	var desc SceneDescriptor
	if err := yaml.Unmarshal(file.Content, &desc); err != nil {
		t.Fatalf("unmarshal scene: %v", err)
	}

	// NPCs first in model order, then quest markers.
	if len(desc.Placements) != 3 {
		t.Fatalf("got %d placements, want 3", len(desc.Placements))
	}
	if desc.Placements[0].Kind != "npc" || desc.Placements[2].Kind != "quest_marker" {
		t.Errorf("placement ordering wrong: %+v", desc.Placements)
	}

	for i := range world.NPCs {
		want := coords[model.NPCKey(i)]
		if diff := cmp.Diff(want, desc.Placements[i].Position); diff != "" {
			t.Errorf("npc %d position mismatch:\n%s", i, diff)
		}
	}
	questPos := desc.Placements[2].Position
	if diff := cmp.Diff(coords[model.QuestKey(0)], questPos); diff != "" {
		t.Errorf("quest marker position mismatch:\n%s", diff)
	}
	if questPos.Z == 0 {
		t.Error("quest marker should be elevated")
	}
}

func TestEmitScene_Idempotent(t *testing.T) {
	t.Parallel()

	world := testWorld()
	ids := testIdentifiers(t, world)
	coords := testCoords(world)

	a, err := EmitScene(world, ids, coords)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b, err := EmitScene(world, ids, coords)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("renders differ (-first +second):\n%s", diff)
	}
}

func TestEmitMirror(t *testing.T) {
	t.Parallel()

	world := testWorld()
	ids := testIdentifiers(t, world)

	files, err := EmitMirror(world, ids)
	if err != nil {
		t.Fatalf("EmitMirror: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d mirror files, want 2", len(files))
	}
	if files[0].Path != "model.reference.json" || files[1].Path != "INTEGRATION.md" {
		t.Errorf("mirror paths: %q, %q", files[0].Path, files[1].Path)
	}

	guide := string(files[1].Content)
	for _, want := range []string{
		"AMysticForestBaseNPC",
		"AMysticForestVillageElderNPC",
		"AMysticForestGameMode",
		"MysticForest_Level.scene.yaml",
	} {
		if !strings.Contains(guide, want) {
			t.Errorf("integration guide missing %q", want)
		}
	}
}
