package emit

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"worldforge/internal/config"
	"worldforge/internal/ident"
	"worldforge/internal/layout"
	"worldforge/internal/model"
)

func testWorld() *model.WorldModel {
	return &model.WorldModel{
		ID:          "mystic-forest",
		Name:        "Mystic Forest",
		Description: "A small forest village",
		Theme:       model.ThemeForest,
		NPCs: []model.NPCModel{
			{
				Name:     "Village Elder",
				Role:     model.RoleFriendly,
				Dialogue: []string{"Welcome, traveler.", "The forest hides many secrets."},
				Health:   120, Attack: 5, Defense: 8,
				Inventory: []string{"Walking Staff"},
			},
			{
				Name:     "Bandit",
				Role:     model.RoleHostile,
				Dialogue: []string{"You shouldn't have come here."},
				Health:   80, Attack: 15, Defense: 5,
			},
		},
		Quests: []model.QuestModel{
			{
				Name:        "Gather Herbs",
				Description: "Collect herbs for the elder",
				Objectives:  []string{"Collect 5 herbs"},
				Rewards:     []string{"50 Gold", "100 XP"},
			},
		},
		Environment: model.EnvironmentModel{
			Theme:    model.ThemeForest,
			Terrain:  []string{"hills"},
			Lighting: "dappled",
			Weather:  "misty",
		},
	}
}

func testIdentifiers(t *testing.T, world *model.WorldModel) *Identifiers {
	t.Helper()
	ids, err := BuildIdentifiers(world, ident.New(config.DefaultSanitizerConfig()))
	if err != nil {
		t.Fatalf("BuildIdentifiers: %v", err)
	}
	return ids
}

func testCoords(world *model.WorldModel) map[string]model.Coordinate {
	return layout.NewPlanner(config.DefaultLayoutConfig()).Plan(world)
}

// =============================================================================
// IDENTIFIER TESTS
// =============================================================================

func TestBuildIdentifiers(t *testing.T) {
	t.Parallel()

	world := testWorld()
	ids := testIdentifiers(t, world)

	if ids.World != "MysticForest" {
		t.Errorf("World = %q, want MysticForest", ids.World)
	}
	want := []string{"VillageElder", "Bandit"}
	if diff := cmp.Diff(want, ids.NPCs); diff != "" {
		t.Errorf("NPC identifiers mismatch:\n%s", diff)
	}
}

func TestBuildIdentifiers_DuplicateNames(t *testing.T) {
	t.Parallel()

	world := testWorld()
	world.NPCs = []model.NPCModel{{Name: "Guard"}, {Name: "Guard"}}

	ids := testIdentifiers(t, world)
	want := []string{"Guard", "Guard_2"}
	if diff := cmp.Diff(want, ids.NPCs); diff != "" {
		t.Errorf("duplicate names not suffixed:\n%s", diff)
	}
}

func TestFileStem(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"VillageElder", "village_elder"},
		{"Guard", "guard"},
		{"Guard_2", "guard_2"},
		{"Entity_4", "entity_4"},
	}
	for _, tc := range cases {
		if got := fileStem(tc.in); got != tc.want {
			t.Errorf("fileStem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// =============================================================================
// CLASS EMISSION TESTS
// =============================================================================

func TestEmitClasses_FileSet(t *testing.T) {
	t.Parallel()

	world := testWorld()
	ids := testIdentifiers(t, world)
	files, err := EmitClasses(world, ids, testCoords(world))
	if err != nil {
		t.Fatalf("EmitClasses: %v", err)
	}

	// Base + 2 NPCs + quest manager + world manager + environment + game
	// mode, each a header/source pair.
	if len(files) != 14 {
		t.Fatalf("got %d files, want 14", len(files))
	}

	byPath := make(map[string]string)
	for _, f := range files {
		byPath[f.Path] = string(f.Content)
	}

	for _, want := range []string{
		"classes/MysticForestBaseNPC.h",
		"classes/MysticForestVillageElderNPC.cpp",
		"classes/MysticForestBanditNPC.h",
		"classes/MysticForestQuestManager.cpp",
		"classes/MysticForestWorldManager.h",
		"classes/MysticForestEnvironmentController.cpp",
		"classes/MysticForestGameMode.h",
	} {
		if _, ok := byPath[want]; !ok {
			t.Errorf("missing file %s", want)
		}
	}
}

func TestEmitClasses_Idempotent(t *testing.T) {
	t.Parallel()

	world := testWorld()
	ids := testIdentifiers(t, world)
	coords := testCoords(world)

	a, err := EmitClasses(world, ids, coords)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b, err := EmitClasses(world, ids, coords)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("renders differ (-first +second):\n%s", diff)
	}
}

func TestEmitClasses_RoleTraits(t *testing.T) {
	t.Parallel()

	world := testWorld()
	ids := testIdentifiers(t, world)
	files, err := EmitClasses(world, ids, testCoords(world))
	if err != nil {
		t.Fatalf("EmitClasses: %v", err)
	}

	var elder, bandit string
	for _, f := range files {
		switch f.Path {
		case "classes/MysticForestVillageElderNPC.h":
			elder = string(f.Content)
		case "classes/MysticForestBanditNPC.h":
			bandit = string(f.Content)
		}
	}

	if !strings.Contains(elder, "bAggressive = false") {
		t.Error("friendly NPC should not be aggressive")
	}
	if !strings.Contains(elder, "InteractionRadius = 300.0f") {
		t.Error("friendly NPC missing friendly interaction radius")
	}
	if !strings.Contains(bandit, "bAggressive = true") {
		t.Error("hostile NPC should be aggressive")
	}
	if !strings.Contains(bandit, "InteractionRadius = 600.0f") {
		t.Error("hostile NPC missing hostile interaction radius")
	}
}

func TestEmitClasses_ConstructorEmbedsData(t *testing.T) {
	t.Parallel()

	world := testWorld()
	ids := testIdentifiers(t, world)
	files, err := EmitClasses(world, ids, testCoords(world))
	if err != nil {
		t.Fatalf("EmitClasses: %v", err)
	}

	var elderCpp string
	for _, f := range files {
		if f.Path == "classes/MysticForestVillageElderNPC.cpp" {
			elderCpp = string(f.Content)
		}
	}

	for _, want := range []string{
		`NPCName = TEXT("Village Elder");`,
		`DialogueLines.Add(TEXT("Welcome, traveler."));`,
		`Stats.Health = 120;`,
		`Inventory.Add(TEXT("Walking Staff"));`,
	} {
		if !strings.Contains(elderCpp, want) {
			t.Errorf("subclass constructor missing %q", want)
		}
	}

	// Constructors embed data; nothing may load files at runtime.
	if strings.Contains(elderCpp, "LoadFile") || strings.Contains(elderCpp, "FFileHelper") {
		t.Error("generated class must not load external files")
	}
}

func TestEmitClasses_EscapesQuotes(t *testing.T) {
	t.Parallel()

	world := testWorld()
	world.NPCs = world.NPCs[:1]
	world.NPCs[0].Dialogue = []string{`He said "run".`}
	ids := testIdentifiers(t, world)

	files, err := EmitClasses(world, ids, testCoords(world))
	if err != nil {
		t.Fatalf("EmitClasses: %v", err)
	}
	joined := ""
	for _, f := range files {
		joined += string(f.Content)
	}
	if !strings.Contains(joined, `He said \"run\".`) {
		t.Error("dialogue quotes not escaped")
	}
}

func TestEmitClasses_EmptyWorldStillHasBaseSet(t *testing.T) {
	t.Parallel()

	world := &model.WorldModel{ID: "empty", Name: "Empty World"}
	ids := testIdentifiers(t, world)

	files, err := EmitClasses(world, ids, testCoords(world))
	if err != nil {
		t.Fatalf("EmitClasses: %v", err)
	}
	// Base + quest manager + world manager + environment + game mode.
	if len(files) != 10 {
		t.Errorf("got %d files, want 10", len(files))
	}
}
