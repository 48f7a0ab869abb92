package emit

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	"worldforge/internal/logging"
	"worldforge/internal/model"
)

// RoleTraits is the role-specific behavior table for generated NPC
// subclasses. Shared fields (dialogue cursor, interaction state, stat
// block) live on the generated base class; everything that differs between
// friendly, neutral and hostile NPCs is parameterized here instead of
// being forked into per-role class hierarchies.
type RoleTraits struct {
	InteractionRadius float64
	Aggressive        bool
	Behavior          string
}

var traitsByRole = map[model.Role]RoleTraits{
	model.RoleFriendly: {InteractionRadius: 300, Aggressive: false, Behavior: "Stationary"},
	model.RoleNeutral:  {InteractionRadius: 250, Aggressive: false, Behavior: "Patrol"},
	model.RoleHostile:  {InteractionRadius: 600, Aggressive: true, Behavior: "Aggressive"},
}

// TraitsFor returns the behavior table entry for a role.
func TraitsFor(role model.Role) RoleTraits {
	if t, ok := traitsByRole[role]; ok {
		return t
	}
	return traitsByRole[model.RoleFriendly]
}

// roleEnum maps a role tag onto the generated ENPCRole enumerator name.
func roleEnum(role model.Role) string {
	switch role {
	case model.RoleHostile:
		return "Hostile"
	case model.RoleNeutral:
		return "Neutral"
	default:
		return "Friendly"
	}
}

// =============================================================================
// TEMPLATE DATA
// =============================================================================

type baseClassData struct {
	World string
	API   string
}

type npcClassData struct {
	World     string
	API       string
	Class     string
	Base      string
	Name      string
	RoleEnum  string
	Behavior  string
	Dialogue  []string
	Health    int
	Attack    int
	Defense   int
	Inventory []string
	Traits    RoleTraits
	Position  model.Coordinate
}

type questEntry struct {
	Name        string
	Description string
	Objectives  []string
	Rewards     []string
}

type questManagerData struct {
	World  string
	API    string
	Class  string
	Quests []questEntry
}

type worldManagerData struct {
	World       string
	API         string
	Class       string
	Name        string
	Description string
	Theme       string
	NPCClasses  []string
	QuestCount  int
}

type environmentData struct {
	World      string
	API        string
	Class      string
	Theme      string
	Lighting   string
	Weather    string
	Atmosphere string
	Terrain    []string
	Assets     []string
}

type gameModeData struct {
	World        string
	API          string
	Class        string
	WorldManager string
	QuestManager string
}

// =============================================================================
// EMISSION
// =============================================================================

// EmitClasses renders the full generated class hierarchy: the shared NPC
// base class, one subclass per concrete NPC parameterized by its role
// traits, the quest manager, world manager, environment controller and
// game mode. Rendering is pure; re-running with the same inputs yields
// byte-identical files.
func EmitClasses(world *model.WorldModel, ids *Identifiers, coords map[string]model.Coordinate) ([]File, error) {
	timer := logging.StartTimer(logging.CategoryClasses, "EmitClasses")
	defer timer.Stop()

	api := strings.ToUpper(ids.World) + "_API"
	var files []File

	base := baseClassData{World: ids.World, API: api}
	if err := renderPair(&files, "BaseNPC", ids.World+"BaseNPC", baseNPCHeaderTpl, baseNPCSourceTpl, base); err != nil {
		return nil, err
	}

	for i, npc := range world.NPCs {
		data := npcClassData{
			World:     ids.World,
			API:       api,
			Class:     ids.World + ids.NPCs[i] + "NPC",
			Base:      ids.World + "BaseNPC",
			Name:      cppEscape(npc.Name),
			RoleEnum:  roleEnum(npc.Role),
			Behavior:  TraitsFor(npc.Role).Behavior,
			Dialogue:  escapeAll(npc.Dialogue),
			Health:    npc.Health,
			Attack:    npc.Attack,
			Defense:   npc.Defense,
			Inventory: escapeAll(npc.Inventory),
			Traits:    TraitsFor(npc.Role),
			Position:  coords[model.NPCKey(i)],
		}
		if err := renderPair(&files, "NPC", data.Class, npcHeaderTpl, npcSourceTpl, data); err != nil {
			return nil, err
		}
	}

	qm := questManagerData{
		World: ids.World,
		API:   api,
		Class: ids.World + "QuestManager",
	}
	for _, q := range world.Quests {
		qm.Quests = append(qm.Quests, questEntry{
			Name:        cppEscape(q.Name),
			Description: cppEscape(q.Description),
			Objectives:  escapeAll(q.Objectives),
			Rewards:     escapeAll(q.Rewards),
		})
	}
	if err := renderPair(&files, "QuestManager", qm.Class, questManagerHeaderTpl, questManagerSourceTpl, qm); err != nil {
		return nil, err
	}

	wm := worldManagerData{
		World:       ids.World,
		API:         api,
		Class:       ids.World + "WorldManager",
		Name:        cppEscape(world.Name),
		Description: cppEscape(world.Description),
		Theme:       string(world.Theme),
		QuestCount:  len(world.Quests),
	}
	for i := range world.NPCs {
		wm.NPCClasses = append(wm.NPCClasses, ids.World+ids.NPCs[i]+"NPC")
	}
	if err := renderPair(&files, "WorldManager", wm.Class, worldManagerHeaderTpl, worldManagerSourceTpl, wm); err != nil {
		return nil, err
	}

	env := environmentData{
		World:      ids.World,
		API:        api,
		Class:      ids.World + "EnvironmentController",
		Theme:      string(world.Environment.Theme),
		Lighting:   cppEscape(world.Environment.Lighting),
		Weather:    cppEscape(world.Environment.Weather),
		Atmosphere: cppEscape(world.Environment.Atmosphere),
		Terrain:    escapeAll(world.Environment.Terrain),
		Assets:     escapeAll(world.Environment.Assets),
	}
	if err := renderPair(&files, "Environment", env.Class, environmentHeaderTpl, environmentSourceTpl, env); err != nil {
		return nil, err
	}

	gm := gameModeData{
		World:        ids.World,
		API:          api,
		Class:        ids.World + "GameMode",
		WorldManager: wm.Class,
		QuestManager: qm.Class,
	}
	if err := renderPair(&files, "GameMode", gm.Class, gameModeHeaderTpl, gameModeSourceTpl, gm); err != nil {
		return nil, err
	}

	logging.Classes("rendered %d source files for world %q", len(files), world.ID)
	return files, nil
}

// renderPair renders a header/source template pair into classes/.
func renderPair(files *[]File, kind, class string, header, source *template.Template, data any) error {
	h, err := render(header, data)
	if err != nil {
		return fmt.Errorf("rendering %s header for %s: %w", kind, class, err)
	}
	c, err := render(source, data)
	if err != nil {
		return fmt.Errorf("rendering %s source for %s: %w", kind, class, err)
	}
	*files = append(*files,
		File{Path: path.Join("classes", class+".h"), Content: h},
		File{Path: path.Join("classes", class+".cpp"), Content: c},
	)
	return nil
}

func render(tpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func escapeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = cppEscape(s)
	}
	return out
}
