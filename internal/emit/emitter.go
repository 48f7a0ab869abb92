// Package emit renders the engine-consumable artifacts for a validated
// world: generated source classes, self-contained data records, and the
// scene descriptor. Every emitter is a pure function of (model,
// identifiers, coordinates) - rendering the same inputs twice produces
// byte-identical output, which is what makes regeneration idempotent.
package emit

import (
	"strings"
	"unicode"

	"worldforge/internal/ident"
	"worldforge/internal/model"
)

// File is one rendered artifact: a path relative to the world's output
// subtree plus its full content.
type File struct {
	Path    string
	Content []byte
}

// Identifiers holds the sanitized, collision-free identifiers for one
// world: the world identifier itself plus one identifier per NPC, aligned
// with WorldModel.NPCs.
type Identifiers struct {
	World string
	NPCs  []string
}

// BuildIdentifiers sanitizes the world name and every NPC name through a
// single usage set, so no generated class or file name collides within
// the run.
func BuildIdentifiers(world *model.WorldModel, s *ident.Sanitizer) (*Identifiers, error) {
	worldID, err := s.Sanitize(world.Name, 0)
	if err != nil {
		return nil, err
	}

	ids := &Identifiers{
		World: worldID,
		NPCs:  make([]string, 0, len(world.NPCs)),
	}
	for i, npc := range world.NPCs {
		id, err := s.Sanitize(npc.Name, i)
		if err != nil {
			return nil, err
		}
		ids.NPCs = append(ids.NPCs, id)
	}
	return ids, nil
}

// fileStem converts a Pascal identifier into the snake-case stem used for
// record file names: "VillageElder" -> "village_elder", "Guard_2" ->
// "guard_2". Uniqueness is inherited from the identifier.
func fileStem(identifier string) string {
	var b strings.Builder
	runes := []rune(identifier)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' && !unicode.IsUpper(runes[i-1]) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// cppEscape makes a string safe inside a C++ TEXT("...") literal.
func cppEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
