// Package compiler orchestrates one generation run: validate the raw
// model, sanitize identifiers, plan the layout, render every artifact and
// commit them to the primary artifact tree in one atomic step. The
// compiler is the only package that writes to disk; the emitters stay
// pure.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"worldforge/internal/config"
	"worldforge/internal/emit"
	"worldforge/internal/ident"
	"worldforge/internal/layout"
	"worldforge/internal/logging"
	"worldforge/internal/model"
	"worldforge/internal/validate"
)

// ErrRunInProgress is returned when a generation run for the same world ID
// is already active.
var ErrRunInProgress = errors.New("generation run already in progress for this world")

// =============================================================================
// RUN PHASES
// =============================================================================

type phase string

const (
	phaseIdle       phase = "idle"
	phaseValidating phase = "validating"
	phaseGenerating phase = "generating"
	phaseDone       phase = "done"
	phaseFailed     phase = "failed"
)

// run tracks the phase of one generation run. Transitions are linear:
// idle -> validating -> generating -> done, with failed reachable from
// validating and generating.
type run struct {
	id    string
	phase phase
}

func (r *run) advance(to phase) {
	logging.CompilerDebug("run %s: %s -> %s", r.id, r.phase, to)
	r.phase = to
}

// =============================================================================
// COMPILER
// =============================================================================

// WorldRepository persists validated worlds and run manifests. The
// compiler treats persistence as best-effort: a repository failure is
// logged but never undoes a committed artifact tree.
type WorldRepository interface {
	SaveWorld(ctx context.Context, world *model.WorldModel) error
	SaveRun(ctx context.Context, manifest *model.GenerationManifest) error
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRepository attaches a world repository to the compiler.
func WithRepository(repo WorldRepository) Option {
	return func(c *Compiler) { c.repo = repo }
}

// Compiler turns raw world descriptions into artifact trees. Safe for
// concurrent use; runs for distinct world IDs proceed in parallel while a
// per-ID guard rejects duplicates.
type Compiler struct {
	cfg  *config.Config
	repo WorldRepository

	mu     sync.Mutex
	active map[string]struct{}
}

// New returns a Compiler using the given configuration.
func New(cfg *config.Config, opts ...Option) *Compiler {
	c := &Compiler{
		cfg:    cfg,
		active: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// acquire claims the per-world run guard.
func (c *Compiler) acquire(worldID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.active[worldID]; busy {
		return false
	}
	c.active[worldID] = struct{}{}
	return true
}

func (c *Compiler) release(worldID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, worldID)
}

// Generate runs the full pipeline for one raw world description and
// returns the manifest. On failure the primary artifact tree is left
// untouched: artifacts are rendered into a staging directory and promoted
// with a single rename only after every file has been written.
func (c *Compiler) Generate(ctx context.Context, raw any) (*model.GenerationManifest, error) {
	timer := logging.StartTimer(logging.CategoryCompiler, "Generate")
	defer timer.Stop()

	m := &model.GenerationManifest{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	r := &run{id: m.RunID, phase: phaseIdle}

	r.advance(phaseValidating)
	world, rejections, err := validate.Validate(raw)
	if err != nil {
		return c.fail(r, m, fmt.Errorf("validation: %w", err))
	}
	m.WorldID = world.ID
	m.WorldName = world.Name
	m.Theme = world.Theme
	m.Rejections = rejections

	if !c.acquire(world.ID) {
		return c.fail(r, m, fmt.Errorf("%w: %s", ErrRunInProgress, world.ID))
	}
	defer c.release(world.ID)

	if err := ctx.Err(); err != nil {
		return c.fail(r, m, err)
	}

	r.advance(phaseGenerating)
	files, sceneRel, err := c.render(world)
	if err != nil {
		return c.fail(r, m, err)
	}

	finalRoot, err := c.commit(world.ID, files)
	if err != nil {
		return c.fail(r, m, err)
	}
	for _, f := range files {
		abs := filepath.Join(finalRoot, filepath.FromSlash(f.Path))
		switch {
		case f.Path == sceneRel:
			m.SceneFile = abs
		case filepath.Dir(f.Path) == "records":
			m.RecordFiles = append(m.RecordFiles, abs)
		default:
			m.SourceFiles = append(m.SourceFiles, abs)
		}
	}

	c.writeMirror(world, m)

	r.advance(phaseDone)
	m.State = model.RunDone
	m.FinishedAt = time.Now()
	c.persist(ctx, world, m)
	logging.Compiler("run %s done: world %q, %d artifacts, %d rejections",
		m.RunID, world.ID, m.ArtifactCount(), len(m.Rejections))
	return m, nil
}

// ValidateOnly runs validation without generating artifacts.
func (c *Compiler) ValidateOnly(raw any) (*model.WorldModel, []model.Rejection, error) {
	return validate.Validate(raw)
}

func (c *Compiler) fail(r *run, m *model.GenerationManifest, err error) (*model.GenerationManifest, error) {
	r.advance(phaseFailed)
	m.State = model.RunFailed
	m.Error = err.Error()
	m.FinishedAt = time.Now()
	logging.Compiler("run %s failed: %v", m.RunID, err)
	return m, err
}

// render produces every primary artifact in memory. Returns the files and
// the relative path of the scene descriptor.
func (c *Compiler) render(world *model.WorldModel) ([]emit.File, string, error) {
	ids, err := emit.BuildIdentifiers(world, ident.New(c.cfg.Sanitizer))
	if err != nil {
		return nil, "", fmt.Errorf("identifier sanitization: %w", err)
	}

	coords := layout.NewPlanner(c.cfg.Layout).Plan(world)

	classes, err := emit.EmitClasses(world, ids, coords)
	if err != nil {
		return nil, "", fmt.Errorf("class emission: %w", err)
	}
	records, err := emit.EmitRecords(world, ids)
	if err != nil {
		return nil, "", fmt.Errorf("record serialization: %w", err)
	}
	scene, err := emit.EmitScene(world, ids, coords)
	if err != nil {
		return nil, "", fmt.Errorf("scene emission: %w", err)
	}

	files := make([]emit.File, 0, len(classes)+len(records)+1)
	files = append(files, classes...)
	files = append(files, records...)
	files = append(files, scene)
	return files, scene.Path, nil
}

// commit writes every file into a staging directory next to the final
// location, then promotes the stage with one rename. A failed run leaves
// no trace under the output root except the removed stage.
func (c *Compiler) commit(worldID string, files []emit.File) (string, error) {
	outputRoot := c.cfg.Generator.OutputRoot
	if err := os.MkdirAll(outputRoot, 0755); err != nil {
		return "", fmt.Errorf("failed to create output root: %w", err)
	}

	stage, err := os.MkdirTemp(outputRoot, ".stage-"+worldID+"-")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	if _, err := emit.WriteAll(emit.NewDirSink(stage), files); err != nil {
		os.RemoveAll(stage)
		return "", err
	}

	final := filepath.Join(outputRoot, worldID)
	if err := os.RemoveAll(final); err != nil {
		os.RemoveAll(stage)
		return "", fmt.Errorf("failed to clear previous artifacts: %w", err)
	}
	if err := os.Rename(stage, final); err != nil {
		os.RemoveAll(stage)
		return "", fmt.Errorf("failed to promote staged artifacts: %w", err)
	}

	logging.Compiler("committed %d artifacts to %s", len(files), final)
	return final, nil
}

// writeMirror renders the debug/reference exports into the mirror root.
// Mirror failures never fail the run; the primary tree is already
// committed and the mirror is a side-channel.
func (c *Compiler) writeMirror(world *model.WorldModel, m *model.GenerationManifest) {
	if !c.cfg.Generator.WriteMirror || c.cfg.Generator.MirrorRoot == "" {
		return
	}

	ids, err := emit.BuildIdentifiers(world, ident.New(c.cfg.Sanitizer))
	if err != nil {
		logging.Get(logging.CategoryCompiler).Warn("mirror skipped: %v", err)
		return
	}
	files, err := emit.EmitMirror(world, ids)
	if err != nil {
		logging.Get(logging.CategoryCompiler).Warn("mirror render failed: %v", err)
		return
	}

	sink := emit.NewDirSink(filepath.Join(c.cfg.Generator.MirrorRoot, world.ID))
	paths, err := emit.WriteAll(sink, files)
	if err != nil {
		logging.Get(logging.CategoryCompiler).Warn("mirror write failed: %v", err)
		return
	}
	m.MirrorFiles = paths
}

// persist saves the world and manifest when a repository is attached.
func (c *Compiler) persist(ctx context.Context, world *model.WorldModel, m *model.GenerationManifest) {
	if c.repo == nil {
		return
	}
	if err := c.repo.SaveWorld(ctx, world); err != nil {
		logging.Get(logging.CategoryCompiler).Error("failed to save world %q: %v", world.ID, err)
	}
	if err := c.repo.SaveRun(ctx, m); err != nil {
		logging.Get(logging.CategoryCompiler).Error("failed to save run %s: %v", m.RunID, err)
	}
}
