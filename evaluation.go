package conanrecipe

import (
	"sync"
	"time"
)

// Evaluation is one recipe evaluation pass. Its inputs are fixed when it is
// created; identity, requirements and components are each computed at most
// once and then reused.
type Evaluation struct {
	src ConfigSource
	cfg *evalConfig

	identity     func() (PackageIdentity, error)
	requirements func() ([]Requirement, error)
	components   func() (*ComponentGraph, error)

	exportMu sync.Mutex
	exported bool
}

// Result is everything one evaluation pass produced.
type Result struct {
	Identity     PackageIdentity
	Requirements []Requirement
	Components   *ComponentGraph
	Recipe       RecipeMetadata
	PackageID    string

	eval *Evaluation
}

// NewEvaluation prepares an evaluation of src with the given options.
func NewEvaluation(src ConfigSource, opts ...Option) (*Evaluation, error) {
	cfg, err := newEvalConfig(opts...)
	if err != nil {
		return nil, err
	}

	e := &Evaluation{src: src, cfg: cfg}
	e.identity = sync.OnceValues(e.resolveIdentity)
	e.requirements = sync.OnceValues(e.declareRequirements)
	e.components = sync.OnceValues(e.declareComponents)
	return e, nil
}

// Identity returns the package identity, resolving it on first use.
func (e *Evaluation) Identity() (PackageIdentity, error) {
	return e.identity()
}

// Requirements returns the declared requirements. Identity is resolved first;
// if it fails, so does this.
func (e *Evaluation) Requirements() ([]Requirement, error) {
	reqs, err := e.requirements()
	if err != nil {
		return nil, err
	}
	return append([]Requirement(nil), reqs...), nil
}

// Components returns the validated component graph.
func (e *Evaluation) Components() (*ComponentGraph, error) {
	return e.components()
}

// Run performs the whole pass: identity, then requirements, then components.
// Nothing partial is returned on failure.
func (e *Evaluation) Run() (*Result, error) {
	start := time.Now()
	log := e.cfg.log()

	res, err := e.run()
	evaluationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		evaluationsTotal.WithLabelValues("failure").Inc()
		evaluationErrors.WithLabelValues(Kind(err)).Inc()
		log.Error("recipe evaluation failed", "source", e.sourceName(), "kind", Kind(err), "error", err)
		return nil, err
	}

	evaluationsTotal.WithLabelValues("success").Inc()
	log.Info("recipe evaluated",
		"package", res.Identity.String(),
		"requirements", len(res.Requirements),
		"components", len(res.Components.Components),
		"package_id", res.PackageID)
	return res, nil
}

func (e *Evaluation) run() (*Result, error) {
	id, err := e.Identity()
	if err != nil {
		return nil, err
	}
	reqs, err := e.Requirements()
	if err != nil {
		return nil, err
	}
	components, err := e.Components()
	if err != nil {
		return nil, err
	}

	return &Result{
		Identity:     id,
		Requirements: reqs,
		Components:   components,
		Recipe:       Recipe(),
		PackageID:    PackageID(id, reqs),
		eval:         e,
	}, nil
}

// ClaimExport marks the evaluation's package info as exported. The first call
// succeeds; every later call returns ErrAlreadyExported. Exporters call it
// once the output is fully rendered and before anything is written.
func (r *Result) ClaimExport() error {
	if r.eval == nil {
		return nil
	}
	r.eval.exportMu.Lock()
	defer r.eval.exportMu.Unlock()

	if r.eval.exported {
		return ErrAlreadyExported
	}
	r.eval.exported = true
	exportsTotal.Inc()
	return nil
}

func (e *Evaluation) resolveIdentity() (PackageIdentity, error) {
	id, err := ResolveIdentity(e.cfg.overrideVersion, e.src)
	if err != nil {
		return PackageIdentity{}, err
	}
	e.cfg.log().Debug("identity resolved",
		"source", e.sourceName(),
		"name", id.Name,
		"version", id.Version,
		"overridden", e.cfg.overrideVersion != "")
	return id, nil
}

func (e *Evaluation) declareRequirements() ([]Requirement, error) {
	if _, err := e.Identity(); err != nil {
		return nil, err
	}
	reqs, err := DeclareRequirementsFrom(e.cfg.table, e.cfg.buildOptions...)
	if err != nil {
		return nil, err
	}
	e.cfg.log().Debug("requirements declared",
		"options", len(e.cfg.buildOptions),
		"count", len(reqs))
	return reqs, nil
}

func (e *Evaluation) declareComponents() (*ComponentGraph, error) {
	id, err := e.Identity()
	if err != nil {
		return nil, err
	}
	reqs, err := e.requirements()
	if err != nil {
		return nil, err
	}
	return DeclareComponents(id.Name, reqs)
}

func (e *Evaluation) sourceName() string {
	if e.src == nil {
		return ""
	}
	return e.src.Name()
}
