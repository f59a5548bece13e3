package check

import (
	"context"

	"github.com/modelfit/modelfit/pkg/logging"
	"github.com/modelfit/modelfit/pkg/memory"
	"github.com/modelfit/modelfit/pkg/modelurl"
	"github.com/modelfit/modelfit/pkg/quant"
)

// Checker runs the feasibility pipeline: classify the identifier, list the
// repository, aggregate candidates, estimate memory, judge against the
// machine.
type Checker struct {
	log    logging.Logger
	lister Lister
	table  *quant.Table
	parser quant.LabelParser
	res    memory.Resources
}

// New assembles a Checker. A nil parser falls back to the convention
// parser.
func New(log logging.Logger, lister Lister, table *quant.Table, parser quant.LabelParser, res memory.Resources) *Checker {
	if parser == nil {
		parser = quant.NewConventionParser()
	}
	return &Checker{
		log:    log,
		lister: lister,
		table:  table,
		parser: parser,
		res:    res,
	}
}

// Check answers the feasibility question for one identifier. The pipeline
// runs sequentially and issues exactly one listing call, so re-running is
// side-effect free and deterministic for a fixed listing.
func (c *Checker) Check(ctx context.Context, identifier string) (*Result, error) {
	req, err := modelurl.Classify(identifier)
	if err != nil {
		return nil, err
	}
	c.log.Debugf("classified %q as %s (repository %s)", identifier, req.Kind, req.Repository)

	files, err := c.inspect(ctx, req)
	if err != nil {
		return nil, err
	}
	c.log.Debugf("found %d weight files in %s", len(files), req.Repository)

	cands, err := Aggregate(files)
	if err != nil {
		// The inspector never hands over an empty set, so this is a
		// contract violation, not a user mistake.
		c.log.Errorf("aggregating %q: %v", req.Repository, err)
		return nil, err
	}
	Estimate(cands, c.table)
	for _, cand := range cands {
		if cand.FallbackMultiplier {
			c.log.Warnf("no multiplier configured for label %q; assuming %.2f", cand.Label, cand.Multiplier)
		}
	}

	verdicts, recommended, feasible := Judge(cands, c.res)
	return &Result{
		Request:     req,
		Resources:   c.res,
		Verdicts:    verdicts,
		Recommended: recommended,
		Feasible:    feasible,
	}, nil
}
