package kagen

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/kagen/barabassi"
	"github.com/katalvlaran/kagen/comm"
	"github.com/katalvlaran/kagen/generator"
	"github.com/katalvlaran/kagen/geometric"
	"github.com/katalvlaran/kagen/gnm"
	"github.com/katalvlaran/kagen/graph"
	"github.com/katalvlaran/kagen/grid"
	"github.com/katalvlaran/kagen/hyperbolic"
	"github.com/katalvlaran/kagen/kronecker"
	"github.com/katalvlaran/kagen/postprocess"
	"github.com/katalvlaran/kagen/validator"
)

// ErrUnknownType reports a model name outside the vocabulary.
var ErrUnknownType = errors.New("kagen: unknown generator type")

// factoryFor dispatches a model type to its family factory.
func factoryFor(t generator.Type) (generator.Factory, error) {
	switch t {
	case generator.TypeGNMDirected, generator.TypeGNMUndirected,
		generator.TypeGNPDirected, generator.TypeGNPUndirected:
		return gnm.Factory{}, nil
	case generator.TypeRGG2D, generator.TypeRGG3D,
		generator.TypeRDG2D, generator.TypeRDG3D:
		return geometric.Factory{}, nil
	case generator.TypeGrid2D, generator.TypeGrid3D:
		return grid.Factory{}, nil
	case generator.TypeBA:
		return barabassi.Factory{}, nil
	case generator.TypeKronecker, generator.TypeRMAT:
		return kronecker.Factory{}, nil
	case generator.TypeRHG:
		return hyperbolic.Factory{}, nil
	}

	return nil, ErrUnknownType
}

// Generate runs the full pipeline on one rank of the process group:
// normalize, generate, finalize, validate. Every rank of the group must
// call it with the same configuration.
func Generate(cfg generator.Config, c *comm.Comm) (graph.Graph, error) {
	f, err := factoryFor(cfg.Generator)
	if err != nil {
		return graph.Graph{}, err
	}
	cfg, err = f.Normalize(cfg, c.Size())
	if err != nil {
		return graph.Graph{}, err
	}

	log := rankLogger(cfg, c)
	log.WithFields(logrus.Fields{
		"n": cfg.N, "m": cfg.M, "k": cfg.K, "seed": cfg.Seed,
	}).Infof("generating %s graph on %d ranks", cfg.Generator, c.Size())

	gen, err := f.Create(cfg, c.Rank(), c.Size())
	if err != nil {
		return graph.Graph{}, err
	}
	if err := gen.Generate(graph.EdgeList); err != nil {
		return graph.Graph{}, err
	}
	if err := gen.Finalize(c); err != nil {
		return graph.Graph{}, err
	}
	g := gen.Take()

	if total, err := c.AllreduceSum(g.NumLocalEdges()); err == nil {
		log.Infof("generated %d edges", total)
	} else {
		return graph.Graph{}, err
	}

	if cfg.Statistics {
		if err := logStatistics(log, c, &g, cfg.N); err != nil {
			return graph.Graph{}, err
		}
	}

	if cfg.ValidateSimpleGraph {
		if err := validate(cfg, c, &g, gen.Features()); err != nil {
			return graph.Graph{}, err
		}
		log.Info("validation passed")
	}
	for _, w := range validator.Warnings(&g) {
		log.Warn(w)
	}

	return g, nil
}

// validate runs the collective invariant checks; symmetry is only
// checked for models whose output is logically undirected.
func validate(cfg generator.Config, c *comm.Comm, g *graph.Graph, feats generator.Feature) error {
	if err := validator.ValidateRangesConsecutive(c, g.VertexRange, cfg.N); err != nil {
		return err
	}
	if err := validator.ValidateSimpleGraph(c, g, cfg.N, cfg.SelfLoops); err != nil {
		return err
	}
	undirected := feats&generator.FeatUndirected != 0 ||
		(feats&generator.FeatAlmostUndirected != 0 && !cfg.Directed && !cfg.SkipPostprocessing)
	if undirected {
		ranges, err := postprocess.GatherVertexRanges(c, g.VertexRange)
		if err != nil {
			return err
		}
		if err := validator.ValidateUndirected(c, g.Edges, ranges); err != nil {
			return err
		}
	}

	return nil
}

// logStatistics reduces degree extremes and totals over the group.
func logStatistics(log *logrus.Entry, c *comm.Comm, g *graph.Graph, n int64) error {
	degree := make(map[int64]int64, g.VertexRange.Len())
	for _, e := range g.Edges {
		degree[e.U]++
	}
	var localMax int64
	for _, d := range degree {
		if d > localMax {
			localMax = d
		}
	}
	maxDegree, err := c.AllreduceMax(localMax)
	if err != nil {
		return err
	}
	edges, err := c.AllreduceSum(g.NumLocalEdges())
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"vertices":   n,
		"edges":      edges,
		"max_degree": maxDegree,
		"avg_degree": float64(edges) / float64(n),
	}).Info("graph statistics")

	return nil
}

// rankLogger logs on rank 0 only; Quiet discards everything.
func rankLogger(cfg generator.Config, c *comm.Comm) *logrus.Entry {
	log := logrus.New()
	if cfg.Quiet || c.Rank() != 0 {
		log.SetLevel(logrus.PanicLevel)
	}

	return log.WithField("rank", c.Rank())
}
