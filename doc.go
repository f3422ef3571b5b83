// Package kagen generates massive random graphs over a fixed group of P
// peer ranks, each of which ends up owning a consecutive range of vertices
// and the edges incident to them.
//
// 🚀 What is kagen?
//
//	A streaming, chunk-parallel graph generation library that brings together:
//		• Erdős–Rényi models: G(n,m) and G(n,p), directed and undirected
//		• Random geometric graphs (RGG) in 2D and 3D, with coordinates
//		• Random Delaunay graphs (RDG) via a computational-geometry backend
//		• Random hyperbolic graphs (RHG) with power-law degree distributions
//		• Barabási–Albert preferential attachment
//		• R-MAT and Kronecker recursive matrix models
//		• Regular 2D/3D grid lattices, optionally periodic
//
// ✨ Why choose kagen?
//
//   - Deterministic by chunk – the global edge set depends only on the seed
//     and the chunk count, never on how many ranks participate
//   - Communication-free generation – ranks regenerate neighbor chunks from
//     the seed instead of talking to each other; collectives only appear in
//     post-processing and validation
//   - Canonical output – consecutive vertex ranges, symmetric undirected
//     edge lists, optional CSR, optional coordinates
//
// Everything is organized under flat subpackages:
//
//	comm/        — in-process bulk-synchronous process group and collectives
//	rng/         — per-chunk random streams and count-splitting samplers
//	graph/       — distributed graph representation (edge list and CSR)
//	generator/   — generator contract, configuration, chunk constraints
//	gnm/         — Erdős–Rényi family
//	grid/        — lattice generators
//	kronecker/   — Kronecker and R-MAT
//	barabassi/   — preferential attachment
//	geometric/   — RGG and Delaunay
//	hyperbolic/  — RHG
//	postprocess/ — redistribution, reverse-edge completion, deduplication
//	validator/   — distributed invariant checks
//
// Quick example, four ranks generating one undirected G(n,m) graph:
//
//	err := comm.Run(4, func(c *comm.Comm) error {
//	    gen := kagen.New(c)
//	    gen.SetSeed(1)
//	    g, err := gen.GenerateUndirectedGNM(1<<10, 1<<12, false)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("rank %d owns [%d,%d)\n", c.Rank(), g.VertexRange.From, g.VertexRange.To)
//	    return nil
//	})
package kagen
