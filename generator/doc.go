// Package generator defines the contract every graph model implements and
// the configuration value the façade feeds into it.
//
// What:
//
//   - Config — immutable parameter set (model, n, m, p, radius, gamma,
//     chunk count, flags, seed).
//   - Type — enumeration of the supported models.
//   - Generator — Generate / Finalize / Take lifecycle plus Requirements
//     and Features capability masks.
//   - Factory — per-model parameter normalization and construction.
//   - EdgeListBase — shared buffer management for edge-list-native models,
//     including the CSR conversion on finalize.
//   - Chunk arithmetic — blocked chunk→rank assignment and the
//     square / cubic / power-of-two shape constraints with their
//     "smallest valid multiple of P" defaults.
//
// Lifecycle:
//
//	cfg := generator.Defaults()           // or built by the façade
//	cfg, err := factory.Normalize(cfg, p) // shape constraints, k defaults
//	gen, err := factory.Create(cfg, rank, p)
//	err = gen.Generate(graph.EdgeList)    // local chunks only, no collectives
//	err = gen.Finalize(c)                 // may convert representation and
//	                                      // run collective fix-ups
//	g := gen.Take()                       // moves the buffers out
//
// Errors:
//
//   - ErrConfiguration wraps every invalid-parameter and shape failure;
//     test with errors.Is.
package generator
