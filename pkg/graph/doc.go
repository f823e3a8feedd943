// Package graph provides the wire formats handed to rendering collaborators.
//
// testgraph does not lay out or draw anything. It shapes data; an external
// drawing library owns physics, coordinates and pixels. This package is the
// boundary where shaped data leaves the program.
//
// # Formats
//
// Two visualization types are supported, each in two formats:
//
//	VizTypeForce  similarity multigraph   JSON: {"nodes": [...], "links": [...]}
//	                                      DOT:  undirected, fdp engine hint
//	VizTypeTree   merged journey tree     JSON: {"name": ..., "children": [...]}
//	                                      DOT:  directed, left to right
//
// # Usage
//
//	g, _ := similarity.Build(ds)
//	data, _ := graph.MarshalForceGraph(g)     // force layout JSON
//	dot := graph.SimilarityDOT(g)             // Graphviz source
//
//	root := journey.MergeDeep(tree)
//	data, _ = graph.MarshalTree(root)         // hierarchy JSON
//	dot = graph.TreeDOT(root)
//
// # Ordering
//
// Nodes and links keep the order produced by the builder. Layout engines
// seed positions from input order, so stable order means stable pictures.
//
// # Concurrency
//
// All functions are safe for concurrent use.
package graph
