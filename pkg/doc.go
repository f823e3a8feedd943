// Package pkg provides the core libraries for testgraph.
//
// # Overview
//
// testgraph turns the output of test-suite analysis into documents that a
// visualization layer can draw. The pkg directory is organized as:
//
//  1. [similarity] - Similarity reports → test similarity multigraph
//  2. [journey] - Journey trees and same-name sibling merging
//  3. [graph] - Wire formats: force-layout JSON, hierarchy JSON, Graphviz DOT
//  4. [pipeline] - Orchestration (decode → build/merge → encode) with caching
//  5. [cache] - File, Redis and null cache backends
//  6. [observability] - Optional instrumentation hooks
//  7. [errors] - Coded errors shared by all packages
//
// # Architecture
//
//	similarity reports (LCS, cosine, Jaccard)     journey tree
//	         ↓                                        ↓
//	  [similarity] Build + Filter               [journey] Merge
//	         ↓                                        ↓
//	  [graph] force JSON / DOT                  [graph] hierarchy JSON / DOT
//
// The core packages ([similarity], [journey]) are pure and hold no state;
// [pipeline] adds caching, logging, and hooks around them.
//
// # Quick Start
//
//	ds, err := similarity.ReadDatasetFile("similarity.json")
//	if err != nil {
//	    return err
//	}
//	g, err := similarity.Build(ds)
//	if err != nil {
//	    return err
//	}
//	return graph.WriteForceGraph(g, os.Stdout)
package pkg
