// Package io reads and writes sequence graphs, builder snapshots, alignment
// results and FASTA input.
//
// # JSON Format
//
// A compact graph is stored as its nodes in linear order plus the edge list.
// Node ids are the dense linear indices; sequences are spelled with the
// alphabet named in the document:
//
//	{
//	  "alphabet": "ACGT",
//	  "nodes": [
//	    {"id": 0, "seq": "ACG"},
//	    {"id": 1, "seq": "T"},
//	    {"id": 2, "seq": "A"},
//	    {"id": 3, "seq": "CAT"}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 1},
//	    {"from": 0, "to": 2},
//	    {"from": 1, "to": 3},
//	    {"from": 2, "to": 3}
//	  ]
//	}
//
// [ReadGraph] validates the document with [seqgraph.New], so a graph that
// reads back successfully satisfies every structural invariant. An empty
// alphabet field selects DNA.
//
// # Import
//
//	g, err := io.ImportGraph("pangenome.json")
//
// # Export
//
//	err := io.ExportGraph(g, seqgraph.DNA, "pangenome.json")
//
// # FASTA
//
// [ReadFASTA] parses multi-record FASTA through biogo and encodes each record
// with the given alphabet. Records holding letters outside the alphabet are
// rejected with the record name in the error.
package io
