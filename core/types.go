// SPDX-License-Identifier: MIT

// Package core defines the central Graph, Vertex, and Edge types,
// and provides thread-safe primitives for building and querying graphs.
//
// This file declares Vertex, Edge, Graph, sentinel errors, the NewGraph
// constructor and the natural ID ordering shared by every enumeration.
package core

import (
	"errors"
	"strings"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrBadEdgeList indicates a malformed line in an edge-list input.
	ErrBadEdgeList = errors.New("core: malformed edge list")
)

// Vertex represents a node in the graph.
type Vertex struct {
	// ID is the unique identifier for this Vertex.
	ID string
}

// Edge represents an undirected connection between two distinct vertices.
//
// From and To are stored canonically (LessID(From, To) is always true), so the
// same pair of endpoints always yields the same Edge regardless of the order
// passed to AddEdge.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", ...).
	ID string

	// From is the smaller endpoint under LessID.
	From string

	// To is the larger endpoint under LessID.
	To string
}

// Graph is the core in-memory graph data structure.
//
// mu protects vertices, edges and adjacency; nextEdgeID is an atomic counter
// for unique Edge.ID generation.
type Graph struct {
	mu sync.RWMutex

	nextEdgeID uint64             // atomic edge ID generator
	vertices   map[string]*Vertex // vertex ID → Vertex
	edges      map[string]*Edge   // edge ID → Edge

	// adjacency[u][v] = edge ID, mirrored for both endpoints.
	adjacency map[string]map[string]string
}

// NewGraph creates an empty undirected simple Graph.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		vertices:  make(map[string]*Vertex),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]string),
	}
}

// LessID reports whether vertex ID a sorts before b in the natural order used
// by every enumeration in this package: IDs that are both non-negative decimal
// integers compare numerically ("2" < "10"); anything else compares
// lexicographically, with numeric IDs sorting before non-numeric ones.
func LessID(a, b string) bool {
	na, nb := isDecimal(a), isDecimal(b)
	switch {
	case na && nb:
		a, b = strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	case na != nb:
		return na
	default:
		return a < b
	}
}

// CompareID is the three-way form of LessID, usable with slices.SortFunc.
func CompareID(a, b string) int {
	switch {
	case a == b:
		return 0
	case LessID(a, b):
		return -1
	case LessID(b, a):
		return 1
	default:
		// numerically equal but textually different ("07" vs "7")
		return strings.Compare(a, b)
	}
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
