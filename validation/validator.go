// Package validation checks exported documents for structural problems:
// duplicate ids, out-of-range port offsets, unknown sides, links that
// reference missing nodes. The loader is tolerant by design — it skips
// malformed links — so validation exists to *report* what was skipped and
// why, for tooling and tests.
package validation

import (
	"fmt"

	"vellum/editor"
	"vellum/shape"
)

// Issue describes one structural problem found in a document.
type Issue struct {
	// Node or link index the issue was found at.
	Index   int
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%d] %s: %s", i.Index, i.Field, i.Message)
}

// Validator accumulates issues over a document.
type Validator struct {
	issues []Issue
}

// New creates a validator.
func New() *Validator {
	return &Validator{}
}

// Validate checks a document and returns every issue found. A valid
// document returns an empty slice.
func (v *Validator) Validate(doc editor.Document) []Issue {
	v.issues = nil
	nodeIDs := make(map[string]bool, len(doc.Nodes))
	portIDs := make(map[string]bool)

	for i, n := range doc.Nodes {
		if n.ID == "" {
			v.add(i, "node.id", "empty node id")
			continue
		}
		if nodeIDs[n.ID] {
			v.add(i, "node.id", fmt.Sprintf("duplicate node id %q", n.ID))
		}
		nodeIDs[n.ID] = true

		if n.Width < 0 || n.Height < 0 {
			v.add(i, "node.size", "negative size")
		}
		for _, p := range n.Ports {
			if p.ID == "" {
				v.add(i, "port.id", "empty port id")
			} else if portIDs[p.ID] {
				v.add(i, "port.id", fmt.Sprintf("duplicate port id %q", p.ID))
			}
			portIDs[p.ID] = true
			if p.Offset < 0 || p.Offset > 1 {
				v.add(i, "port.offset", fmt.Sprintf("offset %v outside [0, 1]", p.Offset))
			}
			if !validSide(p.Side) {
				v.add(i, "port.side", fmt.Sprintf("unknown side %q", p.Side))
			}
		}
	}

	for i, l := range doc.Links {
		v.checkLinkEndpoint(i, "link.source", l.Source, nodeIDs)
		v.checkLinkEndpoint(i, "link.target", l.Target, nodeIDs)
	}
	return v.issues
}

func (v *Validator) checkLinkEndpoint(i int, field string, id *string, nodes map[string]bool) {
	if id == nil {
		return // free endpoint, legal
	}
	if !nodes[*id] {
		v.add(i, field, fmt.Sprintf("references unknown node %q", *id))
	}
}

func (v *Validator) add(index int, field, message string) {
	v.issues = append(v.issues, Issue{Index: index, Field: field, Message: message})
}

func validSide(side string) bool {
	switch shape.Side(side) {
	case shape.SideTop, shape.SideBottom, shape.SideLeft, shape.SideRight:
		return true
	}
	return false
}
