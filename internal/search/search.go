// Package search fuzzy-matches node names across a map.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"mindit-cli/internal/model"
)

type Match struct {
	Node *model.Node
	// Path is the names from root down to the node.
	Path []string
	// Indexes are the matched rune positions in the node name.
	Indexes []int
	Score   int
}

type nodeSource []*model.Node

func (s nodeSource) String(i int) string { return s[i].Name }
func (s nodeSource) Len() int            { return len(s) }

// Find returns nodes under root whose names fuzzy-match query, best first. Root itself is
// included. An empty query matches nothing; limit <= 0 means no limit.
func Find(root *model.Node, query string, limit int) []Match {
	query = strings.TrimSpace(query)
	if root == nil || query == "" {
		return nil
	}
	var nodes nodeSource
	model.Walk(root, func(n *model.Node) bool {
		nodes = append(nodes, n)
		return true
	})
	found := fuzzy.FindFrom(query, nodes)
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	out := make([]Match, 0, len(found))
	for _, f := range found {
		n := nodes[f.Index]
		out = append(out, Match{
			Node:    n,
			Path:    model.Path(n),
			Indexes: f.MatchedIndexes,
			Score:   f.Score,
		})
	}
	return out
}
