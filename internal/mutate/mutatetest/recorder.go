// Package mutatetest provides a recording Persister for tests.
package mutatetest

import (
	"fmt"

	"mindit-cli/internal/model"
)

type Call struct {
	Op     string
	ID     string
	Spec   model.NodeSpec
	Fields model.Fields
}

// Recorder records every persistence call in order. IDs default to node-1, node-2, ...;
// set IDFunc to control them. When Err is set every call fails with it (after recording).
// FailAddAt makes only the nth AddNode (1-based) fail, with AddErr.
type Recorder struct {
	Calls     []Call
	IDFunc    func(spec model.NodeSpec) string
	Err       error
	FailAddAt int
	AddErr    error

	n    int
	adds int
}

func (r *Recorder) AddNode(spec model.NodeSpec) (string, error) {
	r.adds++
	if r.FailAddAt > 0 && r.adds == r.FailAddAt {
		return "", r.AddErr
	}
	id := spec.ID
	if id == "" {
		if r.IDFunc != nil {
			id = r.IDFunc(spec)
		} else {
			r.n++
			id = fmt.Sprintf("node-%d", r.n)
		}
	}
	r.Calls = append(r.Calls, Call{Op: "add", ID: id, Spec: spec})
	if r.Err != nil {
		return "", r.Err
	}
	return id, nil
}

func (r *Recorder) UpdateNode(id string, f model.Fields) error {
	r.Calls = append(r.Calls, Call{Op: "update", ID: id, Fields: f})
	return r.Err
}

func (r *Recorder) DeleteNode(id string) error {
	r.Calls = append(r.Calls, Call{Op: "delete", ID: id})
	return r.Err
}

func (r *Recorder) filter(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Adds() []Call    { return r.filter("add") }
func (r *Recorder) Updates() []Call { return r.filter("update") }
func (r *Recorder) Deletes() []Call { return r.filter("delete") }

func (r *Recorder) Reset() {
	r.Calls = nil
}

// NameIDs makes ids equal to node names, which keeps fixtures readable.
func NameIDs(spec model.NodeSpec) string {
	return spec.Name
}
