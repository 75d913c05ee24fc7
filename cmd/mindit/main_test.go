package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectNodeLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"mindit"},
			want: []string{"mindit"},
		},
		{
			name: "node id first token",
			in:   []string{"mindit", "node-3fa9c2d1"},
			want: []string{"mindit", "export", "--node", "node-3fa9c2d1"},
		},
		{
			name: "node id after value flag",
			in:   []string{"mindit", "--map", "Trip plan", "node-3fa9c2d1"},
			want: []string{"mindit", "--map", "Trip plan", "export", "--node", "node-3fa9c2d1"},
		},
		{
			name: "node id after equals flag",
			in:   []string{"mindit", "--dir=./tmp", "node-3fa9c2d1"},
			want: []string{"mindit", "--dir=./tmp", "export", "--node", "node-3fa9c2d1"},
		},
		{
			name: "node id after bool flag",
			in:   []string{"mindit", "--pretty", "node-3fa9c2d1"},
			want: []string{"mindit", "--pretty", "export", "--node", "node-3fa9c2d1"},
		},
		{
			name: "node id after double dash",
			in:   []string{"mindit", "--dir", "./tmp", "--", "node-3fa9c2d1"},
			want: []string{"mindit", "--dir", "./tmp", "export", "--node", "node-3fa9c2d1"},
		},
		{
			name: "node subcommand not rewritten",
			in:   []string{"mindit", "node", "rename", "node-3fa9c2d1", "x"},
			want: []string{"mindit", "node", "rename", "node-3fa9c2d1", "x"},
		},
		{
			name: "bare prefix not rewritten",
			in:   []string{"mindit", "node-"},
			want: []string{"mindit", "node-"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rewriteDirectNodeLookupArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}
