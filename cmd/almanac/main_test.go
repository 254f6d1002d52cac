package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "plain id",
			in:   []string{"almanac", "task-abc12345"},
			want: []string{"almanac", "tasks", "show", "task-abc12345"},
		},
		{
			name: "id after persistent flags",
			in:   []string{"almanac", "--dir", "/tmp/x", "task-abc12345"},
			want: []string{"almanac", "--dir", "/tmp/x", "tasks", "show", "task-abc12345"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"almanac", "tasks", "list"},
			want: []string{"almanac", "tasks", "list"},
		},
		{
			name: "non-id positional untouched",
			in:   []string{"almanac", "tmpl-abc12345"},
			want: []string{"almanac", "tmpl-abc12345"},
		},
		{
			name: "after double dash",
			in:   []string{"almanac", "--", "task-abc12345"},
			want: []string{"almanac", "--", "tasks", "show", "task-abc12345"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rewriteDirectTaskLookupArgs(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
