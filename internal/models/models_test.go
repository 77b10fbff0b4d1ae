package models

import (
	"testing"
)

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleUser, true},
		{RoleModel, true},
		{"assistant", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestCloneTurns(t *testing.T) {
	orig := []Turn{UserTurn("a"), ModelTurn("b")}
	clone := CloneTurns(orig)
	clone[0].Content = "changed"

	if orig[0].Content != "a" {
		t.Errorf("CloneTurns shares storage with input")
	}

	if got := CloneTurns(nil); got == nil || len(got) != 0 {
		t.Errorf("CloneTurns(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestNormalizeHistory(t *testing.T) {
	tests := []struct {
		name string
		in   []Turn
		max  int
		want []Turn
	}{
		{
			name: "drops unknown roles and blank content",
			in: []Turn{
				{Role: "system", Content: "be nice"},
				{Role: RoleUser, Content: "  hi  "},
				{Role: RoleModel, Content: "   "},
				{Role: RoleModel, Content: "hello"},
			},
			max:  20,
			want: []Turn{UserTurn("hi"), ModelTurn("hello")},
		},
		{
			name: "keeps only the tail",
			in:   []Turn{UserTurn("1"), ModelTurn("2"), UserTurn("3"), ModelTurn("4")},
			max:  2,
			want: []Turn{UserTurn("3"), ModelTurn("4")},
		},
		{
			name: "window applied before filtering",
			in:   []Turn{UserTurn("1"), ModelTurn("2"), {Role: "tool", Content: "x"}},
			max:  2,
			want: []Turn{ModelTurn("2")},
		},
		{
			name: "zero max keeps everything",
			in:   []Turn{UserTurn("1"), ModelTurn("2")},
			max:  0,
			want: []Turn{UserTurn("1"), ModelTurn("2")},
		},
		{
			name: "negative max drops from the front",
			in:   []Turn{UserTurn("1"), ModelTurn("2"), UserTurn("3")},
			max:  -2,
			want: []Turn{UserTurn("3")},
		},
		{
			name: "negative max beyond length keeps nothing",
			in:   []Turn{UserTurn("1")},
			max:  -5,
			want: []Turn{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeHistory(tt.in, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d turns, want %d: %#v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("turn %d = %#v, want %#v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKnownProviders(t *testing.T) {
	providers := KnownProviders()
	if len(providers) != 2 || providers[0] != DefaultProvider {
		t.Errorf("KnownProviders() = %v, want default provider first", providers)
	}
}
