package smarts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Expression
	}{
		{
			name: "plain pattern",
			raw:  "c1ccccc1",
			want: Expression{Clauses: []Clause{{Pattern: "c1ccccc1"}}},
		},
		{
			name: "negated pattern",
			raw:  "![#7]",
			want: Expression{Negated: true, Clauses: []Clause{{Pattern: "[#7]"}}},
		},
		{
			name: "stereo separator",
			raw:  "[C@H](N)CXXXC(=O)O",
			want: Expression{Clauses: []Clause{
				{Pattern: "[C@H](N)C", Stereo: true},
				{Pattern: "C(=O)O"},
			}},
		},
		{
			name: "negated stereo with multiplicity",
			raw:  "![C@H](N)CXXX2MOREC(=O)O",
			want: Expression{Negated: true, Clauses: []Clause{
				{Pattern: "[C@H](N)C", Stereo: true},
				{Pattern: "C(=O)O", Multiplicity: MultiplicityMore, Threshold: 2},
			}},
		},
		{
			name: "dot conjunction",
			raw:  "[#6].[#7].[#8]",
			want: Expression{Clauses: []Clause{
				{Pattern: "[#6]"},
				{Pattern: "[#7]"},
				{Pattern: "[#8]"},
			}},
		},
		{
			name: "more directive",
			raw:  "3MOREc1ccccc1",
			want: Expression{Clauses: []Clause{
				{Pattern: "c1ccccc1", Multiplicity: MultiplicityMore, Threshold: 3},
			}},
		},
		{
			name: "exact directive",
			raw:  "2EXACTC(=O)O",
			want: Expression{Clauses: []Clause{
				{Pattern: "C(=O)O", Multiplicity: MultiplicityExact, Threshold: 2},
			}},
		},
		{
			name: "directive inside dot conjunction",
			raw:  "[#7].2MOREC(=O)O",
			want: Expression{Clauses: []Clause{
				{Pattern: "[#7]"},
				{Pattern: "C(=O)O", Multiplicity: MultiplicityMore, Threshold: 2},
			}},
		},
		{
			name: "missing threshold fails closed",
			raw:  "EXACTC(=O)O",
			want: Expression{Clauses: []Clause{
				{Pattern: "EXACTC(=O)O", Multiplicity: MultiplicityExact, Threshold: -1},
			}},
		},
		{
			name: "empty stereo side yields no clauses",
			raw:  "XXXC(=O)O",
			want: Expression{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "true", VerdictTrue.String())
	assert.Equal(t, "false", VerdictFalse.String())
	assert.Equal(t, "none", VerdictNone.String())
}
