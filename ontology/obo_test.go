package ontology

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOBO = `format-version: 1.2
ontology: chemont

[Term]
id: CHEM:0000
name: chemical entity

[Term]
id: CHEM:0001
name: carboxylic acid
is_a: CHEM:0000 ! chemical entity
cdk_smarts: C(=O)[OX2H1]
ambit_smarts: C(=O)O

[Term]
id: CHEM:0002
name: escaped pattern
is_a: CHEM:0000
cdk_smarts: \![#6]XXX\\C

[Term]
id: CHEM:0003
name: gone
is_a: CHEM:0000
is_obsolete: true
cdk_smarts: [#7]

[Term]
id: CHEM:0004
name: useless leaf
is_a: CHEM:0000
`

func TestLoadOBO(t *testing.T) {
	concepts, err := LoadOBO(strings.NewReader(sampleOBO), "cdk_smarts")
	require.NoError(t, err)

	// The obsolete stanza and the pattern-less leaf are dropped.
	require.Len(t, concepts, 3)

	root := concepts[0]
	assert.Equal(t, "CHEM:0000", root.ID)
	assert.Equal(t, "chemical entity", root.Name)
	assert.Empty(t, root.Parents)
	assert.False(t, root.HasExpressions())

	acid := concepts[1]
	assert.Equal(t, "carboxylic acid", acid.Name)
	assert.Equal(t, []string{"CHEM:0000"}, acid.Parents, "inline comment must be stripped")
	assert.Equal(t, []string{"C(=O)[OX2H1]"}, acid.Expressions, "only the selected smarts tag is loaded")
}

func TestLoadOBOSmartsTagSelection(t *testing.T) {
	concepts, err := LoadOBO(strings.NewReader(sampleOBO), "ambit_smarts")
	require.NoError(t, err)
	require.Len(t, concepts, 2, "concepts without an ambit pattern become useless leaves")

	assert.Equal(t, []string{"C(=O)O"}, concepts[1].Expressions)
}

func TestLoadOBOUnescape(t *testing.T) {
	concepts, err := LoadOBO(strings.NewReader(sampleOBO), "cdk_smarts")
	require.NoError(t, err)

	assert.Equal(t, []string{`![#6]XXX\C`}, concepts[2].Expressions)
}

func TestLoadOBOStanzaWithoutBlankLine(t *testing.T) {
	const broken = `[Term]
id: CHEM:0001
name: first
[Term]
id: CHEM:0002
`
	_, err := LoadOBO(strings.NewReader(broken), "cdk_smarts")

	var ferr *ErrStanzaFormat
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 4, ferr.Line)
}

func TestLoadOBOHasA(t *testing.T) {
	const withChildren = `[Term]
id: CHEM:0000
name: root
has_a: CHEM:0001

[Term]
id: CHEM:0001
name: child
is_a: CHEM:0000
cdk_smarts: [#6]
`
	concepts, err := LoadOBO(strings.NewReader(withChildren), "cdk_smarts")
	require.NoError(t, err)
	require.Len(t, concepts, 2)
	assert.Equal(t, []string{"CHEM:0001"}, concepts[0].Children)
}
