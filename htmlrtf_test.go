package rtfde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHtmlrtfSuppression_MarksRegionBetweenToggles(t *testing.T) {
	toks, err := lex([]byte(`{\rtf1\htmlrtf junk\htmlrtf0 kept}`))
	require.NoError(t, err)
	root, err := buildTree(toks)
	require.NoError(t, err)

	deleted := computeHtmlrtfSuppression(root)

	var junk, kept *Token
	for _, c := range root.Children {
		if tok, ok := c.(*Token); ok && tok.Kind == TokLiteralString {
			if string(tok.Text) == "junk" {
				junk = tok
			}
			if string(tok.Text) == "kept" {
				kept = tok
			}
		}
	}
	require.NotNil(t, junk)
	require.NotNil(t, kept)
	assert.True(t, deleted[junk.identity()])
	assert.False(t, deleted[kept.identity()])
}

func TestComputeHtmlrtfSuppression_RestoresStateOnGroupExit(t *testing.T) {
	toks, err := lex([]byte(`{\rtf1\htmlrtf{\*\x inner}after}`))
	require.NoError(t, err)
	root, err := buildTree(toks)
	require.NoError(t, err)

	deleted := computeHtmlrtfSuppression(root)

	var after *Token
	for _, c := range root.Children {
		if tok, ok := c.(*Token); ok && tok.Kind == TokLiteralString && string(tok.Text) == "after" {
			after = tok
		}
	}
	require.NotNil(t, after)
	assert.True(t, deleted[after.identity()], "suppression state inherited from the parent group must still apply after the inner group closes")
}

func TestComputeHtmlrtfSuppression_NeverSuppressesInsideHtmlTag(t *testing.T) {
	toks, err := lex([]byte(`{\rtf1\htmlrtf{\*\htmltag literal html}}`))
	require.NoError(t, err)
	root, err := buildTree(toks)
	require.NoError(t, err)

	deleted := computeHtmlrtfSuppression(root)

	var literal *Token
	htmltagGroup := root.Children[2].(*Group)
	for _, c := range htmltagGroup.Children {
		if tok, ok := c.(*Token); ok && tok.Kind == TokLiteralString {
			literal = tok
		}
	}
	require.NotNil(t, literal)
	assert.False(t, deleted[literal.identity()])
}
