package rtfde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseForHeaderTest(t *testing.T, rtf string) *Group {
	t.Helper()
	toks, err := lex(normalizeEscapedControlChars([]byte(rtf)))
	require.NoError(t, err)
	root, err := buildTree(toks)
	require.NoError(t, err)
	return root
}

func TestValidateHeader_HtmlMarker(t *testing.T) {
	root := parseForHeaderTest(t, `{\rtf1\ansi\ansicpg1252\fromhtml1{\*\htmltag x}}`)
	info, err := validateHeader(root, NewDefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ContentHTML, info.ContentType)
	assert.Equal(t, 1252, info.Codepage)
	assert.True(t, info.HasCodepage)
	assert.Equal(t, "ansi", info.Charset)
}

func TestValidateHeader_TextMarker(t *testing.T) {
	root := parseForHeaderTest(t, `{\rtf1\ansi\fromtext hi}`)
	info, err := validateHeader(root, NewDefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ContentText, info.ContentType)
}

func TestValidateHeader_MissingRtf1IsMalformed(t *testing.T) {
	root := parseForHeaderTest(t, `{\ansi\fromtext hi}`)
	_, err := validateHeader(root, NewDefaultConfig())
	require.Error(t, err)
	assert.IsType(t, &MalformedRtfError{}, err)
}

func TestValidateHeader_DuplicateFromMarkerIsMalformedEncapsulated(t *testing.T) {
	root := parseForHeaderTest(t, `{\rtf1\ansi\fromtext\fromtext hi}`)
	_, err := validateHeader(root, NewDefaultConfig())
	require.Error(t, err)
	assert.IsType(t, &MalformedEncapsulatedRtfError{}, err)
}

func TestValidateHeader_FonttblBeforeFromIsNotEncapsulated(t *testing.T) {
	root := parseForHeaderTest(t, `{\rtf1\ansi{\fonttbl}\fromtext hi}`)
	_, err := validateHeader(root, NewDefaultConfig())
	require.Error(t, err)
	assert.IsType(t, &NotEncapsulatedRtfError{}, err)
}

func TestValidateHeader_DuplicateFonttblIsMalformedEncapsulated(t *testing.T) {
	root := parseForHeaderTest(t, `{\rtf1\ansi\fromtext\fonttbl\fonttbl hi}`)
	_, err := validateHeader(root, NewDefaultConfig())
	require.Error(t, err)
	assert.IsType(t, &MalformedEncapsulatedRtfError{}, err)
}

func TestValidateHeader_NoFromMarkerIsNotEncapsulated(t *testing.T) {
	root := parseForHeaderTest(t, `{\rtf1\ansi hello world}`)
	_, err := validateHeader(root, NewDefaultConfig())
	require.Error(t, err)
	assert.IsType(t, &NotEncapsulatedRtfError{}, err)
}

func TestValidateHeader_UnregisteredCodepageIsMalformed(t *testing.T) {
	root := parseForHeaderTest(t, `{\rtf1\ansi\ansicpg99999\fromtext hi}`)
	_, err := validateHeader(root, NewDefaultConfig())
	require.Error(t, err)
	assert.IsType(t, &MalformedRtfError{}, err)
}

func TestValidateHeader_MissingCharsetAllowedWithFallback(t *testing.T) {
	root := parseForHeaderTest(t, `{\rtf1\fromtext hi}`)
	cfg := NewDefaultConfig()
	cfg.FallbackToDefaultCharset = true
	_, err := validateHeader(root, cfg)
	require.NoError(t, err)
}
