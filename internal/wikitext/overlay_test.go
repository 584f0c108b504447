package wikitext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOverlay_CompactWithoutWritesIsIdentity(t *testing.T) {
	ov := newOverlay("untouched ★ input")
	require.Equal(t, "untouched ★ input", ov.compact())
}

func TestOverlay_ReplaceRendersHeadOnce(t *testing.T) {
	ov := newOverlay("abcdef")
	ov.replace(Span{1, 4}, "XY")
	require.Equal(t, "aXYef", ov.compact())
}

func TestOverlay_EmptyReplacementDeletes(t *testing.T) {
	ov := newOverlay("abcdef")
	ov.replace(Span{2, 5}, "")
	require.Equal(t, "abf", ov.compact())
}

func TestOverlay_WriteNeverTouchesOutsideSpan(t *testing.T) {
	ov := newOverlay("abcdef")
	ov.replace(Span{2, 4}, "-")
	require.Equal(t, "ab-ef", ov.compact())
}

func TestOverlay_LastWriterWins(t *testing.T) {
	ov := newOverlay("abcdef")
	ov.replace(Span{0, 6}, "gone")
	ov.replace(Span{2, 4}, "back")
	require.Equal(t, "goneback", ov.compact())
}

func TestOverlay_EmptySpanIsNoop(t *testing.T) {
	ov := newOverlay("abc")
	ov.replace(Span{1, 1}, "X")
	require.Equal(t, "abc", ov.compact())
}

func TestOverlay_RuneIndexing(t *testing.T) {
	ov := newOverlay("★★★")
	ov.replace(Span{1, 2}, "x")
	require.Equal(t, "★x★", ov.compact())
}
