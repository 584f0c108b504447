package wikitext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/hoyowiki/internal/wikiurl"
)

func newTestTranscoder() *Transcoder {
	return NewTranscoder(nil, nil, wikiurl.New(""))
}

func TestTranscode_PassthroughWithoutMarkup(t *testing.T) {
	tc := newTestTranscoder()
	for _, input := range []string{
		"",
		"plain text",
		"stray ' apostrophe and ] bracket and } brace",
		"a < b and b > a",
	} {
		require.Equal(t, input, tc.Transcode(input), "input %q", input)
	}
}

func TestTranscode_Bold(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t, "**bold text**", tc.Transcode("'''bold text'''"))
}

func TestTranscode_Italic(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t, "_lean_", tc.Transcode("''lean''"))
}

func TestTranscode_BoundaryRewriteLeavesContentVerbatim(t *testing.T) {
	tc := newTestTranscoder()
	out := tc.Transcode("'''X'''")
	require.Equal(t, "**X**", out)
}

func TestTranscode_MappedTagBecomesBold(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t, "**damage up**", tc.Transcode("<span class='inc'>damage up</span>"))
}

func TestTranscode_UnmappedTagDelimitersDeleted(t *testing.T) {
	tc := newTestTranscoder()
	// The identifier is never substituted into the output; the content stays.
	require.Equal(t, "kept", tc.Transcode("<abbr class='unknown'>kept</abbr>"))
}

func TestTranscode_SelfClosingBrBecomesNewline(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t, "one\ntwo", tc.Transcode("one<br>two"))
}

func TestTranscode_UnmappedSelfClosingTagDeleted(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t, "ab", tc.Transcode("a<hr>b"))
}

func TestTranscode_TagWrapsResolvedEmphasis(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t, "**_text_**", tc.Transcode("<b class='inc'>''text''</b>"))
}

func TestTranscode_PlainPageLink(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t,
		"[Kiana](https://honkaiimpact3.fandom.com/wiki/Kiana)",
		tc.Transcode("[[Kiana]]"))
}

func TestTranscode_PageLinkTargetNormalized(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t,
		"[Herrscher of Flamescion](https://honkaiimpact3.fandom.com/wiki/Herrscher_of_Flamescion)",
		tc.Transcode("[[Herrscher of Flamescion]]"))
}

func TestTranscode_PipedLinkKeepsDisplayText(t *testing.T) {
	tc := newTestTranscoder()
	out := tc.Transcode("[[Kiana|the protagonist]]")
	require.Equal(t, pipedLinkPlaceholder+"the protagonist", out)
}

func TestTranscode_NestedLinkCollapsesToPlaceholder(t *testing.T) {
	tc := newTestTranscoder()
	out := tc.Transcode("[[File:x.png|[[Kiana]]]]")
	require.True(t, strings.HasPrefix(out, nestedLinkPlaceholder), "got %q", out)
	// The inner link is resolved independently inside the collapsed span.
	require.Contains(t, out, "[Kiana](https://honkaiimpact3.fandom.com/wiki/Kiana)")
}

func TestTranscode_MappedTemplate(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t, "rank ★ up", tc.Transcode("rank {{star}} up"))
}

func TestTranscode_UnmappedTemplateDeleted(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t, "", tc.Transcode("{{unmapped}}"))
}

func TestTranscode_NestedTemplateOuterDelimitersRemain(t *testing.T) {
	tc := newTestTranscoder()
	// Documented limitation: the outer template is skipped entirely, so its
	// own delimiters survive while the inner template is still resolved.
	out := tc.Transcode("{{outer|{{star}}}}")
	require.Equal(t, "{{outer|★}}", out)
	require.Contains(t, out, "{{outer|")
	require.True(t, strings.HasSuffix(out, "}}"))
}

func TestTranscode_CustomTables(t *testing.T) {
	tc := NewTranscoder(
		Table{"glow": "__"},
		Table{"sword": "⚔"},
		wikiurl.New("https://example.test/wiki/"),
	)
	require.Equal(t, "__lit__ ⚔", tc.Transcode("<i class=\"glow\">lit</i> {{sword}}"))
	require.Equal(t, "[A B](https://example.test/wiki/A_B)", tc.Transcode("[[A B]]"))
}

func TestTranscode_RelativeOrderPreserved(t *testing.T) {
	tc := newTestTranscoder()
	input := "a '''b''' c [[D]] e {{star}} f"
	out := tc.Transcode(input)

	// Every surviving original character appears in original relative order.
	for _, sub := range []string{"a ", " c ", " e ", " f"} {
		require.Contains(t, out, sub)
	}
	require.Less(t, strings.Index(out, "b"), strings.Index(out, "c"))
	require.Less(t, strings.Index(out, "c"), strings.Index(out, "e"))
}

func TestTranscode_MixedRealisticEffectText(t *testing.T) {
	tc := newTestTranscoder()
	input := "Deals <span class='inc'>'''120%'''</span> ATK of {{star}} damage.<br>See [[Fu Hua]]."
	want := "Deals ***120%*** ATK of ★ damage.\nSee [Fu Hua](https://honkaiimpact3.fandom.com/wiki/Fu_Hua)."
	require.Equal(t, want, tc.Transcode(input))
}

func TestTranscode_UnicodeContentSurvives(t *testing.T) {
	tc := newTestTranscoder()
	require.Equal(t, "**強い**です", tc.Transcode("'''強い'''です"))
}

func TestTranscode_ConcurrentUse(t *testing.T) {
	tc := newTestTranscoder()
	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- tc.Transcode("'''bold''' and [[Kiana]]") }()
	}
	for i := 0; i < 8; i++ {
		require.Equal(t, "**bold** and [Kiana](https://honkaiimpact3.fandom.com/wiki/Kiana)", <-done)
	}
}
