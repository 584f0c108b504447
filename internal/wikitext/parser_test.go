package wikitext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_PlainTextHasNoConstructs(t *testing.T) {
	set := Parse("Kiana is the protagonist of Honkai Impact 3rd.")
	require.Empty(t, set.Emphasis)
	require.Empty(t, set.Tags)
	require.Empty(t, set.Links)
	require.Empty(t, set.Templates)
}

func TestParse_BoldSpans(t *testing.T) {
	set := Parse("'''bold'''")
	require.Len(t, set.Emphasis, 1)

	em := set.Emphasis[0]
	require.Equal(t, Bold, em.Kind)
	require.Equal(t, Span{0, 10}, em.Outer)
	require.Equal(t, Span{3, 7}, em.Inner)
}

func TestParse_ItalicSpans(t *testing.T) {
	set := Parse("x ''it'' y")
	require.Len(t, set.Emphasis, 1)

	em := set.Emphasis[0]
	require.Equal(t, Italic, em.Kind)
	require.Equal(t, Span{2, 8}, em.Outer)
	require.Equal(t, Span{4, 6}, em.Inner)
}

func TestParse_SequentialEmphasisRuns(t *testing.T) {
	set := Parse("''a'' and ''b''")
	require.Len(t, set.Emphasis, 2)
	require.Equal(t, Span{0, 5}, set.Emphasis[0].Outer)
	require.Equal(t, Span{10, 15}, set.Emphasis[1].Outer)
}

func TestParse_UnterminatedEmphasisIgnored(t *testing.T) {
	set := Parse("'''never closed")
	require.Empty(t, set.Emphasis)
}

func TestParse_TagWithClassAttribute(t *testing.T) {
	set := Parse("<b class='inc'>hi</b>")
	require.Len(t, set.Tags, 1)

	tag := set.Tags[0]
	require.Equal(t, "inc", tag.Identifier)
	require.Equal(t, Span{0, 21}, tag.Outer)
	require.NotNil(t, tag.Inner)
	require.Equal(t, Span{15, 17}, *tag.Inner)
}

func TestParse_TagWithoutClassUsesName(t *testing.T) {
	set := Parse("<span>x</span>")
	require.Len(t, set.Tags, 1)
	require.Equal(t, "span", set.Tags[0].Identifier)
}

func TestParse_SelfClosingTag(t *testing.T) {
	for _, input := range []string{"a<br>b", "a<br/>b", "a<br />b"} {
		set := Parse(input)
		require.Len(t, set.Tags, 1, "input %q", input)
		require.Nil(t, set.Tags[0].Inner, "input %q", input)
		require.Equal(t, "br", set.Tags[0].Identifier, "input %q", input)
	}
}

func TestParse_UnterminatedTagIgnored(t *testing.T) {
	set := Parse("<b class='inc'>never closed")
	require.Empty(t, set.Tags)
}

func TestParse_PlainLink(t *testing.T) {
	set := Parse("see [[Kiana]] here")
	require.Len(t, set.Links, 1)

	link := set.Links[0]
	require.Equal(t, "Kiana", link.Target)
	require.Equal(t, Span{4, 13}, link.Outer)
	require.Nil(t, link.Display)
	require.False(t, link.HasNestedLink)
}

func TestParse_PipedLink(t *testing.T) {
	set := Parse("[[Kiana|the protagonist]]")
	require.Len(t, set.Links, 1)

	link := set.Links[0]
	require.Equal(t, "Kiana", link.Target)
	require.NotNil(t, link.Display)
	require.Equal(t, Span{8, 23}, *link.Display)
}

func TestParse_NestedLinkReportedTwice(t *testing.T) {
	set := Parse("[[File:x.png|[[Kiana]]]]")
	require.Len(t, set.Links, 2)

	require.True(t, set.Links[0].HasNestedLink)
	require.Equal(t, 0, set.Links[0].Outer.Start)

	require.False(t, set.Links[1].HasNestedLink)
	require.Equal(t, "Kiana", set.Links[1].Target)
}

func TestParse_UnterminatedLinkIgnored(t *testing.T) {
	set := Parse("[[Kiana")
	require.Empty(t, set.Links)
}

func TestParse_InnerLinkSurvivesUnterminatedOuter(t *testing.T) {
	set := Parse("[[broken [[Kiana]]")
	require.Len(t, set.Links, 1)
	require.Equal(t, "Kiana", set.Links[0].Target)
}

func TestParse_Template(t *testing.T) {
	set := Parse("{{star}}")
	require.Len(t, set.Templates, 1)
	require.Equal(t, "star", set.Templates[0].Identifier)
	require.Equal(t, Span{0, 8}, set.Templates[0].Outer)
	require.False(t, set.Templates[0].HasNestedTemplate)
}

func TestParse_TemplateIdentifierTrimmedAndArgsIgnored(t *testing.T) {
	set := Parse("{{ star | size=big }}")
	require.Len(t, set.Templates, 1)
	require.Equal(t, "star", set.Templates[0].Identifier)
}

func TestParse_NestedTemplates(t *testing.T) {
	set := Parse("{{outer|{{star}}}}")
	require.Len(t, set.Templates, 2)

	require.Equal(t, "outer", set.Templates[0].Identifier)
	require.True(t, set.Templates[0].HasNestedTemplate)
	require.Equal(t, Span{0, 18}, set.Templates[0].Outer)

	require.Equal(t, "star", set.Templates[1].Identifier)
	require.False(t, set.Templates[1].HasNestedTemplate)
	require.Equal(t, Span{8, 16}, set.Templates[1].Outer)
}

func TestParse_UnterminatedTemplateIgnored(t *testing.T) {
	set := Parse("{{star")
	require.Empty(t, set.Templates)
}

func TestParse_RuneOffsetsNotByteOffsets(t *testing.T) {
	// Multibyte characters before the construct must not skew its span.
	set := Parse("律者は'''強い'''")
	require.Len(t, set.Emphasis, 1)
	require.Equal(t, Span{3, 11}, set.Emphasis[0].Outer)
	require.Equal(t, Span{6, 8}, set.Emphasis[0].Inner)
}

func TestParse_KindsNestAcrossEachOther(t *testing.T) {
	set := Parse("<b class='inc'>''text''</b> {{tpl|[[Page]]}}")
	require.Len(t, set.Tags, 1)
	require.Len(t, set.Emphasis, 1)
	require.Len(t, set.Templates, 1)
	require.Len(t, set.Links, 1)

	// The emphasis run sits strictly inside the tag's inner span.
	tag, em := set.Tags[0], set.Emphasis[0]
	require.GreaterOrEqual(t, em.Outer.Start, tag.Inner.Start)
	require.LessOrEqual(t, em.Outer.End, tag.Inner.End)
}
