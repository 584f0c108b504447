// Package display renders wiki records into chat-ready messages: Markdown
// text plus the embed-style trimmings (colours, thumbnails, fields) a chat
// client can show directly.
package display

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/hoyowiki/internal/model"
	"git.home.luguber.info/inful/hoyowiki/internal/wikitext"
	"git.home.luguber.info/inful/hoyowiki/internal/wikiurl"
)

// maxFieldLength bounds a single field value; longer values are cut with an
// ellipsis. Matches the common chat embed limit.
const maxFieldLength = 1024

// Field is one name/value section of a message.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Message is a chat-embed-shaped rendering of a wiki record.
type Message struct {
	Title        string  `json:"title,omitempty"`
	URL          string  `json:"url,omitempty"`
	Color        int     `json:"color,omitempty"`
	Description  string  `json:"description,omitempty"`
	AuthorName   string  `json:"author_name,omitempty"`
	AuthorURL    string  `json:"author_url,omitempty"`
	IconURL      string  `json:"icon_url,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	Footer       string  `json:"footer,omitempty"`
	Fields       []Field `json:"fields,omitempty"`
}

// Renderer turns parsed records into Messages. It is stateless across calls
// and safe for concurrent use.
type Renderer struct {
	transcoder *wikitext.Transcoder
	urls       *wikiurl.Resolver
}

// NewRenderer builds a Renderer. A nil transcoder gets the stock replacement
// tables with links resolved against urls; a nil urls gets the default wiki
// base.
func NewRenderer(transcoder *wikitext.Transcoder, urls *wikiurl.Resolver) *Renderer {
	if urls == nil {
		urls = wikiurl.New("")
	}
	if transcoder == nil {
		transcoder = wikitext.NewTranscoder(nil, nil, urls)
	}
	return &Renderer{transcoder: transcoder, urls: urls}
}

// Record renders any supported record type.
func (r *Renderer) Record(rec model.Record) ([]Message, error) {
	switch v := rec.(type) {
	case *model.Battlesuit:
		return r.Battlesuit(v), nil
	case *model.StigmataSet:
		return r.StigmataSet(v), nil
	case *model.Weapon:
		return r.Weapon(v), nil
	}
	return nil, fmt.Errorf("render: unsupported record type %T", rec)
}

// Battlesuit renders a battlesuit as a header message followed by an info
// message with the recommended loadouts.
func (r *Renderer) Battlesuit(bs *model.Battlesuit) []Message {
	return []Message{r.battlesuitHeader(bs), r.battlesuitInfo(bs)}
}

func (r *Renderer) battlesuitHeader(bs *model.Battlesuit) Message {
	desc := bs.Profile
	if desc != "" {
		desc = r.transcoder.Transcode(desc)
	} else {
		// Augments have no profile text on the wiki.
		desc = r.urls.Hyperlink(bs.Character) + " battlesuit."
		if bs.Augment != "" {
			desc += "\n" + r.urls.Hyperlink("Augment Core") + " upgrade of " + r.urls.Hyperlink(bs.Augment)
		}
	}

	return Message{
		Color:        bs.Type.Colour(),
		Description:  truncate(desc),
		AuthorName:   bs.Name,
		AuthorURL:    r.urls.PageURL(bs.Name),
		IconURL:      r.urls.ImageURL("Valkyrie_" + string(bs.Rank)),
		ThumbnailURL: r.urls.ImageURL(bs.Name + "_(Avatar)"),
		Footer:       fmt.Sprintf("Press the title at the top of this message to visit %s's wiki page!", bs.Name),
	}
}

func (r *Renderer) battlesuitInfo(bs *model.Battlesuit) Message {
	var about strings.Builder
	about.WriteString(strings.Join(bs.CoreStrengths, " "))
	fmt.Fprintf(&about, "\nType: %s", bs.Type)
	fmt.Fprintf(&about, "\nValkyrie: %s", r.urls.Hyperlink(bs.Character))
	if bs.Augment != "" {
		fmt.Fprintf(&about, "\nAugment (of): %s", r.urls.Hyperlink(bs.Augment))
	}

	msg := Message{
		Color:  bs.Type.Colour(),
		Fields: []Field{{Name: "About:", Value: truncate(about.String())}},
	}
	for _, rec := range bs.Recommendations {
		msg.Fields = append(msg.Fields, Field{
			Name: rec.Type + ":",
			Value: truncate(strings.Join([]string{
				r.urls.Hyperlink(rec.Weapon.Name),
				r.urls.Hyperlink(rec.Top.Name),
				r.urls.Hyperlink(rec.Middle.Name),
				r.urls.Hyperlink(rec.Bottom.Name),
			}, "\n")),
			Inline: true,
		})
	}
	return msg
}

// StigmataSet renders one message per stigma, plus a closing message with the
// set bonuses when the set has any.
func (r *Renderer) StigmataSet(set *model.StigmataSet) []Message {
	members, bonuses := set.MainSet()
	inMainSet := make(map[string]bool, len(members))
	for _, stig := range members {
		inMainSet[stig.Name] = true
	}

	var msgs []Message
	for _, stig := range set.Stigmata {
		msgs = append(msgs, r.stigma(stig, !inMainSet[stig.Name]))
	}

	if len(bonuses) > 0 && len(members) > 0 {
		bonus := Message{Description: "Rarity: " + rarityStars(members[0].Rarity)}
		for _, b := range bonuses {
			bonus.Fields = append(bonus.Fields, Field{
				Name:   b.Name,
				Value:  truncate(r.transcoder.Transcode(b.Effect)),
				Inline: true,
			})
		}
		msgs = append(msgs, bonus)
	}
	return msgs
}

func (r *Renderer) stigma(stig model.Stigma, showRarity bool) Message {
	var desc strings.Builder
	if showRarity {
		fmt.Fprintf(&desc, "Rarity: %s\n", rarityStars(stig.Rarity))
	}
	desc.WriteString(r.transcoder.Transcode(stig.Effect))
	desc.WriteString("\n\n")
	desc.WriteString(statLine(stig))

	return Message{
		Title:        stig.EffectName,
		Color:        stig.Slot.Colour(),
		Description:  truncate(desc.String()),
		AuthorName:   stig.Name,
		AuthorURL:    r.urls.PageURL(stig.SetName),
		IconURL:      r.urls.ImageURL("Stigmata_" + stig.Slot.Name()),
		ThumbnailURL: r.urls.ImageURL(fmt.Sprintf("%s (%s) (Icon)", stig.SetName, stig.Slot)),
	}
}

// statLine joins the non-zero stats of a stigma, em-space separated.
func statLine(stig model.Stigma) string {
	var parts []string
	for _, stat := range []struct {
		name  string
		value int
	}{
		{"HP", stig.HP},
		{"ATK", stig.Attack},
		{"DEF", stig.Defense},
		{"CRT", stig.Crit},
	} {
		if stat.value != 0 {
			parts = append(parts, fmt.Sprintf("**%s**: %d", stat.name, stat.value))
		}
	}
	return strings.Join(parts, ", ")
}

// Weapon renders a weapon as a single message with one field per skill.
func (r *Renderer) Weapon(w *model.Weapon) []Message {
	msg := Message{
		Title:        w.Name,
		URL:          r.urls.PageURL(w.Name),
		Description:  truncate(r.transcoder.Transcode(w.Description)),
		ThumbnailURL: r.urls.ImageURL(w.Name + " (Icon)"),
	}

	stats := fmt.Sprintf("Rarity: %s\n**ATK**: %d, **CRT**: %d", rarityStars(w.Rarity), w.Attack, w.Crit)
	if w.IsPriArm() {
		stats += "\nPRI-ARM of: " + r.urls.Hyperlink(w.PriArmBase)
	}
	msg.Fields = append(msg.Fields, Field{Name: "Stats:", Value: stats})

	for _, skill := range w.Skills {
		name := skill.Name
		if skill.Active() {
			name = "[Active] " + name
		}
		msg.Fields = append(msg.Fields, Field{
			Name:  name + ":",
			Value: truncate(r.transcoder.Transcode(skill.Effect)),
		})
	}
	return []Message{msg}
}

func rarityStars(n int) string {
	if n <= 0 {
		return "?"
	}
	return strings.Repeat("★", n)
}

// truncate cuts a value to the field limit, rune-safe, with a trailing
// ellipsis when anything was dropped.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxFieldLength {
		return s
	}
	return string(runes[:maxFieldLength-3]) + "..."
}
