package model

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/hoyowiki/internal/wikitext"
)

// Equipment is one piece of recommended gear on a battlesuit loadout.
type Equipment struct {
	Name   string
	Rarity int
}

// Recommendation is one recommended loadout (weapon plus top/middle/bottom
// stigmata) with its suitability scores.
type Recommendation struct {
	Type          string
	Weapon        Equipment
	Top           Equipment
	Middle        Equipment
	Bottom        Equipment
	Offense       string
	Functionality string
	Compatibility string
}

// Battlesuit is a battlesuit record built from a wiki page revision.
type Battlesuit struct {
	Name            string
	Character       string
	Type            BattlesuitType
	Rank            BattlesuitRarity
	Profile         string
	CoreStrengths   []string
	Augment         string
	Recommendations []Recommendation
}

// recommendationKinds maps the wiki's recommendation template argument names
// to their display labels, in display order.
var recommendationKinds = []struct {
	arg   string
	label string
}{
	{"BBSrec", "Recommended"},
	{"BBSau", "Auxiliary"},
	{"BBSun", "Universal"},
	{"BBStr", "Transitional"},
}

// recommendationScores are the per-recommendation score argument suffixes.
var recommendationScores = []string{"offensive_ability", "functionality", "compatibility"}

// ParseBattlesuit builds a Battlesuit from a revision's template arguments.
func ParseBattlesuit(args map[string]string) (*Battlesuit, error) {
	name := args["battlesuit"]
	if name == "" {
		return nil, ErrUnknownContent
	}

	bs := &Battlesuit{
		Name:      name,
		Character: args["character"],
		Type:      BattlesuitType(args["type"]),
		Rank:      BattlesuitRarity(args["rank"]),
		Profile:   args["profile"], // empty for augments
		Augment:   args["augment"],
	}
	if strengths := args["core_strengths"]; strengths != "" {
		bs.CoreStrengths = strings.Split(strengths, ", ")
	}

	for _, kind := range recommendationKinds {
		data := args[kind.arg]
		if data == "" {
			continue
		}
		rec := Recommendation{Type: kind.label}

		// Each loadout entry is a nested template keyed by its slot argument,
		// falling back to the template name (the weapon entry has no slot).
		for _, call := range wikitext.TemplateCalls(data) {
			key := call.Args["slot"]
			if key == "" {
				key = call.Name
			}
			eq := Equipment{Name: call.Args["1"]}
			if eq.Name == "" {
				eq.Name = "..."
			}
			eq.Rarity, _ = strconv.Atoi(call.Args["rarity"])

			switch key {
			case "weapon":
				rec.Weapon = eq
			case "T":
				rec.Top = eq
			case "M":
				rec.Middle = eq
			case "B":
				rec.Bottom = eq
			}
		}

		rec.Offense = args[kind.arg+"_"+recommendationScores[0]]
		rec.Functionality = args[kind.arg+"_"+recommendationScores[1]]
		rec.Compatibility = args[kind.arg+"_"+recommendationScores[2]]

		bs.Recommendations = append(bs.Recommendations, rec)
	}

	return bs, nil
}

// EquipmentNames returns every equipment name referenced by the battlesuit's
// recommendations, for wikilink validation.
func (b *Battlesuit) EquipmentNames() []string {
	var names []string
	for _, rec := range b.Recommendations {
		names = append(names, rec.Weapon.Name, rec.Top.Name, rec.Middle.Name, rec.Bottom.Name)
	}
	return names
}
