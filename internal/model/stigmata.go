package model

import (
	"fmt"
	"strconv"
)

// Stigma is a single stigma of a set.
type Stigma struct {
	Name       string
	SetName    string
	Slot       StigmaSlot
	Rarity     int
	EffectName string
	Effect     string
	HP         int
	Attack     int
	Defense    int
	Crit       int
}

// SetBonus is a 2-piece or 3-piece set bonus effect.
type SetBonus struct {
	Name   string
	Effect string
}

// StigmataSet is a stigmata set record built from a wiki page revision.
// Singleton stigmata appear as a set with one member and no bonuses.
type StigmataSet struct {
	Name     string
	Rarity   int
	Stigmata []Stigma
	Bonuses  []SetBonus
}

// ParseStigmataSet builds a StigmataSet from a revision's template arguments.
// Per-slot arguments are suffixed with the slot letter (slotT, effectT, ...).
func ParseStigmataSet(args map[string]string) (*StigmataSet, error) {
	set := &StigmataSet{Name: args["set"]}
	set.Rarity, _ = strconv.Atoi(args["rarity"])
	if set.Name == "" {
		set.Name = args["name"]
	}

	for _, slot := range Slots {
		suffix := string(slot)
		name := args["slot"+suffix]
		if name == "" {
			continue
		}
		stig := Stigma{
			Name:       name,
			SetName:    set.Name,
			Slot:       slot,
			Rarity:     set.Rarity,
			EffectName: args["effectName"+suffix],
			Effect:     args["effect"+suffix],
		}
		stig.HP, _ = strconv.Atoi(args["HP"+suffix])
		stig.Attack, _ = strconv.Atoi(args["ATK"+suffix])
		stig.Defense, _ = strconv.Atoi(args["DEF"+suffix])
		stig.Crit, _ = strconv.Atoi(args["CRT"+suffix])
		set.Stigmata = append(set.Stigmata, stig)
	}
	if len(set.Stigmata) == 0 {
		return nil, ErrUnknownContent
	}

	for _, pieces := range []int{2, 3} {
		name := args[fmt.Sprintf("set%d", pieces)]
		if name == "" {
			continue
		}
		set.Bonuses = append(set.Bonuses, SetBonus{
			Name:   name,
			Effect: args[fmt.Sprintf("set%dEffect", pieces)],
		})
	}

	return set, nil
}

// MainSet returns the stigmata that belong to the set proper together with
// the set bonuses. Off-set members (different set name) are excluded.
func (s *StigmataSet) MainSet() ([]Stigma, []SetBonus) {
	var members []Stigma
	for _, stig := range s.Stigmata {
		if stig.SetName == s.Name {
			members = append(members, stig)
		}
	}
	return members, s.Bonuses
}
