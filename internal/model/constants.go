// Package model holds the wiki domain records (page index entries,
// battlesuits, stigmata sets, weapons) and the rules for building them from
// the template arguments of a page revision.
package model

// Wiki categories used for page harvesting.
const (
	CategoryBattlesuits = "Category:Battlesuits"
	CategoryStigmata    = "Category:Stigmata"
	CategoryWeapons     = "Category:Weapons"
)

// RequestCategories lists the harvestable top-level categories in display order.
var RequestCategories = []string{CategoryBattlesuits, CategoryStigmata, CategoryWeapons}

// BattlesuitType is a battlesuit damage type as it appears on the wiki.
type BattlesuitType string

const (
	TypeBIO  BattlesuitType = "BIO"
	TypePSY  BattlesuitType = "PSY"
	TypeMECH BattlesuitType = "MECH"
	TypeQUA  BattlesuitType = "QUA"
	TypeIMG  BattlesuitType = "IMG"
)

var battlesuitTypeColours = map[BattlesuitType]int{
	TypeBIO:  0xFFB833,
	TypePSY:  0xFE46CF,
	TypeMECH: 0x2FE0FF,
	TypeQUA:  0x9B78FE,
	TypeIMG:  0xF1D799,
}

// Colour returns the display colour for the type, or 0 when unknown.
func (t BattlesuitType) Colour() int { return battlesuitTypeColours[t] }

// Valid reports whether the type is one the wiki uses.
func (t BattlesuitType) Valid() bool {
	_, ok := battlesuitTypeColours[t]
	return ok
}

// BattlesuitRarity is a battlesuit rank (B through SSS).
type BattlesuitRarity string

const (
	RankB   BattlesuitRarity = "B"
	RankA   BattlesuitRarity = "A"
	RankS   BattlesuitRarity = "S"
	RankSS  BattlesuitRarity = "SS"
	RankSSS BattlesuitRarity = "SSS"
)

// StigmaSlot is a stigma equipment slot.
type StigmaSlot string

const (
	SlotTop    StigmaSlot = "T"
	SlotMiddle StigmaSlot = "M"
	SlotBottom StigmaSlot = "B"
)

// Slots lists the stigma slots in display order.
var Slots = []StigmaSlot{SlotTop, SlotMiddle, SlotBottom}

var stigmaSlotColours = map[StigmaSlot]int{
	SlotTop:    0xFF9279,
	SlotMiddle: 0x9DAAFE,
	SlotBottom: 0xB2C964,
}

// Colour returns the display colour for the slot, or 0 when unknown.
func (s StigmaSlot) Colour() int { return stigmaSlotColours[s] }

// Name returns the long slot name used in image asset titles.
func (s StigmaSlot) Name() string {
	switch s {
	case SlotTop:
		return "Top"
	case SlotMiddle:
		return "Middle"
	case SlotBottom:
		return "Bottom"
	}
	return string(s)
}
