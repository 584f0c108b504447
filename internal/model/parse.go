package model

import "errors"

// ErrUnknownContent is returned when a revision's template arguments match
// none of the known record shapes.
var ErrUnknownContent = errors.New("revision matches no known content model")

// Record is any parsed wiki content record.
type Record interface {
	isRecord()
}

func (*Battlesuit) isRecord()  {}
func (*StigmataSet) isRecord() {}
func (*Weapon) isRecord()      {}

// ParseRecord classifies a revision's template arguments and builds the
// matching record: a battlesuit when a "battlesuit" argument is present, a
// stigmata set when any slot argument is, a weapon when both ATK and CRT
// are, otherwise ErrUnknownContent.
func ParseRecord(args map[string]string) (Record, error) {
	switch {
	case args["battlesuit"] != "":
		return ParseBattlesuit(args)
	case hasAny(args, "slotT", "slotM", "slotB"):
		return ParseStigmataSet(args)
	case hasAll(args, "ATK", "CRT"):
		return ParseWeapon(args)
	default:
		return nil, ErrUnknownContent
	}
}

func hasAny(args map[string]string, keys ...string) bool {
	for _, k := range keys {
		if _, ok := args[k]; ok {
			return true
		}
	}
	return false
}

func hasAll(args map[string]string, keys ...string) bool {
	for _, k := range keys {
		if _, ok := args[k]; !ok {
			return false
		}
	}
	return true
}
