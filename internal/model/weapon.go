package model

import (
	"fmt"
	"regexp"
	"strconv"
)

// activeSkillPattern matches the SP/cooldown prefix active weapon skills
// carry in their effect text.
var activeSkillPattern = regexp.MustCompile(`\[SP: \d+\]\[CD: \d+s\]`)

// WeaponSkill is one named skill on a weapon.
type WeaponSkill struct {
	Name   string
	Effect string
}

// Active reports whether the skill is an active (SP-consuming) skill.
func (s WeaponSkill) Active() bool {
	return activeSkillPattern.MatchString(s.Effect)
}

// Weapon is a weapon record built from a wiki page revision.
type Weapon struct {
	Name        string
	Type        string // free-form on the wiki, too inconsistent for an enum
	Rarity      int
	Attack      int
	Crit        int
	Description string
	Skills      []WeaponSkill
	PriArmBase  string
}

// ParseWeapon builds a Weapon from a revision's template arguments.
func ParseWeapon(args map[string]string) (*Weapon, error) {
	atk, err := strconv.Atoi(args["ATK"])
	if err != nil {
		return nil, fmt.Errorf("parse weapon ATK %q: %w", args["ATK"], err)
	}
	crt, err := strconv.Atoi(args["CRT"])
	if err != nil {
		return nil, fmt.Errorf("parse weapon CRT %q: %w", args["CRT"], err)
	}

	w := &Weapon{
		Name:        args["name"],
		Type:        args["type"],
		Attack:      atk,
		Crit:        crt,
		Description: args["description"],
		PriArmBase:  args["priArmBase"],
	}
	w.Rarity, _ = strconv.Atoi(args["rarity"])

	for i := 1; i <= 4; i++ {
		name := args[fmt.Sprintf("skill%d", i)]
		if name == "" {
			break
		}
		w.Skills = append(w.Skills, WeaponSkill{
			Name:   name,
			Effect: args[fmt.Sprintf("effect%d", i)],
		})
	}

	return w, nil
}

// IsPriArm reports whether the weapon is a PRI-ARM upgrade of another weapon.
func (w *Weapon) IsPriArm() bool { return w.PriArmBase != "" }
