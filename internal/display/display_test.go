package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/hoyowiki/internal/model"
)

func testRenderer() *Renderer { return NewRenderer(nil, nil) }

func TestRenderer_BattlesuitHeader(t *testing.T) {
	bs := &model.Battlesuit{
		Name:      "Herrscher of Flamescion",
		Character: "Kiana Kaslana",
		Type:      model.TypePSY,
		Rank:      model.RankS,
		Profile:   "The girl who carries the '''flame''' walks on.",
	}

	msgs := testRenderer().Battlesuit(bs)
	require.Len(t, msgs, 2)

	header := msgs[0]
	require.Equal(t, "The girl who carries the **flame** walks on.", header.Description)
	require.Equal(t, model.TypePSY.Colour(), header.Color)
	require.Equal(t, "Herrscher of Flamescion", header.AuthorName)
	require.Equal(t, "https://honkaiimpact3.fandom.com/wiki/Herrscher_of_Flamescion", header.AuthorURL)
	require.Contains(t, header.IconURL, "Valkyrie_S")
	require.Contains(t, header.ThumbnailURL, "%28Avatar%29")
}

func TestRenderer_BattlesuitAugmentFallbackDescription(t *testing.T) {
	bs := &model.Battlesuit{
		Name:      "Azure Empyrea",
		Character: "Fu Hua",
		Type:      model.TypePSY,
		Rank:      model.RankS,
		Augment:   "Phoenix",
	}

	msgs := testRenderer().Battlesuit(bs)
	header := msgs[0]
	require.Contains(t, header.Description, "[Fu Hua](")
	require.Contains(t, header.Description, "upgrade of [Phoenix](")
}

func TestRenderer_BattlesuitInfoFields(t *testing.T) {
	bs := &model.Battlesuit{
		Name:          "Herrscher of Flamescion",
		Character:     "Kiana Kaslana",
		Type:          model.TypePSY,
		CoreStrengths: []string{"Fire DMG", "Burst"},
		Recommendations: []model.Recommendation{{
			Type:   "Recommended",
			Weapon: model.Equipment{Name: "Domain of Flamescion"},
			Top:    model.Equipment{Name: "Leeuwenhoek T"},
			Middle: model.Equipment{Name: "Leeuwenhoek M"},
			Bottom: model.Equipment{Name: "Leeuwenhoek B"},
		}},
	}

	info := testRenderer().Battlesuit(bs)[1]
	require.Len(t, info.Fields, 2)
	require.Equal(t, "About:", info.Fields[0].Name)
	require.Contains(t, info.Fields[0].Value, "Fire DMG Burst")
	require.Contains(t, info.Fields[0].Value, "Type: PSY")

	loadout := info.Fields[1]
	require.Equal(t, "Recommended:", loadout.Name)
	require.Contains(t, loadout.Value, "[Domain of Flamescion](")
	require.True(t, loadout.Inline)
}

func TestRenderer_StigmataSet(t *testing.T) {
	set := &model.StigmataSet{
		Name:   "Leeuwenhoek",
		Rarity: 5,
		Stigmata: []model.Stigma{
			{Name: "Leeuwenhoek (T)", SetName: "Leeuwenhoek", Slot: model.SlotTop, Rarity: 5,
				EffectName: "Micro World", Effect: "Deals '''120%''' ATK of damage.", HP: 634, Attack: 62},
		},
		Bonuses: []model.SetBonus{
			{Name: "2-Piece: Observer", Effect: "Total DMG increases by {{star}}."},
		},
	}

	msgs := testRenderer().StigmataSet(set)
	require.Len(t, msgs, 2)

	stig := msgs[0]
	require.Equal(t, "Micro World", stig.Title)
	require.Equal(t, model.SlotTop.Colour(), stig.Color)
	require.Contains(t, stig.Description, "Deals **120%** ATK of damage.")
	require.Contains(t, stig.Description, "**HP**: 634, **ATK**: 62")
	require.NotContains(t, stig.Description, "Rarity:", "main-set member should not repeat the set rarity")

	bonus := msgs[1]
	require.Equal(t, "Rarity: ★★★★★", bonus.Description)
	require.Len(t, bonus.Fields, 1)
	require.Equal(t, "Total DMG increases by ★.", bonus.Fields[0].Value)
}

func TestRenderer_StigmataOffSetMemberShowsRarity(t *testing.T) {
	set := &model.StigmataSet{
		Name:   "Leeuwenhoek",
		Rarity: 5,
		Stigmata: []model.Stigma{
			{Name: "Newton B", SetName: "Newton", Slot: model.SlotBottom, Rarity: 5, Effect: "ATK up."},
		},
	}

	msgs := testRenderer().StigmataSet(set)
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0].Description, "Rarity: ★★★★★")
}

func TestRenderer_Weapon(t *testing.T) {
	w := &model.Weapon{
		Name:        "Domain of Flamescion",
		Rarity:      5,
		Attack:      398,
		Crit:        22,
		Description: "A greatsword burning with [[Herrscher of Flamescion|her]] will.",
		Skills: []model.WeaponSkill{
			{Name: "Scorching Sky", Effect: "[SP: 12][CD: 18s] Slashes forward."},
			{Name: "Lingering Heat", Effect: "Passively increases fire DMG."},
		},
	}

	msgs := testRenderer().Weapon(w)
	require.Len(t, msgs, 1)
	msg := msgs[0]

	require.Equal(t, "Domain of Flamescion", msg.Title)
	require.Contains(t, msg.Description, "<placeholder2>her")
	require.Len(t, msg.Fields, 3)
	require.Contains(t, msg.Fields[0].Value, "**ATK**: 398, **CRT**: 22")
	require.Equal(t, "[Active] Scorching Sky:", msg.Fields[1].Name)
	require.Equal(t, "Lingering Heat:", msg.Fields[2].Name)
}

func TestRenderer_RecordDispatch(t *testing.T) {
	r := testRenderer()

	msgs, err := r.Record(&model.Weapon{Name: "Pledge of Sakura", Attack: 100, Crit: 10})
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	_, err = r.Record(nil)
	require.Error(t, err)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short"))

	long := strings.Repeat("あ", maxFieldLength+10)
	got := truncate(long)
	require.Len(t, []rune(got), maxFieldLength)
	require.True(t, strings.HasSuffix(got, "..."))
}
