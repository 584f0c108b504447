package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/hoyowiki/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedPages(t *testing.T, store *Store) {
	t.Helper()
	err := store.ReplaceCategory(context.Background(), model.CategoryBattlesuits, []model.PageInfo{
		{PageID: 101, Title: "Herrscher of Flamescion", Categories: []string{model.CategoryBattlesuits}, AliasOf: "Herrscher of Flamescion"},
		{PageID: 101, Title: "HoF", Categories: []string{model.CategoryBattlesuits}, AliasOf: "Herrscher of Flamescion"},
		{PageID: 102, Title: "Herrscher of Reason", Categories: []string{model.CategoryBattlesuits}, AliasOf: "Herrscher of Reason"},
	})
	require.NoError(t, err)
}

func TestStore_ByTitleCanonicalMatch(t *testing.T) {
	store := openTestStore(t)
	seedPages(t, store)

	for _, query := range []string{"Herrscher of Flamescion", "herrscher of flamescion", "  HERRSCHER OF FLAMESCION "} {
		info, err := store.ByTitle(context.Background(), query)
		require.NoError(t, err, "query %q", query)
		require.Equal(t, int64(101), info.PageID)
	}
}

func TestStore_ByTitleNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.ByTitle(context.Background(), "Missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ByTitlesReturnsKnownSubset(t *testing.T) {
	store := openTestStore(t)
	seedPages(t, store)

	infos, err := store.ByTitles(context.Background(), []string{"HoF", "Unknown Page", "herrscher of reason"})
	require.NoError(t, err)
	require.Len(t, infos, 2)
}

func TestStore_ByIDPrefersPrimaryEntry(t *testing.T) {
	store := openTestStore(t)
	seedPages(t, store)

	info, err := store.ByID(context.Background(), 101)
	require.NoError(t, err)
	require.Equal(t, "Herrscher of Flamescion", info.Title)
}

func TestStore_Search(t *testing.T) {
	store := openTestStore(t)
	seedPages(t, store)

	infos, err := store.Search(context.Background(), "herrscher", 10)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	// Prefix matches rank ahead of substring matches.
	infos, err = store.Search(context.Background(), "hof", 10)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, "HoF", infos[0].Title)
}

func TestStore_ReplaceCategoryDropsStaleEntries(t *testing.T) {
	store := openTestStore(t)
	seedPages(t, store)

	err := store.ReplaceCategory(context.Background(), model.CategoryBattlesuits, []model.PageInfo{
		{PageID: 103, Title: "Silver Ash", Categories: []string{model.CategoryBattlesuits}, AliasOf: "Silver Ash"},
	})
	require.NoError(t, err)

	_, err = store.ByTitle(context.Background(), "Herrscher of Reason")
	require.ErrorIs(t, err, ErrNotFound)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestStore_SearchAliasDistinctFromPrimary(t *testing.T) {
	store := openTestStore(t)
	seedPages(t, store)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}
