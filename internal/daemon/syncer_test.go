package daemon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/hoyowiki/internal/config"
	"git.home.luguber.info/inful/hoyowiki/internal/contentcache"
	"git.home.luguber.info/inful/hoyowiki/internal/model"
)

type fakeLister struct {
	pages map[string][]model.PageInfo
	fail  map[string]bool
}

func (f *fakeLister) ListCategoryPages(_ context.Context, category string) ([]model.PageInfo, error) {
	if f.fail[category] {
		return nil, errors.New("wiki unreachable")
	}
	return f.pages[category], nil
}

type fakeIndexWriter struct {
	categories map[string][]model.PageInfo
}

func (f *fakeIndexWriter) ReplaceCategory(_ context.Context, category string, infos []model.PageInfo) error {
	if f.categories == nil {
		f.categories = map[string][]model.PageInfo{}
	}
	f.categories[category] = infos
	return nil
}

func (f *fakeIndexWriter) Count(context.Context) (int64, error) {
	var n int64
	for _, infos := range f.categories {
		n += int64(len(infos))
	}
	return n, nil
}

type fakePublisher struct {
	events []contentcache.SyncEvent
}

func (f *fakePublisher) PublishSync(_ context.Context, event contentcache.SyncEvent) error {
	f.events = append(f.events, event)
	return nil
}

func TestSyncer_SyncCategory(t *testing.T) {
	wiki := &fakeLister{pages: map[string][]model.PageInfo{
		model.CategoryWeapons: {
			{PageID: 1, Title: "Domain of Flamescion"},
			{PageID: 2, Title: "Pledge of Sakura"},
		},
	}}
	idx := &fakeIndexWriter{}
	pub := &fakePublisher{}

	n, err := NewSyncer(wiki, idx, pub).SyncCategory(context.Background(), model.CategoryWeapons)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, idx.categories[model.CategoryWeapons], 2)

	require.Len(t, pub.events, 1)
	require.Equal(t, model.CategoryWeapons, pub.events[0].Category)
	require.Equal(t, 2, pub.events[0].Pages)
}

func TestSyncer_SyncAllContinuesPastFailures(t *testing.T) {
	wiki := &fakeLister{
		pages: map[string][]model.PageInfo{
			model.CategoryWeapons: {{PageID: 1, Title: "Domain of Flamescion"}},
		},
		fail: map[string]bool{model.CategoryBattlesuits: true},
	}
	idx := &fakeIndexWriter{}

	err := NewSyncer(wiki, idx, nil).SyncAll(context.Background(),
		[]string{model.CategoryBattlesuits, model.CategoryWeapons})
	require.Error(t, err, "failed category must surface")
	require.Len(t, idx.categories[model.CategoryWeapons], 1, "later categories still sync")
}

func TestDaemon_ReloadConfig(t *testing.T) {
	cfg := config.Default()
	d, err := New(cfg, NewSyncer(&fakeLister{}, &fakeIndexWriter{}, nil))
	require.NoError(t, err)

	newCfg := config.Default()
	newCfg.Server.Listen = ":9999"
	newCfg.Sync.Categories = []string{model.CategoryWeapons}

	require.NoError(t, d.ReloadConfig(context.Background(), newCfg))
	require.Equal(t, ":9999", d.Config().Server.Listen)
	require.Equal(t, []string{model.CategoryWeapons}, d.Config().Sync.Categories)
}

func TestDaemon_StartStop(t *testing.T) {
	cfg := config.Default()
	cfg.Sync.OnStart = false
	cfg.Sync.Interval = time.Hour

	d, err := New(cfg, NewSyncer(&fakeLister{}, &fakeIndexWriter{}, nil))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, d.Start(ctx))
	require.NoError(t, d.Stop(ctx))
}
