package database

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pfas-tracker/api/model"
	"go.uber.org/zap"
)

// MemorySiteController keeps sites in process. It mirrors SiteController
// semantics and backs DB_DRIVER=memory and the HTTP tests.
type MemorySiteController struct {
	mu    sync.RWMutex
	sites map[int]*model.Site
}

func NewMemorySiteController() *MemorySiteController {
	return &MemorySiteController{sites: make(map[int]*model.Site)}
}

func (mc *MemorySiteController) Ping(ctx context.Context) error {
	return nil
}

func (mc *MemorySiteController) FindSites(ctx context.Context, filter model.SiteFilter) ([]*model.Site, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	sites := make([]*model.Site, 0, len(mc.sites))
	for _, s := range mc.sites {
		if filter.Bound != nil && !filter.Bound.Contains(s.Location) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(s.Name), query) &&
			!strings.Contains(strconv.Itoa(s.Id), query) {
			continue
		}
		sites = append(sites, s.Clone())
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Id < sites[j].Id })
	return sites, nil
}

func (mc *MemorySiteController) FindSiteById(ctx context.Context, id int) (*model.Site, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	s, ok := mc.sites[id]
	if !ok {
		return nil, model.ErrSiteNotFound
	}
	return s.Clone(), nil
}

func (mc *MemorySiteController) AddSite(ctx context.Context, site *model.Site) (*model.Site, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	stored := site.Clone()
	if stored.Id == 0 {
		ids := make([]int, 0, len(mc.sites))
		for id := range mc.sites {
			ids = append(ids, id)
		}
		stored.Id = NextFreeID(ids)
	}
	if _, exists := mc.sites[stored.Id]; exists {
		return nil, model.ErrSiteConflict
	}
	mc.sites[stored.Id] = stored
	return stored.Clone(), nil
}

func (mc *MemorySiteController) UpdateSite(ctx context.Context, targetId int, site *model.Site) (*model.Site, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, ok := mc.sites[targetId]; !ok {
		return nil, model.ErrSiteNotFound
	}
	stored := site.Clone()
	if stored.Id == 0 {
		stored.Id = targetId
	}
	if stored.Id != targetId {
		if _, taken := mc.sites[stored.Id]; taken {
			return nil, model.ErrSiteConflict
		}
		delete(mc.sites, targetId)
	}
	mc.sites[stored.Id] = stored
	return stored.Clone(), nil
}

func (mc *MemorySiteController) DeleteSiteById(ctx context.Context, id int) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, ok := mc.sites[id]; !ok {
		zap.S().Debugf("delete of missing site %d", id)
	}
	delete(mc.sites, id)
	return nil
}
