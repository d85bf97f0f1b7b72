package dashboard

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/octabyte/clinic-portal/models"
	"github.com/octabyte/clinic-portal/render"
)

// adminListing is the doctor list an admin last saw, with the filter that
// produced it.
type adminListing struct {
	List   render.DoctorList
	Filter models.DoctorFilter
}

// ViewCache remembers the last doctor list rendered per session so a
// delete can drop one card without re-fetching.
type ViewCache struct {
	cache *gocache.Cache
}

func NewViewCache(ttl time.Duration) *ViewCache {
	return &ViewCache{cache: gocache.New(ttl, 2*ttl)}
}

func (v *ViewCache) storeAdmin(sessionID string, listing adminListing) {
	v.cache.SetDefault("admin:"+sessionID, listing)
}

func (v *ViewCache) admin(sessionID string) (adminListing, bool) {
	x, ok := v.cache.Get("admin:" + sessionID)
	if !ok {
		return adminListing{}, false
	}
	return x.(adminListing), true
}

func (v *ViewCache) forget(sessionID string) {
	v.cache.Delete("admin:" + sessionID)
}
