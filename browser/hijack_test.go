package browser

import (
	"testing"

	"github.com/Medy04/MTN-data-scrapping/scraper"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
)

func TestBlockedSet(t *testing.T) {
	got := blockedSet([]string{"Image", "Font", "Script", "Bogus"})

	assert.Len(t, got, 2)
	assert.Contains(t, got, proto.NetworkResourceTypeImage)
	assert.Contains(t, got, proto.NetworkResourceTypeFont)
	assert.NotContains(t, got, proto.NetworkResourceTypeScript)
}

func TestBlockedSet_Empty(t *testing.T) {
	assert.Empty(t, blockedSet(nil))
}

func TestLifecycleEvent(t *testing.T) {
	assert.Equal(t, proto.PageLifecycleEventNameNetworkAlmostIdle, lifecycleEvent(scraper.WaitNetworkIdle))
	assert.Equal(t, proto.PageLifecycleEventNameDOMContentLoaded, lifecycleEvent(scraper.WaitDOMReady))
}

func TestToHeadersMap(t *testing.T) {
	h := toHeadersMap(map[string]string{"Accept-Language": acceptLanguage})

	assert.Equal(t, acceptLanguage, h["Accept-Language"].Str())
}
