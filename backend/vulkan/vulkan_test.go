package vulkan

import (
	"testing"

	"github.com/gogpu/vo/backend"
)

func TestRegistered(t *testing.T) {
	infos := backend.List()
	if len(infos) == 0 || infos[0].Name != backend.Vulkan {
		t.Fatalf("vulkan is not the highest priority backend: %+v", infos)
	}
	if infos[0].Priority != Priority || !infos[0].AutoProbe {
		t.Errorf("vulkan registered as %+v", infos[0])
	}
	if backend.CanonicalName("vk") != backend.Vulkan {
		t.Error("vk alias does not resolve to vulkan")
	}
}
