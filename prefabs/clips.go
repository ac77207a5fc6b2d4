package prefabs

import (
	"sort"

	"github.com/milk9111/foxrun/component"
)

// Clips builds one animation clip per def, sorted by name.
func Clips(defs map[string]AnimationDefSpec) []*component.Animation {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	clips := make([]*component.Animation, 0, len(names))
	for _, name := range names {
		def := defs[name]
		clips = append(clips, component.NewAnimation(name, def.FrameCount, def.FPS, def.Loop))
	}
	return clips
}
