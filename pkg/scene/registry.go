package scene

import (
	"errors"
	"fmt"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a scene
type Builder func(opts Options) (*Scene, error)

type builtin struct {
	info  SceneInfo
	build Builder
}

var builtins = []builtin{
	{builtinInfo("random", "Random small spheres around glass, matte and metal spheres"), NewRandomScene},
	{builtinInfo("two-spheres", "Two checkered spheres touching at the origin"), NewTwoSpheresScene},
	{builtinInfo("two-perlin", "Perlin noise marble sphere on a marble ground"), NewTwoPerlinScene},
	{builtinInfo("earth", "Image-textured globe"), NewEarthScene},
	{builtinInfo("simple-light", "Marble spheres lit by a light sphere and a light panel"), NewSimpleLightScene},
	{builtinInfo("cornell", "Empty Cornell box"), NewCornellScene},
	{builtinInfo("cornell-cuboids", "Cornell box with two rotated boxes"), NewCornellCuboidsScene},
	{builtinInfo("cornell-smoke", "Cornell box with two blocks of smoke"), NewCornellSmokeScene},
	{builtinInfo("final", "Every feature at once: boxes, fog, glass, metal, noise, texture and motion blur"), NewFinalScene},
}

func builtinInfo(id, description string) SceneInfo {
	return SceneInfo{
		ID:          id,
		Name:        id,
		DisplayName: titleCase(id),
		Description: description,
		Group:       BuiltinGroup,
		Type:        "builtin",
	}
}

// Names returns the built-in scene names in registry order
func Names() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.info.ID
	}
	return names
}

// BuiltinScenes returns metadata for every built-in scene
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		infos[i] = b.info
	}
	return infos
}

// Build constructs the named built-in scene
func Build(name string, opts Options) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.build(opts)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}
