package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScene is returned by New for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Name accepted by New
	DisplayName string // Human readable name
	Description string
	create      func() *Scene
}

var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Description: "Metal and glossy spheres on a ground sphere under a sky gradient, with an orbiting camera",
		create:      NewDefaultScene,
	},
	{
		ID:          "cornell",
		Description: "Cornell box with a mirrored back wall and two circling spheres",
		create:      NewCornellScene,
	},
	{
		ID:          "mirrors",
		Description: "Two facing mirrors with a bouncing ball between them",
		create:      NewMirrorsScene,
	},
	{
		ID:          "single",
		Description: "A single diffuse unit sphere with one light",
		create:      NewSingleSphereScene,
	},
}

// ListScenes returns every built-in scene in registry order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	for i, info := range builtInScenes {
		info.DisplayName = titleCase(info.ID)
		scenes[i] = info
	}
	return scenes
}

// Names returns the IDs of the built-in scenes
func Names() []string {
	names := make([]string, len(builtInScenes))
	for i, info := range builtInScenes {
		names[i] = info.ID
	}
	return names
}

// New builds a fresh instance of the named built-in scene
func New(name string) (*Scene, error) {
	for _, info := range builtInScenes {
		if info.ID == name {
			return info.create(), nil
		}
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// titleCase converts an identifier-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
