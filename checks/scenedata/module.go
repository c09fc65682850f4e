// Package scenedata registers the shared data providers that derive named
// datasets from the scene snapshot. Checks declare these keys as data
// dependencies instead of touching the snapshot directly, so any dataset is
// computed at most once per run no matter how many checks consume it.
package scenedata

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/assetcheck/internal/check"
	"github.com/vk/assetcheck/internal/registry"
	"github.com/vk/assetcheck/internal/scene"
)

// Data keys provided by this package.
const (
	// KeyScene is the raw snapshot document. It cannot be derived: the host
	// binding (or a test fixture) must seed it as check data.
	KeyScene = "scene"

	KeyObjects            = "objects"
	KeyMaterials          = "materials"
	KeyTextures           = "textures"
	KeyTriangleCounts     = "triangleCounts"
	KeySceneTriangleTotal = "sceneTriangleTotal"
	KeyUVChannelCounts    = "uvChannelCounts"
	KeySceneName          = "sceneName"
	KeyDisplayUnit        = "displayUnit"
)

// ErrNoScene is returned when no scene snapshot was seeded for the run.
var ErrNoScene = errors.New("no scene snapshot supplied; seed the \"scene\" data key")

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every provider with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterProvider(KeyScene, func(ctx context.Context, data check.DataSource) (any, error) {
		return nil, ErrNoScene
	})

	r.RegisterProvider(KeyObjects, func(ctx context.Context, data check.DataSource) (any, error) {
		doc, err := Scene(ctx, data)
		if err != nil {
			return nil, err
		}
		return doc.Objects, nil
	})

	r.RegisterProvider(KeyMaterials, func(ctx context.Context, data check.DataSource) (any, error) {
		doc, err := Scene(ctx, data)
		if err != nil {
			return nil, err
		}
		return doc.Materials, nil
	})

	r.RegisterProvider(KeyTextures, func(ctx context.Context, data check.DataSource) (any, error) {
		doc, err := Scene(ctx, data)
		if err != nil {
			return nil, err
		}
		return doc.Textures, nil
	})

	r.RegisterProvider(KeyTriangleCounts, func(ctx context.Context, data check.DataSource) (any, error) {
		objects, err := Objects(ctx, data)
		if err != nil {
			return nil, err
		}
		counts := make(map[string]int, len(objects))
		for _, obj := range objects {
			counts[obj.Name] = obj.Triangles
		}
		return counts, nil
	})

	r.RegisterProvider(KeySceneTriangleTotal, func(ctx context.Context, data check.DataSource) (any, error) {
		counts, err := TriangleCounts(ctx, data)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		return total, nil
	})

	r.RegisterProvider(KeyUVChannelCounts, func(ctx context.Context, data check.DataSource) (any, error) {
		objects, err := Objects(ctx, data)
		if err != nil {
			return nil, err
		}
		counts := make(map[string]int, len(objects))
		for _, obj := range objects {
			counts[obj.Name] = len(obj.UVLayers)
		}
		return counts, nil
	})

	r.RegisterProvider(KeySceneName, func(ctx context.Context, data check.DataSource) (any, error) {
		doc, err := Scene(ctx, data)
		if err != nil {
			return nil, err
		}
		return doc.Name, nil
	})

	r.RegisterProvider(KeyDisplayUnit, func(ctx context.Context, data check.DataSource) (any, error) {
		doc, err := Scene(ctx, data)
		if err != nil {
			return nil, err
		}
		return doc.Settings.DisplayUnit, nil
	})
}

// Scene pulls the snapshot document through the data source.
func Scene(ctx context.Context, data check.DataSource) (*scene.Document, error) {
	v, err := data.Require(ctx, KeyScene)
	if err != nil {
		return nil, err
	}
	doc, ok := v.(*scene.Document)
	if !ok {
		return nil, fmt.Errorf("data key %q holds %T, expected *scene.Document", KeyScene, v)
	}
	return doc, nil
}

// Objects pulls the object list through the data source.
func Objects(ctx context.Context, data check.DataSource) ([]scene.Object, error) {
	v, err := data.Require(ctx, KeyObjects)
	if err != nil {
		return nil, err
	}
	objects, ok := v.([]scene.Object)
	if !ok {
		return nil, fmt.Errorf("data key %q holds %T, expected []scene.Object", KeyObjects, v)
	}
	return objects, nil
}

// SceneTriangleTotal pulls the scene-wide triangle total through the data
// source.
func SceneTriangleTotal(ctx context.Context, data check.DataSource) (int, error) {
	v, err := data.Require(ctx, KeySceneTriangleTotal)
	if err != nil {
		return 0, err
	}
	total, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("data key %q holds %T, expected int", KeySceneTriangleTotal, v)
	}
	return total, nil
}

// SceneName pulls the snapshot's scene name through the data source.
func SceneName(ctx context.Context, data check.DataSource) (string, error) {
	v, err := data.Require(ctx, KeySceneName)
	if err != nil {
		return "", err
	}
	name, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("data key %q holds %T, expected string", KeySceneName, v)
	}
	return name, nil
}

// TriangleCounts pulls the per-object triangle counts through the data source.
func TriangleCounts(ctx context.Context, data check.DataSource) (map[string]int, error) {
	v, err := data.Require(ctx, KeyTriangleCounts)
	if err != nil {
		return nil, err
	}
	counts, ok := v.(map[string]int)
	if !ok {
		return nil, fmt.Errorf("data key %q holds %T, expected map[string]int", KeyTriangleCounts, v)
	}
	return counts, nil
}

// Materials pulls the material list through the data source.
func Materials(ctx context.Context, data check.DataSource) ([]scene.Material, error) {
	v, err := data.Require(ctx, KeyMaterials)
	if err != nil {
		return nil, err
	}
	materials, ok := v.([]scene.Material)
	if !ok {
		return nil, fmt.Errorf("data key %q holds %T, expected []scene.Material", KeyMaterials, v)
	}
	return materials, nil
}

// Textures pulls the texture list through the data source.
func Textures(ctx context.Context, data check.DataSource) ([]scene.Texture, error) {
	v, err := data.Require(ctx, KeyTextures)
	if err != nil {
		return nil, err
	}
	textures, ok := v.([]scene.Texture)
	if !ok {
		return nil, fmt.Errorf("data key %q holds %T, expected []scene.Texture", KeyTextures, v)
	}
	return textures, nil
}
