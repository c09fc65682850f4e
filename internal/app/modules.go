package app

import (
	"github.com/vk/assetcheck/checks/geometry"
	"github.com/vk/assetcheck/checks/naming"
	"github.com/vk/assetcheck/checks/scenedata"
	"github.com/vk/assetcheck/checks/textures"
	"github.com/vk/assetcheck/checks/transforms"
	"github.com/vk/assetcheck/checks/uv"
	"github.com/vk/assetcheck/internal/registry"
)

// coreModules is the definitive list of all check modules that are compiled
// into the assetcheck binary.
var coreModules = []registry.Module{
	&scenedata.Module{},
	&geometry.Module{},
	&uv.Module{},
	&textures.Module{},
	&naming.Module{},
	&transforms.Module{},
}
