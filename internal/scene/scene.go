// Package scene defines the snapshot document that host 3D environments (or
// test fixtures) supply to the engine. The engine itself never inspects a
// live scene: an exporter in the DCC application serializes this snapshot,
// and data providers derive the shared datasets checks consume from it.
package scene

// Object is one scene object with its precomputed geometry statistics.
type Object struct {
	Name            string    `json:"name"`
	Parent          string    `json:"parent,omitempty"`
	Triangles       int       `json:"triangles"`
	Ngons           int       `json:"ngons"`
	ZeroAreaFaces   int       `json:"zero_area_faces"`
	ZeroLengthEdges int       `json:"zero_length_edges"`
	Position        []float64 `json:"position,omitempty"`
	UVLayers        []UVLayer `json:"uv_layers,omitempty"`
	Materials       []string  `json:"materials,omitempty"`
}

// UVLayer holds the bounds of one UV channel's coordinates.
type UVLayer struct {
	Name string  `json:"name"`
	MinU float64 `json:"min_u"`
	MinV float64 `json:"min_v"`
	MaxU float64 `json:"max_u"`
	MaxV float64 `json:"max_v"`
}

// Material is a named material and the textures it references.
type Material struct {
	Name     string   `json:"name"`
	Textures []string `json:"textures,omitempty"`
}

// Texture is a texture file referenced by the asset.
type Texture struct {
	Name   string `json:"name"`
	Path   string `json:"path,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Settings carries scene-level configuration relevant to checks.
type Settings struct {
	Unit        string `json:"unit,omitempty"`
	DisplayUnit string `json:"display_unit,omitempty"`
}

// Document is a complete scene snapshot.
type Document struct {
	Name      string     `json:"name"`
	Objects   []Object   `json:"objects"`
	Materials []Material `json:"materials,omitempty"`
	Textures  []Texture  `json:"textures,omitempty"`
	Settings  Settings   `json:"settings,omitempty"`
}
