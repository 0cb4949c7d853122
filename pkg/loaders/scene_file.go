package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// SceneFile is a scene description loaded from YAML, with every object built
type SceneFile struct {
	Name        string
	Description string
	Camera      renderer.CameraConfig // AspectRatio is left for the caller to set
	Background  bool                  // Sky gradient for rays that escape
	Objects     []geometry.Hitable
}

// ErrUnknownType is returned for an object, material or texture type the loader does not know
var ErrUnknownType = errors.New("unknown type")

type vec3 [3]float64

func (v vec3) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type sceneDoc struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Group       string                 `yaml:"group"`
	Camera      cameraDoc              `yaml:"camera"`
	Background  bool                   `yaml:"background"`
	Materials   map[string]materialDoc `yaml:"materials"`
	Objects     []objectDoc            `yaml:"objects"`
}

type cameraDoc struct {
	LookFrom      vec3        `yaml:"look_from"`
	LookAt        vec3        `yaml:"look_at"`
	Up            *vec3       `yaml:"up"`
	VFov          float64     `yaml:"vfov"`
	Aperture      float64     `yaml:"aperture"`
	FocusDistance float64     `yaml:"focus_distance"`
	Shutter       *[2]float64 `yaml:"shutter"`
}

type objectDoc struct {
	Type     string       `yaml:"type"`
	Material *materialDoc `yaml:"material"`

	// sphere, moving_sphere; keyframe times default to the camera shutter
	Center  vec3     `yaml:"center"`
	Center1 vec3     `yaml:"center1"`
	Radius  float64  `yaml:"radius"`
	Time0   *float64 `yaml:"time0"`
	Time1   *float64 `yaml:"time1"`

	// axis-aligned rectangles use the two bounds of their plane and k
	X0 float64 `yaml:"x0"`
	X1 float64 `yaml:"x1"`
	Y0 float64 `yaml:"y0"`
	Y1 float64 `yaml:"y1"`
	Z0 float64 `yaml:"z0"`
	Z1 float64 `yaml:"z1"`
	K  float64 `yaml:"k"`

	// plane
	Point  vec3 `yaml:"point"`
	Normal vec3 `yaml:"normal"`

	// cuboid
	Min vec3 `yaml:"min"`
	Max vec3 `yaml:"max"`

	// triangle, mesh
	Vertices []vec3 `yaml:"vertices"`
	Faces    []int  `yaml:"faces"`
	File     string `yaml:"file"`

	// wrappers
	Offset  vec3        `yaml:"offset"`
	Angle   float64     `yaml:"angle"`
	Density float64     `yaml:"density"`
	Albedo  *textureDoc `yaml:"albedo"`
	Object  *objectDoc  `yaml:"object"`
	Objects []objectDoc `yaml:"objects"`
}

// materialDoc is either an inline mapping or the name of an entry in the
// top-level materials section
type materialDoc struct {
	Ref string

	Type     string      `yaml:"type"`
	Color    *vec3       `yaml:"color"`
	Texture  *textureDoc `yaml:"texture"`
	Fuzz     float64     `yaml:"fuzz"`
	Index    float64     `yaml:"index"`
	Emission *vec3       `yaml:"emission"`
}

func (m *materialDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		m.Ref = node.Value
		return nil
	}
	type plain materialDoc
	return decodeStrict(node, (*plain)(m))
}

// decodeStrict decodes node rejecting unknown keys. Node.Decode does not
// carry the KnownFields setting of the outer decoder.
func decodeStrict(node *yaml.Node, out interface{}) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(out)
}

type textureDoc struct {
	Type  string      `yaml:"type"`
	Color vec3        `yaml:"color"`
	Even  *textureDoc `yaml:"even"`
	Odd   *textureDoc `yaml:"odd"`
	Scale float64     `yaml:"scale"`
	File  string      `yaml:"file"`
}

// LoadSceneFile reads and builds a YAML scene. Relative texture and mesh
// paths resolve against the scene file's directory. The sampler seeds
// noise textures and internal mesh BVHs.
func LoadSceneFile(filename string, sampler core.Sampler) (*SceneFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	scene, err := ParseSceneFile(data, filepath.Dir(filename), sampler)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return scene, nil
}

// ParseSceneFile builds a scene from YAML bytes
func ParseSceneFile(data []byte, baseDir string, sampler core.Sampler) (*SceneFile, error) {
	var doc sceneDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if len(doc.Objects) == 0 {
		return nil, fmt.Errorf("scene has no objects")
	}

	camera := doc.Camera.config()
	b := &sceneBuilder{
		shutter:   [2]float64{camera.Time0, camera.Time1},
		baseDir:   baseDir,
		sampler:   sampler,
		materials: doc.Materials,
		images:    make(map[string]*material.ImageTexture),
	}

	scene := &SceneFile{
		Name:        doc.Name,
		Description: doc.Description,
		Camera:      camera,
		Background:  doc.Background,
	}
	for i := range doc.Objects {
		object, err := b.object(&doc.Objects[i])
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		scene.Objects = append(scene.Objects, object)
	}
	return scene, nil
}

func (c cameraDoc) config() renderer.CameraConfig {
	config := renderer.CameraConfig{
		LookFrom:      c.LookFrom.toVec3(),
		LookAt:        c.LookAt.toVec3(),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          c.VFov,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
		Time0:         0,
		Time1:         1,
	}
	if c.Up != nil {
		config.Up = c.Up.toVec3()
	}
	if config.VFov == 0 {
		config.VFov = 40
	}
	if config.FocusDistance == 0 {
		config.FocusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}
	if c.Shutter != nil {
		config.Time0, config.Time1 = c.Shutter[0], c.Shutter[1]
	}
	return config
}

type sceneBuilder struct {
	shutter   [2]float64
	baseDir   string
	sampler   core.Sampler
	materials map[string]materialDoc
	images    map[string]*material.ImageTexture
}

func (b *sceneBuilder) path(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(b.baseDir, file)
}

func (b *sceneBuilder) object(o *objectDoc) (geometry.Hitable, error) {
	switch o.Type {
	case "translate", "rotate_y", "flip", "constant_medium":
		return b.wrapper(o)
	case "list", "bvh":
		return b.group(o)
	}

	mat, err := b.material(o.Material)
	if err != nil {
		return nil, err
	}

	switch o.Type {
	case "sphere":
		return geometry.NewSphere(o.Center.toVec3(), o.Radius, mat), nil
	case "moving_sphere":
		return b.movingSphere(o, mat)
	case "xy_rect":
		return geometry.NewXYRect(o.X0, o.X1, o.Y0, o.Y1, o.K, mat), nil
	case "xz_rect":
		return geometry.NewXZRect(o.X0, o.X1, o.Z0, o.Z1, o.K, mat), nil
	case "yz_rect":
		return geometry.NewYZRect(o.Y0, o.Y1, o.Z0, o.Z1, o.K, mat), nil
	case "plane":
		return geometry.NewPlane(o.Point.toVec3(), o.Normal.toVec3(), mat), nil
	case "cuboid":
		return geometry.NewCuboid(o.Min.toVec3(), o.Max.toVec3(), mat, b.sampler), nil
	case "triangle":
		if len(o.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(o.Vertices))
		}
		return geometry.NewTriangle(o.Vertices[0].toVec3(), o.Vertices[1].toVec3(), o.Vertices[2].toVec3(), mat), nil
	case "mesh":
		return b.mesh(o, mat)
	}
	return nil, fmt.Errorf("%w: object %q", ErrUnknownType, o.Type)
}

func (b *sceneBuilder) movingSphere(o *objectDoc, mat material.Material) (geometry.Hitable, error) {
	time0, time1 := b.shutter[0], b.shutter[1]
	if o.Time0 != nil {
		time0 = *o.Time0
	}
	if o.Time1 != nil {
		time1 = *o.Time1
	}
	if !(time1 > time0) {
		return nil, fmt.Errorf("moving_sphere needs time1 > time0, got %g and %g", time0, time1)
	}
	return geometry.NewMovingSphere(o.Center.toVec3(), o.Center1.toVec3(), time0, time1, o.Radius, mat), nil
}

func (b *sceneBuilder) wrapper(o *objectDoc) (geometry.Hitable, error) {
	if o.Object == nil {
		return nil, fmt.Errorf("%s needs an object", o.Type)
	}
	inner, err := b.object(o.Object)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.Type, err)
	}

	switch o.Type {
	case "translate":
		return geometry.NewTranslate(inner, o.Offset.toVec3()), nil
	case "rotate_y":
		return geometry.NewRotateY(inner, o.Angle), nil
	case "flip":
		return geometry.NewFlipNormals(inner), nil
	}

	// constant_medium
	if o.Density <= 0 {
		return nil, fmt.Errorf("constant_medium density must be positive, got %v", o.Density)
	}
	albedo := material.Texture(material.NewSolidColor(core.NewVec3(1, 1, 1)))
	if o.Albedo != nil {
		if albedo, err = b.texture(o.Albedo); err != nil {
			return nil, err
		}
	}
	return geometry.NewConstantMedium(inner, o.Density, albedo), nil
}

func (b *sceneBuilder) group(o *objectDoc) (geometry.Hitable, error) {
	children := make([]geometry.Hitable, 0, len(o.Objects))
	for i := range o.Objects {
		child, err := b.object(&o.Objects[i])
		if err != nil {
			return nil, fmt.Errorf("%s item %d: %w", o.Type, i, err)
		}
		children = append(children, child)
	}
	if o.Type == "list" {
		return geometry.NewHitableList(children...), nil
	}
	node, err := geometry.NewBVHNode(children, b.shutter[0], b.shutter[1], b.sampler)
	if err != nil {
		return nil, fmt.Errorf("bvh: %w", err)
	}
	return node, nil
}

func (b *sceneBuilder) mesh(o *objectDoc, mat material.Material) (geometry.Hitable, error) {
	vertices := make([]core.Vec3, len(o.Vertices))
	for i, v := range o.Vertices {
		vertices[i] = v.toVec3()
	}
	faces := o.Faces

	if o.File != "" {
		data, err := LoadPLY(b.path(o.File))
		if err != nil {
			return nil, err
		}
		vertices, faces = data.Vertices, data.Faces
	}

	mesh, err := geometry.NewTriangleMesh(vertices, faces, mat, b.sampler)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	return mesh, nil
}

func (b *sceneBuilder) material(m *materialDoc) (material.Material, error) {
	if m == nil {
		return nil, fmt.Errorf("missing material")
	}
	if m.Ref != "" {
		named, ok := b.materials[m.Ref]
		if !ok {
			return nil, fmt.Errorf("undefined material %q", m.Ref)
		}
		if named.Ref != "" {
			return nil, fmt.Errorf("material %q refers to another material", m.Ref)
		}
		m = &named
	}

	switch m.Type {
	case "lambertian", "isotropic", "diffuse_light":
		texture, err := b.materialTexture(m)
		if err != nil {
			return nil, err
		}
		switch m.Type {
		case "lambertian":
			return material.NewTexturedLambertian(texture), nil
		case "isotropic":
			return material.NewIsotropic(texture), nil
		}
		return material.NewTexturedDiffuseLight(texture), nil
	case "metal":
		if m.Color == nil {
			return nil, fmt.Errorf("metal needs a color")
		}
		return material.NewMetal(m.Color.toVec3(), m.Fuzz), nil
	case "dielectric":
		if m.Index <= 0 {
			return nil, fmt.Errorf("dielectric index must be positive, got %v", m.Index)
		}
		return material.NewDielectric(m.Index), nil
	}
	return nil, fmt.Errorf("%w: material %q", ErrUnknownType, m.Type)
}

// materialTexture resolves color, emission or texture, in that order
func (b *sceneBuilder) materialTexture(m *materialDoc) (material.Texture, error) {
	switch {
	case m.Texture != nil:
		return b.texture(m.Texture)
	case m.Color != nil:
		return material.NewSolidColor(m.Color.toVec3()), nil
	case m.Emission != nil:
		return material.NewSolidColor(m.Emission.toVec3()), nil
	}
	return nil, fmt.Errorf("%s needs a color or texture", m.Type)
}

func (b *sceneBuilder) texture(t *textureDoc) (material.Texture, error) {
	switch t.Type {
	case "", "solid":
		return material.NewSolidColor(t.Color.toVec3()), nil
	case "checker":
		if t.Even == nil || t.Odd == nil {
			return nil, fmt.Errorf("checker needs even and odd textures")
		}
		even, err := b.texture(t.Even)
		if err != nil {
			return nil, err
		}
		odd, err := b.texture(t.Odd)
		if err != nil {
			return nil, err
		}
		return material.NewCheckerTexture(even, odd), nil
	case "noise":
		return material.NewNoiseTexture(b.sampler, t.Scale), nil
	case "image":
		path := b.path(t.File)
		if cached, ok := b.images[path]; ok {
			return cached, nil
		}
		texture, err := LoadImageTexture(path)
		if err != nil {
			return nil, err
		}
		b.images[path] = texture
		return texture, nil
	}
	return nil, fmt.Errorf("%w: texture %q", ErrUnknownType, t.Type)
}
