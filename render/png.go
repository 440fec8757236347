package render

import (
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera of STLToPNG. The mesh is first scaled into a
// bi-unit cube centered at the origin.
type View struct {
	Width, Height int     // output size in pixels
	Supersample   int     // render scale before downsampling, 1 if zero
	FOVY          float64 // vertical field of view in degrees
	Near, Far     float64
	Eye           r3.Vec // camera position
	LookAt        r3.Vec // view center position
	Up            r3.Vec
	Color         string // object color as hex
	Background    string // background color as hex
}

// DefaultView looks down at the xy plane from above and slightly in front.
var DefaultView = View{
	Width:       800,
	Height:      600,
	Supersample: 2,
	FOVY:        30,
	Near:        1,
	Far:         10,
	Eye:         r3.Vec{X: 0, Y: -2.5, Z: 3},
	Up:          r3.Vec{Z: 1},
	Color:       "#468966",
	Background:  "#FFF8E3",
}

// STLToPNG renders the STL file at stlPath with a Phong shader and writes
// a PNG image to pngPath.
func STLToPNG(stlPath, pngPath string, view View) error {
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	scale := view.Supersample
	if scale < 1 {
		scale = 1
	}
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor(view.Background))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(view.FOVY, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(view.Color)
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(view.Width), uint(view.Height), image, resize.Bilinear)
	return fauxgl.SavePNG(pngPath, image)
}
