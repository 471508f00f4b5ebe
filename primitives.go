package gosie3d

import (
	"image/color"
	"math"
)

// addOrientedFace adds a face through pts, wound so its normal points away
// from centre.
func addOrientedFace(o *Model, col color.RGBA, centre *Vector3, pts ...[3]float64) {
	f := NewFaceEmpty(col, nil)
	for _, p := range pts {
		f.AddPoint(p[0], p[1], p[2])
	}
	f.Finished(FACE_NORMAL)
	if Dot(f.GetNormal(), Subtract(f.GetMidPoint(), centre)) < 0 {
		f.Reverse()
	}
	o.AddFace(f)
}

// NewBox returns a box of the given size centred on the origin.
func NewBox(width, height, depth float64, col color.RGBA) *Model {
	o := NewModel()
	x, y, z := width/2, height/2, depth/2
	c := NewVector3(0, 0, 0)

	addOrientedFace(o, col, c, [3]float64{-x, -y, z}, [3]float64{x, -y, z}, [3]float64{x, y, z}, [3]float64{-x, y, z})
	addOrientedFace(o, col, c, [3]float64{-x, -y, -z}, [3]float64{-x, y, -z}, [3]float64{x, y, -z}, [3]float64{x, -y, -z})
	addOrientedFace(o, col, c, [3]float64{x, -y, -z}, [3]float64{x, y, -z}, [3]float64{x, y, z}, [3]float64{x, -y, z})
	addOrientedFace(o, col, c, [3]float64{-x, -y, -z}, [3]float64{-x, -y, z}, [3]float64{-x, y, z}, [3]float64{-x, y, -z})
	addOrientedFace(o, col, c, [3]float64{-x, y, -z}, [3]float64{-x, y, z}, [3]float64{x, y, z}, [3]float64{x, y, -z})
	addOrientedFace(o, col, c, [3]float64{-x, -y, -z}, [3]float64{x, -y, -z}, [3]float64{x, -y, z}, [3]float64{-x, -y, z})

	o.Finished(false, false)
	return o
}

// NewPlaneMesh returns a flat rectangle in the XY plane facing +Z, split into
// widthSegments x heightSegments quads so lighting can vary across it.
func NewPlaneMesh(width, height float64, widthSegments, heightSegments int, col color.RGBA) *Model {
	widthSegments = max(widthSegments, 1)
	heightSegments = max(heightSegments, 1)

	o := NewModel()
	segW := width / float64(widthSegments)
	segH := height / float64(heightSegments)
	for iy := 0; iy < heightSegments; iy++ {
		y0 := -height/2 + float64(iy)*segH
		y1 := y0 + segH
		for ix := 0; ix < widthSegments; ix++ {
			x0 := -width/2 + float64(ix)*segW
			x1 := x0 + segW

			f := NewFaceEmpty(col, nil)
			f.AddPoint(x0, y0, 0)
			f.AddPoint(x1, y0, 0)
			f.AddPoint(x1, y1, 0)
			f.AddPoint(x0, y1, 0)
			f.Finished(FACE_NORMAL)
			o.AddFace(f)
		}
	}

	o.Finished(false, false)
	return o
}

// NewSphere returns a UV sphere. Quads touching the poles are triangles.
func NewSphere(radius float64, widthSegments, heightSegments int, col color.RGBA) *Model {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	// poles and the seam are shared exactly so the mesh can merge them
	vertex := func(ix, iy int) [3]float64 {
		switch iy {
		case 0:
			return [3]float64{0, radius, 0}
		case heightSegments:
			return [3]float64{0, -radius, 0}
		}
		ix %= widthSegments
		u := float64(ix) / float64(widthSegments)
		v := float64(iy) / float64(heightSegments)
		phi := u * 2 * math.Pi
		theta := v * math.Pi
		return [3]float64{
			-radius * math.Cos(phi) * math.Sin(theta),
			radius * math.Cos(theta),
			radius * math.Sin(phi) * math.Sin(theta),
		}
	}

	o := NewModel()
	c := NewVector3(0, 0, 0)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := vertex(ix, iy)
			b := vertex(ix+1, iy)
			d := vertex(ix, iy+1)
			e := vertex(ix+1, iy+1)

			switch {
			case iy == 0:
				addOrientedFace(o, col, c, a, d, e)
			case iy == heightSegments-1:
				addOrientedFace(o, col, c, a, d, b)
			default:
				addOrientedFace(o, col, c, a, d, e, b)
			}
		}
	}

	o.Finished(false, false)
	return o
}
