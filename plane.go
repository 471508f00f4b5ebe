package gosie3d

import "math"

type Plane struct {
	A, B, C, D float64
}

const planeThickness = 0.01

func NewPlane(f *Face, normal *Vector3) *Plane {
	p := &Plane{
		A: normal.X,
		B: normal.Y,
		C: normal.Z,
	}
	p.D = -(p.A*f.Points[0][0] + p.B*f.Points[0][1] + p.C*f.Points[0][2])
	return p
}

// PointOnPlane returns the signed distance of the point, snapped to zero
// inside the plane's thickness.
func (p *Plane) PointOnPlane(x, y, z float64) float64 {
	num := p.A*x + p.B*y + p.C*z + p.D
	if math.Abs(num) < planeThickness {
		return 0.0
	}
	return num
}

func (p *Plane) LIntersect(p1, p2 *Point3d) bool {
	a := p.PointOnPlane(p1.GetX(), p1.GetY(), p1.GetZ())
	b := p.PointOnPlane(p2.GetX(), p2.GetY(), p2.GetZ())
	if a == 0 || b == 0 {
		return false
	}
	return (a > 0 && b < 0) || (a < 0 && b > 0)
}

func (p *Plane) LineIntersect(p1, p2 *Point3d) *Point3d {
	x1, y1, z1 := p1.GetX(), p1.GetY(), p1.GetZ()
	x2, y2, z2 := p2.GetX(), p2.GetY(), p2.GetZ()

	if !p.LIntersect(p1, p2) {
		return nil
	}
	denom := p.A*(x2-x1) + p.B*(y2-y1) + p.C*(z2-z1)
	if denom == 0 {
		return nil
	}
	t := -(p.A*x1 + p.B*y1 + p.C*z1 + p.D) / denom
	return NewPoint3d(x1+(x2-x1)*t, y1+(y2-y1)*t, z1+(z2-z1)*t)
}

// FaceIntersect reports whether the face has points strictly on both sides.
func (p *Plane) FaceIntersect(f *Face) bool {
	var front, back bool
	for _, pnt := range f.Points {
		n := p.PointOnPlane(pnt[0], pnt[1], pnt[2])
		if n > 0 {
			front = true
		} else if n < 0 {
			back = true
		}
		if front && back {
			return true
		}
	}
	return false
}

// SplitFace cuts the face in two along the plane. The second face is nil when
// the plane does not cross the face.
func (p *Plane) SplitFace(aFace *Face) []*Face {
	faces := make([]*Face, 2)

	if !p.FaceIntersect(aFace) {
		faces[0] = aFace
		return faces
	}

	faces[0] = NewFaceEmpty(aFace.Col, nil)
	faces[1] = NewFaceEmpty(aFace.Col, nil)

	cnum := len(aFace.Points)
	currentFace := 0
	pnts := NewClist(cnum)
	for i := 0; i < cnum; i++ {
		pnts.AddPoint(NewPoint3d(aFace.Points[i][0], aFace.Points[i][1], aFace.Points[i][2]))
	}

	for pnt := 0; pnt < cnum; pnt++ {
		p3d1 := pnts.NextPoint()
		p3d2 := pnts.NextPoint()
		pnts.Back()

		switch {
		case p.LIntersect(p3d1, p3d2):
			faces[currentFace].AddPoint(p3d1.X, p3d1.Y, p3d1.Z)
			if pointIntersect := p.LineIntersect(p3d1, p3d2); pointIntersect != nil {
				faces[currentFace].AddPoint(pointIntersect.X, pointIntersect.Y, pointIntersect.Z)
				currentFace = 1 - currentFace
				faces[currentFace].AddPoint(pointIntersect.X, pointIntersect.Y, pointIntersect.Z)
			}
		case p.PointOnPlane(p3d1.X, p3d1.Y, p3d1.Z) == 0:
			faces[currentFace].AddPoint(p3d1.X, p3d1.Y, p3d1.Z)
			currentFace = 1 - currentFace
			faces[currentFace].AddPoint(p3d1.X, p3d1.Y, p3d1.Z)
		default:
			faces[currentFace].AddPoint(p3d1.X, p3d1.Y, p3d1.Z)
		}
	}

	faces[0].Finished(FACE_NORMAL)
	faces[1].Finished(FACE_NORMAL)
	for i, f := range faces {
		if len(f.Points) < 3 {
			faces[i] = nil
		}
	}
	return faces
}

// Where sums the signed distances of the face's points. Positive means the
// face is in front of the plane.
func (p *Plane) Where(f *Face) float64 {
	var inter float64
	for i := 0; i < len(f.Points); i++ {
		inter += p.PointOnPlane(f.Points[i][0], f.Points[i][1], f.Points[i][2])
	}
	return inter
}

