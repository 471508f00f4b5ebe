package gosie3d

import (
	"image/color"
	"log"
	"math"
)

// maxPlaneCandidates bounds how many faces choosePlane scores at each level
// of the BSP tree.
const maxPlaneCandidates = 16

// Model is a mesh of faces. Convex models are painted from a plain face list
// with back face culling, anything else through a BSP tree.
type Model struct {
	faceMesh           *FaceMesh
	normalMesh         *NormalMesh
	transFaceMesh      *FaceMesh
	transNormalMesh    *NormalMesh
	theFaces           *FaceStore
	root               *BspNode
	rotMatrix          *Matrix
	position           *Point3d
	canPaintWithoutBSP bool
	xLength            float64
	yLength            float64
	zLength            float64
	drawLinesOnly      bool

	// for when not using BSP
	faceIndicies   [][]int // Indices of the faces in the faceMesh
	normalIndicies []int
	faceColors     []color.RGBA

	drawAllFaces     bool // draw back faces too
	dontDrawOutlines bool

	col           color.RGBA
	hasColor      bool
	unlit         bool
	castShadow    bool
	receiveShadow bool

	Name string
}

func NewModel() *Model {
	return &Model{
		transFaceMesh:   NewFaceMesh(),
		transNormalMesh: NewNormalMesh(),
		theFaces:        NewFaceStore(),
		rotMatrix:       IdentMatrix(),
		faceIndicies:    make([][]int, 0),
		normalIndicies:  make([]int, 0),
	}
}

func (o *Model) SetDontDrawOutlines(dontDraw bool) {
	o.dontDrawOutlines = dontDraw
}

func (o *Model) SetDrawAllFaces(draw bool) {
	o.drawAllFaces = draw
}

func (o *Model) GetDrawAllFaces() bool {
	return o.drawAllFaces
}

// SetDrawLinesOnly switches the model between filled and wireframe painting.
func (o *Model) SetDrawLinesOnly(only bool) {
	o.drawLinesOnly = only
}

func (o *Model) GetDrawLinesOnly() bool {
	return o.drawLinesOnly
}

// SetColor paints every face with col instead of the colors it was built with.
func (o *Model) SetColor(col color.RGBA) {
	o.col = col
	o.hasColor = true
}

// GetColor returns the override color, if one is set.
func (o *Model) GetColor() (color.RGBA, bool) {
	return o.col, o.hasColor
}

// SetUnlit makes the model ignore lights. Fog still applies.
func (o *Model) SetUnlit(unlit bool) {
	o.unlit = unlit
}

func (o *Model) SetCastShadow(cast bool) {
	o.castShadow = cast
}

func (o *Model) CastShadow() bool {
	return o.castShadow
}

func (o *Model) SetReceiveShadow(receive bool) {
	o.receiveShadow = receive
}

func (o *Model) ReceiveShadow() bool {
	return o.receiveShadow
}

func (o *Model) SetRotMatrix(m *Matrix) {
	o.rotMatrix = m
}

func (o *Model) GetRotMatrix() *Matrix {
	if o.rotMatrix == nil {
		o.rotMatrix = IdentMatrix()
	}
	return o.rotMatrix
}

// SetRotation replaces the model's rotation with XYZ euler angles in radians.
func (o *Model) SetRotation(x, y, z float64) {
	o.rotMatrix = NewEulerMatrix(x, y, z)
}

func (o *Model) ApplyMatrix(m *Matrix) {
	o.rotMatrix = m.MultiplyBy(o.GetRotMatrix())
}

func (o *Model) RotateY(amountOfMovementInRads float64) {
	o.ApplyMatrix(NewRotationMatrix(ROTY, amountOfMovementInRads))
}

func (o *Model) GetPosition() *Point3d {
	if o.position == nil {
		o.position = NewPoint3d(0, 0, 0)
	}
	return o.position
}

func (o *Model) SetPosition(x, y, z float64) {
	if o.position == nil {
		o.position = NewPoint3d(x, y, z)
	} else {
		o.position.X = x
		o.position.Y = y
		o.position.Z = z
	}
}

// WorldMatrix returns the model to world transform.
func (o *Model) WorldMatrix() *Matrix {
	p := o.GetPosition()
	return TransMatrix(p.X, p.Y, p.Z).MultiplyBy(o.GetRotMatrix())
}

// AddFace adds a face to a model that has not been finished yet.
func (o *Model) AddFace(f *Face) {
	o.theFaces.AddFace(f)
}

// FaceCount returns the number of faces the model paints.
func (o *Model) FaceCount() int {
	if o.canPaintWithoutBSP {
		return len(o.faceIndicies)
	}
	return o.root.Count()
}

// PointCount returns the number of unique points in the model.
func (o *Model) PointCount() int {
	if o.faceMesh == nil {
		return 0
	}
	return o.faceMesh.Len()
}

// Clone returns a model sharing this model's geometry with its own position,
// rotation and flags.
func (o *Model) Clone() *Model {
	clone := *o

	clone.transFaceMesh = o.transFaceMesh.Copy()
	clone.transNormalMesh = o.transNormalMesh.Copy()
	clone.rotMatrix = o.GetRotMatrix().Copy()
	p := o.GetPosition()
	clone.position = NewPoint3d(p.X, p.Y, p.Z)
	return &clone
}

func (o *Model) CreateFaceList() {
	faces, newFaces, newNormMesh := o.theFaces, o.transFaceMesh, o.transNormalMesh
	for i := 0; i < faces.FaceCount(); i++ {
		originalFace := faces.GetFace(i)
		_, ind := newFaces.AddFace(originalFace)

		_, normalIndex := newNormMesh.AddNormal(originalFace.GetNormal())

		o.faceIndicies = append(o.faceIndicies, ind)
		o.normalIndicies = append(o.normalIndicies, normalIndex)
		o.faceColors = append(o.faceColors, originalFace.Col)
	}
}

// Finished builds the paint structure from the faces added so far. Use the
// BSP tree for anything that is not convex.
func (o *Model) Finished(centerObject bool, useBspTree bool) {
	if o.theFaces.FaceCount() > 0 {
		if useBspTree {
			log.Println("Creating BSP Tree...")
			o.root = o.createBspTree(o.theFaces, o.transFaceMesh, o.transNormalMesh)
			o.canPaintWithoutBSP = false
			log.Printf("BSP Tree Created. Nodes: %d", o.root.Count())
		} else {
			o.CreateFaceList()
			o.canPaintWithoutBSP = true
		}
	}

	o.faceMesh = o.transFaceMesh.Copy()
	o.normalMesh = o.transNormalMesh.Copy()

	if centerObject {
		o.CentreObject()
	}

	o.CalcSize()
}

func (o *Model) bounds() (min, max [3]float64, ok bool) {
	if o.faceMesh == nil || len(o.faceMesh.Points.ThisMatrix) == 0 {
		return min, max, false
	}
	for i := 0; i < 3; i++ {
		min[i] = math.Inf(1)
		max[i] = math.Inf(-1)
	}
	for _, point := range o.faceMesh.Points.ThisMatrix {
		for i := 0; i < 3; i++ {
			min[i] = math.Min(min[i], point[i])
			max[i] = math.Max(max[i], point[i])
		}
	}
	return min, max, true
}

// CentreObject moves all points so that 0,0,0 is the centre of the bounding
// box.
func (o *Model) CentreObject() {
	min, max, ok := o.bounds()
	if !ok {
		return
	}
	o.TranslateAllPoints(-(min[0]+max[0])/2, -(min[1]+max[1])/2, -(min[2]+max[2])/2)
}

func (o *Model) GetExtents() (float64, float64, float64) {
	return o.xLength, o.yLength, o.zLength
}

func (o *Model) CalcSize() {
	min, max, ok := o.bounds()
	if !ok {
		o.xLength, o.yLength, o.zLength = 0, 0, 0
		return
	}
	o.xLength = max[0] - min[0]
	o.yLength = max[1] - min[1]
	o.zLength = max[2] - min[2]
}

// FitToSize scales the model so its largest extent is size.
func (o *Model) FitToSize(size float64) {
	largest := math.Max(o.xLength, math.Max(o.yLength, o.zLength))
	if largest == 0 {
		return
	}
	o.ScaleAllPoints(size / largest)
	o.CalcSize()
}

func (o *Model) ScaleAllPoints(scale float64) {
	if o.faceMesh == nil {
		return
	}
	for i := range o.faceMesh.Points.ThisMatrix {
		o.faceMesh.Points.ThisMatrix[i][0] *= scale
		o.faceMesh.Points.ThisMatrix[i][1] *= scale
		o.faceMesh.Points.ThisMatrix[i][2] *= scale
	}
}

func (o *Model) TranslateAllPoints(x, y, z float64) {
	if o.faceMesh == nil {
		return
	}
	for i := range o.faceMesh.Points.ThisMatrix {
		o.faceMesh.Points.ThisMatrix[i][0] += x
		o.faceMesh.Points.ThisMatrix[i][1] += y
		o.faceMesh.Points.ThisMatrix[i][2] += z
	}
}

// ApplyMatrixTemp transforms the model by aMatrix and its own rotation into
// the trans meshes, leaving the base geometry alone.
func (o *Model) ApplyMatrixTemp(aMatrix *Matrix) {
	rotMatrixTemp := aMatrix.MultiplyBy(o.GetRotMatrix())
	rotMatrixTemp.TransformNormals(o.normalMesh.Points, o.transNormalMesh.Points)
	rotMatrixTemp.TransformObj(o.faceMesh.Points, o.transFaceMesh.Points)
}

// ApplyMatrixPermanent bakes aMatrix into the base geometry.
func (o *Model) ApplyMatrixPermanent(aMatrix *Matrix) {
	aMatrix.TransformNormals(o.normalMesh.Points, o.normalMesh.Points)
	aMatrix.TransformObj(o.faceMesh.Points, o.faceMesh.Points)
	for _, n := range o.normalMesh.Points.ThisMatrix {
		v := NewVector3(n[0], n[1], n[2])
		v.Normalize()
		n[0], n[1], n[2] = v.X, v.Y, v.Z
	}
	o.CalcSize()
}

func (o *Model) createBspTree(faces *FaceStore, newFaces *FaceMesh, newNormMesh *NormalMesh) *BspNode {
	if faces.FaceCount() == 0 {
		return nil
	}

	parentFace := o.choosePlane(faces)
	_, normalIndex := newNormMesh.AddNormal(parentFace.GetNormal())
	_, parentIndices := newFaces.AddFace(parentFace)
	parent := NewBspNode(parentFace.Col, parentIndices, normalIndex)
	pPlane := parentFace.GetPlane()

	fvLeft := NewFaceStore()
	fvRight := NewFaceStore()

	for a := 0; a < faces.FaceCount(); a++ {
		currentFace := faces.GetFace(a)
		if !pPlane.FaceIntersect(currentFace) {
			if pPlane.Where(currentFace) <= 0 {
				fvLeft.AddFace(currentFace)
			} else {
				fvRight.AddFace(currentFace)
			}
			continue
		}

		for _, facePart := range pPlane.SplitFace(currentFace) {
			if facePart == nil {
				continue
			}
			part := NewFace(facePart.Points, currentFace.Col, currentFace.GetNormal())
			if pPlane.Where(facePart) <= 0 {
				fvLeft.AddFace(part)
			} else {
				fvRight.AddFace(part)
			}
		}
	}

	parent.Left = o.createBspTree(fvLeft, newFaces, newNormMesh)
	parent.Right = o.createBspTree(fvRight, newFaces, newNormMesh)
	return parent
}

// choosePlane removes and returns the face whose plane splits the fewest
// others, scoring at most maxPlaneCandidates faces.
func (o *Model) choosePlane(fs *FaceStore) *Face {
	count := fs.FaceCount()
	stride := 1
	if count > maxPlaneCandidates {
		stride = count / maxPlaneCandidates
	}

	leastFace, leastFaceTotal := 0, count+1
	for chosen := 0; chosen < count; chosen += stride {
		total := 0
		p := fs.GetFace(chosen).GetPlane()
		for i := 0; i < count; i++ {
			if i != chosen && p.FaceIntersect(fs.GetFace(i)) {
				total++
			}
		}
		if total < leastFaceTotal {
			leastFaceTotal = total
			leastFace = chosen
			if total == 0 {
				break
			}
		}
	}
	return fs.RemoveFaceAt(leastFace)
}

// eachFace calls fn with the mesh indices, normal index and color of every
// face.
func (o *Model) eachFace(fn func(indices []int, normalIndex int, col color.RGBA)) {
	if o.canPaintWithoutBSP {
		for i, indices := range o.faceIndicies {
			fn(indices, o.normalIndicies[i], o.faceColors[i])
		}
		return
	}
	o.root.walk(func(b *BspNode) {
		fn(b.facePointIndices, b.normalIndex, b.col)
	})
}

func (o *Model) style() faceStyle {
	return faceStyle{
		unlit:      o.unlit,
		linesOnly:  o.drawLinesOnly,
		noOutlines: o.dontDrawOutlines,
	}
}

// cameraDepth returns the camera space depth of the model's position.
func (o *Model) cameraDepth(camMatrix *Matrix) float64 {
	p := o.GetPosition()
	_, _, z := camMatrix.TransformPoint(p.X, p.Y, p.Z)
	return z
}

// paint transforms the model into camera space and adds its visible faces
// to the batch.
func (o *Model) paint(rc *renderContext, camMatrix *Matrix) {
	if o.faceMesh == nil {
		return
	}
	p := o.GetPosition()
	o.ApplyMatrixTemp(camMatrix.MultiplyBy(TransMatrix(p.X, p.Y, p.Z)))

	if !o.canPaintWithoutBSP {
		o.root.paint(rc, o)
		return
	}

	points := make([][]float64, 0, 8)
	for i, faceIndices := range o.faceIndicies {
		points = points[:0]
		for _, index := range faceIndices {
			points = append(points, o.transFaceMesh.Points.ThisMatrix[index])
		}
		normal := o.transNormalMesh.Points.ThisMatrix[o.normalIndicies[i]]
		o.paintFace(rc, points, normal, o.faceColors[i])
	}
}

// paintFace culls faces pointing away from the viewer, unless the model is
// double sided, in which case their normal is turned round for lighting.
func (o *Model) paintFace(rc *renderContext, points [][]float64, normal []float64, col color.RGBA) {
	if len(points) < 3 {
		return
	}
	if dot3(normal, points[0]) >= 0 {
		if !o.drawAllFaces {
			return
		}
		normal = []float64{-normal[0], -normal[1], -normal[2]}
	}
	if o.hasColor {
		col = o.col
	}
	rc.paintPolygon(points, normal, col, o.style())
}
