package gosie3d

import "image/color"

// BspNode holds one face of a model's BSP tree. Faces on the back of the
// node's plane are in Left, faces in front are in Right.
type BspNode struct {
	Left  *BspNode
	Right *BspNode

	col              color.RGBA
	facePointIndices []int
	normalIndex      int
	pointsToUse      [][]float64 // temp buffer
}

func NewBspNode(faceColor color.RGBA, pointIndices []int, normalIdx int) *BspNode {
	return &BspNode{
		col:              faceColor,
		facePointIndices: pointIndices,
		normalIndex:      normalIdx,
		pointsToUse:      make([][]float64, 0, len(pointIndices)),
	}
}

func (b *BspNode) facePoints(transPoints *Matrix) [][]float64 {
	b.pointsToUse = b.pointsToUse[:0]
	for _, idx := range b.facePointIndices {
		b.pointsToUse = append(b.pointsToUse, transPoints.ThisMatrix[idx])
	}
	return b.pointsToUse
}

// paint draws the tree back to front for a viewer at the camera space origin.
func (b *BspNode) paint(rc *renderContext, o *Model) {
	if b == nil {
		return
	}
	points := b.facePoints(o.transFaceMesh.Points)
	normal := o.transNormalMesh.Points.ThisMatrix[b.normalIndex]

	if dot3(normal, points[0]) < 0 {
		// viewer is in front of this face
		b.Left.paint(rc, o)
		o.paintFace(rc, points, normal, b.col)
		b.Right.paint(rc, o)
		return
	}

	b.Right.paint(rc, o)
	if o.drawAllFaces {
		o.paintFace(rc, points, normal, b.col)
	}
	b.Left.paint(rc, o)
}

// walk visits every node in the tree, in no particular order.
func (b *BspNode) walk(fn func(*BspNode)) {
	if b == nil {
		return
	}
	fn(b)
	b.Left.walk(fn)
	b.Right.walk(fn)
}

// Count returns the number of nodes in the tree.
func (b *BspNode) Count() int {
	n := 0
	b.walk(func(*BspNode) { n++ })
	return n
}
