package gosie3d

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

func NewMatrix() *Matrix {
	return &Matrix{
		ThisMatrix: make([][]float64, 0, 100),
	}
}

// Matrix is either a 4x4 transform stored column-major (ThisMatrix[col][row])
// or a list of homogeneous points, one per row.
type Matrix struct {
	ThisMatrix [][]float64
}

const (
	ROTX = 0
	ROTY = 1
	ROTZ = 2
)

func NewMatrixFromData(aMatrix [][]float64) *Matrix {
	m := &Matrix{
		ThisMatrix: make([][]float64, len(aMatrix)),
	}
	for i := range aMatrix {
		m.ThisMatrix[i] = make([]float64, len(aMatrix[i]))
		copy(m.ThisMatrix[i], aMatrix[i])
	}
	return m
}

func newMatrix4() [][]float64 {
	m := make([][]float64, 4)
	for i := range m {
		m[i] = make([]float64, 4)
	}
	return m
}

func NewRotationMatrix(aRotation int, theta float64) *Matrix {
	m := newMatrix4()
	c, s := math.Cos(theta), math.Sin(theta)
	switch aRotation {
	case ROTX:
		m[0][0] = 1.0
		m[1][1] = c
		m[2][1] = -s
		m[1][2] = s
		m[2][2] = c
	case ROTY:
		m[0][0] = c
		m[2][0] = s
		m[0][2] = -s
		m[2][2] = c
		m[1][1] = 1.0
	case ROTZ:
		m[2][2] = 1.0
		m[0][0] = c
		m[1][0] = -s
		m[0][1] = s
		m[1][1] = c
	}
	m[3][3] = 1.0
	return &Matrix{ThisMatrix: m}
}

// NewEulerMatrix returns Rx * Ry * Rz, the XYZ euler order.
func NewEulerMatrix(x, y, z float64) *Matrix {
	return NewRotationMatrix(ROTX, x).
		MultiplyBy(NewRotationMatrix(ROTY, y)).
		MultiplyBy(NewRotationMatrix(ROTZ, z))
}

func IdentMatrix() *Matrix {
	m := newMatrix4()
	m[0][0], m[1][1], m[2][2], m[3][3] = 1.0, 1.0, 1.0, 1.0
	return &Matrix{ThisMatrix: m}
}

func TransMatrix(x, y, z float64) *Matrix {
	nm := IdentMatrix()
	nm.ThisMatrix[3][0] = x
	nm.ThisMatrix[3][1] = y
	nm.ThisMatrix[3][2] = z
	return nm
}

func (m *Matrix) AddRow(row []float64) {
	m.ThisMatrix = append(m.ThisMatrix, row)
}

func (m *Matrix) MultiplyBy(aMatrix *Matrix) *Matrix {
	newMatrixData := make([][]float64, len(aMatrix.ThisMatrix))
	for i := range newMatrixData {
		newMatrixData[i] = make([]float64, 4)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < len(aMatrix.ThisMatrix); x++ {
			newMatrixData[x][y] = m.ThisMatrix[0][y]*aMatrix.ThisMatrix[x][0] +
				m.ThisMatrix[1][y]*aMatrix.ThisMatrix[x][1] +
				m.ThisMatrix[2][y]*aMatrix.ThisMatrix[x][2] +
				m.ThisMatrix[3][y]*aMatrix.ThisMatrix[x][3]
		}
	}
	return &Matrix{ThisMatrix: newMatrixData}
}

func (m *Matrix) TransformObj(src, dest *Matrix) {
	for x := 0; x < len(src.ThisMatrix); x++ {
		sx, sy, sz := src.ThisMatrix[x][0], src.ThisMatrix[x][1], src.ThisMatrix[x][2]
		dest.ThisMatrix[x][0] = m.ThisMatrix[0][0]*sx + m.ThisMatrix[1][0]*sy + m.ThisMatrix[2][0]*sz + m.ThisMatrix[3][0]
		dest.ThisMatrix[x][1] = m.ThisMatrix[0][1]*sx + m.ThisMatrix[1][1]*sy + m.ThisMatrix[2][1]*sz + m.ThisMatrix[3][1]
		dest.ThisMatrix[x][2] = m.ThisMatrix[0][2]*sx + m.ThisMatrix[1][2]*sy + m.ThisMatrix[2][2]*sz + m.ThisMatrix[3][2]
	}
}

// TransformNormals rotates direction vectors, ignoring the translation column.
func (m *Matrix) TransformNormals(src, dest *Matrix) {
	for x := 0; x < len(src.ThisMatrix); x++ {
		sx, sy, sz := src.ThisMatrix[x][0], src.ThisMatrix[x][1], src.ThisMatrix[x][2]
		dest.ThisMatrix[x][0] = m.ThisMatrix[0][0]*sx + m.ThisMatrix[1][0]*sy + m.ThisMatrix[2][0]*sz
		dest.ThisMatrix[x][1] = m.ThisMatrix[0][1]*sx + m.ThisMatrix[1][1]*sy + m.ThisMatrix[2][1]*sz
		dest.ThisMatrix[x][2] = m.ThisMatrix[0][2]*sx + m.ThisMatrix[1][2]*sy + m.ThisMatrix[2][2]*sz
	}
}

// TransformPoint applies the full transform to a single point.
func (m *Matrix) TransformPoint(x, y, z float64) (float64, float64, float64) {
	t := m.ThisMatrix
	return t[0][0]*x + t[1][0]*y + t[2][0]*z + t[3][0],
		t[0][1]*x + t[1][1]*y + t[2][1]*z + t[3][1],
		t[0][2]*x + t[1][2]*y + t[2][2]*z + t[3][2]
}

// RotateVector3 rotates a Vector3 by the matrix's 3x3 rotation component.
func (m *Matrix) RotateVector3(v *Vector3) *Vector3 {
	t := m.ThisMatrix
	return NewVector3(
		t[0][0]*v.X+t[1][0]*v.Y+t[2][0]*v.Z,
		t[0][1]*v.X+t[1][1]*v.Y+t[2][1]*v.Z,
		t[0][2]*v.X+t[1][2]*v.Y+t[2][2]*v.Z,
	)
}

func (m *Matrix) Copy() *Matrix {
	return NewMatrixFromData(m.ThisMatrix)
}

func (m *Matrix) String() string {
	var sb strings.Builder
	for i, row := range m.ThisMatrix {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, val := range row {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", val))
		}
	}
	return sb.String()
}

func ToGoSieMatrix(m mgl64.Mat4) *Matrix {
	return NewMatrixFromData(
		[][]float64{
			{m[0], m[1], m[2], m[3]},
			{m[4], m[5], m[6], m[7]},
			{m[8], m[9], m[10], m[11]},
			{m[12], m[13], m[14], m[15]},
		},
	)
}
