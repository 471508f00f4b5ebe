package gosie3d

// Mesh is a list of unique points. Faces refer to points by index so a shared
// vertex is only transformed once per frame.
type Mesh struct {
	Points     *Matrix
	pointIndex map[[3]float64]int
}

func NewMesh() *Mesh {
	return &Mesh{
		Points:     NewMatrix(),
		pointIndex: make(map[[3]float64]int),
	}
}

func (m *Mesh) AddPoint(point []float64) ([]float64, int) {
	pointKey := [3]float64{point[0], point[1], point[2]}

	if index, found := m.pointIndex[pointKey]; found {
		return m.Points.ThisMatrix[index], index
	}

	pointCopy := make([]float64, 4)
	copy(pointCopy, point)
	if len(point) < 4 {
		pointCopy[3] = 1.0
	}
	m.Points.AddRow(pointCopy)
	newIndex := len(m.Points.ThisMatrix) - 1
	m.pointIndex[pointKey] = newIndex

	return pointCopy, newIndex
}

func (m *Mesh) Len() int {
	return len(m.Points.ThisMatrix)
}

func (m *Mesh) Copy() *Mesh {
	newPointIndex := make(map[[3]float64]int, len(m.pointIndex))
	for key, value := range m.pointIndex {
		newPointIndex[key] = value
	}

	return &Mesh{
		Points:     m.Points.Copy(),
		pointIndex: newPointIndex,
	}
}
