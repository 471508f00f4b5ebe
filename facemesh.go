package gosie3d

func NewFaceMesh() *FaceMesh {
	return &FaceMesh{Mesh: *NewMesh()}
}

type FaceMesh struct {
	Mesh
}

// AddFace adds the face's points to the mesh and returns a face sharing the
// mesh's points, with the index of each point.
func (fm *FaceMesh) AddFace(f *Face) (*Face, []int) {
	newPoints := make([][]float64, len(f.Points))
	indices := make([]int, len(f.Points))
	for i, p := range f.Points {
		newPoints[i], indices[i] = fm.AddPoint(p)
	}
	return NewFace(newPoints, f.Col, f.GetNormal()), indices
}

func (fm *FaceMesh) Copy() *FaceMesh {
	return &FaceMesh{Mesh: *fm.Mesh.Copy()}
}
