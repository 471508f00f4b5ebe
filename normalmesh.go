package gosie3d

func NewNormalMesh() *NormalMesh {
	return &NormalMesh{Mesh: *NewMesh()}
}

type NormalMesh struct {
	Mesh
}

func (nm *NormalMesh) AddNormal(normal *Vector3) ([]float64, int) {
	return nm.AddPoint(normal.Slice())
}

func (nm *NormalMesh) Copy() *NormalMesh {
	return &NormalMesh{Mesh: *nm.Mesh.Copy()}
}
