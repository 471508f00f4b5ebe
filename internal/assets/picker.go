package assets

import (
	"errors"

	"github.com/ncruces/zenity"
)

// PickModel asks for a model file with the native open dialog. ok is false if
// the user cancels.
func PickModel() (path string, ok bool, err error) {
	path, err = zenity.SelectFile(
		zenity.Title("Open Model"),
		zenity.FileFilters{{
			Name:     "Models",
			Patterns: []string{"*.gltf", "*.glb", "*.ply", "*.dxf"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", false, nil
		}
		return "", false, err
	}
	return path, true, nil
}
