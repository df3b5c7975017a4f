package fonts

import (
	"os"

	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/wordgraph/pkg/errors"
)

// FaceInfo describes one face of a font collection.
type FaceInfo struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Family string `json:"family"`
}

// Collection lists the faces of a TrueType collection (.ttc). The index of a
// face is the value to pass to [Load].
func Collection(path string) ([]FaceInfo, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if !isCollection(path) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "not a font collection: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read font %s", path)
	}

	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse font collection %s", path)
	}

	faces := make([]FaceInfo, 0, c.NumFonts())
	for i := range c.NumFonts() {
		face, err := c.Font(i)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "load face %d of %s", i, path)
		}
		name, family := faceNames(face)
		faces = append(faces, FaceInfo{Index: i, Name: name, Family: family})
	}
	return faces, nil
}
