package dtl

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

//ReadNpy reads a two dimensional npy file into a matrix.
func ReadNpy(fileName string) (*mat.Dense, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fileName)
	}
	defer func() { _ = f.Close() }()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read npy header of %s", fileName)
	}

	denseMat := &mat.Dense{}
	if err := r.Read(denseMat); err != nil {
		return nil, errors.Wrapf(err, "read matrix from %s", fileName)
	}
	return denseMat, nil
}

//ReadNpyVector reads all values of an npy file regardless of its shape.
func ReadNpyVector(fileName string) ([]float64, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fileName)
	}
	defer func() { _ = f.Close() }()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read npy header of %s", fileName)
	}

	var values []float64
	if err := r.Read(&values); err != nil {
		return nil, errors.Wrapf(err, "read values from %s", fileName)
	}
	return values, nil
}

//ReadTable reads features and target npy files and unites them into one Table.
func ReadTable(fileNameFeatures, fileNameTarget string) (*Table, error) {
	features, err := ReadNpy(fileNameFeatures)
	if err != nil {
		return nil, err
	}
	target, err := ReadNpyVector(fileNameTarget)
	if err != nil {
		return nil, err
	}
	return NewTable(features, target)
}

//WriteNpy writes a matrix or a slice into an npy file.
func WriteNpy(fileName string, value interface{}) (err error) {
	dst, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "create %s", fileName)
	}
	defer func() {
		if closeErr := dst.Close(); err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "close %s", fileName)
		}
	}()

	return errors.Wrapf(npyio.Write(dst, value), "write %s", fileName)
}
