// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/tarstars/binary_decision_tree/golang/decision_tree/dtl"
	"gonum.org/v1/gonum/mat"
)

var (
	handleMu   sync.Mutex
	nextHandle uint64 = 1
	trees             = make(map[uint64]*dtl.Tree)

	lastErrorMu sync.Mutex
	lastError   string
)

func setLastError(err error) {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

func getLastError() string {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError
}

//recoverInto turns a contract violation raised by the library into the last error.
func recoverInto(code *C.int) {
	if r := recover(); r != nil {
		if err, ok := r.(error); ok {
			setLastError(err)
		} else {
			setLastError(fmt.Errorf("%v", r))
		}
		if code != nil {
			*code = -1
		}
	}
}

func storeTree(tree *dtl.Tree) uint64 {
	handleMu.Lock()
	defer handleMu.Unlock()
	handle := nextHandle
	trees[handle] = tree
	nextHandle++
	return handle
}

func fetchTree(handle uint64) (*dtl.Tree, error) {
	handleMu.Lock()
	defer handleMu.Unlock()
	tree, ok := trees[handle]
	if !ok {
		return nil, errors.New("invalid tree handle")
	}
	return tree, nil
}

//export FreeModel
func FreeModel(handle C.ulonglong) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(trees, uint64(handle))
}

func copyFloatSlice(ptr *C.double, length int) ([]float64, error) {
	if length < 0 {
		return nil, errors.New("negative length")
	}
	if length == 0 {
		return nil, nil
	}
	if ptr == nil {
		return nil, errors.New("null pointer for non-empty slice")
	}
	src := unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length)
	dst := make([]float64, length)
	copy(dst, src)
	return dst, nil
}

func sliceFromPtr(ptr *C.double, length int) ([]float64, error) {
	if length < 0 {
		return nil, errors.New("negative length")
	}
	if length == 0 {
		return nil, nil
	}
	if ptr == nil {
		return nil, errors.New("null pointer for non-empty slice")
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length), nil
}

func buildDense(ptr *C.double, rows, cols C.int) (*mat.Dense, error) {
	r := int(rows)
	c := int(cols)
	if r <= 0 || c <= 0 {
		return nil, errors.New("invalid matrix dimensions")
	}
	data, err := copyFloatSlice(ptr, r*c)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(r, c, data), nil
}

func buildCriterion(kind C.int) (dtl.Criterion, error) {
	switch kind {
	case 0:
		return dtl.Mse{}, nil
	case 1:
		return dtl.Gini{}, nil
	default:
		return nil, errors.New("unsupported criterion kind")
	}
}

//export FitModel
func FitModel(
	featuresPtr *C.double,
	rows C.int,
	cols C.int,
	targetPtr *C.double,
	criterionKind C.int,
	classification C.int,
) (handle C.ulonglong) {
	setLastError(nil)
	defer recoverInto(nil)

	features, err := buildDense(featuresPtr, rows, cols)
	if err != nil {
		setLastError(err)
		return 0
	}

	target, err := copyFloatSlice(targetPtr, int(rows))
	if err != nil {
		setLastError(err)
		return 0
	}

	criterion, err := buildCriterion(criterionKind)
	if err != nil {
		setLastError(err)
		return 0
	}

	table, err := dtl.NewTable(features, target)
	if err != nil {
		setLastError(err)
		return 0
	}

	tree := dtl.Fit(table, criterion, classification != 0)
	return C.ulonglong(storeTree(tree))
}

//export PredictModel
func PredictModel(
	handle C.ulonglong,
	featuresPtr *C.double,
	rows C.int,
	cols C.int,
	outputPtr *C.double,
) (code C.int) {
	setLastError(nil)
	defer recoverInto(&code)

	tree, err := fetchTree(uint64(handle))
	if err != nil {
		setLastError(err)
		return 1
	}

	features, err := buildDense(featuresPtr, rows, cols)
	if err != nil {
		setLastError(err)
		return 2
	}

	outSlice, err := sliceFromPtr(outputPtr, int(rows))
	if err != nil {
		setLastError(err)
		return 3
	}

	prediction := tree.PredictValue(features)
	copy(outSlice, prediction.RawMatrix().Data)
	return 0
}

//export RenderModel
func RenderModel(handle C.ulonglong, figureType, path *C.char) (code C.int) {
	setLastError(nil)
	defer recoverInto(&code)

	tree, err := fetchTree(uint64(handle))
	if err != nil {
		setLastError(err)
		return 1
	}
	goFigureType := C.GoString(figureType)
	if goFigureType == "" {
		goFigureType = "svg"
	}
	if err := tree.RenderTreeFilename(goFigureType, C.GoString(path)); err != nil {
		setLastError(err)
		return 2
	}
	return 0
}

//export GetLastError
func GetLastError() *C.char {
	errStr := getLastError()
	if errStr == "" {
		return nil
	}
	return C.CString(errStr)
}

//export FreeCString
func FreeCString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
