package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr))
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

func SumG[T constraints.Integer | constraints.Float](arr []T) T {
	var s T
	for _, v := range arr {
		s += v
	}
	return s
}

// IDMap maps external string handles (zone ids, coordinate keys) to dense
// int32 indexes and back.
type IDMap struct {
	strToID map[string]int32
	idToStr []string
}

func NewIDMap() IDMap {
	return IDMap{
		strToID: make(map[string]int32),
	}
}

func (m *IDMap) GetID(s string) int32 {
	if id, ok := m.strToID[s]; ok {
		return id
	}
	id := int32(len(m.idToStr))
	m.strToID[s] = id
	m.idToStr = append(m.idToStr, s)
	return id
}

func (m *IDMap) Has(s string) bool {
	_, ok := m.strToID[s]
	return ok
}

func (m *IDMap) GetStr(id int32) string {
	if id < 0 || int(id) >= len(m.idToStr) {
		return ""
	}
	return m.idToStr[id]
}

func (m *IDMap) Size() int {
	return len(m.idToStr)
}
