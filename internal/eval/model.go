package eval

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/Anoncoder666/Knightmare/internal/board"
)

// Weight file format constants
const (
	MagicNumber = 0x4B4E4D45 // "EMNK" little-endian
	Version     = 1

	// HiddenSize is the width of both hidden layers.
	HiddenSize = 256
)

// fileHeader is the header of the weight file.
type fileHeader struct {
	Magic      uint32
	Version    uint32
	InputSize  uint32
	HiddenSize uint32
}

// Model is a small feed-forward evaluator: two ReLU hidden layers and a tanh
// output, so scores stay in [-1, 1]. The offline trainer produces the weight
// files it loads.
type Model struct {
	// W1 is HiddenSize rows of FeatureSize weights, row-major.
	W1 []float64
	B1 []float64
	// W2 is HiddenSize rows of HiddenSize weights, row-major.
	W2 []float64
	B2 []float64
	// W3 is a single output row of HiddenSize weights.
	W3 []float64
	B3 float64
}

// NewModel allocates a zero-weight model of the fixed architecture.
func NewModel() *Model {
	return &Model{
		W1: make([]float64, HiddenSize*FeatureSize),
		B1: make([]float64, HiddenSize),
		W2: make([]float64, HiddenSize*HiddenSize),
		B2: make([]float64, HiddenSize),
		W3: make([]float64, HiddenSize),
	}
}

// LoadModel loads model weights from a binary file.
// File format, all little-endian float64 after the header:
//   - Header: Magic (4 bytes), Version (4), InputSize (4), HiddenSize (4)
//   - W1: HiddenSize * InputSize
//   - B1: HiddenSize
//   - W2: HiddenSize * HiddenSize
//   - B2: HiddenSize
//   - W3: HiddenSize
//   - B3: 1
func LoadModel(filename string) (*Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open weights file: %w", err)
	}
	defer f.Close()

	var header fileHeader
	if err := binary.Read(f, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("invalid magic number: expected %x, got %x", MagicNumber, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("unsupported version: expected %d, got %d", Version, header.Version)
	}
	if header.InputSize != FeatureSize {
		return nil, fmt.Errorf("input size mismatch: expected %d, got %d", FeatureSize, header.InputSize)
	}
	if header.HiddenSize != HiddenSize {
		return nil, fmt.Errorf("hidden size mismatch: expected %d, got %d", HiddenSize, header.HiddenSize)
	}

	m := NewModel()
	for _, part := range []struct {
		name string
		dst  []float64
	}{
		{"W1", m.W1},
		{"B1", m.B1},
		{"W2", m.W2},
		{"B2", m.B2},
		{"W3", m.W3},
	} {
		if err := binary.Read(f, binary.LittleEndian, part.dst); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", part.name, err)
		}
	}
	if err := binary.Read(f, binary.LittleEndian, &m.B3); err != nil {
		return nil, fmt.Errorf("failed to read B3: %w", err)
	}

	return m, nil
}

// SaveWeights saves model weights to a binary file.
func (m *Model) SaveWeights(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create weights file: %w", err)
	}
	defer f.Close()

	header := fileHeader{
		Magic:      MagicNumber,
		Version:    Version,
		InputSize:  FeatureSize,
		HiddenSize: HiddenSize,
	}
	if err := binary.Write(f, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, part := range []struct {
		name string
		src  []float64
	}{
		{"W1", m.W1},
		{"B1", m.B1},
		{"W2", m.W2},
		{"B2", m.B2},
		{"W3", m.W3},
	} {
		if err := binary.Write(f, binary.LittleEndian, part.src); err != nil {
			return fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}
	if err := binary.Write(f, binary.LittleEndian, m.B3); err != nil {
		return fmt.Errorf("failed to write B3: %w", err)
	}

	return nil
}

// Evaluate runs the network forward on the encoded position.
func (m *Model) Evaluate(pos *board.Position) float64 {
	x := EncodePosition(pos)

	h1 := make([]float64, HiddenSize)
	for i := 0; i < HiddenSize; i++ {
		sum := m.B1[i]
		row := m.W1[i*FeatureSize : (i+1)*FeatureSize]
		for j, v := range x {
			if v != 0 {
				sum += row[j] * v
			}
		}
		h1[i] = relu(sum)
	}

	h2 := make([]float64, HiddenSize)
	for i := 0; i < HiddenSize; i++ {
		sum := m.B2[i]
		row := m.W2[i*HiddenSize : (i+1)*HiddenSize]
		for j, v := range h1 {
			sum += row[j] * v
		}
		h2[i] = relu(sum)
	}

	out := m.B3
	for j, v := range h2 {
		out += m.W3[j] * v
	}
	return math.Tanh(out)
}

func relu(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
