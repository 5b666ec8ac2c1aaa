package transform

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrSingularBasis is returned when a model basis cannot be inverted.
	ErrSingularBasis = errors.New("singular basis")

	// ErrSingularTransform is returned when a homogeneous transform cannot be inverted.
	ErrSingularTransform = errors.New("singular transform")

	// ErrZeroTransform is returned where a zero-value Homogeneous is
	// passed in place of a constructed transform.
	ErrZeroTransform = errors.New("zero-value transform")
)

// ErrShape indicates a matrix with unexpected dimensions.
type ErrShape struct {
	Rows, Cols int
	Want       string
}

func (e *ErrShape) Error() string {
	return fmt.Sprintf("invalid matrix shape %dx%d: want %s", e.Rows, e.Cols, e.Want)
}

// Homogeneous is an immutable 4x4 homogeneous transform.
//
// The zero value is not usable; construct with Identity or one of the
// constructors.
type Homogeneous struct {
	m *mat.Dense
}

// Identity returns the identity transform.
func Identity() Homogeneous {
	return Homogeneous{m: identity(4)}
}

// NewHomogeneous creates a transform from 16 row-major values.
func NewHomogeneous(data []float64) (Homogeneous, error) {
	if len(data) != 16 {
		return Homogeneous{}, &ErrShape{Rows: 1, Cols: len(data), Want: "16 values"}
	}
	return Homogeneous{m: mat.NewDense(4, 4, append([]float64(nil), data...))}, nil
}

// FromMatrix copies a 4x4 matrix into a transform.
func FromMatrix(a mat.Matrix) (Homogeneous, error) {
	r, c := a.Dims()
	if r != 4 || c != 4 {
		return Homogeneous{}, &ErrShape{Rows: r, Cols: c, Want: "4x4"}
	}
	return Homogeneous{m: mat.DenseCopyOf(a)}, nil
}

// Translation returns a transform that offsets points by t.
func Translation(t r3.Vec) Homogeneous {
	m := identity(4)
	m.Set(0, 3, t.X)
	m.Set(1, 3, t.Y)
	m.Set(2, 3, t.Z)
	return Homogeneous{m: m}
}

// Scaling returns a transform that scales points component-wise by s.
func Scaling(s r3.Vec) Homogeneous {
	m := identity(4)
	m.Set(0, 0, s.X)
	m.Set(1, 1, s.Y)
	m.Set(2, 2, s.Z)
	return Homogeneous{m: m}
}

// IsZero reports whether h is the unusable zero value.
func (h Homogeneous) IsZero() bool {
	return h.m == nil
}

// Mul returns the composition h*o, i.e. o is applied first.
func (h Homogeneous) Mul(o Homogeneous) Homogeneous {
	var m mat.Dense
	m.Mul(h.m, o.m)
	return Homogeneous{m: &m}
}

// Inverse returns the inverse transform.
func (h Homogeneous) Inverse() (Homogeneous, error) {
	var m mat.Dense
	if err := m.Inverse(h.m); err != nil {
		return Homogeneous{}, fmt.Errorf("%w: %w", ErrSingularTransform, err)
	}
	return Homogeneous{m: &m}, nil
}

// Apply maps p through the transform, dividing by the resulting homogeneous
// coordinate. A w close to zero is not guarded against.
func (h Homogeneous) Apply(p r3.Vec) r3.Vec {
	m := h.m
	x := m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z + m.At(0, 3)
	y := m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z + m.At(1, 3)
	z := m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z + m.At(2, 3)
	w := m.At(3, 0)*p.X + m.At(3, 1)*p.Y + m.At(3, 2)*p.Z + m.At(3, 3)
	return r3.Vec{X: x / w, Y: y / w, Z: z / w}
}

// Dense returns a copy of the underlying matrix.
func (h Homogeneous) Dense() *mat.Dense {
	return mat.DenseCopyOf(h.m)
}

// Equal reports whether both transforms hold identical values.
func (h Homogeneous) Equal(o Homogeneous) bool {
	return mat.Equal(h.m, o.m)
}

// Basis maps world displacements into sampler displacements.
type Basis struct {
	m [9]float64
}

// IdentityBasis returns a basis that leaves displacements unchanged.
func IdentityBasis() Basis {
	return Basis{m: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// NewBasis inverts a model basis. model is either 3x3 or 4x4, in which case
// its upper-left 3x3 block is used.
func NewBasis(model mat.Matrix) (Basis, error) {
	r, c := model.Dims()
	if r != c || (r != 3 && r != 4) {
		return Basis{}, &ErrShape{Rows: r, Cols: c, Want: "3x3 or 4x4"}
	}

	upper := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			upper.Set(i, j, model.At(i, j))
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(upper); err != nil {
		return Basis{}, fmt.Errorf("%w: %w", ErrSingularBasis, err)
	}

	var b Basis
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			b.m[i*3+j] = inv.At(i, j)
		}
	}
	return b, nil
}

// MulVec returns the basis applied to v.
func (b Basis) MulVec(v r3.Vec) r3.Vec {
	m := &b.m
	return r3.Vec{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Dense returns the inverse basis as a 3x3 matrix.
func (b Basis) Dense() *mat.Dense {
	return mat.NewDense(3, 3, append([]float64(nil), b.m[:]...))
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
