package chunk

import (
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_ChunkSize(t *testing.T) {
	assert.Equal(t, 16*256*16, ChunkShape.Size())
	assert.Equal(t, [3]int{1, 16, 16 * 256}, ChunkShape.Strides())
}

func TestShape_LinearizeIsBijection(t *testing.T) {
	shape := ChunkShape
	seen := make([]bool, shape.Size())

	// Каждая координата отображается в уникальный индекс и обратно
	for z := 0; z < shape.Z; z++ {
		for y := 0; y < shape.Y; y++ {
			for x := 0; x < shape.X; x++ {
				p := vec.New(x, y, z)
				i := shape.Linearize(p)
				require.GreaterOrEqual(t, i, 0)
				require.Less(t, i, shape.Size())
				require.False(t, seen[i], "Индекс %d получен дважды", i)
				seen[i] = true
				require.Equal(t, p, shape.Delinearize(i))
			}
		}
	}

	// Каждый индекс достижим
	for i := 0; i < shape.Size(); i++ {
		require.Equal(t, i, shape.Linearize(shape.Delinearize(i)))
	}
}

func TestShape_XVariesFastest(t *testing.T) {
	assert.Equal(t, 0, ChunkShape.Linearize(vec.New(0, 0, 0)))
	assert.Equal(t, 1, ChunkShape.Linearize(vec.New(1, 0, 0)))
	assert.Equal(t, 16, ChunkShape.Linearize(vec.New(0, 1, 0)))
	assert.Equal(t, 16*256, ChunkShape.Linearize(vec.New(0, 0, 1)))
}

func TestShape_Contains(t *testing.T) {
	assert.True(t, ChunkShape.Contains(vec.New(15, 255, 15)))
	assert.False(t, ChunkShape.Contains(vec.New(16, 0, 0)))
	assert.False(t, ChunkShape.Contains(vec.New(0, 256, 0)))
	assert.False(t, ChunkShape.Contains(vec.New(0, 0, -1)))
}

func TestNewShape_RejectsNonPositive(t *testing.T) {
	assert.Panics(t, func() { NewShape(0, 1, 1) })
	assert.Equal(t, Shape{X: 2, Y: 3, Z: 4}, NewShape(2, 3, 4))
}

func TestExtent_Geometry(t *testing.T) {
	e := ExtentFromMinAndShape(vec.New(1, 2, 3), vec.New(4, 5, 6))

	assert.Equal(t, vec.New(5, 7, 9), e.LeastUpperBound())
	assert.Equal(t, vec.New(4, 6, 8), e.Max())
	assert.Equal(t, 120, e.NumPoints())
	assert.True(t, e.Contains(vec.New(1, 2, 3)))
	assert.True(t, e.Contains(vec.New(4, 6, 8)))
	assert.False(t, e.Contains(vec.New(5, 2, 3)))

	same := ExtentFromMinAndMax(vec.New(1, 2, 3), vec.New(4, 6, 8))
	assert.Equal(t, e, same)
}

func TestExtent_IntersectionAndSubset(t *testing.T) {
	a := ExtentFromMinAndShape(vec.Zero, vec.New(10, 10, 10))
	b := ExtentFromMinAndShape(vec.New(5, 5, 5), vec.New(10, 10, 10))

	i := a.Intersection(b)
	assert.Equal(t, vec.New(5, 5, 5), i.Minimum)
	assert.Equal(t, vec.New(5, 5, 5), i.Shape)
	assert.True(t, i.IsSubsetOf(a))
	assert.True(t, i.IsSubsetOf(b))
	assert.False(t, b.IsSubsetOf(a))

	far := ExtentFromMinAndShape(vec.New(20, 20, 20), vec.Splat(1))
	assert.True(t, a.Intersection(far).IsEmpty())

	empty := ExtentFromMinAndShape(vec.New(100, 0, 0), vec.New(0, 1, 1))
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, 0, empty.NumPoints())
	assert.True(t, empty.IsSubsetOf(a), "Пустая область - подмножество любой")
}
