package chunk

import (
	"fmt"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/voxel"
)

// ChunkBuffer плотный 3D-массив вокселей фиксированной формы.
//
// Буфер изменяется только при создании и через FillExtent. Синхронизации нет:
// буфером владеет одна подсистема (см. world.Spawn).
type ChunkBuffer struct {
	data  []voxel.Voxel
	shape Shape
}

// New создаёт чанк стандартной формы, заполненный initial
func New(initial voxel.Voxel) *ChunkBuffer {
	return NewWithShape(ChunkShape, initial)
}

// NewEmpty создаёт чанк стандартной формы, заполненный пустыми вокселями
func NewEmpty() *ChunkBuffer {
	return New(voxel.EmptyVoxel)
}

// NewWithShape создаёт буфер произвольной формы, заполненный initial
func NewWithShape(shape Shape, initial voxel.Voxel) *ChunkBuffer {
	data := make([]voxel.Voxel, shape.Size())
	if initial != voxel.EmptyVoxel {
		for i := range data {
			data[i] = initial
		}
	}

	return &ChunkBuffer{
		data:  data,
		shape: shape,
	}
}

// VoxelAt возвращает воксель по локальной координате.
// Координата вне формы - нарушение контракта, вызывает panic.
func (c *ChunkBuffer) VoxelAt(pos vec.Vec3) voxel.Voxel {
	if !c.shape.Contains(pos) {
		panic(fmt.Sprintf("[chunk] position %v is outside of chunk shape %v", pos, c.shape))
	}
	return c.data[c.shape.Linearize(pos)]
}

// FillExtent перезаписывает все воксели области значением val.
//
// Область обязана лежать внутри буфера, иначе panic. Заполнение идёт
// непрерывными отрезками по оси X без аллокаций.
func (c *ChunkBuffer) FillExtent(extent Extent, val voxel.Voxel) {
	if extent.IsEmpty() {
		return
	}
	if !extent.IsSubsetOf(c.shape.Extent()) {
		panic(fmt.Sprintf("[chunk] %v is outside of chunk shape %v", extent, c.shape))
	}

	lub := extent.LeastUpperBound()
	for z := extent.Minimum.Z; z < lub.Z; z++ {
		for y := extent.Minimum.Y; y < lub.Y; y++ {
			start := c.shape.Linearize(vec.Vec3{X: extent.Minimum.X, Y: y, Z: z})
			row := c.data[start : start+extent.Shape.X]
			for i := range row {
				row[i] = val
			}
		}
	}
}

// Slice возвращает все воксели в порядке хранения.
// Срез разделяет память с буфером и предназначен только для чтения;
// координату элемента i даёт Shape().Delinearize(i).
func (c *ChunkBuffer) Slice() []voxel.Voxel {
	return c.data
}

// Shape возвращает форму буфера
func (c *ChunkBuffer) Shape() Shape {
	return c.shape
}

// Len возвращает количество вокселей
func (c *ChunkBuffer) Len() int {
	return len(c.data)
}

// ForEach обходит все воксели в порядке хранения вместе с их координатами
func (c *ChunkBuffer) ForEach(fn func(pos vec.Vec3, v voxel.Voxel)) {
	for i, v := range c.data {
		fn(c.shape.Delinearize(i), v)
	}
}

// Column возвращает столбец (x, z) снизу вверх
func (c *ChunkBuffer) Column(x, z int) []voxel.Voxel {
	if !c.shape.Contains(vec.Vec3{X: x, Y: 0, Z: z}) {
		panic(fmt.Sprintf("[chunk] column (%d,%d) is outside of chunk shape %v", x, z, c.shape))
	}

	column := make([]voxel.Voxel, c.shape.Y)
	stride := c.shape.Strides()[1]
	idx := c.shape.Linearize(vec.Vec3{X: x, Y: 0, Z: z})
	for y := range column {
		column[y] = c.data[idx]
		idx += stride
	}
	return column
}

// Histogram считает количество вокселей каждого материала
func (c *ChunkBuffer) Histogram() map[voxel.BlockMaterialID]int {
	result := make(map[voxel.BlockMaterialID]int)
	for _, v := range c.data {
		result[v.BlockID]++
	}
	return result
}

// Clone создаёт независимую копию буфера
func (c *ChunkBuffer) Clone() *ChunkBuffer {
	data := make([]voxel.Voxel, len(c.data))
	copy(data, c.data)
	return &ChunkBuffer{data: data, shape: c.shape}
}
