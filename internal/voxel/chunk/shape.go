package chunk

import (
	"fmt"

	"github.com/annel0/blockverse/internal/vec"
)

// Размеры чанка как в minecraft: 16x256x16
const (
	ChunkLength = 16
	ChunkHeight = 256
)

// Shape фиксированная форма 3D-массива и биекция координата <-> линейный индекс.
//
// Индекс считается как x + X*(y + Y*z): быстрее всего меняется x, затем y, затем z.
// Одна и та же формула используется в VoxelAt, FillExtent и при обратном отображении.
type Shape struct {
	X, Y, Z int
}

// ChunkShape форма стандартного чанка
var ChunkShape = Shape{X: ChunkLength, Y: ChunkHeight, Z: ChunkLength}

// NewShape создаёт форму с указанными размерами.
// Неположительный размер - ошибка программиста.
func NewShape(x, y, z int) Shape {
	if x <= 0 || y <= 0 || z <= 0 {
		panic(fmt.Sprintf("[chunk] invalid shape %dx%dx%d", x, y, z))
	}
	return Shape{X: x, Y: y, Z: z}
}

// Size возвращает количество ячеек в форме
func (s Shape) Size() int {
	return s.X * s.Y * s.Z
}

// Contains проверяет, что координата лежит внутри формы
func (s Shape) Contains(p vec.Vec3) bool {
	return p.X >= 0 && p.X < s.X &&
		p.Y >= 0 && p.Y < s.Y &&
		p.Z >= 0 && p.Z < s.Z
}

// Linearize переводит координату в линейный индекс.
// Границы не проверяются: вызывающий обязан передать координату внутри формы.
func (s Shape) Linearize(p vec.Vec3) int {
	return p.X + s.X*(p.Y+s.Y*p.Z)
}

// Delinearize обратное к Linearize отображение
func (s Shape) Delinearize(i int) vec.Vec3 {
	x := i % s.X
	i /= s.X
	y := i % s.Y
	z := i / s.Y
	return vec.Vec3{X: x, Y: y, Z: z}
}

// Strides возвращает шаг индекса при увеличении каждой оси на единицу
func (s Shape) Strides() [3]int {
	return [3]int{1, s.X, s.X * s.Y}
}

// AsVec3 возвращает размеры формы вектором
func (s Shape) AsVec3() vec.Vec3 {
	return vec.Vec3{X: s.X, Y: s.Y, Z: s.Z}
}

// Extent возвращает область, покрывающую всю форму
func (s Shape) Extent() Extent {
	return ExtentFromMinAndShape(vec.Zero, s.AsVec3())
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.X, s.Y, s.Z)
}
