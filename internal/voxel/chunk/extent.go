package chunk

import (
	"fmt"

	"github.com/annel0/blockverse/internal/vec"
)

// Extent выровненная по осям подобласть, заданная минимальным углом и размером по каждой оси.
// Область с неположительным размером хотя бы по одной оси пуста.
type Extent struct {
	Minimum vec.Vec3
	Shape   vec.Vec3
}

// ExtentFromMinAndShape создаёт область по минимальному углу и размеру
func ExtentFromMinAndShape(minimum, shape vec.Vec3) Extent {
	return Extent{Minimum: minimum, Shape: shape}
}

// ExtentFromMinAndMax создаёт область по двум углам; max включительно
func ExtentFromMinAndMax(minimum, maximum vec.Vec3) Extent {
	return Extent{Minimum: minimum, Shape: maximum.Sub(minimum).Add(vec.Splat(1))}
}

// LeastUpperBound возвращает угол, следующий сразу за областью (исключительно)
func (e Extent) LeastUpperBound() vec.Vec3 {
	return e.Minimum.Add(e.Shape)
}

// Max возвращает максимальную точку области (включительно)
func (e Extent) Max() vec.Vec3 {
	return e.LeastUpperBound().Sub(vec.Splat(1))
}

// IsEmpty возвращает true, если в области нет ни одной точки
func (e Extent) IsEmpty() bool {
	return e.Shape.X <= 0 || e.Shape.Y <= 0 || e.Shape.Z <= 0
}

// NumPoints возвращает количество точек в области
func (e Extent) NumPoints() int {
	if e.IsEmpty() {
		return 0
	}
	return e.Shape.Product()
}

// Contains проверяет принадлежность точки области
func (e Extent) Contains(p vec.Vec3) bool {
	lub := e.LeastUpperBound()
	return p.X >= e.Minimum.X && p.X < lub.X &&
		p.Y >= e.Minimum.Y && p.Y < lub.Y &&
		p.Z >= e.Minimum.Z && p.Z < lub.Z
}

// Intersection возвращает пересечение двух областей (может быть пустым)
func (e Extent) Intersection(other Extent) Extent {
	minimum := e.Minimum.Max(other.Minimum)
	lub := e.LeastUpperBound().Min(other.LeastUpperBound())
	return Extent{Minimum: minimum, Shape: lub.Sub(minimum)}
}

// IsSubsetOf проверяет, что область целиком лежит внутри other.
// Пустая область является подмножеством любой.
func (e Extent) IsSubsetOf(other Extent) bool {
	if e.IsEmpty() {
		return true
	}
	return other.Contains(e.Minimum) && other.Contains(e.Max())
}

func (e Extent) String() string {
	return fmt.Sprintf("Extent{min: %v, shape: %v}", e.Minimum, e.Shape)
}
