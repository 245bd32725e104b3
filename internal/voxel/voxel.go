package voxel

import "fmt"

// BlockMaterialID идентификатор зарегистрированного материала блока.
// Объявлен алиасом, чтобы перейти на более широкий тип, когда типов блоков
// станет больше 255, не трогая места использования.
type BlockMaterialID = uint8

// EmptyBlockID зарезервированный идентификатор пустоты (воздуха)
const EmptyBlockID BlockMaterialID = 0

// Voxel минимальная единица данных мира.
// Значение неизменяемо: замена вокселя означает создание нового значения.
type Voxel struct {
	// BlockID ссылается на id материала, зарегистрированный в реестре блоков
	BlockID BlockMaterialID
}

// EmptyVoxel воксель по умолчанию; совпадает с нулевым значением Voxel
var EmptyVoxel = FromBlockID(EmptyBlockID)

// FromBlockID создаёт воксель с указанным id материала
func FromBlockID(id BlockMaterialID) Voxel {
	return Voxel{BlockID: id}
}

// IsEmpty возвращает true для пустого вокселя
func (v Voxel) IsEmpty() bool {
	return v.BlockID == EmptyBlockID
}

// String возвращает строковое представление вокселя
func (v Voxel) String() string {
	return fmt.Sprintf("Voxel{block_id: %d}", v.BlockID)
}
