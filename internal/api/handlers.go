package api

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/annel0/blockverse/internal/assets"
	"github.com/annel0/blockverse/internal/state"
	"github.com/annel0/blockverse/internal/voxel"
	"github.com/annel0/blockverse/internal/voxel/chunk"
	"github.com/gin-gonic/gin"
)

// BlockInfo запись реестра блоков в ответе API
type BlockInfo struct {
	ID       voxel.BlockMaterialID `json:"id"`
	Name     string                `json:"name"`
	Material string                `json:"material"`
}

// AssetInfo статус загрузки одного ресурса
type AssetInfo struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	State string `json:"state"`
}

// ChunkSummary сводка по стартовому чанку
type ChunkSummary struct {
	Coords    [3]int         `json:"coords"`
	Shape     string         `json:"shape"`
	Cells     int            `json:"cells"`
	NonEmpty  int            `json:"non_empty"`
	Histogram map[string]int `json:"histogram"`
}

func (s *StatusServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"state":  s.cfg.Machine.Current().String(),
		"time":   time.Now().Unix(),
	})
}

// handleReady 200 в Running, 503 пока ресурсы загружаются
func (s *StatusServer) handleReady(c *gin.Context) {
	current := s.cfg.Machine.Current()
	status := http.StatusServiceUnavailable
	if current == state.Running {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"ready": current == state.Running,
		"state": current.String(),
	})
}

func (s *StatusServer) handleBlocks(c *gin.Context) {
	entries := s.cfg.Blocks.Entries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	blocks := make([]BlockInfo, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, BlockInfo{ID: e.Key, Name: e.Val.Name, Material: e.Val.MaterialHandle.String()})
	}

	data := gin.H{"registry": s.cfg.Blocks.Name(), "blocks": blocks}
	if s.cfg.Events != nil {
		stats := s.cfg.Events.Stats()
		data["events"] = gin.H{"sent": stats.Sent, "applied": stats.Drained, "pending": stats.Pending}
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Зарегистрированные блоки",
		Data:    data,
	})
}

func (s *StatusServer) handleBlock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 8)
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "Некорректный id блока"})
		return
	}

	// Lookup вместо Get: id пришёл извне, panic здесь недопустим
	info, ok := s.cfg.Blocks.Lookup(voxel.BlockMaterialID(id))
	if !ok {
		c.JSON(http.StatusNotFound, GenericResponse{Success: false, Message: "Блок не зарегистрирован"})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Блок",
		Data:    BlockInfo{ID: voxel.BlockMaterialID(id), Name: info.Name, Material: info.MaterialHandle.String()},
	})
}

func (s *StatusServer) handleAssets(c *gin.Context) {
	tracked := make(map[assets.HandleID]struct{})
	ids := s.cfg.Tracker.Handles()
	for _, id := range ids {
		tracked[id] = struct{}{}
	}

	list := make([]AssetInfo, 0, len(ids))
	for _, h := range s.cfg.Assets.Handles() {
		if _, ok := tracked[h.ID]; !ok {
			continue
		}
		list = append(list, AssetInfo{ID: h.ID.String(), Path: h.Path, State: s.cfg.Assets.LoadState(h.ID).String()})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Отслеживаемые ресурсы",
		Data: gin.H{
			"tracked":     len(ids),
			"group_state": s.cfg.Assets.GroupLoadState(ids).String(),
			"assets":      list,
		},
	})
}

func (s *StatusServer) spawnChunk(c *gin.Context) *chunk.ChunkBuffer {
	if s.cfg.Spawn == nil || !s.cfg.Spawn.Ready() {
		c.JSON(http.StatusServiceUnavailable, GenericResponse{
			Success: false,
			Message: "Стартовый чанк ещё не сгенерирован",
		})
		return nil
	}
	buf, _ := s.cfg.Spawn.Chunk()
	return buf
}

func (s *StatusServer) handleSpawnChunk(c *gin.Context) {
	buf := s.spawnChunk(c)
	if buf == nil {
		return
	}
	_, coords := s.cfg.Spawn.Chunk()

	histogram := make(map[string]int)
	nonEmpty := 0
	for id, n := range buf.Histogram() {
		name := "empty"
		if id != voxel.EmptyBlockID {
			nonEmpty += n
			name = strconv.Itoa(int(id))
			if info, ok := s.cfg.Blocks.Lookup(id); ok {
				name = info.Name
			}
		}
		histogram[name] += n
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Стартовый чанк",
		Data: ChunkSummary{
			Coords:    coords.AsArray(),
			Shape:     buf.Shape().String(),
			Cells:     buf.Len(),
			NonEmpty:  nonEmpty,
			Histogram: histogram,
		},
	})
}

// handleSpawnColumn возвращает id блоков столбца снизу вверх
func (s *StatusServer) handleSpawnColumn(c *gin.Context) {
	buf := s.spawnChunk(c)
	if buf == nil {
		return
	}

	shape := buf.Shape()
	x, errX := strconv.Atoi(c.Param("x"))
	z, errZ := strconv.Atoi(c.Param("z"))
	if errX != nil || errZ != nil || x < 0 || x >= shape.X || z < 0 || z >= shape.Z {
		c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: "Координаты вне чанка"})
		return
	}

	column := buf.Column(x, z)
	ids := make([]int, len(column))
	height := 0
	for y, v := range column {
		ids[y] = int(v.BlockID)
		if !v.IsEmpty() {
			height = y + 1
		}
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Столбец стартового чанка",
		Data:    gin.H{"x": x, "z": z, "height": height, "blocks": ids},
	})
}

func (s *StatusServer) handleServerInfo(c *gin.Context) {
	info := gin.H{
		"name":  "Blockverse",
		"state": s.cfg.Machine.Current().String(),
		"stats": s.metrics.Collect(),
	}
	if s.cfg.TickCount != nil {
		info["ticks"] = s.cfg.TickCount()
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data:    info,
	})
}
