package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTexture пишет маленькую PNG-текстуру в root/rel
func writeTexture(t *testing.T, root, rel string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 120, G: 120, B: 120, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, buf.Bytes(), 0o644))
}

func TestServer_LoadTexture(t *testing.T) {
	root := t.TempDir()
	writeTexture(t, root, "textures/block/stone.png")

	s := NewServer(root, 2)
	h := s.Load("textures/block/stone.png")
	s.Wait()

	assert.Equal(t, Loaded, s.LoadState(h.ID))
	data, ok := s.Bytes(h.ID)
	require.True(t, ok)
	assert.NotEmpty(t, data)
	assert.NoError(t, s.Err(h.ID))
}

func TestServer_LoadIsIdempotentPerPath(t *testing.T) {
	root := t.TempDir()
	writeTexture(t, root, "a.png")

	s := NewServer(root, 1)
	first := s.Load("a.png")
	second := s.Load("a.png")
	s.Wait()

	assert.Equal(t, first, second)
	assert.Len(t, s.Handles(), 1)
}

func TestServer_MissingAndCorruptFail(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.png"), []byte("not a png"), 0o644))

	s := NewServer(root, 2)
	missing := s.Load("missing.png")
	broken := s.Load("broken.png")
	s.Wait()

	assert.Equal(t, Failed, s.LoadState(missing.ID))
	assert.Equal(t, Failed, s.LoadState(broken.ID))
	assert.Error(t, s.Err(broken.ID))
	_, ok := s.Bytes(broken.ID)
	assert.False(t, ok)
}

func TestServer_GroupLoadState(t *testing.T) {
	root := t.TempDir()
	writeTexture(t, root, "a.png")
	writeTexture(t, root, "b.png")

	s := NewServer(root, 2)
	a := s.Load("a.png")
	b := s.Load("b.png")
	bad := s.Load("missing.png")
	s.Wait()

	assert.Equal(t, Loaded, s.GroupLoadState(nil), "Пустая группа считается загруженной")
	assert.Equal(t, Loaded, s.GroupLoadState([]HandleID{a.ID, b.ID}))
	assert.Equal(t, Failed, s.GroupLoadState([]HandleID{a.ID, bad.ID}))

	unknown := HandleID{}
	assert.Equal(t, NotLoaded, s.GroupLoadState([]HandleID{a.ID, unknown}))
}

func TestServer_GroupLoadStateWhileLoading(t *testing.T) {
	s := NewServer(t.TempDir(), 1)

	// Заполняем единственный слот, чтобы загрузка гарантированно висела в Loading
	s.sem <- struct{}{}
	h := s.Load("slow.png")

	assert.Equal(t, Loading, s.LoadState(h.ID))
	assert.Equal(t, Loading, s.GroupLoadState([]HandleID{h.ID}))

	<-s.sem
	s.Wait()
	assert.Equal(t, Failed, s.LoadState(h.ID))
}

func TestServer_LoadAfterClose(t *testing.T) {
	s := NewServer(t.TempDir(), 1)
	s.Close()

	h := s.Load("late.png")
	assert.Equal(t, Failed, s.LoadState(h.ID))
}

func TestMaterials_AddGet(t *testing.T) {
	m := NewMaterials()
	tex := Handle{Path: "textures/block/dirt.png"}

	h := m.Add(StandardMaterial{BaseColorTexture: &tex})
	other := m.Add(StandardMaterial{BaseColor: color.RGBA{A: 255}})

	assert.NotEqual(t, h, other)
	assert.Equal(t, 2, m.Len())

	got, ok := m.Get(h)
	require.True(t, ok)
	require.NotNil(t, got.BaseColorTexture)
	assert.Equal(t, "textures/block/dirt.png", got.BaseColorTexture.Path)

	_, ok = m.Get(MaterialHandle{})
	assert.False(t, ok)
}
