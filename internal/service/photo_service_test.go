package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/feedback"
	"github.com/alexanderramin/placar/internal/imageref"
)

func writeTestPNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Set(0, 0, c)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestPhotoService_LoadReplacesAndReleases(t *testing.T) {
	dir := t.TempDir()
	first, second := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	writeTestPNG(t, first, color.White)
	writeTestPNG(t, second, color.Black)

	slots := imageref.NewSlots()
	svc := NewPhotoService(slots, "", nil)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx, imageref.SlotOurs, first))
	assert.Zero(t, slots.Registry.Released())
	require.NoError(t, svc.Load(ctx, imageref.SlotOurs, second))
	assert.Equal(t, 1, slots.Registry.Released())
	assert.Equal(t, "b.png", svc.Image(imageref.SlotOurs).Name)

	require.NoError(t, svc.Clear(ctx, imageref.SlotOurs))
	assert.Nil(t, svc.Image(imageref.SlotOurs))
}

func TestPhotoService_LoadFailureKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.png")
	writeTestPNG(t, good, color.White)
	svc := NewPhotoService(imageref.NewSlots(), "", nil)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx, imageref.SlotClient, good))
	assert.Error(t, svc.Load(ctx, imageref.SlotClient, filepath.Join(dir, "missing.png")))
	assert.Equal(t, "a.png", svc.Image(imageref.SlotClient).Name)
}

func TestPhotoService_MarkersFallBackToStageImage(t *testing.T) {
	assets := t.TempDir()
	writeTestPNG(t, filepath.Join(assets, feedback.ImageHalfway), color.White)
	svc := NewPhotoService(imageref.NewSlots(), assets, nil)

	ours, target := svc.Markers(domain.StageWarmingUp)
	assert.Nil(t, ours)
	assert.NotNil(t, target, "halfway image stands in for the client")

	_, target = svc.Markers(domain.StageGoalMet)
	assert.Nil(t, target, "missing asset means a plain marker")
}

func TestPhotoService_ClientPictureWins(t *testing.T) {
	assets := t.TempDir()
	writeTestPNG(t, filepath.Join(assets, feedback.ImageFirstSteps), color.White)
	client := filepath.Join(t.TempDir(), "client.png")
	writeTestPNG(t, client, color.Black)

	svc := NewPhotoService(imageref.NewSlots(), assets, nil)
	require.NoError(t, svc.Load(context.Background(), imageref.SlotClient, client))

	_, target := svc.Markers(domain.StageStart)
	require.NotNil(t, target)
	assert.Equal(t, svc.Image(imageref.SlotClient).Img, target)
}
