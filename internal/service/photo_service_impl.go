package service

import (
	"context"
	"image"
	"sync"

	"go.uber.org/zap"

	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/feedback"
	"github.com/alexanderramin/placar/internal/imageref"
)

type photoService struct {
	slots     *imageref.Slots
	assetsDir string
	logger    *zap.Logger
	observer  UseCaseObserver

	mu       sync.Mutex
	defaults map[string]image.Image // stage image path -> decoded, nil if unreadable
}

// NewPhotoService manages the two marker pictures. Stage images under
// assetsDir stand in for a missing client picture.
func NewPhotoService(slots *imageref.Slots, assetsDir string, logger *zap.Logger, observers ...UseCaseObserver) PhotoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &photoService{
		slots:     slots,
		assetsDir: assetsDir,
		logger:    logger.Named("photos"),
		observer:  useCaseObserverOrNoop(observers),
		defaults:  make(map[string]image.Image),
	}
	if slots.Registry.OnRelease == nil {
		slots.Registry.OnRelease = func(h imageref.Handle) {
			svc.logger.Debug("photo released", zap.String("handle", string(h)))
		}
	}
	return svc
}

// Load decodes path and puts it in slot, releasing the picture it replaces.
func (s *photoService) Load(ctx context.Context, slot imageref.SlotName, path string) (err error) {
	done := observe(ctx, s.observer, "load-photo", map[string]any{"slot": string(slot), "path": path})
	defer func() { done(err) }()

	h, err := s.slots.Registry.Open(path)
	if err != nil {
		return err
	}
	return s.slots.Get(slot).Replace(h)
}

func (s *photoService) Clear(ctx context.Context, slot imageref.SlotName) (err error) {
	done := observe(ctx, s.observer, "clear-photo", map[string]any{"slot": string(slot)})
	defer func() { done(err) }()
	return s.slots.Get(slot).Clear()
}

func (s *photoService) Image(slot imageref.SlotName) *imageref.Image {
	return s.slots.Get(slot).Image()
}

func (s *photoService) Markers(stage domain.Stage) (image.Image, image.Image) {
	var ours, client image.Image
	if img := s.slots.Ours.Image(); img != nil {
		ours = img.Img
	}
	if img := s.slots.Client.Image(); img != nil {
		client = img.Img
	} else {
		client = s.stageImage(stage)
	}
	return ours, client
}

// stageImage decodes the default picture for stage once and caches it,
// including failures.
func (s *photoService) stageImage(stage domain.Stage) image.Image {
	if s.assetsDir == "" {
		return nil
	}
	path := feedback.DefaultImage(s.assetsDir, stage)
	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.defaults[path]; ok {
		return img
	}
	var img image.Image
	reg := imageref.NewRegistry()
	if h, err := reg.Open(path); err != nil {
		s.logger.Debug("stage image unavailable", zap.String("path", path), zap.Error(err))
	} else if decoded, err := reg.Get(h); err == nil {
		img = decoded.Img
	}
	s.defaults[path] = img
	return img
}
