package service

import (
	"context"

	"github.com/smallbiznis/rankinvoice/internal/invoice/render"
)

// PreviewHTML renders the current preview as a standalone page.
func (s *Service) PreviewHTML(ctx context.Context) (string, error) {
	s.mu.Lock()
	preview := s.previewLocked()
	s.mu.Unlock()

	cfg := s.exportCfg.Get()
	return s.renderer.RenderHTML(render.RenderInput{
		Template: render.TemplateView{
			CompanyName: cfg.CompanyName,
		},
		Preview: preview,
	})
}
