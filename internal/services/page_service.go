package services

import (
	"context"

	"engler-house/internal/models"
	"engler-house/internal/repositories"
)

const (
	homeServicesLimit   = 4
	homeProjectsLimit   = 3
	homePressItemsLimit = 4
	homeArchitectsLimit = 4
	aboutReviewsLimit   = 4
)

// Gallery хранит картинки по позициям раскладки 1..10. nil, если галерею не показываем.
type Gallery map[int]*models.GalleryImage

func (g Gallery) Slot(n int) *models.GalleryImage {
	return g[n]
}

func (g Gallery) Visible() bool {
	return g != nil
}

type HomePage struct {
	Hero       *models.HeroSection
	Services   []models.Service
	Projects   []models.Project
	Gallery    Gallery
	Press      *models.Press
	PressItems []models.PressItem
	Architects []models.Architect
}

type ProjectsPage struct {
	Projects []models.Project
	Gallery  Gallery
}

type ArchitectsPage struct {
	Architects []models.Architect
	Gallery    Gallery
}

type AboutPage struct {
	Press      *models.Press
	PressItems []models.PressItem
	Reviews    []models.Review
}

// PageService собирает данные публичных страниц.
type PageService struct {
	content *repositories.ContentRepository
}

func NewPageService(content *repositories.ContentRepository) *PageService {
	return &PageService{content: content}
}

// gallery показывается только когда активных картинок хватает на все позиции.
func (s *PageService) gallery(ctx context.Context) (Gallery, error) {
	count, err := s.content.CountActiveGallery(ctx)
	if err != nil {
		return nil, err
	}
	if count < models.GallerySlots {
		return nil, nil
	}
	slots, err := s.content.GallerySlots(ctx)
	if err != nil {
		return nil, err
	}
	return Gallery(slots), nil
}

func (s *PageService) Home(ctx context.Context) (*HomePage, error) {
	var (
		page HomePage
		err  error
	)
	if page.Hero, err = s.content.ActiveHero(ctx); err != nil {
		return nil, err
	}
	if page.Services, err = s.content.ListServices(ctx, homeServicesLimit); err != nil {
		return nil, err
	}
	if page.Projects, err = s.content.ListProjects(ctx, homeProjectsLimit); err != nil {
		return nil, err
	}
	if page.Gallery, err = s.gallery(ctx); err != nil {
		return nil, err
	}
	if page.Press, err = s.content.ActivePress(ctx); err != nil {
		return nil, err
	}
	if page.PressItems, err = s.content.ListPressItems(ctx, homePressItemsLimit); err != nil {
		return nil, err
	}
	if page.Architects, err = s.content.ListArchitects(ctx, homeArchitectsLimit); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *PageService) Services(ctx context.Context) ([]models.Service, error) {
	return s.content.ListServices(ctx, 0)
}

func (s *PageService) Projects(ctx context.Context) (*ProjectsPage, error) {
	projects, err := s.content.ListProjects(ctx, 0)
	if err != nil {
		return nil, err
	}
	gallery, err := s.gallery(ctx)
	if err != nil {
		return nil, err
	}
	return &ProjectsPage{Projects: projects, Gallery: gallery}, nil
}

func (s *PageService) Architects(ctx context.Context) (*ArchitectsPage, error) {
	architects, err := s.content.ListArchitects(ctx, 0)
	if err != nil {
		return nil, err
	}
	gallery, err := s.gallery(ctx)
	if err != nil {
		return nil, err
	}
	return &ArchitectsPage{Architects: architects, Gallery: gallery}, nil
}

// Project собирает страницу проекта; неактивный или отсутствующий проект даёт ErrNotFound.
func (s *PageService) Project(ctx context.Context, id uint) (*models.Project, error) {
	return s.content.GetActiveProject(ctx, id)
}

func (s *PageService) About(ctx context.Context) (*AboutPage, error) {
	var (
		page AboutPage
		err  error
	)
	if page.Press, err = s.content.ActivePress(ctx); err != nil {
		return nil, err
	}
	if page.PressItems, err = s.content.ListPressItems(ctx, 0); err != nil {
		return nil, err
	}
	if page.Reviews, err = s.content.ListApprovedReviews(ctx, aboutReviewsLimit); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *PageService) Contact(ctx context.Context) (*models.ContactInfo, error) {
	return s.content.ActiveContactInfo(ctx)
}
