package models

import (
	"errors"

	"gorm.io/gorm"
)

// Singleton: контент, у которого активной может быть только одна запись.
type Singleton interface {
	GetID() uint
	Active() bool
}

type HeroSection struct {
	gorm.Model
	Title       string `gorm:"size:500;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	IsActive    bool   `gorm:"not null;index" json:"is_active"`
}

func (h *HeroSection) GetID() uint  { return h.ID }
func (h *HeroSection) Active() bool { return h.IsActive }

// Service: услуга студии.
type Service struct {
	gorm.Model
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Image       string `gorm:"size:255;not null" json:"image"`
	SortOrder   int    `gorm:"not null;default:0" json:"order" binding:"min=0"`
	IsActive    bool   `gorm:"not null;index" json:"is_active"`
}

type Project struct {
	gorm.Model
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Image       string `gorm:"size:255;not null" json:"image"`
	Model3DFile string `gorm:"column:model_3d_file;size:255" json:"model_3d_file"`
	SortOrder   int    `gorm:"not null;default:0" json:"order" binding:"min=0"`
	IsFeatured  bool   `gorm:"not null;default:false" json:"is_featured"`
	IsActive    bool   `gorm:"not null;index" json:"is_active"`

	CarouselImages []ProjectCarousel `gorm:"constraint:OnDelete:CASCADE;" json:"carousel_images,omitempty"`
	Details        []ProjectDetail   `gorm:"constraint:OnDelete:CASCADE;" json:"details,omitempty"`
}

type ProjectCarousel struct {
	gorm.Model
	ProjectID uint   `gorm:"not null;index" json:"project_id"`
	Image     string `gorm:"size:255;not null" json:"image"`
	SortOrder int    `gorm:"not null;default:0" json:"order" binding:"min=0"`
	IsActive  bool   `gorm:"not null" json:"is_active"`
}

type ProjectDetail struct {
	gorm.Model
	ProjectID   uint   `gorm:"not null;index" json:"project_id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Image       string `gorm:"size:255;not null" json:"image"`
	URL         string `gorm:"size:500" json:"url"`
	SortOrder   int    `gorm:"not null;default:0" json:"order" binding:"min=0"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}

const (
	GalleryMinSlot = 0
	GalleryMaxSlot = 10
	// галерея показывается только если активных картинок не меньше
	GallerySlots = 10
)

var ErrGallerySlotRange = errors.New("gallery order must be within [0,10]")

// GalleryImage: картинка галереи; SortOrder здесь это номер позиции в раскладке.
type GalleryImage struct {
	gorm.Model
	Title      string `gorm:"size:200" json:"title"`
	Image      string `gorm:"size:255;not null" json:"image"`
	SortOrder  int    `gorm:"not null;default:0" json:"order"`
	CSSClasses string `gorm:"size:200" json:"css_classes"`
	IsActive   bool   `gorm:"not null;index" json:"is_active"`
}

func (g *GalleryImage) BeforeSave(tx *gorm.DB) error {
	if g.SortOrder < GalleryMinSlot || g.SortOrder > GalleryMaxSlot {
		return ErrGallerySlotRange
	}
	return nil
}

var galleryPositionClasses = map[int]string{
	1:  "md:mt-[-70px] md:w-auto",
	2:  "md:w-auto",
	3:  "md:mb-[70px] md:w-auto",
	4:  "md:mb-[-65px] md:mt-[30px] md:w-auto",
	5:  "md:mb-[-55px] md:mt-[-70px] md:w-auto",
	6:  "md:w-auto",
	7:  "md:mb-[80px] md:w-auto",
	8:  "md:mt-[-70px] md:w-auto",
	9:  "md:mt-[65px] md:mb-[16px] md:w-auto",
	10: "md:mt-[65px] md:mb-[16px] md:w-auto",
}

// PositionClasses возвращает css для masonry-раскладки: свои классы или классы слота.
func (g GalleryImage) PositionClasses() string {
	if g.CSSClasses != "" {
		return g.CSSClasses
	}
	if cls, ok := galleryPositionClasses[g.SortOrder]; ok {
		return cls
	}
	return "md:w-auto"
}

const DefaultPressTitle = "Пресса о нас"

type Press struct {
	gorm.Model
	Title    string `gorm:"size:200;not null" json:"title"`
	Image    string `gorm:"size:255;not null" json:"image"`
	IsActive bool   `gorm:"not null;index" json:"is_active"`
}

func (p *Press) GetID() uint  { return p.ID }
func (p *Press) Active() bool { return p.IsActive }

func (p *Press) BeforeCreate(tx *gorm.DB) error {
	if p.Title == "" {
		p.Title = DefaultPressTitle
	}
	return nil
}

type PressItem struct {
	gorm.Model
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	SortOrder   int    `gorm:"not null;default:0" json:"order" binding:"min=0"`
	IsActive    bool   `gorm:"not null;index" json:"is_active"`
}

type Architect struct {
	gorm.Model
	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Photo       string `gorm:"size:255;not null" json:"photo"`
	Position    string `gorm:"size:200" json:"position"`
	SortOrder   int    `gorm:"not null;default:0" json:"order" binding:"min=0"`
	IsActive    bool   `gorm:"not null;index" json:"is_active"`
}

// Review: отзыв к проекту; виден только после модерации (IsActive).
type Review struct {
	gorm.Model
	ProjectID uint     `gorm:"not null;index" json:"project_id"`
	Project   *Project `json:"project,omitempty"`
	FirstName string   `gorm:"size:100;not null" json:"first_name"`
	LastName  string   `gorm:"size:100;not null" json:"last_name"`
	Comment   string   `gorm:"type:text;not null" json:"comment"`
	IsActive  bool     `gorm:"not null;default:false;index" json:"is_active"`
}

func (r Review) FullName() string {
	return r.FirstName + " " + r.LastName
}

type ContactInfo struct {
	gorm.Model
	Email       string `gorm:"size:254;not null" json:"email"`
	Phone       string `gorm:"size:50;not null" json:"phone"`
	Address     string `gorm:"type:text;not null" json:"address"`
	MapEmbedURL string `gorm:"type:text;not null" json:"map_embed_url"`
	IsActive    bool   `gorm:"not null;index" json:"is_active"`
}

func (ci *ContactInfo) GetID() uint  { return ci.ID }
func (ci *ContactInfo) Active() bool { return ci.IsActive }

func (s *Service) GetID() uint          { return s.ID }
func (p *Project) GetID() uint          { return p.ID }
func (pc *ProjectCarousel) GetID() uint { return pc.ID }
func (pd *ProjectDetail) GetID() uint   { return pd.ID }
func (g *GalleryImage) GetID() uint     { return g.ID }
func (pi *PressItem) GetID() uint       { return pi.ID }
func (a *Architect) GetID() uint        { return a.ID }
func (r *Review) GetID() uint           { return r.ID }

// ResetModel обнуляет ID и даты gorm.Model, пришедшие извне: запись создаётся заново.
func (h *HeroSection) ResetModel()      { h.Model = gorm.Model{} }
func (p *Press) ResetModel()            { p.Model = gorm.Model{} }
func (ci *ContactInfo) ResetModel()     { ci.Model = gorm.Model{} }
func (s *Service) ResetModel()          { s.Model = gorm.Model{} }
func (p *Project) ResetModel()          { p.Model = gorm.Model{} }
func (pc *ProjectCarousel) ResetModel() { pc.Model = gorm.Model{} }
func (pd *ProjectDetail) ResetModel()   { pd.Model = gorm.Model{} }
func (g *GalleryImage) ResetModel()     { g.Model = gorm.Model{} }
func (pi *PressItem) ResetModel()       { pi.Model = gorm.Model{} }
func (a *Architect) ResetModel()        { a.Model = gorm.Model{} }
