package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/sellaap/go-storefront/app/utils/cache"
)

type MenuInput struct {
	Name     string `validate:"required,min=2,max=100"`
	Location string `validate:"omitempty,max=50"`
}

type MenuItemInput struct {
	MenuID   string `validate:"required"`
	Label    string `validate:"required,min=1,max=100"`
	URL      string `validate:"required,max=500"`
	Target   string `validate:"required"`
	ParentID string
	// Order nil assigns max(sibling order)+1.
	Order *int
}

type MenuService struct {
	menuRepo repositories.MenuRepositoryImpl
	cache    *cache.Cache
	validate *validator.Validate
}

func NewMenuService(menuRepo repositories.MenuRepositoryImpl, c *cache.Cache) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
		cache:    c,
		validate: validator.New(),
	}
}

// TreeByLocation is the cached storefront read rendering nested
// dropdowns for a slot such as "header".
func (s *MenuService) TreeByLocation(ctx context.Context, location string) ([]models.MenuItemNode, error) {
	tags := []string{cache.TagMenus}
	return cache.Memoize(s.cache, "menus:location:"+location, cache.TTLMenus, tags, func() ([]models.MenuItemNode, error) {
		menu, err := s.menuRepo.GetByLocation(ctx, location)
		if err != nil {
			return nil, err
		}
		if menu == nil {
			return nil, nil
		}
		return models.BuildMenuTree(menu.Items), nil
	})
}

func (s *MenuService) CreateMenu(ctx context.Context, input MenuInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}

	menu := &models.Menu{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Location:  input.Location,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return fail(failureMessage("create menu", err))
	}

	s.cache.InvalidateTags(cache.TagMenus)
	return ok(menu)
}

func (s *MenuService) UpdateMenu(ctx context.Context, id string, input MenuInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}

	menu, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return fail(failureMessage("load menu", err))
	}
	if menu == nil {
		return fail("menu not found")
	}

	menu.Name = input.Name
	menu.Location = input.Location
	menu.UpdatedAt = time.Now()
	menu.Items = nil

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return fail(failureMessage("update menu", err))
	}

	s.cache.InvalidateTags(cache.TagMenus)
	return ok(menu)
}

// DeleteMenu cascades to every item the menu owns.
func (s *MenuService) DeleteMenu(ctx context.Context, id string) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}

	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return fail(failureMessage("delete menu", err))
	}

	s.cache.InvalidateTags(cache.TagMenus)
	return ok(nil)
}

func (s *MenuService) CreateItem(ctx context.Context, input MenuItemInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}
	if !models.ValidTarget(input.Target) {
		return fail("invalid link target: " + input.Target)
	}

	item := &models.MenuItem{
		MenuID:    input.MenuID,
		Label:     input.Label,
		URL:       input.URL,
		Target:    input.Target,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if input.ParentID != "" {
		parentID := input.ParentID
		item.ParentID = &parentID
	}

	if err := s.menuRepo.CreateItem(ctx, item, input.Order); err != nil {
		return fail(failureMessage("create menu item", err))
	}

	s.cache.InvalidateTags(cache.TagMenus)
	return ok(item)
}

func (s *MenuService) UpdateItem(ctx context.Context, itemID string, input MenuItemInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}
	if !models.ValidTarget(input.Target) {
		return fail("invalid link target: " + input.Target)
	}

	item, err := s.menuRepo.GetItem(ctx, itemID)
	if err != nil {
		return fail(failureMessage("load menu item", err))
	}
	if item == nil {
		return fail("menu item not found")
	}

	item.Label = input.Label
	item.URL = input.URL
	item.Target = input.Target
	item.ParentID = nil
	if input.ParentID != "" {
		parentID := input.ParentID
		item.ParentID = &parentID
	}
	if input.Order != nil {
		item.Position = *input.Order
	}
	item.UpdatedAt = time.Now()

	if err := s.menuRepo.UpdateItem(ctx, item); err != nil {
		return fail(failureMessage("update menu item", err))
	}

	s.cache.InvalidateTags(cache.TagMenus)
	return ok(item)
}

// ReorderItems applies the full sibling list submitted after a
// drag-and-drop as one atomic batch.
func (s *MenuService) ReorderItems(ctx context.Context, menuID string, orders []repositories.ItemOrder) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if len(orders) == 0 {
		return fail("no order pairs submitted")
	}

	if err := s.menuRepo.UpdateItemOrders(ctx, menuID, orders); err != nil {
		return fail(failureMessage("reorder menu items", err))
	}

	s.cache.InvalidateTags(cache.TagMenus)
	return ok(nil)
}

func (s *MenuService) DeleteItem(ctx context.Context, itemID string) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}

	if err := s.menuRepo.DeleteItem(ctx, itemID); err != nil {
		return fail(failureMessage("delete menu item", err))
	}

	s.cache.InvalidateTags(cache.TagMenus)
	return ok(nil)
}
