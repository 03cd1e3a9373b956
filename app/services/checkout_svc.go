package services

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
)

type CheckoutInput struct {
	Region        string `validate:"required"`
	CustomerName  string `validate:"required,min=2,max=200"`
	CustomerEmail string `validate:"required,email"`
	PaymentMethod string `validate:"required"`
	// Cart maps product id to quantity.
	Cart map[string]int `validate:"required,min=1"`
}

// CheckoutService places orders against the manual payment rails. The
// buyer self-selects one enabled rail and pays off-platform; the order
// stays pending until an admin confirms the transfer.
type CheckoutService struct {
	productRepo  repositories.ProductRepositoryImpl
	orderRepo    repositories.OrderRepositoryImpl
	settingsRepo repositories.SettingsRepositoryImpl
	validate     *validator.Validate
}

func NewCheckoutService(
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepositoryImpl,
	settingsRepo repositories.SettingsRepositoryImpl,
) *CheckoutService {
	return &CheckoutService{
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		validate:     validator.New(),
	}
}

// PlaceOrder is a public action: no admin gate, but every line item is
// re-resolved against the buyer's region so an unavailable product or
// a stale cart price cannot slip through.
func (s *CheckoutService) PlaceOrder(ctx context.Context, input CheckoutInput) Result {
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}
	if !models.ValidRegion(input.Region) {
		return fail("unknown region: " + input.Region)
	}
	region := models.Region(input.Region)

	settings, err := s.settingsRepo.GetPayment(ctx)
	if err != nil {
		return fail(failureMessage("load payment settings", err))
	}
	if !settings.RailEnabled(input.PaymentMethod) {
		return fail("payment method not available: " + input.PaymentMethod)
	}

	var items []models.OrderItem
	total := decimal.Zero
	currency := ""
	for productID, qty := range input.Cart {
		if qty <= 0 {
			return fail("invalid quantity in cart")
		}
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return fail(failureMessage("load product", err))
		}
		if product == nil {
			return fail("product no longer exists")
		}
		price, itemCurrency, available := product.ResolveRegion(region)
		if !available {
			return fail("product not available in your region: " + product.Name)
		}
		if currency == "" {
			currency = itemCurrency
		} else if currency != itemCurrency {
			return fail("cart mixes currencies; please order separately")
		}

		items = append(items, models.OrderItem{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Qty:         qty,
			Price:       price,
			Currency:    itemCurrency,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		Code:          generateOrderCode(),
		Region:        region,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		PaymentMethod: input.PaymentMethod,
		Status:        models.OrderStatusPending,
		Total:         total,
		Currency:      currency,
		Items:         items,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return fail(failureMessage("place order", err))
	}

	return ok(order)
}

func (s *CheckoutService) OrderByCode(ctx context.Context, code string) (*models.Order, error) {
	return s.orderRepo.GetByCode(ctx, code)
}

func (s *CheckoutService) Orders(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	return s.orderRepo.GetPaginated(ctx, limit, offset)
}

func (s *CheckoutService) MarkPaid(ctx context.Context, orderID string) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, models.OrderStatusPaid); err != nil {
		return fail(failureMessage("update order status", err))
	}
	return ok(nil)
}

func (s *CheckoutService) Cancel(ctx context.Context, orderID string) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, models.OrderStatusCancelled); err != nil {
		return fail(failureMessage("update order status", err))
	}
	return ok(nil)
}

func generateOrderCode() string {
	return "SLP-" + strings.ToUpper(uuid.New().String()[:8])
}
