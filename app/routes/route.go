package routes

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/sellaap/go-storefront/app/configs"
	"github.com/sellaap/go-storefront/app/handlers"
	"github.com/sellaap/go-storefront/app/handlers/admin"
	"github.com/sellaap/go-storefront/app/middlewares"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/sellaap/go-storefront/app/services"
	"github.com/sellaap/go-storefront/app/utils/cache"
	"github.com/sellaap/go-storefront/app/utils/renderer"
	"github.com/sellaap/go-storefront/app/utils/sessions"
	"gorm.io/gorm"
)

// NewRouter wires the full application: repositories over the DB,
// services over the repositories plus the shared read cache, and the
// public and admin handler sets on one mux router.
func NewRouter(db *gorm.DB) (*mux.Router, error) {
	env := configs.LoadEnv()

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		return nil, err
	}
	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)

	render := renderer.New()
	appCache := cache.New()

	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	postRepo := repositories.NewPostRepository(db)
	pageRepo := repositories.NewPageRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)
	imageRepo := repositories.NewImageRepository(db)

	productSvc := services.NewProductService(productRepo, categoryRepo, appCache)
	categorySvc := services.NewCategoryService(categoryRepo, appCache)
	contentSvc := services.NewContentService(postRepo, pageRepo, productRepo, appCache)
	menuSvc := services.NewMenuService(menuRepo, appCache)
	settingsSvc := services.NewSettingsService(settingsRepo, appCache)
	checkoutSvc := services.NewCheckoutService(productRepo, orderRepo, settingsRepo)
	uploadSvc := services.NewUploadService(imageRepo, env.UploadDir, env.UploadURL)

	public := handlers.NewHandler(render, sessionStore, productSvc, categorySvc, contentSvc, menuSvc, settingsSvc, checkoutSvc)
	auth := handlers.NewAuthHandler(public, userRepo)
	back := admin.NewAdminHandler(render, productSvc, categorySvc, contentSvc, menuSvc, settingsSvc, checkoutSvc, uploadSvc,
		productRepo, categoryRepo, postRepo, pageRepo, menuRepo, imageRepo)

	router := mux.NewRouter()
	router.Use(middlewares.SessionUserMiddleware(sessionStore, userRepo))
	router.Use(middlewares.MethodOverrideMiddleware)

	uploadDir := env.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	router.PathPrefix("/assets/").Handler(
		http.StripPrefix("/assets/", http.FileServer(http.Dir("assets"))))

	router.HandleFunc("/login", auth.LoginPage).Methods("GET")
	router.HandleFunc("/login", auth.LoginPost).Methods("POST")
	router.HandleFunc("/logout", auth.Logout).Methods("GET", "POST")

	router.HandleFunc("/", public.RootRedirect).Methods("GET")
	router.HandleFunc("/products/{slug}", public.ProductDetail).Methods("GET")
	router.HandleFunc("/blog", public.ListPosts).Methods("GET")
	router.HandleFunc("/blog/{slug}", public.PostDetail).Methods("GET")
	router.HandleFunc("/pages/{slug}", public.PageDetail).Methods("GET")

	router.HandleFunc("/cart", public.ViewCart).Methods("GET")
	router.HandleFunc("/cart/add", public.AddToCart).Methods("POST")
	router.HandleFunc("/cart/update", public.UpdateCart).Methods("POST")
	router.HandleFunc("/cart/remove", public.RemoveFromCart).Methods("POST")
	router.HandleFunc("/checkout", public.CheckoutPage).Methods("GET")
	router.HandleFunc("/checkout", public.PlaceOrder).Methods("POST")
	router.HandleFunc("/orders/{code}", public.OrderConfirmation).Methods("GET")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware())
	if env.CSRFAuthKey != "" {
		adminRouter.Use(csrf.Protect(
			[]byte(env.CSRFAuthKey),
			csrf.Secure(env.AppEnv == "production"),
			csrf.Path("/"),
		))
	}

	adminRouter.HandleFunc("/dashboard", back.GetDashboardPage).Methods("GET")

	adminRouter.HandleFunc("/products", back.GetProductsPage).Methods("GET")
	adminRouter.HandleFunc("/products/add", back.AddProductPage).Methods("GET")
	adminRouter.HandleFunc("/products/add", back.AddProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/edit", back.EditProductPage).Methods("GET")
	adminRouter.HandleFunc("/products/{id}/edit", back.EditProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/delete", back.DeleteProduct).Methods("POST")

	adminRouter.HandleFunc("/categories", back.GetCategoriesPage).Methods("GET")
	adminRouter.HandleFunc("/categories/add", back.AddCategoryPage).Methods("GET")
	adminRouter.HandleFunc("/categories/add", back.AddCategoryPost).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}/edit", back.EditCategoryPage).Methods("GET")
	adminRouter.HandleFunc("/categories/{id}/edit", back.EditCategoryPost).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}/delete", back.DeleteCategory).Methods("POST")

	adminRouter.HandleFunc("/posts", back.GetPostsPage).Methods("GET")
	adminRouter.HandleFunc("/posts/add", back.AddPostPage).Methods("GET")
	adminRouter.HandleFunc("/posts/add", back.AddPostPost).Methods("POST")
	adminRouter.HandleFunc("/posts/{id}/edit", back.EditPostPage).Methods("GET")
	adminRouter.HandleFunc("/posts/{id}/edit", back.EditPostPost).Methods("POST")
	adminRouter.HandleFunc("/posts/{id}/delete", back.DeletePost).Methods("POST")

	adminRouter.HandleFunc("/pages", back.GetPagesPage).Methods("GET")
	adminRouter.HandleFunc("/pages/add", back.AddPagePage).Methods("GET")
	adminRouter.HandleFunc("/pages/add", back.AddPagePost).Methods("POST")
	adminRouter.HandleFunc("/pages/{id}/edit", back.EditPagePage).Methods("GET")
	adminRouter.HandleFunc("/pages/{id}/edit", back.EditPagePost).Methods("POST")
	adminRouter.HandleFunc("/pages/{id}/delete", back.DeletePage).Methods("POST")

	adminRouter.HandleFunc("/menus", back.GetMenusPage).Methods("GET")
	adminRouter.HandleFunc("/menus/add", back.AddMenuPost).Methods("POST")
	adminRouter.HandleFunc("/menus/{id}", back.EditMenuPage).Methods("GET")
	adminRouter.HandleFunc("/menus/{id}/edit", back.EditMenuPost).Methods("POST")
	adminRouter.HandleFunc("/menus/{id}/delete", back.DeleteMenu).Methods("POST")
	adminRouter.HandleFunc("/menus/{id}/items", back.CreateMenuItem).Methods("POST")
	adminRouter.HandleFunc("/menus/{id}/items/reorder", back.ReorderMenuItems).Methods("POST")
	adminRouter.HandleFunc("/menus/{id}/items/{itemID}", back.UpdateMenuItem).Methods("PUT")
	adminRouter.HandleFunc("/menus/{id}/items/{itemID}", back.DeleteMenuItem).Methods("DELETE")

	adminRouter.HandleFunc("/orders", back.GetOrdersPage).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}/paid", back.MarkOrderPaid).Methods("POST")
	adminRouter.HandleFunc("/orders/{id}/cancel", back.CancelOrder).Methods("POST")

	adminRouter.HandleFunc("/settings", back.GetSettingsPage).Methods("GET")
	adminRouter.HandleFunc("/settings/payment", back.UpdatePaymentSettings).Methods("POST")
	adminRouter.HandleFunc("/settings/seo", back.UpdateSeoSettings).Methods("POST")

	adminRouter.HandleFunc("/media", back.GetMediaPage).Methods("GET")
	adminRouter.HandleFunc("/media/upload", back.UploadImage).Methods("POST")

	// Region-prefixed storefront routes go last so fixed prefixes above
	// keep matching first.
	router.HandleFunc("/{region}", public.RegionHome).Methods("GET")
	router.HandleFunc("/{region}/products", public.ListProducts).Methods("GET")
	router.HandleFunc("/{region}/privacy-policy", public.RegionPrivacy).Methods("GET")

	return router, nil
}
