package routes

import (
	"time"

	"github.com/Kariqs/confectionary-api/controllers"
	"github.com/Kariqs/confectionary-api/middlewares"
	"github.com/Kariqs/confectionary-api/services"
	"github.com/Kariqs/confectionary-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Services struct {
	DB         *gorm.DB
	Users      *services.UserService
	Auth       *services.AuthService
	Products   *services.ProductService
	Categories *services.CategoryService
	Carts      *services.CartService
	Orders     *services.OrderService
	Promotions *services.PromotionService
}

type Options struct {
	AllowedOrigins []string
	Mail           utils.MailConfig
}

func SetupRouter(svc Services, opts Options) *gin.Engine {
	registerValidators()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := middlewares.RequireAuth(svc.Auth)
	requireAdmin := middlewares.RequireAdmin()

	DefaultRoutes(server, controllers.NewDefaultController(svc.DB))
	AuthRoutes(server, controllers.NewAuthController(svc.Auth, svc.Users))
	UserRoutes(server, controllers.NewUserController(svc.Users), requireAuth, requireAdmin)
	ProductRoutes(server, controllers.NewProductController(svc.Products), requireAuth, requireAdmin)
	CategoryRoutes(server, controllers.NewCategoryController(svc.Categories), requireAuth, requireAdmin)
	CartRoutes(server, controllers.NewCartController(svc.Carts), requireAuth)
	OrderRoutes(server, controllers.NewOrderController(svc.Orders, opts.Mail), requireAuth, requireAdmin)
	PromotionRoutes(server, controllers.NewPromotionController(svc.Promotions), requireAuth, requireAdmin)

	return server
}
