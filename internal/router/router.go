// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/jong1uk/Auction-Back/internal/config"
	"github.com/jong1uk/Auction-Back/internal/handlers"
	"github.com/jong1uk/Auction-Back/internal/middleware"
	"github.com/jong1uk/Auction-Back/internal/services"
)

// Services bundles the constructed service layer so main and the scheduler
// can share instances with the HTTP surface.
type Services struct {
	Auth      *services.AuthService
	Prices    *services.PriceService
	Products  *services.ProductService
	Shop      *services.ShopService
	Admin     *services.AdminService
	LuckyDraw *services.LuckyDrawService
	Mypage    *services.MypageService
	Notices   *services.NoticeService
}

func BuildServices(db *gorm.DB, cfg *config.Config) *Services {
	prices := services.NewPriceService(db)
	products := services.NewProductService(db, prices)

	return &Services{
		Auth:      services.NewAuthService(db, cfg.JWT),
		Prices:    prices,
		Products:  products,
		Shop:      services.NewShopService(products),
		Admin:     services.NewAdminService(db),
		LuckyDraw: services.NewLuckyDrawService(db),
		Mypage:    services.NewMypageService(db),
		Notices:   services.NewNoticeService(db),
	}
}

func Setup(cfg *config.Config, svcs *Services) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(rate.Limit(50), 100))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handlers.NewAuthHandler(svcs.Auth)
	productHandler := handlers.NewProductHandler(svcs.Products)
	shopHandler := handlers.NewShopHandler(svcs.Shop)
	adminHandler := handlers.NewAdminHandler(svcs.Admin, svcs.LuckyDraw)
	drawHandler := handlers.NewLuckyDrawHandler(svcs.LuckyDraw)
	mypageHandler := handlers.NewMypageHandler(svcs.Mypage, svcs.LuckyDraw)
	noticeHandler := handlers.NewNoticeHandler(svcs.Notices)

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
	}

	products := v1.Group("/products")
	{
		products.GET("/main/:mainDepartment", productHandler.MainDepartment)
		products.GET("/all/:mainDepartment", productHandler.AllByDepartment)
		products.GET("/sub/:subDepartment", productHandler.SubDepartment)
		products.GET("/details/:modelNum", productHandler.Detail)
		products.GET("/details/:modelNum/bid", middleware.AuthRequired(), productHandler.BidQuote)
		products.POST("/details/:modelNum/bid", middleware.AuthRequired(), productHandler.PlaceBid)
		products.POST("/details/:modelNum/review", middleware.AuthRequired(), productHandler.CreateReview)
		products.PUT("/details/:modelNum/review/:reviewId", middleware.AuthRequired(), productHandler.UpdateReview)
		products.DELETE("/details/:modelNum/review/:reviewId", middleware.AuthRequired(), productHandler.DeleteReview)
	}

	shop := v1.Group("/shop")
	{
		shop.GET("/all", shopHandler.All)
		shop.GET("/main/:mainDepartment", shopHandler.Main)
		shop.GET("/sub/:subDepartment", shopHandler.Sub)
	}

	luckydraw := v1.Group("/luckydraw")
	{
		luckydraw.GET("", drawHandler.List)
		luckydraw.GET("/:id", drawHandler.Get)
		luckydraw.POST("/:id/enter", middleware.AuthRequired(), drawHandler.Enter)
	}

	notices := v1.Group("/notices")
	{
		notices.GET("", noticeHandler.List)
		notices.GET("/:id", noticeHandler.Get)
		notices.POST("", middleware.AdminRequired(), noticeHandler.Create)
		notices.PUT("/:id", middleware.AdminRequired(), noticeHandler.Update)
		notices.DELETE("/:id", middleware.AdminRequired(), noticeHandler.Delete)
	}

	mypage := v1.Group("/mypage", middleware.AuthRequired())
	{
		mypage.GET("", mypageHandler.Main)
		mypage.PUT("", mypageHandler.Modify)
		mypage.GET("/addresses", mypageHandler.ListAddresses)
		mypage.POST("/addresses", mypageHandler.CreateAddress)
		mypage.PUT("/addresses/:id", mypageHandler.UpdateAddress)
		mypage.DELETE("/addresses/:id", mypageHandler.DeleteAddress)
		mypage.GET("/account", mypageHandler.GetAccount)
		mypage.PUT("/account", mypageHandler.UpsertAccount)
		mypage.GET("/bookmarks", mypageHandler.ListBookmarks)
		mypage.POST("/bookmarks/:productId", mypageHandler.AddBookmark)
		mypage.DELETE("/bookmarks/:productId", mypageHandler.RemoveBookmark)
		mypage.GET("/buying", mypageHandler.BuyingHistory)
		mypage.GET("/selling", mypageHandler.SellingHistory)
		mypage.GET("/draws", mypageHandler.DrawHistory)
	}

	admin := v1.Group("/admin", middleware.AdminRequired())
	{
		admin.POST("/requests", adminHandler.CreateRequest)
		admin.GET("/requests", adminHandler.ListRequests)
		admin.GET("/requests/:id", adminHandler.GetRequest)
		admin.PUT("/requests/:id", adminHandler.AcceptRequest)
		admin.GET("/products/department/:mainDepartment", adminHandler.ListProducts)
		admin.GET("/products/detailed/:modelNum", adminHandler.ProductFamily)
		admin.POST("/sales/:salesBidId/approve", adminHandler.ApproveSales)
		admin.GET("/luckydraw", adminHandler.ListDraws)
		admin.POST("/luckydraw", adminHandler.CreateDraw)
		admin.POST("/luckydraw/:id/announce", adminHandler.AnnounceDraw)
	}

	return r
}
