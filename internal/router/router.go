// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"income-expenses-api/internal/cache"
	"income-expenses-api/internal/database"
	"income-expenses-api/internal/handler"
	"income-expenses-api/internal/handler/auth"
	"income-expenses-api/internal/handler/records"
	"income-expenses-api/internal/handler/users"
	"income-expenses-api/internal/middleware"
	"income-expenses-api/internal/model"
	"income-expenses-api/internal/service"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, accounts *service.Accounts) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, cch))

	// 註冊、驗證、登入與重設密碼
	api.POST("/signup", auth.SignupHandler(accounts))
	api.GET("/verify-email", auth.VerifyEmailHandler(accounts))
	api.POST("/login", auth.LoginHandler(accounts))
	api.POST("/token/refresh", auth.RefreshHandler(accounts))
	api.POST("/request-password-reset-email", auth.RequestPasswordResetHandler(accounts))
	api.GET("/password-reset/:uidb64/:token", auth.CheckResetTokenHandler(accounts))
	api.PATCH("/password-reset", auth.ConfirmPasswordResetHandler(accounts))

	requireAuth := middleware.RequireAuth(accounts.Tokens)

	// 當前使用者；middleware 掛在個別路由上，group 本身不帶 middleware
	apiUsersMe := api.Group("/users/me")
	apiUsersMe.GET("", users.GetMeHandler(accounts), requireAuth)
	apiUsersMe.DELETE("", users.DeleteMeHandler(accounts), requireAuth)
	apiUsersMe.PATCH("/password", users.UpdatePasswordMeHandler(accounts), requireAuth)

	// 收支紀錄
	mountRecords(api.Group("/expenses"), db, model.Expense, "/category-averages", requireAuth)
	mountRecords(api.Group("/income"), db, model.Income, "/source-averages", requireAuth)
}

func mountRecords(g *echo.Group, db database.DB, k model.Kind, averagesPath string, mw echo.MiddlewareFunc) {
	h := &records.Handlers{Kind: k, Store: &service.Records{DB: db, Kind: k}}
	g.GET("", h.List, mw)
	g.POST("", h.Create, mw)
	g.GET("/yearly-stats", h.YearlyStats, mw)
	g.GET(averagesPath, h.Averages, mw)
	g.GET("/:id", h.Get, mw)
	g.PUT("/:id", h.Update(false), mw)
	g.PATCH("/:id", h.Update(true), mw)
	g.DELETE("/:id", h.Delete, mw)
}
