package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/estore/internal/notification"
	"github.com/ecodeclub/estore/internal/order"
	"github.com/ecodeclub/estore/internal/pkg/middleware"
	"github.com/ecodeclub/estore/internal/product"
	"github.com/ecodeclub/estore/internal/quiz"
	"github.com/ecodeclub/estore/internal/review"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(sp session.Provider,
	productHdl *product.Handler,
	orderHdl *order.Handler,
	notificationHdl *notification.Handler,
	reviewHdl *review.Handler,
	quizHdl *quiz.Handler,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			// 只允许我的域名过来的
			return strings.Contains(origin, "meoying.com")
		},
	}))
	res.Use(middleware.NewMetricsBuilder().Build())
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	productHdl.PublicRoutes(res.Engine)
	reviewHdl.PublicRoutes(res.Engine)
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	productHdl.PrivateRoutes(res.Engine)
	orderHdl.PrivateRoutes(res.Engine)
	notificationHdl.PrivateRoutes(res.Engine)
	reviewHdl.PrivateRoutes(res.Engine)
	quizHdl.PrivateRoutes(res.Engine)
	return res
}
