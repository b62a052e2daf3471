package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"guesthouse/internal/events"
	"guesthouse/internal/middleware"
	"guesthouse/internal/modules/booking"
	"guesthouse/internal/modules/guest"
	"guesthouse/internal/modules/house"
	"guesthouse/internal/modules/payment"
	"guesthouse/internal/modules/room"
	"guesthouse/internal/pkg/clock"
	"guesthouse/internal/pkg/jwt"
	"guesthouse/internal/pkg/lock"
	"guesthouse/internal/pkg/response"
	"guesthouse/internal/pkg/validator"
	"guesthouse/internal/repository"
)

// Deps is everything the HTTP layer needs. Publisher receives reservation
// events; Hub, when set, also serves the websocket feed.
type Deps struct {
	Store     *repository.Store
	JWT       *jwt.Service
	Locker    lock.Locker
	Publisher events.Publisher
	Hub       *events.Hub
	Clock     clock.Clock
	Log       *zap.Logger

	CORSAllowedOrigins []string
}

type routeRegistrar interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

func NewRouter(d Deps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		validator.UseJSONNames(v)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORS(d.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	bookingSvc := booking.NewService(d.Store, d.Locker, d.Publisher, d.Clock, d.Log.Named("booking"))
	houseSvc := house.NewService(d.Store, d.Locker, d.Clock, d.Log.Named("house"))
	handlers := []routeRegistrar{
		house.NewHandler(houseSvc),
		room.NewHandler(room.NewService(d.Store, d.Clock, d.Log.Named("room"))),
		guest.NewHandler(guest.NewService(d.Store, d.Clock, d.Log.Named("guest"))),
		booking.NewHandler(bookingSvc),
		payment.NewHandler(payment.NewService(d.Store, d.Clock, d.Log.Named("payment"))),
	}

	v1 := r.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(d.JWT))
	for _, h := range handlers {
		h.RegisterRoutes(v1, protected)
	}

	if d.Hub != nil {
		v1.GET("/ws/events", eventFeed(d.Hub, d.JWT, houseSvc, d.Log))
	}
	return r
}

// eventFeed upgrades to a websocket that streams reservation events.
// Browsers cannot set headers on the upgrade request, so the token may
// also come in the token query parameter. Events carry stays and payment
// amounts, so only the owner of each requested house may watch it.
func eventFeed(hub *events.Hub, j *jwt.Service, houses *house.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		}
		claims, err := j.ValidateToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			return
		}

		houseIDs := c.QueryArray("house_id")
		if len(houseIDs) == 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "house_id is required")
			return
		}
		ctx := c.Request.Context()
		for _, id := range houseIDs {
			if _, err := houses.OwnedHouse(ctx, claims.Principal, id); err != nil {
				response.FromError(c, err)
				return
			}
		}

		canWatch := func(houseID string) bool {
			_, err := houses.OwnedHouse(ctx, claims.Principal, houseID)
			return err == nil
		}
		if err := hub.Serve(c.Writer, c.Request, claims.Principal, houseIDs, canWatch); err != nil {
			log.Warn("websocket upgrade failed", zap.String("principal", claims.Principal), zap.Error(err))
		}
	}
}
