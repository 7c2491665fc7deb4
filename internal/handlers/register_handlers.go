package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
	"github.com/EmadRadwan/Contracts-sub015/internal/middleware"
	"github.com/EmadRadwan/Contracts-sub015/pkg/config"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Entries may arrive unfinalized; only "D", "C" and empty are
		// acceptable flag values at the binding layer.
		_ = v.RegisterValidation("debitcreditflag", func(fl validator.FieldLevel) bool {
			switch domain.DebitCreditFlag(fl.Field().String()) {
			case domain.FlagDebit, domain.FlagCredit, "":
				return true
			}
			return false
		})
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.ActingPartyHeader},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", getHome)

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1",
		newRateLimitMiddleware(cfg.RateLimit),
		middleware.ActingPartyMiddleware(),
	)

	registerGlAccountRoutes(v1, services.GlAccount, services.Uom)
	RegisterAcctgTransRoutes(v1, services.AcctgTrans, services.Posting)
	registerFinAccountRoutes(v1, services.FinAccount)
}

// newRateLimitMiddleware builds an in-memory, per-client-IP rate limiter
// from a formatted rate such as "100-M".
func newRateLimitMiddleware(formattedRate string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		// Misconfigured rate falls back to a sane default rather than
		// leaving the API unthrottled.
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}
