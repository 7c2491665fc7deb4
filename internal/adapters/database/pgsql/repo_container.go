package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/services"
)

// NewRepositories wires every pgsql repository into the bundle the service
// layer consumes.
func NewRepositories(dbPool *pgxpool.Pool) services.Repositories {
	glAccountRepo := NewGlAccountRepository(dbPool)

	return services.Repositories{
		GlAccount:  glAccountRepo,
		Uom:        glAccountRepo,
		AcctgTrans: NewAcctgTransRepository(dbPool),
		FinAccount: NewFinAccountRepository(dbPool),
		Payment:    NewPaymentRepository(dbPool),
	}
}
