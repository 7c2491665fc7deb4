package services

import (
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
)

// Repositories bundles the persistence ports the service layer depends on.
type Repositories struct {
	GlAccount  portsrepo.GlAccountReader
	Uom        portsrepo.UomReader
	AcctgTrans portsrepo.AcctgTransRepository
	FinAccount portsrepo.FinAccountRepository
	Payment    portsrepo.PaymentReader
}

// NewServiceContainer wires every service with its repositories. The
// accounting-transaction service takes the GL account service, not its
// repository, so entry type derivation goes through one code path.
func NewServiceContainer(repos Repositories) *portssvc.ServiceContainer {
	glAccountSvc := NewGlAccountService(repos.GlAccount)
	return &portssvc.ServiceContainer{
		GlAccount:  glAccountSvc,
		Uom:        NewUomService(repos.Uom),
		AcctgTrans: NewAcctgTransService(repos.AcctgTrans, glAccountSvc),
		Posting:    NewPostingService(repos.AcctgTrans),
		FinAccount: NewFinAccountService(repos.FinAccount, repos.Payment),
	}
}
