package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
)

// --- Mock AcctgTransRepository ---

type MockAcctgTransRepository struct {
	mock.Mock
}

var _ portsrepo.AcctgTransRepository = (*MockAcctgTransRepository)(nil)

func (m *MockAcctgTransRepository) FindAcctgTransByID(ctx context.Context, acctgTransID string) (*domain.AcctgTrans, error) {
	args := m.Called(ctx, acctgTransID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcctgTrans), args.Error(1)
}

func (m *MockAcctgTransRepository) FindEntriesByAcctgTransID(ctx context.Context, acctgTransID string) ([]domain.AcctgTransEntry, error) {
	args := m.Called(ctx, acctgTransID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AcctgTransEntry), args.Error(1)
}

func (m *MockAcctgTransRepository) ListAcctgTrans(ctx context.Context, limit int, nextToken *string) ([]domain.AcctgTrans, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.AcctgTrans), returnedNextToken, args.Error(2)
}

func (m *MockAcctgTransRepository) SaveAcctgTrans(ctx context.Context, trans domain.AcctgTrans, entries []domain.AcctgTransEntry) error {
	args := m.Called(ctx, trans, entries)
	return args.Error(0)
}

func (m *MockAcctgTransRepository) UpdateAcctgTrans(ctx context.Context, trans domain.AcctgTrans) error {
	args := m.Called(ctx, trans)
	return args.Error(0)
}

func (m *MockAcctgTransRepository) AppendEntry(ctx context.Context, entry domain.AcctgTransEntry) (*domain.AcctgTransEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcctgTransEntry), args.Error(1)
}

func (m *MockAcctgTransRepository) DeleteEntry(ctx context.Context, acctgTransID string, acctgTransEntrySeqID int) error {
	args := m.Called(ctx, acctgTransID, acctgTransEntrySeqID)
	return args.Error(0)
}

func (m *MockAcctgTransRepository) MarkPosted(ctx context.Context, acctgTransID string, postedDate time.Time, updatedBy string) error {
	args := m.Called(ctx, acctgTransID, postedDate, updatedBy)
	return args.Error(0)
}

// --- Mock GlAccountReader ---

type MockGlAccountReader struct {
	mock.Mock
}

var _ portsrepo.GlAccountReader = (*MockGlAccountReader)(nil)

func (m *MockGlAccountReader) FindGlAccountByID(ctx context.Context, glAccountID string) (*domain.GlAccount, error) {
	args := m.Called(ctx, glAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlAccount), args.Error(1)
}

// --- Mock GlAccountService (as used by AcctgTransService) ---

type MockGlAccountService struct {
	mock.Mock
}

var _ portssvc.GlAccountSvcFacade = (*MockGlAccountService)(nil)

func (m *MockGlAccountService) ResolveAccountType(ctx context.Context, glAccountID string) (domain.GlAccountTypeID, error) {
	args := m.Called(ctx, glAccountID)
	return args.Get(0).(domain.GlAccountTypeID), args.Error(1)
}

func (m *MockGlAccountService) GetGlAccountByID(ctx context.Context, glAccountID string) (*domain.GlAccount, error) {
	args := m.Called(ctx, glAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlAccount), args.Error(1)
}

// --- Mock FinAccountRepository ---

type MockFinAccountRepository struct {
	mock.Mock
}

var _ portsrepo.FinAccountRepository = (*MockFinAccountRepository)(nil)

func (m *MockFinAccountRepository) FindFinAccountByID(ctx context.Context, finAccountID string) (*domain.FinAccount, error) {
	args := m.Called(ctx, finAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinAccount), args.Error(1)
}

func (m *MockFinAccountRepository) FindFinAccountTransByFinAccountID(ctx context.Context, finAccountID string) ([]domain.FinAccountTrans, error) {
	args := m.Called(ctx, finAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinAccountTrans), args.Error(1)
}

func (m *MockFinAccountRepository) SaveFinAccountTransBatch(ctx context.Context, transactions []domain.FinAccountTrans) error {
	args := m.Called(ctx, transactions)
	return args.Error(0)
}

func (m *MockFinAccountRepository) UpdateFinAccountTransStatus(ctx context.Context, finAccountTransID string, current, target domain.FinAccountTransStatusID, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, finAccountTransID, current, target, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock PaymentReader ---

type MockPaymentReader struct {
	mock.Mock
}

var _ portsrepo.PaymentReader = (*MockPaymentReader)(nil)

func (m *MockPaymentReader) FindPaymentsByIDs(ctx context.Context, paymentIDs []string) (map[string]domain.Payment, error) {
	args := m.Called(ctx, paymentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Payment), args.Error(1)
}
