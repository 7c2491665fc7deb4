package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/EmadRadwan/Contracts-sub015/internal/apperrors"
	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
	"github.com/EmadRadwan/Contracts-sub015/internal/dto"
	"github.com/EmadRadwan/Contracts-sub015/internal/handlers"
	"github.com/EmadRadwan/Contracts-sub015/internal/middleware"
)

// --- Mock AcctgTransService ---
type MockAcctgTransService struct {
	mock.Mock
}

func (m *MockAcctgTransService) GetAcctgTransByID(ctx context.Context, acctgTransID string) (*domain.AcctgTrans, error) {
	args := m.Called(ctx, acctgTransID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcctgTrans), args.Error(1)
}
func (m *MockAcctgTransService) ListAcctgTrans(ctx context.Context, params dto.ListAcctgTransParams) (*dto.ListAcctgTransResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAcctgTransResponse), args.Error(1)
}
func (m *MockAcctgTransService) CreateAcctgTrans(ctx context.Context, req dto.CreateAcctgTransRequest, creatorPartyID string) (*domain.AcctgTrans, error) {
	args := m.Called(ctx, req, creatorPartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcctgTrans), args.Error(1)
}
func (m *MockAcctgTransService) CreateAcctgTransEntry(ctx context.Context, req dto.CreateAcctgTransEntryRequest, creatorPartyID string) (*domain.AcctgTransEntry, error) {
	args := m.Called(ctx, req, creatorPartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcctgTransEntry), args.Error(1)
}
func (m *MockAcctgTransService) QuickCreateAcctgTrans(ctx context.Context, req dto.QuickCreateAcctgTransRequest, creatorPartyID string) (*domain.AcctgTrans, error) {
	args := m.Called(ctx, req, creatorPartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcctgTrans), args.Error(1)
}
func (m *MockAcctgTransService) UpdateAcctgTrans(ctx context.Context, acctgTransID string, req dto.UpdateAcctgTransRequest, updaterPartyID string) (*domain.AcctgTrans, error) {
	args := m.Called(ctx, acctgTransID, req, updaterPartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcctgTrans), args.Error(1)
}
func (m *MockAcctgTransService) DeleteAcctgTransEntry(ctx context.Context, acctgTransID string, acctgTransEntrySeqID int) error {
	args := m.Called(ctx, acctgTransID, acctgTransEntrySeqID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AcctgTransSvcFacade = (*MockAcctgTransService)(nil)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) PostAcctgTrans(ctx context.Context, acctgTransID string, verifyOnly bool, posterPartyID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, acctgTransID, verifyOnly, posterPartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Test Suite ---
type AcctgTransHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockTransService   *MockAcctgTransService
	mockPostingService *MockPostingService
	actingPartyID      string
}

func (suite *AcctgTransHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.actingPartyID = uuid.NewString()

	suite.mockTransService = new(MockAcctgTransService)
	suite.mockPostingService = new(MockPostingService)

	v1 := suite.router.Group("/api/v1")
	v1.Use(middleware.ActingPartyMiddleware())
	handlers.RegisterAcctgTransRoutes(v1, suite.mockTransService, suite.mockPostingService)
}

func (suite *AcctgTransHandlerTestSuite) serve(method, url string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActingPartyHeader, suite.actingPartyID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AcctgTransHandlerTestSuite) TestGetAcctgTrans_Success() {
	acctgTransID := uuid.NewString()
	expected := &domain.AcctgTrans{
		AcctgTransID:     acctgTransID,
		AcctgTransTypeID: domain.AcctgTransTypeSales,
		TransactionDate:  time.Now().Add(-time.Hour),
		Entries: []domain.AcctgTransEntry{
			{AcctgTransID: acctgTransID, AcctgTransEntrySeqID: 1, DebitCreditFlag: domain.FlagDebit, Amount: decimal.NewFromInt(100), CurrencyUomID: "USD"},
		},
	}
	suite.mockTransService.On("GetAcctgTransByID", mock.Anything, acctgTransID).Return(expected, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/acctg-trans/"+acctgTransID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AcctgTransResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(acctgTransID, resp.AcctgTransID)
	suite.Len(resp.Entries, 1)
	suite.mockTransService.AssertExpectations(suite.T())
}

func (suite *AcctgTransHandlerTestSuite) TestGetAcctgTrans_NotFound() {
	acctgTransID := uuid.NewString()
	suite.mockTransService.On("GetAcctgTransByID", mock.Anything, acctgTransID).
		Return(nil, fmt.Errorf("no such transaction: %w", apperrors.ErrNotFound)).Once()

	w := suite.serve(http.MethodGet, "/api/v1/acctg-trans/"+acctgTransID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AcctgTransHandlerTestSuite) TestCreateAcctgTrans_PassesActingParty() {
	created := &domain.AcctgTrans{
		AcctgTransID:     uuid.NewString(),
		AcctgTransTypeID: domain.AcctgTransTypeIncomingPayment,
		TransactionDate:  time.Now().Add(-time.Hour),
	}
	suite.mockTransService.On("CreateAcctgTrans", mock.Anything, mock.AnythingOfType("dto.CreateAcctgTransRequest"), suite.actingPartyID).
		Return(created, nil).Once()

	body := dto.CreateAcctgTransRequest{
		AcctgTransTypeID: domain.AcctgTransTypeIncomingPayment,
		TransactionDate:  time.Now().Add(-time.Hour),
	}
	w := suite.serve(http.MethodPost, "/api/v1/acctg-trans", body)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockTransService.AssertExpectations(suite.T())
}

func (suite *AcctgTransHandlerTestSuite) TestCreateEntry_PathOwnsTransactionID() {
	acctgTransID := uuid.NewString()
	entry := &domain.AcctgTransEntry{
		AcctgTransID:         acctgTransID,
		AcctgTransEntrySeqID: 3,
		GlAccountID:          "110000",
		DebitCreditFlag:      domain.FlagDebit,
		Amount:               decimal.NewFromInt(50),
		CurrencyUomID:        "USD",
	}
	suite.mockTransService.On("CreateAcctgTransEntry", mock.Anything,
		mock.MatchedBy(func(req dto.CreateAcctgTransEntryRequest) bool {
			// The path parameter wins over whatever id the body carried.
			return req.AcctgTransID == acctgTransID
		}), suite.actingPartyID).Return(entry, nil).Once()

	body := dto.CreateAcctgTransEntryRequest{
		AcctgTransID:    "some-other-id",
		GlAccountID:     "110000",
		DebitCreditFlag: domain.FlagDebit,
		Amount:          decimal.NewFromInt(50),
		CurrencyUomID:   "USD",
	}
	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/acctg-trans/%s/entries", acctgTransID), body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AcctgTransEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.AcctgTransEntrySeqID)
	suite.mockTransService.AssertExpectations(suite.T())
}

func (suite *AcctgTransHandlerTestSuite) TestPostAcctgTrans_Success() {
	acctgTransID := uuid.NewString()
	postedDate := time.Now().UTC()
	result := &domain.PostingResult{
		AcctgTransID: acctgTransID,
		Posted:       true,
		PostedDate:   &postedDate,
	}
	suite.mockPostingService.On("PostAcctgTrans", mock.Anything, acctgTransID, false, suite.actingPartyID).
		Return(result, nil).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/acctg-trans/%s/post", acctgTransID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PostAcctgTransResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Posted)
	suite.Empty(resp.Messages)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *AcctgTransHandlerTestSuite) TestPostAcctgTrans_VerifyOnlyQueryFlag() {
	acctgTransID := uuid.NewString()
	result := &domain.PostingResult{
		AcctgTransID: acctgTransID,
		VerifyOnly:   true,
	}
	suite.mockPostingService.On("PostAcctgTrans", mock.Anything, acctgTransID, true, suite.actingPartyID).
		Return(result, nil).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/acctg-trans/%s/post?verifyOnly=true", acctgTransID), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *AcctgTransHandlerTestSuite) TestPostAcctgTrans_ImbalanceReturnsUnprocessable() {
	acctgTransID := uuid.NewString()
	result := &domain.PostingResult{
		AcctgTransID: acctgTransID,
		Posted:       false,
		Imbalances: []domain.CurrencyImbalance{
			{CurrencyUomID: "EUR", DebitTotal: decimal.NewFromInt(70), CreditTotal: decimal.NewFromInt(30)},
		},
		Messages: []string{"debits (70) do not equal credits (30) for currency EUR"},
	}
	suite.mockPostingService.On("PostAcctgTrans", mock.Anything, acctgTransID, false, suite.actingPartyID).
		Return(result, nil).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/acctg-trans/%s/post", acctgTransID), nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp dto.PostAcctgTransResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Posted)
	suite.Len(resp.Messages, 1)
}

func (suite *AcctgTransHandlerTestSuite) TestPostAcctgTrans_DoublePostConflict() {
	acctgTransID := uuid.NewString()
	suite.mockPostingService.On("PostAcctgTrans", mock.Anything, acctgTransID, false, suite.actingPartyID).
		Return(nil, fmt.Errorf("already posted: %w", apperrors.ErrConflict)).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/acctg-trans/%s/post", acctgTransID), nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AcctgTransHandlerTestSuite) TestDeleteEntry_InvalidSeqID() {
	acctgTransID := uuid.NewString()

	w := suite.serve(http.MethodDelete, fmt.Sprintf("/api/v1/acctg-trans/%s/entries/not-a-number", acctgTransID), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransService.AssertNotCalled(suite.T(), "DeleteAcctgTransEntry", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAcctgTransHandler(t *testing.T) {
	suite.Run(t, new(AcctgTransHandlerTestSuite))
}
