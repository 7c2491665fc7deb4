package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/EmadRadwan/Contracts-sub015/internal/apperrors"
	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
	"github.com/EmadRadwan/Contracts-sub015/internal/core/services"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockAcctgTransRepository
	service        portssvc.PostingSvcFacade
	posterPartyID  string
	acctgTransID   string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAcctgTransRepository)
	suite.service = services.NewPostingService(suite.mockRepo)
	suite.posterPartyID = uuid.NewString()
	suite.acctgTransID = uuid.NewString()
}

func (suite *PostingServiceTestSuite) unpostedHeader() *domain.AcctgTrans {
	return &domain.AcctgTrans{
		AcctgTransID:     suite.acctgTransID,
		AcctgTransTypeID: domain.AcctgTransTypeSales,
		IsPosted:         false,
	}
}

func balancedEntries(acctgTransID string) []domain.AcctgTransEntry {
	return []domain.AcctgTransEntry{
		{AcctgTransID: acctgTransID, AcctgTransEntrySeqID: 1, DebitCreditFlag: domain.FlagDebit, Amount: decimal.NewFromInt(100), CurrencyUomID: "USD"},
		{AcctgTransID: acctgTransID, AcctgTransEntrySeqID: 2, DebitCreditFlag: domain.FlagCredit, Amount: decimal.NewFromInt(100), CurrencyUomID: "USD"},
	}
}

func (suite *PostingServiceTestSuite) TestPost_BalancedTransactionPosts() {
	ctx := context.Background()
	suite.mockRepo.On("FindAcctgTransByID", ctx, suite.acctgTransID).Return(suite.unpostedHeader(), nil).Once()
	suite.mockRepo.On("FindEntriesByAcctgTransID", ctx, suite.acctgTransID).Return(balancedEntries(suite.acctgTransID), nil).Once()
	suite.mockRepo.On("MarkPosted", ctx, suite.acctgTransID, mock.AnythingOfType("time.Time"), suite.posterPartyID).Return(nil).Once()

	result, err := suite.service.PostAcctgTrans(ctx, suite.acctgTransID, false, suite.posterPartyID)

	suite.Require().NoError(err)
	suite.True(result.Posted)
	suite.Require().NotNil(result.PostedDate)
	suite.True(result.Succeeded())
	suite.Empty(result.Messages)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPost_VerifyOnlyDoesNotPersist() {
	ctx := context.Background()
	suite.mockRepo.On("FindAcctgTransByID", ctx, suite.acctgTransID).Return(suite.unpostedHeader(), nil).Once()
	suite.mockRepo.On("FindEntriesByAcctgTransID", ctx, suite.acctgTransID).Return(balancedEntries(suite.acctgTransID), nil).Once()

	result, err := suite.service.PostAcctgTrans(ctx, suite.acctgTransID, true, suite.posterPartyID)

	suite.Require().NoError(err)
	suite.True(result.VerifyOnly)
	suite.False(result.Posted)
	suite.Nil(result.PostedDate)
	suite.True(result.Succeeded())
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_PerCurrencyImbalanceReported() {
	ctx := context.Background()
	entries := []domain.AcctgTransEntry{
		// USD balanced
		{AcctgTransID: suite.acctgTransID, AcctgTransEntrySeqID: 1, DebitCreditFlag: domain.FlagDebit, Amount: decimal.NewFromInt(50), CurrencyUomID: "USD"},
		{AcctgTransID: suite.acctgTransID, AcctgTransEntrySeqID: 2, DebitCreditFlag: domain.FlagCredit, Amount: decimal.NewFromInt(50), CurrencyUomID: "USD"},
		// EUR imbalanced
		{AcctgTransID: suite.acctgTransID, AcctgTransEntrySeqID: 3, DebitCreditFlag: domain.FlagDebit, Amount: decimal.NewFromInt(70), CurrencyUomID: "EUR"},
		{AcctgTransID: suite.acctgTransID, AcctgTransEntrySeqID: 4, DebitCreditFlag: domain.FlagCredit, Amount: decimal.NewFromInt(30), CurrencyUomID: "EUR"},
	}
	suite.mockRepo.On("FindAcctgTransByID", ctx, suite.acctgTransID).Return(suite.unpostedHeader(), nil).Once()
	suite.mockRepo.On("FindEntriesByAcctgTransID", ctx, suite.acctgTransID).Return(entries, nil).Once()

	result, err := suite.service.PostAcctgTrans(ctx, suite.acctgTransID, false, suite.posterPartyID)

	suite.Require().NoError(err)
	suite.False(result.Posted)
	suite.False(result.Succeeded())
	suite.Require().Len(result.Imbalances, 1)
	suite.Equal("EUR", result.Imbalances[0].CurrencyUomID)
	suite.Require().Len(result.Messages, 1)
	suite.Contains(result.Messages[0], "EUR")
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_MissingFlagBlocksPosting() {
	ctx := context.Background()
	entries := []domain.AcctgTransEntry{
		{AcctgTransID: suite.acctgTransID, AcctgTransEntrySeqID: 1, DebitCreditFlag: domain.FlagDebit, Amount: decimal.NewFromInt(100), CurrencyUomID: "USD"},
		{AcctgTransID: suite.acctgTransID, AcctgTransEntrySeqID: 2, DebitCreditFlag: "", Amount: decimal.NewFromInt(100), CurrencyUomID: "USD"},
	}
	suite.mockRepo.On("FindAcctgTransByID", ctx, suite.acctgTransID).Return(suite.unpostedHeader(), nil).Once()
	suite.mockRepo.On("FindEntriesByAcctgTransID", ctx, suite.acctgTransID).Return(entries, nil).Once()

	result, err := suite.service.PostAcctgTrans(ctx, suite.acctgTransID, false, suite.posterPartyID)

	suite.Require().NoError(err)
	suite.False(result.Posted)
	suite.False(result.Succeeded())
	// One message for the unflagged entry plus one for the resulting
	// one-sided imbalance.
	suite.GreaterOrEqual(len(result.Messages), 1)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_EmptyTransactionBlocked() {
	ctx := context.Background()
	suite.mockRepo.On("FindAcctgTransByID", ctx, suite.acctgTransID).Return(suite.unpostedHeader(), nil).Once()
	suite.mockRepo.On("FindEntriesByAcctgTransID", ctx, suite.acctgTransID).Return([]domain.AcctgTransEntry{}, nil).Once()

	result, err := suite.service.PostAcctgTrans(ctx, suite.acctgTransID, false, suite.posterPartyID)

	suite.Require().NoError(err)
	suite.False(result.Posted)
	suite.False(result.Succeeded())
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_AlreadyPostedRejected() {
	ctx := context.Background()
	postedDate := time.Now()
	header := &domain.AcctgTrans{AcctgTransID: suite.acctgTransID, IsPosted: true, PostedDate: &postedDate}
	suite.mockRepo.On("FindAcctgTransByID", ctx, suite.acctgTransID).Return(header, nil).Once()

	_, err := suite.service.PostAcctgTrans(ctx, suite.acctgTransID, false, suite.posterPartyID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAcctgTransPosted)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindEntriesByAcctgTransID", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_ConcurrentPostLosesRace() {
	ctx := context.Background()
	suite.mockRepo.On("FindAcctgTransByID", ctx, suite.acctgTransID).Return(suite.unpostedHeader(), nil).Once()
	suite.mockRepo.On("FindEntriesByAcctgTransID", ctx, suite.acctgTransID).Return(balancedEntries(suite.acctgTransID), nil).Once()
	// Another poster flipped the flag between the read and the write.
	suite.mockRepo.On("MarkPosted", ctx, suite.acctgTransID, mock.AnythingOfType("time.Time"), suite.posterPartyID).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.PostAcctgTrans(ctx, suite.acctgTransID, false, suite.posterPartyID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPost_UnknownTransaction() {
	ctx := context.Background()
	suite.mockRepo.On("FindAcctgTransByID", ctx, suite.acctgTransID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PostAcctgTrans(ctx, suite.acctgTransID, false, suite.posterPartyID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
