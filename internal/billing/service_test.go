package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fieldwork/internal/activity"
	"github.com/MrJamesThe3rd/fieldwork/internal/apperr"
	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

func TestService_RecordPayment(t *testing.T) {
	invoiceID := uuid.New()
	jobID := uuid.New()

	openInvoice := func(balance money.Amount) *billing.Invoice {
		return &billing.Invoice{ID: invoiceID, JobID: jobID, Total: 11000, Balance: balance}
	}

	type args struct {
		params billing.PaymentParams
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(repo *billing.MockRepository, tx *billing.MockTx)
		wantErr    error
		wantErrMsg string
	}

	tests := []testCase{
		{
			name: "PartialPayment",
			args: args{params: billing.PaymentParams{Amount: 5000, Method: billing.MethodCash}},
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockInvoice(gomock.Any(), invoiceID).Return(openInvoice(11000), nil)
				tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *billing.Payment) error {
						assert.Equal(t, billing.MethodCash, p.Method)
						p.ID = uuid.New()
						return nil
					})
				tx.EXPECT().UpdateBalance(gomock.Any(), invoiceID, money.Amount(6000)).Return(nil)
				tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *activity.Activity) error {
						assert.Equal(t, activity.ActionPaymentReceived, a.Action)
						assert.Equal(t, "Payment of $50.00 received. Remaining balance: $60.00", a.Details)
						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
				repo.EXPECT().GetInvoice(gomock.Any(), invoiceID).Return(openInvoice(6000), nil)
			},
		},
		{
			name: "FinalPaymentMarksJobPaid",
			args: args{params: billing.PaymentParams{Amount: 11000}},
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockInvoice(gomock.Any(), invoiceID).Return(openInvoice(11000), nil)
				tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *billing.Payment) error {
						assert.Equal(t, billing.MethodCard, p.Method)
						return nil
					})
				tx.EXPECT().UpdateBalance(gomock.Any(), invoiceID, money.Amount(0)).Return(nil)
				tx.EXPECT().MarkJobPaid(gomock.Any(), jobID).Return(nil)
				tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *activity.Activity) error {
						assert.Equal(t, activity.ActionPaymentCompleted, a.Action)
						assert.Equal(t, "Invoice paid in full", a.Details)
						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
				repo.EXPECT().GetInvoice(gomock.Any(), invoiceID).Return(openInvoice(0), nil)
			},
		},
		{
			name: "ExceedsBalance",
			args: args{params: billing.PaymentParams{Amount: 6001}},
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockInvoice(gomock.Any(), invoiceID).Return(openInvoice(6000), nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr:    apperr.ErrValidation,
			wantErrMsg: "Payment amount ($60.01) exceeds remaining balance ($60.00)",
		},
		{
			name: "InvoiceNotFound",
			args: args{params: billing.PaymentParams{Amount: 100}},
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockInvoice(gomock.Any(), invoiceID).Return(nil, billing.ErrNotFound)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr:    apperr.ErrNotFound,
			wantErrMsg: "Invoice not found",
		},
		{
			name:       "ZeroAmount",
			args:       args{params: billing.PaymentParams{Amount: 0}},
			wantErr:    apperr.ErrValidation,
			wantErrMsg: "Payment amount must be positive",
		},
		{
			name:    "UnknownMethod",
			args:    args{params: billing.PaymentParams{Amount: 100, Method: "barter"}},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "WriteFailureRollsBack",
			args: args{params: billing.PaymentParams{Amount: 100}},
			setupMock: func(repo *billing.MockRepository, tx *billing.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockInvoice(gomock.Any(), invoiceID).Return(openInvoice(11000), nil)
				tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := billing.NewMockRepository(ctrl)
			tx := billing.NewMockTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, tx)
			}

			svc := billing.NewService(repo)
			got, err := svc.RecordPayment(context.Background(), invoiceID, tt.args.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				var appErr *apperr.Error
				if errors.As(tt.wantErr, &appErr) {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				if tt.wantErrMsg != "" {
					assert.Equal(t, tt.wantErrMsg, err.Error())
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got.Payment)
			require.NotNil(t, got.Invoice)
		})
	}
}

// Payments of 30, 40 and 40 against a 110 invoice leave a zero balance and
// mark the job paid on the last one only.
func TestService_RecordPayment_SettlesAcrossPayments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	tx := billing.NewMockTx(ctrl)

	invoiceID := uuid.New()
	jobID := uuid.New()
	balance := money.Amount(11000)

	var (
		actions  []string
		paidJobs int
	)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil).Times(3)
	tx.EXPECT().LockInvoice(gomock.Any(), invoiceID).
		DoAndReturn(func(context.Context, uuid.UUID) (*billing.Invoice, error) {
			return &billing.Invoice{ID: invoiceID, JobID: jobID, Total: 11000, Balance: balance}, nil
		}).Times(3)
	tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	tx.EXPECT().UpdateBalance(gomock.Any(), invoiceID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, b money.Amount) error {
			balance = b
			return nil
		}).Times(3)
	tx.EXPECT().MarkJobPaid(gomock.Any(), jobID).
		DoAndReturn(func(context.Context, uuid.UUID) error {
			paidJobs++
			return nil
		}).Times(1)
	tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *activity.Activity) error {
			actions = append(actions, a.Action)
			return nil
		}).Times(3)
	tx.EXPECT().Commit().Return(nil).Times(3)
	tx.EXPECT().Rollback().Return(nil).Times(3)
	repo.EXPECT().GetInvoice(gomock.Any(), invoiceID).
		DoAndReturn(func(context.Context, uuid.UUID) (*billing.Invoice, error) {
			return &billing.Invoice{ID: invoiceID, JobID: jobID, Total: 11000, Balance: balance}, nil
		}).Times(3)

	svc := billing.NewService(repo)

	for _, amount := range []money.Amount{3000, 4000, 4000} {
		_, err := svc.RecordPayment(context.Background(), invoiceID, billing.PaymentParams{Amount: amount})
		require.NoError(t, err)
	}

	assert.Equal(t, money.Amount(0), balance)
	assert.Equal(t, 1, paidJobs)
	assert.Equal(t, []string{
		activity.ActionPaymentReceived,
		activity.ActionPaymentReceived,
		activity.ActionPaymentCompleted,
	}, actions)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	repo.EXPECT().ListInvoices(gomock.Any()).Return([]*billing.Invoice{{ID: uuid.New()}}, nil)

	got, err := billing.NewService(repo).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// Against a 110 balance: 150 is rejected; 50 is accepted; a following 70 is
// rejected against the remaining 60.
func TestService_RecordPayment_RejectsOverpayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := billing.NewMockRepository(ctrl)
	tx := billing.NewMockTx(ctrl)

	invoiceID := uuid.New()
	jobID := uuid.New()
	balance := money.Amount(11000)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil).Times(3)
	tx.EXPECT().LockInvoice(gomock.Any(), invoiceID).
		DoAndReturn(func(context.Context, uuid.UUID) (*billing.Invoice, error) {
			return &billing.Invoice{ID: invoiceID, JobID: jobID, Total: 11000, Balance: balance}, nil
		}).Times(3)
	tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	tx.EXPECT().UpdateBalance(gomock.Any(), invoiceID, money.Amount(6000)).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, b money.Amount) error {
			balance = b
			return nil
		}).Times(1)
	tx.EXPECT().AppendActivity(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	tx.EXPECT().Commit().Return(nil).Times(1)
	tx.EXPECT().Rollback().Return(nil).Times(3)
	repo.EXPECT().GetInvoice(gomock.Any(), invoiceID).
		Return(&billing.Invoice{ID: invoiceID, JobID: jobID, Total: 11000, Balance: 6000}, nil)

	svc := billing.NewService(repo)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, invoiceID, billing.PaymentParams{Amount: 15000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$150.00")
	assert.Contains(t, err.Error(), "$110.00")

	receipt, err := svc.RecordPayment(ctx, invoiceID, billing.PaymentParams{Amount: 5000})
	require.NoError(t, err)
	assert.Equal(t, money.Amount(6000), receipt.Invoice.Balance)

	_, err = svc.RecordPayment(ctx, invoiceID, billing.PaymentParams{Amount: 7000})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "$70.00")
	assert.Contains(t, err.Error(), "$60.00")
}
