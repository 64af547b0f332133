package customer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fieldwork/internal/apperr"
	"github.com/MrJamesThe3rd/fieldwork/internal/customer"
)

func validParams() customer.CreateParams {
	return customer.CreateParams{
		Name:    "Jane Smith",
		Phone:   "555-0100",
		Email:   "jane@example.com",
		Address: "12 Elm St",
	}
}

func TestService_Register(t *testing.T) {
	type args struct {
		params customer.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *customer.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: validParams()},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().EmailExists(gomock.Any(), "jane@example.com").Return(false, nil)
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "TrimsBeforeChecking",
			args: args{params: customer.CreateParams{
				Name: " Jane ", Phone: "555", Email: "  jane@example.com ", Address: "12 Elm St",
			}},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().EmailExists(gomock.Any(), "jane@example.com").Return(false, nil)
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						assert.Equal(t, "Jane", c.Name)
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "EmailTaken",
			args: args{params: validParams()},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().EmailExists(gomock.Any(), "jane@example.com").Return(true, nil)
			},
			wantErr: customer.ErrEmailTaken,
		},
		{
			name: "EmailTakenByConcurrentInsert",
			args: args{params: validParams()},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, nil)
				m.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(customer.ErrEmailTaken)
			},
			wantErr: customer.ErrEmailTaken,
		},
		{
			name: "InvalidEmail",
			args: args{params: customer.CreateParams{
				Name: "Jane", Phone: "555", Email: "not-an-email", Address: "12 Elm St",
			}},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "MissingName",
			args: args{params: customer.CreateParams{
				Phone: "555", Email: "jane@example.com", Address: "12 Elm St",
			}},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "RepoError",
			args: args{params: validParams()},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := customer.NewService(repo)
			got, err := svc.Register(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				var appErr *apperr.Error
				if errors.As(tt.wantErr, &appErr) {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestCreateParams_ValidateMessages(t *testing.T) {
	err := customer.CreateParams{Name: "Jane", Phone: "1", Email: "nope", Address: "x"}.Validate()
	require.Error(t, err)
	assert.Equal(t, "Invalid email", err.Error())

	err = customer.CreateParams{Phone: "1", Email: "a@b.co", Address: "x"}.Validate()
	require.Error(t, err)
	assert.Equal(t, "Name is required", err.Error())

	assert.NoError(t, validParams().Validate())
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetCustomer(gomock.Any(), id).Return(nil, customer.ErrNotFound)

	svc := customer.NewService(repo)
	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_ImportBatch(t *testing.T) {
	t.Run("SkipsExistingAndDuplicates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := customer.NewMockRepository(ctrl)
		itx := customer.NewMockImportTx(ctrl)

		params := []customer.CreateParams{
			validParams(),
			{Name: "Bob", Phone: "555-0101", Email: "bob@example.com", Address: "1 Oak Ave"},
			{Name: "Bob Again", Phone: "555-0102", Email: "bob@example.com", Address: "1 Oak Ave"},
			{Name: "", Phone: "555-0103", Email: "ann@example.com", Address: "2 Pine Rd"},
		}

		repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
		itx.EXPECT().
			ExistingEmails(gomock.Any(), []string{"jane@example.com", "bob@example.com"}).
			Return(map[string]bool{"jane@example.com": true}, nil)
		itx.EXPECT().
			CreateCustomers(gomock.Any(), gomock.Len(1)).
			DoAndReturn(func(_ context.Context, cs []*customer.Customer) error {
				assert.Equal(t, "bob@example.com", cs[0].Email)
				cs[0].ID = uuid.New()
				return nil
			})
		itx.EXPECT().Commit().Return(nil)
		itx.EXPECT().Rollback().Return(nil)

		svc := customer.NewService(repo)
		res, err := svc.ImportBatch(context.Background(), params)
		require.NoError(t, err)

		require.Len(t, res.Created, 1)
		assert.Equal(t, "Bob", res.Created[0].Name)

		require.Len(t, res.Skipped, 3)
		assert.Equal(t, "duplicate email in file", res.Skipped[0].Reason)
		assert.Equal(t, "Name is required", res.Skipped[1].Reason)
		assert.Equal(t, "Customer with this email already exists", res.Skipped[2].Reason)
	})

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := customer.NewService(customer.NewMockRepository(ctrl))
		res, err := svc.ImportBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, res.Created)
		assert.Empty(t, res.Skipped)
	})

	t.Run("CreateFailsRollsBack", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := customer.NewMockRepository(ctrl)
		itx := customer.NewMockImportTx(ctrl)

		repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
		itx.EXPECT().ExistingEmails(gomock.Any(), gomock.Any()).Return(map[string]bool{}, nil)
		itx.EXPECT().CreateCustomers(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
		itx.EXPECT().Rollback().Return(nil)

		svc := customer.NewService(repo)
		_, err := svc.ImportBatch(context.Background(), []customer.CreateParams{validParams()})
		assert.Error(t, err)
	})
}
