package technician_test

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
	"github.com/MrJamesThe3rd/fieldwork/internal/technician"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		input     string
		setupMock func(m *technician.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:  "Success",
			input: "  Taylor Reed ",
			setupMock: func(m *technician.MockRepository) {
				m.EXPECT().
					CreateTechnician(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tech *technician.Technician) error {
						assert.Equal(t, "Taylor Reed", tech.Name)
						tech.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "BlankName",
			input:   "   ",
			wantErr: true,
		},
		{
			name:  "RepoError",
			input: "Taylor",
			setupMock: func(m *technician.MockRepository) {
				m.EXPECT().CreateTechnician(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := technician.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := technician.NewService(repo).Create(context.Background(), tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Schedule(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := technician.NewMockRepository(ctrl)
		id := uuid.New()
		start := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

		repo.EXPECT().GetTechnician(gomock.Any(), id).Return(&technician.Technician{ID: id, Name: "Taylor"}, nil)
		repo.EXPECT().ListSlots(gomock.Any(), id).Return([]technician.Slot{
			{AppointmentID: uuid.New(), JobTitle: "Leak", Start: start, End: start.Add(2 * time.Hour)},
		}, nil)

		tech, slots, err := technician.NewService(repo).Schedule(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Taylor", tech.Name)
		assert.Len(t, slots, 1)
	})

	t.Run("UnknownTechnician", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := technician.NewMockRepository(ctrl)
		repo.EXPECT().GetTechnician(gomock.Any(), gomock.Any()).Return(nil, technician.ErrNotFound)

		_, _, err := technician.NewService(repo).Schedule(context.Background(), uuid.New())
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
