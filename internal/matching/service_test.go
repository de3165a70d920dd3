package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/matching"
)

func TestService_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := matching.NewMockRepository(ctrl)
	svc := matching.NewService(repo)

	clientID := uuid.New()
	repo.EXPECT().FindClient(gomock.Any(), "TRF JUAN PEREZ 0042").Return(clientID, true, nil)

	got, ok, err := svc.Suggest(context.Background(), "TRF JUAN PEREZ 0042")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, clientID, got)
}

func TestService_Suggest_Blank(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := matching.NewService(matching.NewMockRepository(ctrl))

	_, ok, err := svc.Suggest(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Learn(t *testing.T) {
	clientID := uuid.New()

	tests := []struct {
		name     string
		pattern  string
		clientID uuid.UUID
		wantErr  error
	}{
		{name: "trims pattern", pattern: "  JUAN PEREZ ", clientID: clientID},
		{name: "short pattern", pattern: "JP", clientID: clientID, wantErr: apperr.ErrValidation},
		{name: "missing client", pattern: "JUAN PEREZ", wantErr: apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := matching.NewMockRepository(ctrl)
			svc := matching.NewService(repo)

			if tt.wantErr == nil {
				repo.EXPECT().CreateMapping(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, m *matching.Mapping) error {
						m.ID = uuid.New()
						return nil
					},
				)
			}

			m, err := svc.Learn(context.Background(), tt.pattern, tt.clientID)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "JUAN PEREZ", m.RawPattern)
			assert.Equal(t, clientID, m.ClientID)
			assert.NotEqual(t, uuid.Nil, m.ID)
		})
	}
}
