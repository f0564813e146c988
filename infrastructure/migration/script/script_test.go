package main

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/infrastructure/preferences"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/infrastructure/preferences/mocks"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	saved := &preferences.Preferences{AutoRefreshEnabled: true, LoopIntervalSeconds: 60}

	tests := []struct {
		name       string
		dryRun     bool
		setup      func(source, target *mocks.MockStore)
		wantCopied bool
		wantErr    bool
	}{
		{
			name: "Copia preferências existentes",
			setup: func(source, target *mocks.MockStore) {
				source.EXPECT().Load(ctx, "rh").Return(saved, nil)
				target.EXPECT().Save(ctx, "rh", saved).Return(nil)
			},
			wantCopied: true,
		},
		{
			name: "Dashboard sem arquivo",
			setup: func(source, target *mocks.MockStore) {
				source.EXPECT().Load(ctx, "rh").Return(nil, preferences.ErrNotFound)
			},
		},
		{
			name:   "Dry run não grava",
			dryRun: true,
			setup: func(source, target *mocks.MockStore) {
				source.EXPECT().Load(ctx, "rh").Return(saved, nil)
			},
			wantCopied: true,
		},
		{
			name: "Falha no destino",
			setup: func(source, target *mocks.MockStore) {
				source.EXPECT().Load(ctx, "rh").Return(saved, nil)
				target.EXPECT().Save(ctx, "rh", saved).Return(errors.New("conexão recusada"))
			},
			wantCopied: true,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mocks.NewMockStore(ctrl)
			target := mocks.NewMockStore(ctrl)
			tt.setup(source, target)

			copied, err := migrate(ctx, source, target, "rh", tt.dryRun)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCopied, copied)
		})
	}
}
