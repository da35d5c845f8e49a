package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/errors"
)

// Validation happens before any database round trip, so these run without a
// live Postgres.
func TestStore_UpsertServer_Validation(t *testing.T) {
	t.Parallel()

	tc := []struct {
		name string
		rec  domain.ServerRecord
	}{
		{
			name: "missing profile id",
			rec: domain.ServerRecord{
				Name: "filesystem",
				Type: domain.ServerTypeStdio,
			},
		},
		{
			name: "missing server name",
			rec: domain.ServerRecord{
				ProfileID: "profile-1",
				Type:      domain.ServerTypeStdio,
			},
		},
		{
			name: "plaintext config is rejected",
			rec: domain.ServerRecord{
				ProfileID: "profile-1",
				Name:      "filesystem",
				Type:      domain.ServerTypeStdio,
				Config: domain.ServerConfig{
					Command: "npx",
				},
			},
		},
	}

	for _, testCase := range tc {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s := &Store{}
			_, err := s.UpsertServer(context.Background(), testCase.rec)
			require.ErrorIs(t, err, errors.ErrBadRequest)
		})
	}
}

func TestStore_CreateSession_Validation(t *testing.T) {
	t.Parallel()

	s := &Store{}
	_, err := s.CreateSession(context.Background(), "  ")
	require.ErrorIs(t, err, errors.ErrBadRequest)
}
