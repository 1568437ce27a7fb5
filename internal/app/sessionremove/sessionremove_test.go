package sessionremove_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/linguaflow/internal/app/sessionremove"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock     func(m *storagemock.MockSessionRepository)
		req      sessionremove.Request
		expErr   bool
		expErrIs error
	}{
		"removing an existing session should succeed": {
			mock: func(m *storagemock.MockSessionRepository) {
				m.On("DeleteSession", mock.Anything, "s1").Once().Return(nil)
			},
			req: sessionremove.Request{SessionID: "s1"},
		},
		"removing a missing session should propagate not found": {
			mock: func(m *storagemock.MockSessionRepository) {
				m.On("DeleteSession", mock.Anything, "missing").Once().Return(
					fmt.Errorf("session missing: %w", model.ErrNotFound))
			},
			req:      sessionremove.Request{SessionID: "missing"},
			expErr:   true,
			expErrIs: model.ErrNotFound,
		},
		"an empty session id should fail without touching the repository": {
			mock:   func(m *storagemock.MockSessionRepository) {},
			req:    sessionremove.Request{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &storagemock.MockSessionRepository{}
			test.mock(repo)

			svc, err := sessionremove.NewService(sessionremove.ServiceConfig{Repository: repo})
			require.NoError(t, err)

			err = svc.Run(context.Background(), test.req)

			if test.expErr {
				require.Error(t, err)
				if test.expErrIs != nil {
					assert.ErrorIs(t, err, test.expErrIs)
				}
			} else {
				require.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}
