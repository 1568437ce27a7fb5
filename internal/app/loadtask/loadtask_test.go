package loadtask_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/linguaflow/internal/app/loadtask"
	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config loadtask.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: loadtask.ServiceConfig{
				Repository: &storagemock.MockTaskRepository{},
				Logger:     log.Noop,
			},
		},
		"missing repository should fail": {
			config: loadtask.ServiceConfig{Logger: log.Noop},
			expErr: true,
		},
		"nil logger should default to noop": {
			config: loadtask.ServiceConfig{
				Repository: &storagemock.MockTaskRepository{},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := loadtask.NewService(test.config)

			if test.expErr {
				require.Error(t, err)
				require.Nil(t, svc)
			} else {
				require.NoError(t, err)
				require.NotNil(t, svc)
			}
		})
	}
}

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock    func(m *storagemock.MockTaskRepository)
		expTask *model.TaskPackage
		expErr  bool
	}{
		"loading should return the repository's task package": {
			mock: func(m *storagemock.MockTaskRepository) {
				m.On("GetTaskPackage", mock.Anything).Once().Return(&model.TaskPackage{
					ID:    "task-1",
					Title: "Test task",
				}, nil)
			},
			expTask: &model.TaskPackage{ID: "task-1", Title: "Test task"},
		},
		"a repository failure should propagate": {
			mock: func(m *storagemock.MockTaskRepository) {
				m.On("GetTaskPackage", mock.Anything).Once().Return(nil, fmt.Errorf("boom"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &storagemock.MockTaskRepository{}
			test.mock(repo)

			svc, err := loadtask.NewService(loadtask.ServiceConfig{Repository: repo})
			require.NoError(t, err)

			task, err := svc.Run(context.Background())

			if test.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.expTask, task)
			}

			repo.AssertExpectations(t)
		})
	}
}
